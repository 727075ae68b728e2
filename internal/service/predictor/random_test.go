package predictor

import (
	"testing"

	"github.com/Ayesha0000000/local-camera-stream/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestRandom_PredictStaysInRange(t *testing.T) {
	p := NewRandom(42)
	seen := map[model.Emotion]bool{}

	for i := 0; i < 2000; i++ {
		emotion, confidence := p.Predict(nil)
		assert.True(t, emotion.Valid(), "unexpected label %q", emotion)
		assert.GreaterOrEqual(t, confidence, MinConfidence)
		assert.Less(t, confidence, MaxConfidence)
		seen[emotion] = true
	}

	assert.Len(t, seen, len(model.Emotions), "every label should come up")
}

func TestRandom_SameSeedSameSequence(t *testing.T) {
	a, b := NewRandom(7), NewRandom(7)
	for i := 0; i < 20; i++ {
		ea, ca := a.Predict(nil)
		eb, cb := b.Predict(nil)
		assert.Equal(t, ea, eb)
		assert.InDelta(t, ca, cb, 0)
	}
}
