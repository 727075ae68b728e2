// Package predictor holds emotion predictors for face crops.
package predictor

import (
	"image"
	"math/rand"
	"sync"
	"time"

	"github.com/Ayesha0000000/local-camera-stream/internal/model"
)

const (
	// MinConfidence and MaxConfidence bound the confidence the random predictor reports.
	MinConfidence = 0.6
	MaxConfidence = 0.95
)

// Random is a stand-in predictor: it ignores the pixels and picks a label uniformly.
type Random struct {
	rng *rand.Rand
	mu  sync.Mutex
}

// NewRandom creates a Random predictor. A seed of 0 uses the current time.
func NewRandom(seed int64) *Random {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// Predict returns a random label with a confidence in [MinConfidence, MaxConfidence).
func (p *Random) Predict(_ image.Image) (model.Emotion, float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	emotion := model.Emotions[p.rng.Intn(len(model.Emotions))]
	confidence := MinConfidence + p.rng.Float64()*(MaxConfidence-MinConfidence)
	return emotion, confidence
}
