//go:build cgo

package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ayesha0000000/local-camera-stream/internal/logger"
)

func TestSource_ReleaseWithoutOpen(t *testing.T) {
	source := NewSource(0, 0, nil, logger.Discard())

	assert.NotPanics(t, func() {
		source.Release()
		source.Release()
	})

	jpeg, ok, err := source.Next()
	assert.ErrorIs(t, err, ErrReleased)
	assert.False(t, ok)
	assert.Nil(t, jpeg)

	assert.ErrorIs(t, source.Open(), ErrReleased)
}
