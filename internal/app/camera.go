package app

import (
	"sync"

	"github.com/Ayesha0000000/local-camera-stream/internal/service/camera"
	"github.com/Ayesha0000000/local-camera-stream/internal/service/pipeline"
	"github.com/Ayesha0000000/local-camera-stream/internal/service/stream"
	"github.com/Ayesha0000000/local-camera-stream/internal/service/tracker"
)

// cameraCapture ties a Source to the detector it was opened with.
type cameraCapture struct {
	*camera.Source
	detector *camera.CascadeDetector
}

func (c *cameraCapture) Release() {
	c.Source.Release()
	_ = c.detector.Close()
}

// trackers keeps one tracker per camera index so person numbering survives
// reopening the stream.
type trackers struct {
	mu    sync.Mutex
	items map[int]*tracker.Tracker
	build func() *tracker.Tracker
}

func (t *trackers) get(index int) *tracker.Tracker {
	t.mu.Lock()
	defer t.mu.Unlock()
	if tr, ok := t.items[index]; ok {
		return tr
	}
	tr := t.build()
	t.items[index] = tr
	return tr
}

// openCamera builds the capture chain for one stream: cascade detector,
// pipeline, then the device itself.
func (a *App) openCamera(index int) (stream.Capture, error) {
	detector, err := camera.NewCascadeDetector(a.config.CascadePath)
	if err != nil {
		return nil, err
	}

	p := pipeline.New(a.config.CameraID, detector, a.trackers.get(index), a.predictor, a.reporter, a.logger, a.metrics)
	source := camera.NewSource(index, a.config.CameraOpenRetries, p, a.logger)
	if err := source.Open(); err != nil {
		_ = detector.Close()
		return nil, err
	}

	return &cameraCapture{Source: source, detector: detector}, nil
}
