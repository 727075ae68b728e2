package camera

import (
	"errors"
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"github.com/Ayesha0000000/local-camera-stream/internal/service/pipeline"
)

const (
	scaleFactor  = 1.3
	minNeighbors = 5
)

var ErrUnsupportedFrame = errors.New("frame is not a camera frame")

// CascadeDetector finds frontal faces with a Haar cascade.
type CascadeDetector struct {
	classifier gocv.CascadeClassifier
	mu         sync.Mutex
}

// NewCascadeDetector loads the cascade file at path.
func NewCascadeDetector(path string) (*CascadeDetector, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("cascade file not found: %s", path)
	}

	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(path) {
		_ = classifier.Close()
		return nil, fmt.Errorf("failed to load cascade: %s", path)
	}
	return &CascadeDetector{classifier: classifier}, nil
}

func (d *CascadeDetector) DetectFaces(frame pipeline.Frame) ([]image.Rectangle, error) {
	f, ok := frame.(*Frame)
	if !ok {
		return nil, ErrUnsupportedFrame
	}

	gray := gocv.NewMat()
	defer gray.Close()
	if err := gocv.CvtColor(*f.Mat(), &gray, gocv.ColorBGRToGray); err != nil {
		return nil, fmt.Errorf("failed to convert frame to grayscale: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.classifier.DetectMultiScaleWithParams(gray, scaleFactor, minNeighbors, 0, image.Point{}, image.Point{}), nil
}

func (d *CascadeDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.classifier.Close()
}
