// Package camera captures frames from a local device with gocv and runs them
// through the annotation pipeline.
package camera

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"gocv.io/x/gocv"

	"github.com/Ayesha0000000/local-camera-stream/internal/logger"
	"github.com/Ayesha0000000/local-camera-stream/internal/service/pipeline"
)

const (
	frameWidth  = 640
	frameHeight = 480
	frameRate   = 30
)

// ErrReleased is returned by Next once the source has been released.
var ErrReleased = errors.New("camera released")

// Processor annotates a frame before it is encoded.
type Processor interface {
	Process(frame pipeline.Frame) pipeline.Frame
}

// Source owns one capture device. The device is opened on first use and
// stays open until Release.
type Source struct {
	index     int
	retries   int
	processor Processor
	logger    *logger.Logger

	mu       sync.Mutex
	capture  *gocv.VideoCapture
	mat      gocv.Mat
	released bool
}

// NewSource creates a Source for the device at index. processor may be nil.
func NewSource(index, retries int, processor Processor, logger *logger.Logger) *Source {
	if retries < 0 {
		retries = 0
	}
	return &Source{
		index:     index,
		retries:   retries,
		processor: processor,
		logger:    logger,
	}
}

// Open opens the device if it is not open yet, retrying with exponential backoff.
func (s *Source) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open()
}

func (s *Source) open() error {
	if s.released {
		return ErrReleased
	}
	if s.capture != nil {
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond
	policy.MaxInterval = 2 * time.Second

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		capture, err := gocv.VideoCaptureDevice(s.index)
		if err != nil {
			s.logger.Warning("Opening camera %d failed (attempt %d): %v", s.index, attempt, err)
			return err
		}
		if !capture.IsOpened() {
			_ = capture.Close()
			s.logger.Warning("Camera %d did not open (attempt %d)", s.index, attempt)
			return fmt.Errorf("camera %d not opened", s.index)
		}
		s.capture = capture
		return nil
	}, backoff.WithMaxRetries(policy, uint64(s.retries)))
	if err != nil {
		return fmt.Errorf("failed to open camera %d: %w", s.index, err)
	}

	s.capture.Set(gocv.VideoCaptureFrameWidth, frameWidth)
	s.capture.Set(gocv.VideoCaptureFrameHeight, frameHeight)
	s.capture.Set(gocv.VideoCaptureFPS, frameRate)
	s.mat = gocv.NewMat()

	s.logger.Info("Camera %d opened", s.index)
	return nil
}

// Next reads, annotates and encodes one frame. A failed read yields
// (nil, false, nil) so the caller can try again.
func (s *Source) Next() ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.open(); err != nil {
		return nil, false, err
	}

	if ok := s.capture.Read(&s.mat); !ok || s.mat.Empty() {
		return nil, false, nil
	}

	frame := NewFrame(&s.mat)
	if s.processor != nil {
		s.processor.Process(frame)
	}

	jpeg, err := frame.Encode()
	if err != nil {
		s.logger.Warning("Dropping frame from camera %d: %v", s.index, err)
		return nil, false, nil
	}
	return jpeg, true, nil
}

// Release closes the device. It is safe to call more than once.
func (s *Source) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return
	}
	s.released = true

	if s.capture != nil {
		if err := s.capture.Close(); err != nil {
			s.logger.Warning("Closing camera %d: %v", s.index, err)
		}
		_ = s.mat.Close()
		s.capture = nil
	}
	s.logger.Info("Camera %d released", s.index)
}
