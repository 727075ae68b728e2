// Package pipeline annotates camera frames: detect faces, label each with a
// tracked person id and a predicted emotion, and report every prediction.
package pipeline

import (
	"fmt"
	"image"
	"image/color"

	"github.com/Ayesha0000000/local-camera-stream/internal/logger"
	"github.com/Ayesha0000000/local-camera-stream/internal/metrics"
	"github.com/Ayesha0000000/local-camera-stream/internal/model"
)

var (
	BoxColor     = color.RGBA{R: 0, G: 0, B: 255, A: 0}
	PersonColor  = color.RGBA{R: 255, G: 255, B: 255, A: 0}
	EmotionColor = color.RGBA{R: 0, G: 255, B: 0, A: 0}
)

// Frame is a mutable image the pipeline can crop and draw on.
type Frame interface {
	Crop(r image.Rectangle) (image.Image, error)
	DrawBox(r image.Rectangle, c color.RGBA)
	DrawText(text string, origin image.Point, c color.RGBA)
}

type FaceDetector interface {
	DetectFaces(frame Frame) ([]image.Rectangle, error)
}

type Tracker interface {
	Track(face image.Rectangle) string
}

type Predictor interface {
	Predict(face image.Image) (model.Emotion, float64)
}

type Reporter interface {
	Report(personID string, emotion model.Emotion, confidence float64, cameraID string)
}

// Pipeline processes the frames of a single camera. It is not safe for
// concurrent use by multiple streams.
type Pipeline struct {
	cameraID  string
	detector  FaceDetector
	tracker   Tracker
	predictor Predictor
	reporter  Reporter
	logger    *logger.Logger
	metrics   *metrics.Metrics
}

func New(cameraID string, detector FaceDetector, tracker Tracker, predictor Predictor, reporter Reporter, logger *logger.Logger, m *metrics.Metrics) *Pipeline {
	if cameraID == "" {
		cameraID = model.DefaultCameraID
	}
	return &Pipeline{
		cameraID:  cameraID,
		detector:  detector,
		tracker:   tracker,
		predictor: predictor,
		reporter:  reporter,
		logger:    logger,
		metrics:   m,
	}
}

// Process annotates frame in place and returns it. Detector failures leave the
// frame untouched.
func (p *Pipeline) Process(frame Frame) Frame {
	faces, err := p.detector.DetectFaces(frame)
	if err != nil {
		p.logger.Warning("Face detection failed: %v", err)
		p.metrics.FrameProcessed(p.cameraID, 0)
		return frame
	}

	for _, face := range faces {
		roi, err := frame.Crop(face)
		if err != nil {
			p.logger.Warning("Skipping face at %v: %v", face, err)
			continue
		}

		personID := p.tracker.Track(face)
		emotion, confidence := p.predictor.Predict(roi)
		p.reporter.Report(personID, emotion, confidence, p.cameraID)

		frame.DrawBox(face, BoxColor)
		frame.DrawText(personID, image.Pt(face.Min.X, face.Min.Y-10), PersonColor)
		frame.DrawText(EmotionLabel(emotion, confidence), image.Pt(face.Min.X, face.Max.Y+20), EmotionColor)
	}

	p.metrics.FrameProcessed(p.cameraID, len(faces))
	return frame
}

// EmotionLabel formats the text drawn under a face box.
func EmotionLabel(emotion model.Emotion, confidence float64) string {
	return fmt.Sprintf("%s (%.2f)", emotion, confidence)
}
