package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"github.com/Ayesha0000000/local-camera-stream/internal/logger"
	"github.com/Ayesha0000000/local-camera-stream/internal/service/stream"
)

const (
	frameBoundary = "frame"
	// retryDelay paces the loop after a failed read.
	retryDelay = 10 * time.Millisecond
)

// VideoFeedHandler streams the annotated camera as multipart/x-mixed-replace
// JPEG parts until the client leaves or the camera is released.
func VideoFeedHandler(registry *stream.Registry, cameraIndex int, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lease, err := registry.Acquire(cameraIndex)
		if errors.Is(err, stream.ErrInUse) {
			http.Error(w, "Camera in use", http.StatusConflict)
			return
		}
		if err != nil {
			logger.Error("Error opening camera %d: %v", cameraIndex, err)
			http.Error(w, "Camera not available", http.StatusServiceUnavailable)
			return
		}
		defer lease.Close()

		flusher, _ := w.(http.Flusher)
		mw := multipart.NewWriter(w)
		_ = mw.SetBoundary(frameBoundary)

		w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary="+frameBoundary)
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)

		header := textproto.MIMEHeader{"Content-Type": {"image/jpeg"}}
		for {
			if r.Context().Err() != nil {
				return
			}

			jpeg, ok, err := lease.Next()
			if err != nil {
				if !errors.Is(err, stream.ErrReleased) {
					logger.Warning("Stream on camera %d ended: %v", cameraIndex, err)
				}
				return
			}
			if !ok {
				select {
				case <-r.Context().Done():
					return
				case <-time.After(retryDelay):
				}
				continue
			}

			part, err := mw.CreatePart(header)
			if err != nil {
				return
			}
			if _, err := part.Write(jpeg); err != nil {
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}

// ReleaseCameraHandler releases the configured camera. It always answers 200.
func ReleaseCameraHandler(registry *stream.Registry, cameraIndex int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		registry.Release(cameraIndex)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Camera released"))
	}
}
