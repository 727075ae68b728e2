// Package reporter delivers detections from the frame loop to the ingestion endpoint.
package reporter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/Ayesha0000000/local-camera-stream/internal/dto"
	"github.com/Ayesha0000000/local-camera-stream/internal/logger"
	"github.com/Ayesha0000000/local-camera-stream/internal/metrics"
	"github.com/Ayesha0000000/local-camera-stream/internal/model"
)

// DefaultQueueSize is used when the configured queue size is not positive.
const DefaultQueueSize = 64

// Report is one detection waiting to be delivered.
type Report struct {
	PersonID   string
	Emotion    model.Emotion
	Confidence float64
	CameraID   string
}

// Reporter queues detections and posts them from a background worker.
// Delivery is at most once: failures are logged and the report is dropped.
type Reporter struct {
	endpoint string
	client   *http.Client
	queue    chan Report
	logger   *logger.Logger
	metrics  *metrics.Metrics

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// New creates a Reporter posting to endpoint. Every request is bounded by timeout.
func New(endpoint string, timeout time.Duration, queueSize int, logger *logger.Logger, m *metrics.Metrics) *Reporter {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Reporter{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		queue:    make(chan Report, queueSize),
		logger:   logger,
		metrics:  m,
	}
}

// Start launches the delivery worker. It runs until Close is called.
func (r *Reporter) Start(ctx context.Context) {
	r.wg.Add(1)
	go r.worker(ctx)
}

// Report enqueues a detection without blocking. When the queue is full the
// new report is dropped.
func (r *Reporter) Report(personID string, emotion model.Emotion, confidence float64, cameraID string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return
	}

	select {
	case r.queue <- Report{PersonID: personID, Emotion: emotion, Confidence: confidence, CameraID: cameraID}:
	default:
		r.metrics.ReportDropped()
		r.logger.Warning("Report queue full - dropping detection for %s (%s)", personID, emotion)
	}
}

// Send posts a single report and waits for the response.
func (r *Reporter) Send(ctx context.Context, rep Report) error {
	confidence := rep.Confidence
	body, err := json.Marshal(dto.CreateDetectionRequest{
		PersonID:   rep.PersonID,
		Emotion:    string(rep.Emotion),
		Confidence: &confidence,
		CameraID:   rep.CameraID,
	})
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send report: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status %d from ingestion endpoint", resp.StatusCode)
	}
	return nil
}

// Close stops accepting reports and waits until the queued ones are delivered or dropped.
func (r *Reporter) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.queue)
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Reporter) worker(ctx context.Context) {
	defer r.wg.Done()

	for rep := range r.queue {
		if err := r.Send(ctx, rep); err != nil {
			r.metrics.ReportFailed()
			r.logger.Error("Error sending emotion data for %s: %v", rep.PersonID, err)
			continue
		}
		r.metrics.ReportSent()
		r.logger.Debug("Sent emotion data: %s - %s (%.2f)", rep.PersonID, rep.Emotion, rep.Confidence)
	}
}
