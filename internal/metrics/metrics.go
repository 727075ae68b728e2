// Package metrics exposes prometheus collectors for ingestion, streaming and reporting.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors the service updates. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	detectionsCreated *prometheus.CounterVec
	framesProcessed   *prometheus.CounterVec
	facesDetected     *prometheus.CounterVec
	reports           *prometheus.CounterVec
}

// New creates and registers all collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		detectionsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "emotion",
			Name:      "detections_created_total",
			Help:      "Detections persisted by the ingestion endpoint.",
		}, []string{"emotion"}),
		framesProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "emotion",
			Name:      "frames_processed_total",
			Help:      "Frames run through the pipeline.",
		}, []string{"camera"}),
		facesDetected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "emotion",
			Name:      "faces_detected_total",
			Help:      "Faces found by the detector.",
		}, []string{"camera"}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "emotion",
			Name:      "reports_total",
			Help:      "Detection reports by outcome (sent, failed, dropped).",
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(m.detectionsCreated, m.framesProcessed, m.facesDetected, m.reports)
	return m
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) DetectionCreated(emotion string) {
	if m == nil {
		return
	}
	m.detectionsCreated.WithLabelValues(emotion).Inc()
}

func (m *Metrics) FrameProcessed(camera string, faces int) {
	if m == nil {
		return
	}
	m.framesProcessed.WithLabelValues(camera).Inc()
	m.facesDetected.WithLabelValues(camera).Add(float64(faces))
}

func (m *Metrics) ReportSent() {
	if m == nil {
		return
	}
	m.reports.WithLabelValues("sent").Inc()
}

func (m *Metrics) ReportFailed() {
	if m == nil {
		return
	}
	m.reports.WithLabelValues("failed").Inc()
}

func (m *Metrics) ReportDropped() {
	if m == nil {
		return
	}
	m.reports.WithLabelValues("dropped").Inc()
}
