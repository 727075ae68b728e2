package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.DetectionCreated("happy")
	m.DetectionCreated("happy")
	m.FrameProcessed("camera_1", 3)
	m.ReportSent()
	m.ReportDropped()

	assert.InDelta(t, 2.0, testutil.ToFloat64(m.detectionsCreated.WithLabelValues("happy")), 0.001)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.framesProcessed.WithLabelValues("camera_1")), 0.001)
	assert.InDelta(t, 3.0, testutil.ToFloat64(m.facesDetected.WithLabelValues("camera_1")), 0.001)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.reports.WithLabelValues("dropped")), 0.001)
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.DetectionCreated("sad")
		m.FrameProcessed("camera_1", 1)
		m.ReportSent()
		m.ReportFailed()
		m.ReportDropped()
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ReportFailed()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `emotion_reports_total{outcome="failed"} 1`)
}
