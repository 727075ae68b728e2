package route

import (
	"net/http"

	"github.com/Ayesha0000000/local-camera-stream/internal/config"
	"github.com/Ayesha0000000/local-camera-stream/internal/handler"
	"github.com/Ayesha0000000/local-camera-stream/internal/logger"
	"github.com/Ayesha0000000/local-camera-stream/internal/metrics"
	"github.com/Ayesha0000000/local-camera-stream/internal/middleware"
	"github.com/Ayesha0000000/local-camera-stream/internal/service/emotion"
	"github.com/Ayesha0000000/local-camera-stream/internal/service/stream"
	"github.com/Ayesha0000000/local-camera-stream/internal/service/websocket"
	"github.com/Ayesha0000000/local-camera-stream/static"
)

// SetupRoutes registers pages, the REST API, the video feed and the admin
// endpoints, and wraps the mux with request logging and authentication.
func SetupRoutes(cfg *config.Config, logger *logger.Logger, service *emotion.Service,
	registry *stream.Registry, hub *websocket.HubService, m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()

	// Pages
	mux.HandleFunc("GET /{$}", handler.PageHandler(static.Files, "index.html"))
	mux.HandleFunc("GET /login", handler.PageHandler(static.Files, "login.html"))

	// Ingestion and aggregation API
	mux.HandleFunc("POST /api/emotion-detect/", handler.CreateDetectionHandler(service, logger))
	mux.HandleFunc("GET /api/persons/{$}", handler.ListPersonsHandler(service, logger))
	mux.HandleFunc("GET /api/persons/{person_id}/{$}", handler.GetPersonHandler(service, logger))
	mux.HandleFunc("GET /api/persons/{person_id}/emotions/{$}", handler.PersonEmotionsHandler(service, logger))
	mux.HandleFunc("GET /api/persons/{person_id}/chart/{$}", handler.PersonChartHandler(service, logger))
	mux.HandleFunc("GET /api/dashboard-stats/{$}", handler.DashboardStatsHandler(service, logger))
	mux.HandleFunc("GET /api/live-emotions/{$}", handler.LiveEmotionsHandler(service, logger))
	mux.HandleFunc("GET /api/ws/live/{$}", handler.LiveWebsocketHandler(hub, logger))

	// Camera
	mux.HandleFunc("GET /video_feed/{$}", handler.VideoFeedHandler(registry, cfg.CameraIndex, logger))
	mux.HandleFunc("/release_camera/{$}", handler.ReleaseCameraHandler(registry, cfg.CameraIndex))

	// Metrics
	mux.Handle("GET /metrics", m.Handler())

	// Log endpoints
	mux.HandleFunc("GET /logs", handler.ShowLogsHandler(logger))
	mux.HandleFunc("/logs/clear", handler.ClearLogsHandler(logger))

	// Auth endpoints
	mux.HandleFunc("POST /auth/login", handler.LoginHandler(cfg, logger))
	mux.HandleFunc("/auth/logout", handler.LogoutHandler)

	return middleware.Chain(mux,
		middleware.RequestLogger(logger),
		middleware.AuthMiddleware(cfg.Password),
	)
}
