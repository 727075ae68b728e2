package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Ayesha0000000/local-camera-stream/internal/config"
	"github.com/Ayesha0000000/local-camera-stream/internal/logger"
	"github.com/Ayesha0000000/local-camera-stream/internal/metrics"
	"github.com/Ayesha0000000/local-camera-stream/internal/repository/sqlite"
	"github.com/Ayesha0000000/local-camera-stream/internal/route"
	"github.com/Ayesha0000000/local-camera-stream/internal/service/emotion"
	"github.com/Ayesha0000000/local-camera-stream/internal/service/predictor"
	"github.com/Ayesha0000000/local-camera-stream/internal/service/reporter"
	"github.com/Ayesha0000000/local-camera-stream/internal/service/stream"
	"github.com/Ayesha0000000/local-camera-stream/internal/service/tracker"
	"github.com/Ayesha0000000/local-camera-stream/internal/service/websocket"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config     *config.Config
	logger     *logger.Logger
	metrics    *metrics.Metrics
	db         *sqlite.DB
	hubService *websocket.HubService
	service    *emotion.Service
	reporter   *reporter.Reporter
	predictor  *predictor.Random
	trackers   *trackers
	registry   *stream.Registry
}

func NewApp() (*App, error) {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	hub := websocket.NewHubService(log)
	service := emotion.NewService(
		sqlite.NewPersonRepository(db),
		sqlite.NewDetectionRepository(db),
		sqlite.NewStatsRepository(db),
		log,
		m,
	).WithNotifier(hub)

	a := &App{
		config:     cfg,
		logger:     log,
		metrics:    m,
		db:         db,
		hubService: hub,
		service:    service,
		reporter:   reporter.New(cfg.IngestURL, cfg.ReportTimeout, cfg.ReportQueueSize, log, m),
		predictor:  predictor.NewRandom(0),
		trackers: &trackers{
			items: make(map[int]*tracker.Tracker),
			build: func() *tracker.Tracker { return tracker.New(cfg.TrackerThreshold, cfg.TrackerMaxAge) },
		},
	}
	a.registry = stream.NewRegistry(a.openCamera, log)

	return a, nil
}

// Run serves HTTP until SIGINT or SIGTERM, then shuts everything down.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start background services
	go a.hubService.Run(ctx)
	a.reporter.Start(context.Background())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.config.Port),
		Handler:           route.SetupRoutes(a.config, a.logger, a.service, a.registry, a.hubService, a.metrics),
		ReadHeaderTimeout: 10 * time.Second,
	}

	a.logger.Info("Emotion camera server listening on http://localhost:%d", a.config.Port)
	a.logger.Info("Database: %s, camera index: %d, reporting to %s", a.config.DatabasePath, a.config.CameraIndex, a.config.IngestURL)

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down")
	case serveErr = <-errCh:
	}

	// Streams never finish on their own; release cameras so their handlers return.
	a.registry.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.logger.Warning("HTTP shutdown: %v", err)
	}

	a.reporter.Close()
	if err := a.db.Close(); err != nil {
		a.logger.Warning("Closing database: %v", err)
	}

	return serveErr
}
