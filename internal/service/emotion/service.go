// Package emotion ingests detections and answers the dashboard's aggregate queries.
package emotion

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Ayesha0000000/local-camera-stream/internal/dto"
	"github.com/Ayesha0000000/local-camera-stream/internal/logger"
	"github.com/Ayesha0000000/local-camera-stream/internal/metrics"
	"github.com/Ayesha0000000/local-camera-stream/internal/model"
	"github.com/Ayesha0000000/local-camera-stream/internal/repository"
)

const (
	RecentEmotionsLimit   = 5
	DashboardRecentLimit  = 10
	ActiveWindow          = 24 * time.Hour
	LiveWindow            = 30 * time.Second
	TimelineDays          = 7
	timelineDateLayout    = "2006-01-02"
	defaultPersonNameTmpl = "Person %s"
)

// Notifier is told about every stored detection.
type Notifier interface {
	Notify(det model.EmotionDetection)
}

type Service struct {
	persons    repository.PersonRepository
	detections repository.DetectionRepository
	stats      repository.StatsRepository
	validate   *validator.Validate
	notifier   Notifier
	logger     *logger.Logger
	metrics    *metrics.Metrics
	now        func() time.Time
	location   *time.Location
}

func NewService(
	persons repository.PersonRepository,
	detections repository.DetectionRepository,
	stats repository.StatsRepository,
	logger *logger.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		persons:    persons,
		detections: detections,
		stats:      stats,
		validate:   NewValidator(),
		logger:     logger,
		metrics:    m,
		now:        time.Now,
		location:   time.Local,
	}
}

// WithNotifier sets the receiver of newly stored detections.
func (s *Service) WithNotifier(n Notifier) *Service {
	s.notifier = n
	return s
}

// WithClock replaces the time source and the location calendar days are computed in.
func (s *Service) WithClock(now func() time.Time, location *time.Location) *Service {
	s.now = now
	if location != nil {
		s.location = location
	}
	return s
}

// CreateDetection validates req and records it, creating the person and its
// stats on first sight.
func (s *Service) CreateDetection(ctx context.Context, req dto.CreateDetectionRequest) (model.EmotionDetection, error) {
	if err := s.validateStruct(req); err != nil {
		return model.EmotionDetection{}, err
	}

	cameraID := req.CameraID
	if cameraID == "" {
		cameraID = model.DefaultCameraID
	}

	det := model.EmotionDetection{
		PersonID:   req.PersonID,
		Emotion:    model.Emotion(req.Emotion),
		Confidence: *req.Confidence,
		DetectedAt: s.now(),
		CameraID:   cameraID,
	}

	if err := s.detections.Record(ctx, &det, fmt.Sprintf(defaultPersonNameTmpl, req.PersonID)); err != nil {
		return model.EmotionDetection{}, fmt.Errorf("failed to record detection: %w", err)
	}

	s.metrics.DetectionCreated(string(det.Emotion))
	if s.notifier != nil {
		s.notifier.Notify(det)
	}
	return det, nil
}

// ListPersons returns every person with its stats and latest detections,
// most recently seen first.
func (s *Service) ListPersons(ctx context.Context) ([]dto.PersonResponse, error) {
	persons, err := s.persons.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}

	responses := make([]dto.PersonResponse, 0, len(persons))
	for _, p := range persons {
		resp, err := s.personResponse(ctx, p)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func (s *Service) GetPerson(ctx context.Context, personID string) (dto.PersonResponse, error) {
	p, err := s.persons.GetByPersonID(ctx, personID)
	if err != nil {
		return dto.PersonResponse{}, fmt.Errorf("failed to get person: %w", err)
	}
	if p == nil {
		return dto.PersonResponse{}, ErrPersonNotFound
	}
	return s.personResponse(ctx, *p)
}

func (s *Service) personResponse(ctx context.Context, p model.Person) (dto.PersonResponse, error) {
	stats, err := s.stats.GetByPersonID(ctx, p.PersonID)
	if err != nil {
		return dto.PersonResponse{}, fmt.Errorf("failed to get stats for %s: %w", p.PersonID, err)
	}

	recent, err := s.detections.GetByPersonID(ctx, p.PersonID, time.Time{}, RecentEmotionsLimit)
	if err != nil {
		return dto.PersonResponse{}, fmt.Errorf("failed to get recent detections for %s: %w", p.PersonID, err)
	}

	return dto.PersonResponse{Person: p, Stats: stats, RecentEmotions: recent}, nil
}

// History returns a person's detections, newest first. days limits the result
// to the trailing number of days when it parses as a positive integer and is
// ignored otherwise, so zero, negative or non-numeric values return the full
// history. An unknown person has an empty history.
func (s *Service) History(ctx context.Context, personID, days string) ([]model.EmotionDetection, error) {
	var since time.Time
	if n, err := strconv.Atoi(days); err == nil && n > 0 {
		since = s.now().AddDate(0, 0, -n)
	}

	detections, err := s.detections.GetByPersonID(ctx, personID, since, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get history for %s: %w", personID, err)
	}
	return detections, nil
}

// Chart returns a person's totals and per-day label counts for the last
// TimelineDays calendar days, oldest first, ending today.
func (s *Service) Chart(ctx context.Context, personID string) (dto.ChartResponse, error) {
	p, err := s.persons.GetByPersonID(ctx, personID)
	if err != nil {
		return dto.ChartResponse{}, fmt.Errorf("failed to get person: %w", err)
	}
	if p == nil {
		return dto.ChartResponse{}, ErrPersonNotFound
	}

	stats, err := s.stats.GetByPersonID(ctx, personID)
	if err != nil {
		return dto.ChartResponse{}, fmt.Errorf("failed to get stats: %w", err)
	}
	if stats == nil {
		return dto.ChartResponse{}, ErrStatsNotFound
	}

	today := s.startOfDay(s.now())
	timeline := make([]dto.TimelineDay, 0, TimelineDays)
	for i := TimelineDays - 1; i >= 0; i-- {
		start := today.AddDate(0, 0, -i)
		end := start.AddDate(0, 0, 1)

		counts, err := s.detections.CountByEmotionBetween(ctx, personID, start, end)
		if err != nil {
			return dto.ChartResponse{}, fmt.Errorf("failed to build timeline: %w", err)
		}
		timeline = append(timeline, dto.TimelineDay{
			Date:     start.Format(timelineDateLayout),
			Emotions: counts,
		})
	}

	return dto.ChartResponse{PersonID: personID, TotalStats: *stats, Timeline: timeline}, nil
}

// Dashboard summarizes the whole store.
func (s *Service) Dashboard(ctx context.Context) (dto.DashboardStats, error) {
	now := s.now()
	var (
		out dto.DashboardStats
		err error
	)

	if out.TotalPersons, err = s.persons.Count(ctx); err != nil {
		return dto.DashboardStats{}, fmt.Errorf("failed to count persons: %w", err)
	}
	if out.TotalEmotions, err = s.detections.Count(ctx); err != nil {
		return dto.DashboardStats{}, fmt.Errorf("failed to count detections: %w", err)
	}

	today := s.startOfDay(now)
	if out.TodayDetections, err = s.detections.CountBetween(ctx, today, today.AddDate(0, 0, 1)); err != nil {
		return dto.DashboardStats{}, fmt.Errorf("failed to count today's detections: %w", err)
	}
	if out.ActivePersons, err = s.persons.CountSeenSince(ctx, now.Add(-ActiveWindow)); err != nil {
		return dto.DashboardStats{}, fmt.Errorf("failed to count active persons: %w", err)
	}
	if out.EmotionDistribution, err = s.detections.Distribution(ctx); err != nil {
		return dto.DashboardStats{}, fmt.Errorf("failed to get distribution: %w", err)
	}
	if out.RecentDetections, err = s.detections.GetRecent(ctx, DashboardRecentLimit); err != nil {
		return dto.DashboardStats{}, fmt.Errorf("failed to get recent detections: %w", err)
	}

	return out, nil
}

// Live returns detections from the last LiveWindow, newest first.
func (s *Service) Live(ctx context.Context) ([]model.EmotionDetection, error) {
	detections, err := s.detections.GetSince(ctx, s.now().Add(-LiveWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to get live detections: %w", err)
	}
	return detections, nil
}

func (s *Service) startOfDay(t time.Time) time.Time {
	t = t.In(s.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.location)
}
