package emotion

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Ayesha0000000/local-camera-stream/internal/dto"
	"github.com/Ayesha0000000/local-camera-stream/internal/logger"
	"github.com/Ayesha0000000/local-camera-stream/internal/model"
	"github.com/Ayesha0000000/local-camera-stream/internal/repository/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testZone = time.FixedZone("UTC+5", 5*60*60)

type testEnv struct {
	service *Service
	persons *sqlite.PersonRepository
	now     time.Time
}

func (e *testEnv) clock() time.Time { return e.now }

type recordingNotifier struct {
	got []model.EmotionDetection
}

func (n *recordingNotifier) Notify(det model.EmotionDetection) {
	n.got = append(n.got, det)
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := sqlite.New(filepath.Join(t.TempDir(), "emotions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	env := &testEnv{
		persons: sqlite.NewPersonRepository(db),
		now:     time.Date(2026, 3, 10, 12, 0, 0, 0, testZone),
	}
	env.service = NewService(env.persons, sqlite.NewDetectionRepository(db), sqlite.NewStatsRepository(db), logger.Discard(), nil).
		WithClock(env.clock, testZone)
	return env
}

func confidence(v float64) *float64 { return &v }

func (e *testEnv) create(t *testing.T, personID string, emotion model.Emotion) model.EmotionDetection {
	t.Helper()
	det, err := e.service.CreateDetection(context.Background(), dto.CreateDetectionRequest{
		PersonID:   personID,
		Emotion:    string(emotion),
		Confidence: confidence(0.8),
	})
	require.NoError(t, err)
	return det
}

func validationFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	return verr.Fields
}

func TestCreateDetection_DefaultsAndCreatesPerson(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	det := env.create(t, "person_1", model.Happy)
	assert.NotZero(t, det.ID)
	assert.Equal(t, model.DefaultCameraID, det.CameraID)
	assert.True(t, det.DetectedAt.Equal(env.now))

	p, err := env.service.GetPerson(ctx, "person_1")
	require.NoError(t, err)
	assert.Equal(t, "Person person_1", p.Name)
	assert.Equal(t, 1, p.TotalDetections)
	require.NotNil(t, p.Stats)
	assert.Equal(t, 1, p.Stats.HappyCount)
	require.Len(t, p.RecentEmotions, 1)
	assert.Equal(t, det.ID, p.RecentEmotions[0].ID)
}

func TestCreateDetection_TotalsMatchStatsAndRows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sequence := []model.Emotion{model.Happy, model.Sad, model.Happy, model.Neutral, model.Fear}
	for _, e := range sequence {
		env.create(t, "person_7", e)
		env.now = env.now.Add(time.Second)
	}

	count, err := env.persons.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "person is created once")

	p, err := env.service.GetPerson(ctx, "person_7")
	require.NoError(t, err)
	assert.Equal(t, len(sequence), p.TotalDetections)
	assert.Equal(t, p.TotalDetections, p.Stats.Total())
	assert.Equal(t, 2, p.Stats.HappyCount)
	assert.Len(t, p.RecentEmotions, RecentEmotionsLimit)
	assert.Equal(t, model.Fear, p.RecentEmotions[0].Emotion, "newest first")

	history, err := env.service.History(ctx, "person_7", "")
	require.NoError(t, err)
	assert.Len(t, history, p.TotalDetections)
}

func TestCreateDetection_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		req   dto.CreateDetectionRequest
		field string
	}{
		{"confidence above one", dto.CreateDetectionRequest{PersonID: "p", Emotion: "happy", Confidence: confidence(1.5)}, "confidence"},
		{"negative confidence", dto.CreateDetectionRequest{PersonID: "p", Emotion: "happy", Confidence: confidence(-0.1)}, "confidence"},
		{"missing confidence", dto.CreateDetectionRequest{PersonID: "p", Emotion: "happy"}, "confidence"},
		{"unknown emotion", dto.CreateDetectionRequest{PersonID: "p", Emotion: "bored", Confidence: confidence(0.5)}, "emotion"},
		{"missing person", dto.CreateDetectionRequest{Emotion: "sad", Confidence: confidence(0.5)}, "person_id"},
		{"long camera id", dto.CreateDetectionRequest{PersonID: "p", Emotion: "sad", Confidence: confidence(0.5), CameraID: string(make([]byte, 51))}, "camera_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.service.CreateDetection(ctx, tt.req)
			fields := validationFields(t, err)
			assert.Contains(t, fields, tt.field)
		})
	}

	count, err := env.persons.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "rejected requests store nothing")
}

func TestCreateDetection_ConfidenceBoundsAreInclusive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, c := range []float64{0, 1} {
		det, err := env.service.CreateDetection(ctx, dto.CreateDetectionRequest{PersonID: "p", Emotion: "angry", Confidence: confidence(c), CameraID: "cam_north"})
		require.NoError(t, err, "confidence %v", c)
		assert.InDelta(t, c, det.Confidence, 0)
		assert.Equal(t, "cam_north", det.CameraID)
	}
}

func TestCreateDetection_NotifiesAfterStore(t *testing.T) {
	env := newTestEnv(t)
	n := &recordingNotifier{}
	env.service.WithNotifier(n)

	det := env.create(t, "person_1", model.Surprised)
	_, err := env.service.CreateDetection(context.Background(), dto.CreateDetectionRequest{PersonID: "person_1", Emotion: "nope", Confidence: confidence(0.5)})
	require.Error(t, err)

	require.Len(t, n.got, 1)
	assert.Equal(t, det.ID, n.got[0].ID)
}

func TestGetPerson_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.GetPerson(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrPersonNotFound)
}

func TestListPersons_OrderedByLastSeen(t *testing.T) {
	env := newTestEnv(t)

	env.create(t, "person_1", model.Happy)
	env.now = env.now.Add(time.Minute)
	env.create(t, "person_2", model.Sad)

	persons, err := env.service.ListPersons(context.Background())
	require.NoError(t, err)
	require.Len(t, persons, 2)
	assert.Equal(t, "person_2", persons[0].PersonID)
	assert.Equal(t, "person_1", persons[1].PersonID)
}

func TestHistory_DaysFilter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	start := env.now

	env.now = start.AddDate(0, 0, -3)
	env.create(t, "person_1", model.Happy)
	env.now = start.Add(-time.Hour)
	env.create(t, "person_1", model.Sad)
	env.now = start

	tests := []struct {
		days string
		want int
	}{
		{"", 2},
		{"1", 1},
		{"7", 2},
		{"abc", 2},
		{"0", 2},
		{"-2", 2},
		{"200000", 2},
		{"9999999", 2},
	}
	for _, tt := range tests {
		history, err := env.service.History(ctx, "person_1", tt.days)
		require.NoError(t, err)
		assert.Len(t, history, tt.want, "days=%q", tt.days)
	}

	unknown, err := env.service.History(ctx, "ghost", "")
	require.NoError(t, err)
	assert.Empty(t, unknown)
}

func TestChart_UnknownPersonAndMissingStatsDiffer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.service.Chart(ctx, "ghost")
	assert.ErrorIs(t, err, ErrPersonNotFound)

	require.NoError(t, env.persons.Insert(ctx, &model.Person{PersonID: "visitor", Name: "Visitor", FirstDetected: env.now, LastSeen: env.now}))
	_, err = env.service.Chart(ctx, "visitor")
	assert.ErrorIs(t, err, ErrStatsNotFound)
}

func TestChart_TimelineCoversLastSevenDays(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	today := env.now

	env.now = today.AddDate(0, 0, -6)
	env.create(t, "person_1", model.Happy)
	env.now = today.AddDate(0, 0, -7)
	env.create(t, "person_1", model.Angry)
	env.now = today
	env.create(t, "person_1", model.Happy)
	env.create(t, "person_1", model.Sad)

	chart, err := env.service.Chart(ctx, "person_1")
	require.NoError(t, err)

	assert.Equal(t, "person_1", chart.PersonID)
	assert.Equal(t, 4, chart.TotalStats.Total())
	require.Len(t, chart.Timeline, TimelineDays)
	assert.Equal(t, "2026-03-04", chart.Timeline[0].Date)
	assert.Equal(t, "2026-03-10", chart.Timeline[6].Date)
	assert.Equal(t, map[model.Emotion]int{model.Happy: 1}, chart.Timeline[0].Emotions)
	assert.Empty(t, chart.Timeline[3].Emotions)
	assert.Equal(t, map[model.Emotion]int{model.Happy: 1, model.Sad: 1}, chart.Timeline[6].Emotions)
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	// Just after local midnight, which is still the previous day in UTC.
	now := time.Date(2026, 3, 10, 1, 0, 0, 0, testZone)

	env.now = now.Add(-48 * time.Hour)
	env.create(t, "person_old", model.Sad)
	env.now = now.Add(-2 * time.Hour)
	env.create(t, "person_1", model.Happy)
	env.now = now.Add(-30 * time.Minute)
	env.create(t, "person_2", model.Happy)
	env.now = now
	env.create(t, "person_2", model.Neutral)

	stats, err := env.service.Dashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalPersons)
	assert.Equal(t, 4, stats.TotalEmotions)
	assert.Equal(t, 2, stats.TodayDetections, "only detections since local midnight")
	assert.Equal(t, 2, stats.ActivePersons)
	require.Len(t, stats.EmotionDistribution, 3)
	assert.Equal(t, model.EmotionCount{Emotion: model.Happy, Count: 2}, stats.EmotionDistribution[0])
	assert.Equal(t, model.EmotionCount{Emotion: model.Neutral, Count: 1}, stats.EmotionDistribution[1])
	assert.Equal(t, model.EmotionCount{Emotion: model.Sad, Count: 1}, stats.EmotionDistribution[2])
	require.Len(t, stats.RecentDetections, 4)
	assert.Equal(t, model.Neutral, stats.RecentDetections[0].Emotion)
}

func TestDashboard_RecentIsCapped(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < DashboardRecentLimit+3; i++ {
		env.create(t, "person_1", model.Happy)
		env.now = env.now.Add(time.Second)
	}

	stats, err := env.service.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Len(t, stats.RecentDetections, DashboardRecentLimit)
}

func TestLive_OnlyTrailingWindow(t *testing.T) {
	env := newTestEnv(t)
	now := env.now

	env.now = now.Add(-60 * time.Second)
	env.create(t, "person_1", model.Sad)
	env.now = now.Add(-10 * time.Second)
	recent := env.create(t, "person_1", model.Happy)
	env.now = now

	live, err := env.service.Live(context.Background())
	require.NoError(t, err)
	require.Len(t, live, 1)
	assert.Equal(t, recent.ID, live[0].ID)
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"emotion": "bad", "confidence": "worse"}}
	assert.Equal(t, "invalid detection: confidence: worse; emotion: bad", err.Error())
}
