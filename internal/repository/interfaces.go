package repository

import (
	"context"
	"time"

	"github.com/Ayesha0000000/local-camera-stream/internal/model"
)

// PersonRepository defines the interface for person data operations.
// Lookups return (nil, nil) when the person does not exist.
type PersonRepository interface {
	// Create operations
	Insert(ctx context.Context, p *model.Person) error

	// Read operations
	GetByPersonID(ctx context.Context, personID string) (*model.Person, error)
	GetAll(ctx context.Context) ([]model.Person, error)
	Count(ctx context.Context) (int, error)
	CountSeenSince(ctx context.Context, since time.Time) (int, error)
}

// DetectionRepository defines the interface for emotion detection data operations.
type DetectionRepository interface {
	// Record stores a detection together with its person and stats updates as one unit.
	// The person is created with personName when it does not exist yet.
	Record(ctx context.Context, det *model.EmotionDetection, personName string) error

	// Read operations; a zero since means unbounded, limit <= 0 means no limit.
	GetByPersonID(ctx context.Context, personID string, since time.Time, limit int) ([]model.EmotionDetection, error)
	GetRecent(ctx context.Context, limit int) ([]model.EmotionDetection, error)
	GetSince(ctx context.Context, since time.Time) ([]model.EmotionDetection, error)
	Count(ctx context.Context) (int, error)
	CountBetween(ctx context.Context, start, end time.Time) (int, error)
	CountByEmotionBetween(ctx context.Context, personID string, start, end time.Time) (map[model.Emotion]int, error)
	Distribution(ctx context.Context) ([]model.EmotionCount, error)
}

// StatsRepository defines the interface for per-person emotion tallies.
type StatsRepository interface {
	GetByPersonID(ctx context.Context, personID string) (*model.EmotionStats, error)
}
