package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Ayesha0000000/local-camera-stream/internal/model"
)

// statsColumns whitelists the counter column for each emotion label.
var statsColumns = map[model.Emotion]string{
	model.Happy:     "happy_count",
	model.Sad:       "sad_count",
	model.Angry:     "angry_count",
	model.Surprised: "surprised_count",
	model.Fear:      "fear_count",
	model.Disgust:   "disgust_count",
	model.Neutral:   "neutral_count",
}

// StatsRepository implements repository.StatsRepository for SQLite.
type StatsRepository struct {
	db *DB
}

// NewStatsRepository creates a new SQLite stats repository.
func NewStatsRepository(db *DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// GetByPersonID returns the tally for a person, or nil when none was created yet.
func (r *StatsRepository) GetByPersonID(ctx context.Context, personID string) (*model.EmotionStats, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var stats model.EmotionStats
	err := r.db.Conn().GetContext(ctx, &stats, `
		SELECT person_id, happy_count, sad_count, angry_count, surprised_count,
		       fear_count, disgust_count, neutral_count
		FROM emotion_stats WHERE person_id = ?
	`, personID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get emotion stats: %w", err)
	}
	return &stats, nil
}
