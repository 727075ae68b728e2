package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/Ayesha0000000/local-camera-stream/internal/model"
)

const detectionColumns = `id, person_id, emotion, confidence, detected_at, camera_id`

// DetectionRepository implements repository.DetectionRepository for SQLite.
type DetectionRepository struct {
	db *DB
}

// NewDetectionRepository creates a new SQLite detection repository.
func NewDetectionRepository(db *DB) *DetectionRepository {
	return &DetectionRepository{db: db}
}

// Record creates the person if needed, bumps its totals, inserts the detection and
// increments the matching stats counter in a single transaction. det.ID is set on success.
func (r *DetectionRepository) Record(ctx context.Context, det *model.EmotionDetection, personName string) error {
	column, ok := statsColumns[det.Emotion]
	if !ok {
		return fmt.Errorf("unknown emotion %q", det.Emotion)
	}

	r.db.Lock()
	defer r.db.Unlock()

	tx, err := r.db.Conn().BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	detectedAt := det.DetectedAt.UTC()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO persons (person_id, name, first_detected, last_seen, total_detections)
		VALUES (?, ?, ?, ?, 0)
		ON CONFLICT(person_id) DO NOTHING
	`, det.PersonID, personName, detectedAt, detectedAt); err != nil {
		return fmt.Errorf("failed to create person: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE persons SET total_detections = total_detections + 1, last_seen = ?
		WHERE person_id = ?
	`, detectedAt, det.PersonID); err != nil {
		return fmt.Errorf("failed to update person: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO emotion_detections (person_id, emotion, confidence, detected_at, camera_id)
		VALUES (?, ?, ?, ?, ?)
	`, det.PersonID, string(det.Emotion), det.Confidence, detectedAt, det.CameraID)
	if err != nil {
		return fmt.Errorf("failed to insert detection: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO emotion_stats (person_id) VALUES (?)
		ON CONFLICT(person_id) DO NOTHING
	`, det.PersonID); err != nil {
		return fmt.Errorf("failed to create emotion stats: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		fmt.Sprintf(`UPDATE emotion_stats SET %[1]s = %[1]s + 1 WHERE person_id = ?`, column),
		det.PersonID); err != nil {
		return fmt.Errorf("failed to update emotion stats: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	det.ID = id
	det.DetectedAt = detectedAt
	return nil
}

// GetByPersonID returns a person's detections, newest first.
func (r *DetectionRepository) GetByPersonID(ctx context.Context, personID string, since time.Time, limit int) ([]model.EmotionDetection, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	query := `SELECT ` + detectionColumns + ` FROM emotion_detections WHERE person_id = ?`
	args := []interface{}{personID}

	if !since.IsZero() {
		query += " AND detected_at >= ?"
		args = append(args, since.UTC())
	}

	query += " ORDER BY detected_at DESC, id DESC"

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	detections := []model.EmotionDetection{}
	if err := r.db.Conn().SelectContext(ctx, &detections, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query detections: %w", err)
	}
	return detections, nil
}

// GetRecent returns the newest detections across all persons.
func (r *DetectionRepository) GetRecent(ctx context.Context, limit int) ([]model.EmotionDetection, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	detections := []model.EmotionDetection{}
	err := r.db.Conn().SelectContext(ctx, &detections, `
		SELECT `+detectionColumns+` FROM emotion_detections
		ORDER BY detected_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent detections: %w", err)
	}
	return detections, nil
}

// GetSince returns detections at or after since, newest first.
func (r *DetectionRepository) GetSince(ctx context.Context, since time.Time) ([]model.EmotionDetection, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	detections := []model.EmotionDetection{}
	err := r.db.Conn().SelectContext(ctx, &detections, `
		SELECT `+detectionColumns+` FROM emotion_detections
		WHERE detected_at >= ?
		ORDER BY detected_at DESC, id DESC
	`, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query live detections: %w", err)
	}
	return detections, nil
}

// Count returns the total number of detections.
func (r *DetectionRepository) Count(ctx context.Context) (int, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var count int
	if err := r.db.Conn().GetContext(ctx, &count, `SELECT COUNT(*) FROM emotion_detections`); err != nil {
		return 0, fmt.Errorf("failed to count detections: %w", err)
	}
	return count, nil
}

// CountBetween counts detections in [start, end).
func (r *DetectionRepository) CountBetween(ctx context.Context, start, end time.Time) (int, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var count int
	err := r.db.Conn().GetContext(ctx, &count, `
		SELECT COUNT(*) FROM emotion_detections WHERE detected_at >= ? AND detected_at < ?
	`, start.UTC(), end.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to count detections: %w", err)
	}
	return count, nil
}

// CountByEmotionBetween counts a person's detections in [start, end) per label.
// Labels without detections are absent from the map.
func (r *DetectionRepository) CountByEmotionBetween(ctx context.Context, personID string, start, end time.Time) (map[model.Emotion]int, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows := []model.EmotionCount{}
	err := r.db.Conn().SelectContext(ctx, &rows, `
		SELECT emotion, COUNT(*) AS count FROM emotion_detections
		WHERE person_id = ? AND detected_at >= ? AND detected_at < ?
		GROUP BY emotion
	`, personID, start.UTC(), end.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to count detections by emotion: %w", err)
	}

	counts := make(map[model.Emotion]int, len(rows))
	for _, row := range rows {
		counts[row.Emotion] = row.Count
	}
	return counts, nil
}

// Distribution counts all detections per label, most frequent first.
func (r *DetectionRepository) Distribution(ctx context.Context) ([]model.EmotionCount, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows := []model.EmotionCount{}
	err := r.db.Conn().SelectContext(ctx, &rows, `
		SELECT emotion, COUNT(*) AS count FROM emotion_detections
		GROUP BY emotion ORDER BY count DESC, emotion ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query emotion distribution: %w", err)
	}
	return rows, nil
}
