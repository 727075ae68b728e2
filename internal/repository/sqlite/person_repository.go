package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Ayesha0000000/local-camera-stream/internal/model"
)

// PersonRepository implements repository.PersonRepository for SQLite.
type PersonRepository struct {
	db *DB
}

// NewPersonRepository creates a new SQLite person repository.
func NewPersonRepository(db *DB) *PersonRepository {
	return &PersonRepository{db: db}
}

// Insert adds a person without any detections.
func (r *PersonRepository) Insert(ctx context.Context, p *model.Person) error {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().ExecContext(ctx, `
		INSERT INTO persons (person_id, name, first_detected, last_seen, total_detections)
		VALUES (?, ?, ?, ?, ?)
	`, p.PersonID, p.Name, p.FirstDetected.UTC(), p.LastSeen.UTC(), p.TotalDetections)
	if err != nil {
		return fmt.Errorf("failed to insert person: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	p.ID = id
	return nil
}

// GetByPersonID retrieves a person by its external identifier.
func (r *PersonRepository) GetByPersonID(ctx context.Context, personID string) (*model.Person, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var p model.Person
	err := r.db.Conn().GetContext(ctx, &p, `
		SELECT id, person_id, name, first_detected, last_seen, total_detections
		FROM persons WHERE person_id = ?
	`, personID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	return &p, nil
}

// GetAll returns every person, most recently seen first.
func (r *PersonRepository) GetAll(ctx context.Context) ([]model.Person, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	persons := []model.Person{}
	err := r.db.Conn().SelectContext(ctx, &persons, `
		SELECT id, person_id, name, first_detected, last_seen, total_detections
		FROM persons ORDER BY last_seen DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query persons: %w", err)
	}
	return persons, nil
}

// Count returns the number of persons.
func (r *PersonRepository) Count(ctx context.Context) (int, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var count int
	if err := r.db.Conn().GetContext(ctx, &count, `SELECT COUNT(*) FROM persons`); err != nil {
		return 0, fmt.Errorf("failed to count persons: %w", err)
	}
	return count, nil
}

// CountSeenSince returns the number of persons last seen at or after since.
func (r *PersonRepository) CountSeenSince(ctx context.Context, since time.Time) (int, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var count int
	if err := r.db.Conn().GetContext(ctx, &count, `SELECT COUNT(*) FROM persons WHERE last_seen >= ?`, since.UTC()); err != nil {
		return 0, fmt.Errorf("failed to count active persons: %w", err)
	}
	return count, nil
}
