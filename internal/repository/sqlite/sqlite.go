package sqlite

import (
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the SQLite database connection with thread-safe access.
// Writes go through a single connection and IMMEDIATE transactions, so
// concurrent detections for the same person are applied one after another.
type DB struct {
	conn *sqlx.DB
	mu   sync.RWMutex
}

// New creates and initializes a new SQLite database connection.
func New(dbPath string) (*DB, error) {
	conn, err := sqlx.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// migrate creates the necessary tables if they don't exist.
func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS persons (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		person_id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		first_detected DATETIME NOT NULL,
		last_seen DATETIME NOT NULL,
		total_detections INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS emotion_detections (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		person_id TEXT NOT NULL,
		emotion TEXT NOT NULL,
		confidence REAL NOT NULL,
		detected_at DATETIME NOT NULL,
		camera_id TEXT NOT NULL DEFAULT 'camera_1',
		FOREIGN KEY (person_id) REFERENCES persons(person_id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS emotion_stats (
		person_id TEXT PRIMARY KEY,
		happy_count INTEGER NOT NULL DEFAULT 0,
		sad_count INTEGER NOT NULL DEFAULT 0,
		angry_count INTEGER NOT NULL DEFAULT 0,
		surprised_count INTEGER NOT NULL DEFAULT 0,
		fear_count INTEGER NOT NULL DEFAULT 0,
		disgust_count INTEGER NOT NULL DEFAULT 0,
		neutral_count INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (person_id) REFERENCES persons(person_id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_persons_last_seen ON persons(last_seen);
	CREATE INDEX IF NOT EXISTS idx_detections_person_id ON emotion_detections(person_id);
	CREATE INDEX IF NOT EXISTS idx_detections_detected_at ON emotion_detections(detected_at);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying database connection for use by repositories.
func (db *DB) Conn() *sqlx.DB {
	return db.conn
}

// Lock acquires a write lock.
func (db *DB) Lock() {
	db.mu.Lock()
}

// Unlock releases the write lock.
func (db *DB) Unlock() {
	db.mu.Unlock()
}

// RLock acquires a read lock.
func (db *DB) RLock() {
	db.mu.RLock()
}

// RUnlock releases the read lock.
func (db *DB) RUnlock() {
	db.mu.RUnlock()
}
