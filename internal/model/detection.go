package model

import "time"

// DefaultCameraID is used when a detection does not name its camera.
const DefaultCameraID = "camera_1"

// EmotionDetection is a single immutable observation of a person's emotion.
type EmotionDetection struct {
	ID         int64     `db:"id" json:"id"`
	PersonID   string    `db:"person_id" json:"person_id"`
	Emotion    Emotion   `db:"emotion" json:"emotion"`
	Confidence float64   `db:"confidence" json:"confidence"`
	DetectedAt time.Time `db:"detected_at" json:"detected_at"`
	CameraID   string    `db:"camera_id" json:"camera_id"`
}
