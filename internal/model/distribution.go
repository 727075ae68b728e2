package model

// EmotionCount is one row of an emotion distribution.
type EmotionCount struct {
	Emotion Emotion `db:"emotion" json:"emotion"`
	Count   int     `db:"count" json:"count"`
}
