package model

import "time"

// Person is a tracked individual, created on the first detection for its PersonID.
type Person struct {
	ID              int64     `db:"id" json:"-"`
	PersonID        string    `db:"person_id" json:"person_id"`
	Name            string    `db:"name" json:"name"`
	FirstDetected   time.Time `db:"first_detected" json:"first_detected"`
	LastSeen        time.Time `db:"last_seen" json:"last_seen"`
	TotalDetections int       `db:"total_detections" json:"total_detections"`
}

// EmotionStats holds the running per-label tally for one person.
type EmotionStats struct {
	PersonID       string `db:"person_id" json:"-"`
	HappyCount     int    `db:"happy_count" json:"happy_count"`
	SadCount       int    `db:"sad_count" json:"sad_count"`
	AngryCount     int    `db:"angry_count" json:"angry_count"`
	SurprisedCount int    `db:"surprised_count" json:"surprised_count"`
	FearCount      int    `db:"fear_count" json:"fear_count"`
	DisgustCount   int    `db:"disgust_count" json:"disgust_count"`
	NeutralCount   int    `db:"neutral_count" json:"neutral_count"`
}

// Count returns the counter for a single label.
func (s EmotionStats) Count(e Emotion) int {
	switch e {
	case Happy:
		return s.HappyCount
	case Sad:
		return s.SadCount
	case Angry:
		return s.AngryCount
	case Surprised:
		return s.SurprisedCount
	case Fear:
		return s.FearCount
	case Disgust:
		return s.DisgustCount
	case Neutral:
		return s.NeutralCount
	}
	return 0
}

// Total sums all counters.
func (s EmotionStats) Total() int {
	total := 0
	for _, e := range Emotions {
		total += s.Count(e)
	}
	return total
}
