package dto

import "github.com/Ayesha0000000/local-camera-stream/internal/model"

// PersonResponse is a person with its current tally and latest detections.
type PersonResponse struct {
	model.Person
	Stats          *model.EmotionStats      `json:"stats"`
	RecentEmotions []model.EmotionDetection `json:"recent_emotions"`
}

// ChartResponse backs the per-person emotion chart.
type ChartResponse struct {
	PersonID   string             `json:"person_id"`
	TotalStats model.EmotionStats `json:"total_stats"`
	Timeline   []TimelineDay      `json:"timeline"`
}

// TimelineDay holds label counts for one calendar day.
type TimelineDay struct {
	Date     string                `json:"date"`
	Emotions map[model.Emotion]int `json:"emotions"`
}
