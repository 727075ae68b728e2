package dto

import "github.com/Ayesha0000000/local-camera-stream/internal/model"

// DashboardStats summarizes all stored detections.
type DashboardStats struct {
	TotalPersons        int                      `json:"total_persons"`
	TotalEmotions       int                      `json:"total_emotions"`
	TodayDetections     int                      `json:"today_detections"`
	ActivePersons       int                      `json:"active_persons"`
	EmotionDistribution []model.EmotionCount     `json:"emotion_distribution"`
	RecentDetections    []model.EmotionDetection `json:"recent_detections"`
}
