package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              int
	Password          string
	DatabasePath      string
	LogDirectory      string
	CameraIndex       int    // Capture device opened by the video feed
	CameraID          string // Camera name attached to reported detections
	CascadePath       string
	CameraOpenRetries int
	IngestURL         string
	ReportTimeout     time.Duration
	ReportQueueSize   int
	TrackerThreshold  float64
	TrackerMaxAge     time.Duration // 0 keeps tracker entries forever
}

// Load reads configuration from the environment, after applying an optional .env file.
func Load() *Config {
	_ = godotenv.Load()

	port := getEnvAsInt("PORT", 8000)

	return &Config{
		Port:              port,
		Password:          getEnv("PASSWORD", ""),
		DatabasePath:      getEnv("DB_PATH", filepath.Join(".", "data", "emotions.db")),
		LogDirectory:      getEnv("LOG_DIR", filepath.Join(".", "logs")),
		CameraIndex:       getEnvAsInt("CAMERA_INDEX", 0),
		CameraID:          getEnv("CAMERA_ID", "camera_1"),
		CascadePath:       getEnv("CASCADE_PATH", filepath.Join(".", "data", "haarcascade_frontalface_default.xml")),
		CameraOpenRetries: getEnvAsInt("CAMERA_OPEN_RETRIES", 3),
		IngestURL:         getEnv("INGEST_URL", fmt.Sprintf("http://127.0.0.1:%d/api/emotion-detect/", port)),
		ReportTimeout:     time.Duration(getEnvAsInt("REPORT_TIMEOUT_MS", 2000)) * time.Millisecond,
		ReportQueueSize:   getEnvAsInt("REPORT_QUEUE_SIZE", 64),
		TrackerThreshold:  getEnvAsFloat("TRACKER_THRESHOLD", 100),
		TrackerMaxAge:     time.Duration(getEnvAsInt("TRACKER_MAX_AGE_SEC", 60)) * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
