package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/Ayesha0000000/local-camera-stream/internal/logger"
)

// ShowLogsHandler serves the application log as text/plain.
func ShowLogsHandler(logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := logger.Path()
		if filePath == "" {
			http.Error(w, "Log file not configured", http.StatusNotFound)
			return
		}

		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("Log file not found: " + filepath.Base(filePath)))
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")

		http.ServeFile(w, r, filePath)
	}
}

// ClearLogsHandler rotates the application log so the current file starts empty.
func ClearLogsHandler(logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := logger.CleanLogs(); err != nil {
			logger.Error("Error clearing logs: %v", err)
			http.Error(w, "Failed to clear logs", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("Logs cleared"))
	}
}
