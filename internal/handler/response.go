package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Ayesha0000000/local-camera-stream/internal/dto"
	"github.com/Ayesha0000000/local-camera-stream/internal/logger"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.ErrorResponse{Error: message})
}

// writeInternalError logs err and answers with a generic 500.
func writeInternalError(w http.ResponseWriter, logger *logger.Logger, what string, err error) {
	logger.Error("Error %s: %v", what, err)
	writeError(w, http.StatusInternalServerError, "Internal Server Error")
}
