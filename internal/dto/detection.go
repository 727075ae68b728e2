package dto

// CreateDetectionRequest is the body posted to the ingestion endpoint.
// Confidence is a pointer so that an explicit 0 is told apart from a missing field.
type CreateDetectionRequest struct {
	PersonID   string   `json:"person_id" validate:"required,max=100"`
	Emotion    string   `json:"emotion" validate:"required,emotion"`
	Confidence *float64 `json:"confidence" validate:"required,gte=0,lte=1"`
	CameraID   string   `json:"camera_id,omitempty" validate:"omitempty,max=50"`
}

// ErrorResponse is the body of every 404/5xx JSON error.
type ErrorResponse struct {
	Error string `json:"error"`
}
