package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"

	"github.com/Ayesha0000000/local-camera-stream/internal/dto"
	"github.com/Ayesha0000000/local-camera-stream/internal/logger"
	"github.com/Ayesha0000000/local-camera-stream/internal/service/emotion"
)

// maxDetectionBody caps the size of a detection request body.
const maxDetectionBody = 1 << 20

// CreateDetectionHandler handles POST /api/emotion-detect/ and answers 201 with
// the stored detection, or 400 with a field to message map.
func CreateDetectionHandler(service *emotion.Service, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.CreateDetectionRequest
		r.Body = http.MaxBytesReader(w, r.Body, maxDetectionBody)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var sizeErr *http.MaxBytesError
			if errors.As(err, &sizeErr) {
				writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
				return
			}
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) && typeErr.Field != "" {
				writeJSON(w, http.StatusBadRequest, map[string]string{typeErr.Field: typeMessage(typeErr)})
				return
			}
			writeError(w, http.StatusBadRequest, "JSON parse error - "+err.Error())
			return
		}

		det, err := service.CreateDetection(r.Context(), req)
		if err != nil {
			var verr *emotion.ValidationError
			if errors.As(err, &verr) {
				writeJSON(w, http.StatusBadRequest, verr.Fields)
				return
			}
			writeInternalError(w, logger, "creating detection", err)
			return
		}

		writeJSON(w, http.StatusCreated, det)
	}
}

func typeMessage(err *json.UnmarshalTypeError) string {
	switch err.Type.Kind() {
	case reflect.Float32, reflect.Float64:
		return "A valid number is required."
	case reflect.String:
		return "Not a valid string."
	}
	return "Invalid value."
}

// ListPersonsHandler handles GET /api/persons/.
func ListPersonsHandler(service *emotion.Service, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		persons, err := service.ListPersons(r.Context())
		if err != nil {
			writeInternalError(w, logger, "listing persons", err)
			return
		}
		writeJSON(w, http.StatusOK, persons)
	}
}

// GetPersonHandler handles GET /api/persons/{person_id}/.
func GetPersonHandler(service *emotion.Service, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		person, err := service.GetPerson(r.Context(), r.PathValue("person_id"))
		if errors.Is(err, emotion.ErrPersonNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			writeInternalError(w, logger, "getting person", err)
			return
		}
		writeJSON(w, http.StatusOK, person)
	}
}

// PersonEmotionsHandler handles GET /api/persons/{person_id}/emotions/?days=N.
func PersonEmotionsHandler(service *emotion.Service, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		history, err := service.History(r.Context(), r.PathValue("person_id"), r.URL.Query().Get("days"))
		if err != nil {
			writeInternalError(w, logger, "getting emotion history", err)
			return
		}
		writeJSON(w, http.StatusOK, history)
	}
}

// PersonChartHandler handles GET /api/persons/{person_id}/chart/.
func PersonChartHandler(service *emotion.Service, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chart, err := service.Chart(r.Context(), r.PathValue("person_id"))
		switch {
		case errors.Is(err, emotion.ErrPersonNotFound), errors.Is(err, emotion.ErrStatsNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case err != nil:
			writeInternalError(w, logger, "building chart", err)
		default:
			writeJSON(w, http.StatusOK, chart)
		}
	}
}

func DashboardStatsHandler(service *emotion.Service, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := service.Dashboard(r.Context())
		if err != nil {
			writeInternalError(w, logger, "building dashboard stats", err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func LiveEmotionsHandler(service *emotion.Service, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		live, err := service.Live(r.Context())
		if err != nil {
			writeInternalError(w, logger, "getting live emotions", err)
			return
		}
		writeJSON(w, http.StatusOK, live)
	}
}
