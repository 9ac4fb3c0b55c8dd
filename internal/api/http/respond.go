package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"schoolhub-backend/internal/domain"
	"schoolhub-backend/internal/logger"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps the domain error taxonomy onto HTTP statuses:
// validation and conflicts are 400 with a machine-readable code, missing
// records are 404, everything else is a 500 that gets logged with the
// request path for operational visibility.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrAlreadyIssued):
		writeJSON(w, http.StatusBadRequest, errorBody{errorDetail{Code: "ALREADY_ISSUED", Message: err.Error()}})
	case errors.Is(err, domain.ErrAlreadyReturned):
		writeJSON(w, http.StatusBadRequest, errorBody{errorDetail{Code: "ALREADY_RETURNED", Message: err.Error()}})
	case domain.IsConflict(err):
		writeJSON(w, http.StatusBadRequest, errorBody{errorDetail{Code: "CONFLICT", Message: err.Error()}})
	case domain.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, errorBody{errorDetail{Code: "VALIDATION_FAILED", Message: err.Error()}})
	case domain.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, errorBody{errorDetail{Code: "NOT_FOUND", Message: err.Error()}})
	default:
		logger.ErrorContext(r.Context(), "Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{errorDetail{Code: "INTERNAL", Message: "internal server error"}})
	}
}
