package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"glanz-rental-backend/internal/logger"
	"glanz-rental-backend/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps service errors onto HTTP statuses: validation failures are
// the client's problem, missing rows are 404, the rest is a 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNoCustomer),
		errors.Is(err, service.ErrNoItems),
		errors.Is(err, service.ErrNoEndDate),
		errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrInvalidItem),
		errors.Is(err, service.ErrNothingToReturn):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, sql.ErrNoRows):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	default:
		logger.Error("Request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
