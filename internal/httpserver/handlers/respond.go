package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"stockflow/internal/workflow"
)

// isDuplicate reports a unique-constraint violation. Relies on the driver's
// error translation (TranslateError in the gorm config).
func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func respondJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

type errorBody struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

func respondError(w http.ResponseWriter, status int, message string, fields ...string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Message: message, Errors: fields})
}

// respondWorkflowError maps a workflow error onto the HTTP boundary.
// Unexpected failures become a generic 500.
func respondWorkflowError(w http.ResponseWriter, err error) {
	var verr *workflow.ValidationError
	switch {
	case errors.Is(err, workflow.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, workflow.ErrInsufficientStock):
		respondError(w, http.StatusBadRequest, "insufficient stock")
	case errors.Is(err, workflow.ErrInvalidAdjustment):
		respondError(w, http.StatusBadRequest, "cannot remove more than available")
	case errors.Is(err, workflow.ErrAlreadyDecided):
		respondError(w, http.StatusBadRequest, "request already decided")
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, "validation failed", verr.Fields...)
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
