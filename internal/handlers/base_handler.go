package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/coursehub/progress-service/internal/models"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"error": message})
}

// statusForError maps domain errors to HTTP status codes. Unknown errors and
// authoring data faults (invalid quiz definitions) are internal errors.
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrCourseNotFound), errors.Is(err, models.ErrLessonNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrNotEnrolled):
		return http.StatusForbidden
	case errors.Is(err, models.ErrIncompleteSubmission),
		errors.Is(err, models.ErrEmptySubmission),
		errors.Is(err, models.ErrInvalidTimeSpent),
		errors.Is(err, models.ErrInvalidQuizScore):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
