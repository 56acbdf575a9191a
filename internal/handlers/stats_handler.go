package handlers

import (
	"context"
	"net/http"

	"github.com/coursehub/progress-service/internal/auth"
	"github.com/coursehub/progress-service/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// StatsService is the interface that wraps learner statistics aggregation
type StatsService interface {
	// GetStats computes cross-course statistics and achievement states for a learner
	GetStats(ctx context.Context, userID int) (*models.StatsResponse, error)
}

// StatsHandler handles HTTP requests for learner statistics
type StatsHandler struct {
	BaseHandler
	stats StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(stats StatsService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		BaseHandler: BaseHandler{Logger: logger},
		stats:       stats,
	}
}

// RegisterRoutes registers all stats handler routes
func (h *StatsHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/stats", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.GetStats)
	})
}

// GetStats handles GET /stats
// @Summary Get learner statistics
// @Description Get cross-course statistics for the calling learner: enrollment count, completed lessons, total time spent, current daily streak and achievements.
// @Tags stats
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.StatsResponse "Learner statistics with achievements"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /stats [get]
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	stats, err := h.stats.GetStats(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to get learner stats", zap.Error(err))
		h.RespondError(w, statusForError(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, stats)
}
