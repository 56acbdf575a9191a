package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/coursehub/progress-service/internal/auth"
	"github.com/coursehub/progress-service/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LessonReader is the interface that wraps gated lesson reads
type LessonReader interface {
	// GetLesson retrieves a lesson with content for an authorized learner.
	// Returns models.ErrNotEnrolled for non-preview lessons without enrollment.
	GetLesson(ctx context.Context, userID, lessonID int) (*models.LessonResponse, error)
}

// ProgressService is the interface that wraps lesson completion and submission operations
type ProgressService interface {
	// MarkComplete records an explicit lesson completion
	MarkComplete(ctx context.Context, userID, lessonID, timeSpentSeconds int, quizScore *int) (*models.ProgressRecord, error)
	// SubmitQuiz scores a quiz submission server-side and records completion
	SubmitQuiz(ctx context.Context, userID, lessonID int, req *models.SubmitQuizRequest) (*models.QuizSubmissionResult, error)
	// SubmitCode records a code exercise submission and completion
	SubmitCode(ctx context.Context, userID, lessonID int, req *models.SubmitCodeRequest) (*models.ProgressRecord, error)
}

// LessonHandler handles HTTP requests for lesson content and submissions
type LessonHandler struct {
	BaseHandler
	lessons  LessonReader
	progress ProgressService
}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler(lessons LessonReader, progress ProgressService, logger *zap.Logger) *LessonHandler {
	return &LessonHandler{
		BaseHandler: BaseHandler{Logger: logger},
		lessons:     lessons,
		progress:    progress,
	}
}

// RegisterRoutes registers all lesson handler routes
func (h *LessonHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/lessons", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/{id}", h.GetLesson)
		r.Post("/{id}/complete", h.MarkComplete)
		r.Post("/{id}/quiz", h.SubmitQuiz)
		r.Post("/{id}/code", h.SubmitCode)
	})
}

// GetLesson handles GET /lessons/{id}
// @Summary Get lesson
// @Description Get a lesson with its content. Non-preview lessons require enrollment. Quiz answer keys are never included.
// @Tags lessons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Lesson ID"
// @Success 200 {object} models.LessonResponse "Lesson with content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not enrolled"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons/{id} [get]
func (h *LessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	lessonID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson id")
		return
	}

	lesson, err := h.lessons.GetLesson(r.Context(), userID, lessonID)
	if err != nil {
		h.Logger.Error("failed to get lesson", zap.Error(err))
		h.RespondError(w, statusForError(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, lesson)
}

// MarkComplete handles POST /lessons/{id}/complete
// @Summary Mark lesson complete
// @Description Record an explicit lesson completion for the calling learner. Repeating the call overwrites time spent and score but never reverts completion.
// @Tags lessons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Lesson ID"
// @Param request body models.MarkCompleteRequest true "Completion details"
// @Success 200 {object} models.ProgressRecord "Progress record"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not enrolled"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons/{id}/complete [post]
func (h *LessonHandler) MarkComplete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	lessonID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson id")
		return
	}

	var req models.MarkCompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.progress.MarkComplete(r.Context(), userID, lessonID, req.TimeSpentSeconds, req.QuizScore)
	if err != nil {
		h.Logger.Error("failed to mark lesson complete", zap.Error(err))
		h.RespondError(w, statusForError(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, record)
}

// SubmitQuiz handles POST /lessons/{id}/quiz
// @Summary Submit quiz answers
// @Description Score a quiz submission against the stored answer key and record completion. Every question must be answered; the score is always computed server-side.
// @Tags lessons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Lesson ID"
// @Param request body models.SubmitQuizRequest true "Selected options per question"
// @Success 200 {object} models.QuizSubmissionResult "Score with per-question results"
// @Failure 400 {object} map[string]string "Bad request - incomplete submission"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not enrolled"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error - invalid quiz definition"
// @Router /lessons/{id}/quiz [post]
func (h *LessonHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	lessonID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson id")
		return
	}

	var req models.SubmitQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.progress.SubmitQuiz(r.Context(), userID, lessonID, &req)
	if err != nil {
		h.Logger.Error("failed to submit quiz", zap.Error(err))
		h.RespondError(w, statusForError(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}

// SubmitCode handles POST /lessons/{id}/code
// @Summary Submit code exercise
// @Description Record a code exercise submission for the calling learner. The code is not executed; a non-blank submission completes the lesson.
// @Tags lessons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Lesson ID"
// @Param request body models.SubmitCodeRequest true "Submitted code"
// @Success 200 {object} models.ProgressRecord "Progress record"
// @Failure 400 {object} map[string]string "Bad request - empty submission"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not enrolled"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons/{id}/code [post]
func (h *LessonHandler) SubmitCode(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	lessonID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson id")
		return
	}

	var req models.SubmitCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.progress.SubmitCode(r.Context(), userID, lessonID, &req)
	if err != nil {
		h.Logger.Error("failed to submit code", zap.Error(err))
		h.RespondError(w, statusForError(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, record)
}
