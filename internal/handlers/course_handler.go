package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/coursehub/progress-service/internal/auth"
	"github.com/coursehub/progress-service/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CatalogService is the interface that wraps course catalog read operations
type CatalogService interface {
	// GetCoursesList retrieves a paginated list of courses with the learner's
	// completion counts
	GetCoursesList(ctx context.Context, userID int, difficulty *models.Difficulty, search string, page, count int) ([]models.CourseListItem, error)
	// GetCourseDetail retrieves a course with the learner's aggregate progress
	GetCourseDetail(ctx context.Context, userID, courseID int) (*models.CourseDetailResponse, error)
	// GetLessonsInCourse retrieves a course's lessons in sequence order with
	// completion status
	GetLessonsInCourse(ctx context.Context, userID, courseID int) ([]models.LessonListItem, error)
}

// EnrollmentService is the interface that wraps enrollment operations
type EnrollmentService interface {
	// Enroll enrolls the user in a course. Enrolling twice is idempotent
	// success and returns the existing record.
	Enroll(ctx context.Context, userID, courseID int) (*models.Enrollment, error)
	// GetEnrollment retrieves the user's enrollment, or nil if not enrolled
	GetEnrollment(ctx context.Context, userID, courseID int) (*models.Enrollment, error)
}

// ProgressReader is the interface that wraps course progress read operations
type ProgressReader interface {
	// GetCourseProgress derives the learner's aggregate progress for a course
	GetCourseProgress(ctx context.Context, userID, courseID int) (*models.AggregateProgress, error)
	// GetCourseRecords retrieves the learner's progress records for a course
	GetCourseRecords(ctx context.Context, userID, courseID int) ([]models.ProgressRecord, error)
}

// CourseHandler handles HTTP requests for course catalog, enrollment and progress reads
type CourseHandler struct {
	BaseHandler
	catalog    CatalogService
	enrollment EnrollmentService
	progress   ProgressReader
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(catalog CatalogService, enrollment EnrollmentService, progress ProgressReader, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler: BaseHandler{Logger: logger},
		catalog:     catalog,
		enrollment:  enrollment,
		progress:    progress,
	}
}

// RegisterRoutes registers all course handler routes
func (h *CourseHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/courses", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.GetCoursesList)
		r.Get("/{id}", h.GetCourseDetail)
		r.Get("/{id}/lessons", h.GetLessonsInCourse)
		r.Get("/{id}/progress", h.GetCourseProgress)
		r.Post("/{id}/enroll", h.Enroll)
		r.Get("/{id}/enrollment", h.GetEnrollment)
	})
}

// GetCoursesList handles GET /courses
// @Summary Get list of courses
// @Description Get a paginated list of courses with the calling learner's completion counts, optionally filtered by difficulty and title search
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param difficulty query string false "Difficulty level (beginner, intermediate, advanced)"
// @Param search query string false "Search by course title"
// @Param page query int false "Page number (default: 1)"
// @Param count query int false "Items per page (default: 10)"
// @Success 200 {array} models.CourseListItem "List of courses"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses [get]
func (h *CourseHandler) GetCoursesList(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	var difficulty *models.Difficulty
	if difficultyStr := r.URL.Query().Get("difficulty"); difficultyStr != "" {
		level := models.Difficulty(difficultyStr)
		if !level.Valid() {
			h.RespondError(w, http.StatusBadRequest, "invalid difficulty level")
			return
		}
		difficulty = &level
	}

	search := r.URL.Query().Get("search")

	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	count := 10
	if countStr := r.URL.Query().Get("count"); countStr != "" {
		if c, err := strconv.Atoi(countStr); err == nil && c > 0 {
			count = c
		}
	}

	courses, err := h.catalog.GetCoursesList(r.Context(), userID, difficulty, search, page, count)
	if err != nil {
		h.Logger.Error("failed to get courses list", zap.Error(err))
		h.RespondError(w, statusForError(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, courses)
}

// GetCourseDetail handles GET /courses/{id}
// @Summary Get course detail
// @Description Get a course with the calling learner's aggregate progress
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Success 200 {object} models.CourseDetailResponse "Course with progress"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{id} [get]
func (h *CourseHandler) GetCourseDetail(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	courseID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course id")
		return
	}

	detail, err := h.catalog.GetCourseDetail(r.Context(), userID, courseID)
	if err != nil {
		h.Logger.Error("failed to get course detail", zap.Error(err))
		h.RespondError(w, statusForError(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, detail)
}

// GetLessonsInCourse handles GET /courses/{id}/lessons
// @Summary Get lessons in a course
// @Description Get a course's lessons ordered by sequence with the calling learner's completion status. Lesson content is fetched per lesson.
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Success 200 {array} models.LessonListItem "Ordered lessons"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{id}/lessons [get]
func (h *CourseHandler) GetLessonsInCourse(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	courseID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course id")
		return
	}

	lessons, err := h.catalog.GetLessonsInCourse(r.Context(), userID, courseID)
	if err != nil {
		h.Logger.Error("failed to get lessons in course", zap.Error(err))
		h.RespondError(w, statusForError(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, lessons)
}

// GetCourseProgress handles GET /courses/{id}/progress
// @Summary Get course progress
// @Description Get the calling learner's aggregate progress and per-lesson records for a course. Derived at read time, never cached.
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Success 200 {object} models.CourseProgressResponse "Aggregate progress with records"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{id}/progress [get]
func (h *CourseHandler) GetCourseProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	courseID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course id")
		return
	}

	progress, err := h.progress.GetCourseProgress(r.Context(), userID, courseID)
	if err != nil {
		h.Logger.Error("failed to get course progress", zap.Error(err))
		h.RespondError(w, statusForError(err), err.Error())
		return
	}

	records, err := h.progress.GetCourseRecords(r.Context(), userID, courseID)
	if err != nil {
		h.Logger.Error("failed to get course records", zap.Error(err))
		h.RespondError(w, statusForError(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, models.CourseProgressResponse{
		Progress: *progress,
		Records:  records,
	})
}

// Enroll handles POST /courses/{id}/enroll
// @Summary Enroll in a course
// @Description Enroll the calling learner in a course. Enrolling twice returns the existing enrollment without error.
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Success 200 {object} models.Enrollment "Enrollment record"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{id}/enroll [post]
func (h *CourseHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	courseID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course id")
		return
	}

	enrollment, err := h.enrollment.Enroll(r.Context(), userID, courseID)
	if err != nil {
		h.Logger.Error("failed to enroll", zap.Error(err))
		h.RespondError(w, statusForError(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, enrollment)
}

// GetEnrollment handles GET /courses/{id}/enrollment
// @Summary Get enrollment
// @Description Get the calling learner's enrollment for a course, or null if not enrolled
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Success 200 {object} models.Enrollment "Enrollment record or null"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{id}/enrollment [get]
func (h *CourseHandler) GetEnrollment(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	courseID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course id")
		return
	}

	enrollment, err := h.enrollment.GetEnrollment(r.Context(), userID, courseID)
	if err != nil {
		h.Logger.Error("failed to get enrollment", zap.Error(err))
		h.RespondError(w, statusForError(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, enrollment)
}
