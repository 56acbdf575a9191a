package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/coursehub/progress-service/internal/models"
)

type catalogService struct {
	courseRepo   CourseRepository
	lessonRepo   LessonRepository
	progressRepo ProgressRepository
	access       AccessChecker
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	courseRepo CourseRepository,
	lessonRepo LessonRepository,
	progressRepo ProgressRepository,
	access AccessChecker,
) *catalogService {
	return &catalogService{
		courseRepo:   courseRepo,
		lessonRepo:   lessonRepo,
		progressRepo: progressRepo,
		access:       access,
	}
}

// GetCoursesList retrieves a list of courses with the learner's completion counts
func (s *catalogService) GetCoursesList(ctx context.Context, userID int, difficulty *models.Difficulty, search string, page, count int) ([]models.CourseListItem, error) {
	if page < 1 {
		page = 1
	}
	if count < 1 {
		count = 10
	}

	return s.courseRepo.GetAll(ctx, userID, difficulty, search, page, count)
}

// GetCourseDetail retrieves a course together with the learner's aggregate progress
func (s *catalogService) GetCourseDetail(ctx context.Context, userID, courseID int) (*models.CourseDetailResponse, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	total, err := s.lessonRepo.CountByCourseID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	completed, err := s.progressRepo.CountCompletedByCourse(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	return &models.CourseDetailResponse{
		Course:   *course,
		Progress: newAggregateProgress(completed, total),
	}, nil
}

// GetLessonsInCourse retrieves a course's lessons in sequence order with
// completion status. Content is not included; it is fetched per lesson
// through the enrollment gate.
func (s *catalogService) GetLessonsInCourse(ctx context.Context, userID, courseID int) ([]models.LessonListItem, error) {
	exists, err := s.courseRepo.Exists(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check course: %w", err)
	}
	if !exists {
		return nil, models.ErrCourseNotFound
	}

	return s.lessonRepo.GetByCourseIDWithCompletion(ctx, courseID, userID)
}

// GetLesson retrieves a full lesson with its content for an authorized
// learner. Quiz answer keys and explanations are stripped; they are only
// revealed through a submission result.
func (s *catalogService) GetLesson(ctx context.Context, userID, lessonID int) (*models.LessonResponse, error) {
	ok, err := s.access.CanAccess(ctx, userID, lessonID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.ErrNotEnrolled
	}

	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	content := lesson.Content
	if lesson.Type == models.LessonTypeQuiz {
		content, err = sanitizeQuizContent(lesson)
		if err != nil {
			return nil, err
		}
	}

	record, err := s.progressRepo.GetByUserAndLesson(ctx, userID, lessonID)
	if err != nil {
		return nil, err
	}

	return &models.LessonResponse{
		ID:              lesson.ID,
		CourseID:        lesson.CourseID,
		Title:           lesson.Title,
		Description:     lesson.Description,
		Type:            lesson.Type,
		Order:           lesson.Order,
		DurationMinutes: lesson.DurationMinutes,
		IsPreview:       lesson.IsPreview,
		Content:         content,
		Completed:       record != nil && record.Completed,
	}, nil
}

// sanitizedQuizQuestion is a quiz question as shown to the learner before
// submission: no answer key, no explanation
type sanitizedQuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

func sanitizeQuizContent(lesson *models.Lesson) (json.RawMessage, error) {
	content, err := lesson.DecodeQuizContent()
	if err != nil {
		return nil, err
	}

	questions := make([]sanitizedQuizQuestion, 0, len(content.Questions))
	for _, q := range content.Questions {
		questions = append(questions, sanitizedQuizQuestion{
			Question: q.Question,
			Options:  q.Options,
		})
	}

	sanitized, err := json.Marshal(map[string]any{"questions": questions})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal quiz content: %w", err)
	}

	return sanitized, nil
}
