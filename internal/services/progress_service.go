package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/coursehub/progress-service/internal/models"
)

// codeSubmissionScore is recorded for accepted code submissions; this service
// records submissions without grading them.
const codeSubmissionScore = 100

// ProgressRepository defines methods for progress record data access
type ProgressRepository interface {
	// Upsert creates or updates the progress record for (user, lesson).
	// Completed is monotonic: an update never reverts it to false.
	Upsert(ctx context.Context, userID, lessonID int, completed bool, timeSpentSeconds int, quizScore *int) error
	// GetByUserAndLesson retrieves the record for user and lesson, or nil if none exists
	GetByUserAndLesson(ctx context.Context, userID, lessonID int) (*models.ProgressRecord, error)
	// GetByUserAndCourse retrieves the learner's records for a course's lessons
	GetByUserAndCourse(ctx context.Context, userID, courseID int) ([]models.ProgressRecord, error)
	// CountCompletedByCourse counts completed lessons for a user in a course
	CountCompletedByCourse(ctx context.Context, userID, courseID int) (int, error)
	// GetUserTotals retrieves the user's completed lesson count and total time spent in seconds
	GetUserTotals(ctx context.Context, userID int) (int, int, error)
	// GetCompletionDates retrieves the distinct days with at least one
	// completion for the user, most recent first
	GetCompletionDates(ctx context.Context, userID int) ([]time.Time, error)
}

// AccessChecker decides whether a learner may access a lesson
type AccessChecker interface {
	// CanAccess reports whether the user may access the lesson.
	// Returns models.ErrLessonNotFound if the lesson does not exist.
	CanAccess(ctx context.Context, userID, lessonID int) (bool, error)
}

type progressService struct {
	courseRepo   CourseRepository
	lessonRepo   LessonRepository
	progressRepo ProgressRepository
	access       AccessChecker
}

// NewProgressService creates a new progress service
func NewProgressService(
	courseRepo CourseRepository,
	lessonRepo LessonRepository,
	progressRepo ProgressRepository,
	access AccessChecker,
) *progressService {
	return &progressService{
		courseRepo:   courseRepo,
		lessonRepo:   lessonRepo,
		progressRepo: progressRepo,
		access:       access,
	}
}

// MarkComplete records an explicit lesson completion. The record is upserted
// by the (user, lesson) unique key: a repeat submission overwrites time spent
// and score but never reverts completion.
func (s *progressService) MarkComplete(ctx context.Context, userID, lessonID, timeSpentSeconds int, quizScore *int) (*models.ProgressRecord, error) {
	if timeSpentSeconds < 0 {
		return nil, models.ErrInvalidTimeSpent
	}
	if quizScore != nil && (*quizScore < 0 || *quizScore > 100) {
		return nil, models.ErrInvalidQuizScore
	}

	if err := s.requireAccess(ctx, userID, lessonID); err != nil {
		return nil, err
	}

	if err := s.progressRepo.Upsert(ctx, userID, lessonID, true, timeSpentSeconds, quizScore); err != nil {
		return nil, err
	}

	record, err := s.progressRepo.GetByUserAndLesson(ctx, userID, lessonID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("progress record missing after upsert")
	}

	return record, nil
}

// SubmitQuiz scores a quiz submission against the stored answer key and
// records the lesson as complete. The submission must answer every question;
// scoring is always done server-side.
func (s *progressService) SubmitQuiz(ctx context.Context, userID, lessonID int, req *models.SubmitQuizRequest) (*models.QuizSubmissionResult, error) {
	if req.TimeSpentSeconds < 0 {
		return nil, models.ErrInvalidTimeSpent
	}

	if err := s.requireAccess(ctx, userID, lessonID); err != nil {
		return nil, err
	}

	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	content, err := lesson.DecodeQuizContent()
	if err != nil {
		return nil, err
	}

	answers := make(map[int]int, len(req.Answers))
	for _, answer := range req.Answers {
		answers[answer.QuestionIndex] = answer.SelectedOption
	}

	for i := range content.Questions {
		if _, ok := answers[i]; !ok {
			return nil, fmt.Errorf("%w: question %d is unanswered", models.ErrIncompleteSubmission, i)
		}
	}

	score := ScoreQuiz(content.Questions, answers)

	if err := s.progressRepo.Upsert(ctx, userID, lessonID, true, req.TimeSpentSeconds, &score.Score); err != nil {
		return nil, err
	}

	result := &models.QuizSubmissionResult{
		QuizScore: score,
		Results:   make([]models.QuizQuestionResult, 0, len(content.Questions)),
	}
	for i, question := range content.Questions {
		selected := answers[i]
		result.Results = append(result.Results, models.QuizQuestionResult{
			QuestionIndex:  i,
			SelectedOption: selected,
			CorrectAnswer:  question.CorrectAnswer,
			Correct:        selected == question.CorrectAnswer,
			Explanation:    question.Explanation,
		})
	}

	return result, nil
}

// SubmitCode records a code exercise submission. The code is not executed or
// graded; a non-blank submission completes the lesson with a full score.
func (s *progressService) SubmitCode(ctx context.Context, userID, lessonID int, req *models.SubmitCodeRequest) (*models.ProgressRecord, error) {
	if strings.TrimSpace(req.Code) == "" {
		return nil, models.ErrEmptySubmission
	}
	if req.TimeSpentSeconds < 0 {
		return nil, models.ErrInvalidTimeSpent
	}

	if err := s.requireAccess(ctx, userID, lessonID); err != nil {
		return nil, err
	}

	score := codeSubmissionScore
	if err := s.progressRepo.Upsert(ctx, userID, lessonID, true, req.TimeSpentSeconds, &score); err != nil {
		return nil, err
	}

	record, err := s.progressRepo.GetByUserAndLesson(ctx, userID, lessonID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("progress record missing after upsert")
	}

	return record, nil
}

// GetCourseProgress derives the learner's aggregate progress for a course at
// read time; nothing is cached between calls
func (s *progressService) GetCourseProgress(ctx context.Context, userID, courseID int) (*models.AggregateProgress, error) {
	exists, err := s.courseRepo.Exists(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check course: %w", err)
	}
	if !exists {
		return nil, models.ErrCourseNotFound
	}

	total, err := s.lessonRepo.CountByCourseID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	completed, err := s.progressRepo.CountCompletedByCourse(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	progress := newAggregateProgress(completed, total)
	return &progress, nil
}

// GetCourseRecords retrieves the learner's progress records for a course
func (s *progressService) GetCourseRecords(ctx context.Context, userID, courseID int) ([]models.ProgressRecord, error) {
	exists, err := s.courseRepo.Exists(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check course: %w", err)
	}
	if !exists {
		return nil, models.ErrCourseNotFound
	}

	return s.progressRepo.GetByUserAndCourse(ctx, userID, courseID)
}

// requireAccess enforces the enrollment gate for mutations
func (s *progressService) requireAccess(ctx context.Context, userID, lessonID int) error {
	ok, err := s.access.CanAccess(ctx, userID, lessonID)
	if err != nil {
		return err
	}
	if !ok {
		return models.ErrNotEnrolled
	}
	return nil
}

// newAggregateProgress derives course-level progress from completion counts,
// guarding the zero-lesson division
func newAggregateProgress(completed, total int) models.AggregateProgress {
	progress := models.AggregateProgress{
		CompletedCount: completed,
		TotalCount:     total,
	}

	if total > 0 {
		progress.Percentage = float64(completed) / float64(total) * 100
		progress.IsCourseComplete = completed == total
	}

	return progress
}
