package services

import (
	"context"
	"fmt"

	"github.com/coursehub/progress-service/internal/models"
)

// CourseRepository defines methods for course data access
type CourseRepository interface {
	// GetByID retrieves a course by ID
	//
	// Returns models.ErrCourseNotFound if no course exists with the given ID.
	GetByID(ctx context.Context, id int) (*models.Course, error)
	// GetAll retrieves a list of courses with the learner's completion counts,
	// optional difficulty and title filters, and pagination
	GetAll(ctx context.Context, userID int, difficulty *models.Difficulty, search string, page, count int) ([]models.CourseListItem, error)
	// Exists checks if a course with the given ID exists
	Exists(ctx context.Context, id int) (bool, error)
}

// LessonRepository defines methods for lesson data access
type LessonRepository interface {
	// GetByID retrieves a lesson by ID, including its content payload
	//
	// Returns models.ErrLessonNotFound if no lesson exists with the given ID.
	GetByID(ctx context.Context, id int) (*models.Lesson, error)
	// GetByCourseIDWithCompletion retrieves a course's lessons in sequence
	// order with the learner's completion status
	GetByCourseIDWithCompletion(ctx context.Context, courseID, userID int) ([]models.LessonListItem, error)
	// CountByCourseID counts the lessons in a course
	CountByCourseID(ctx context.Context, courseID int) (int, error)
}

// EnrollmentRepository defines methods for enrollment data access
type EnrollmentRepository interface {
	// Exists checks if an enrollment record exists for user and course
	Exists(ctx context.Context, userID, courseID int) (bool, error)
	// Get retrieves the enrollment for user and course, or nil if none exists
	Get(ctx context.Context, userID, courseID int) (*models.Enrollment, error)
	// CreateIgnore inserts an enrollment unless one already exists.
	// The unique (user_id, course_id) key makes concurrent calls safe.
	CreateIgnore(ctx context.Context, userID, courseID int) error
	// CountByUser counts enrollments for a user
	CountByUser(ctx context.Context, userID int) (int, error)
	// GetCourseIDsByUser retrieves the IDs of all courses a user is enrolled in
	GetCourseIDsByUser(ctx context.Context, userID int) ([]int, error)
}

type enrollmentService struct {
	courseRepo     CourseRepository
	lessonRepo     LessonRepository
	enrollmentRepo EnrollmentRepository
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(
	courseRepo CourseRepository,
	lessonRepo LessonRepository,
	enrollmentRepo EnrollmentRepository,
) *enrollmentService {
	return &enrollmentService{
		courseRepo:     courseRepo,
		lessonRepo:     lessonRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// Enroll creates an enrollment for the user in the course. Enrolling is
// idempotent: a duplicate call returns the existing record without error, so
// a retried request never surfaces as a user-facing failure.
func (s *enrollmentService) Enroll(ctx context.Context, userID, courseID int) (*models.Enrollment, error) {
	exists, err := s.courseRepo.Exists(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check course: %w", err)
	}
	if !exists {
		return nil, models.ErrCourseNotFound
	}

	if err := s.enrollmentRepo.CreateIgnore(ctx, userID, courseID); err != nil {
		return nil, fmt.Errorf("failed to enroll: %w", err)
	}

	// Re-read to return the canonical record whether we inserted it or lost
	// the race to a concurrent duplicate call.
	enrollment, err := s.enrollmentRepo.Get(ctx, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}
	if enrollment == nil {
		return nil, fmt.Errorf("enrollment missing after create")
	}

	return enrollment, nil
}

// GetEnrollment retrieves the user's enrollment for a course, or nil if not enrolled
func (s *enrollmentService) GetEnrollment(ctx context.Context, userID, courseID int) (*models.Enrollment, error) {
	exists, err := s.courseRepo.Exists(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check course: %w", err)
	}
	if !exists {
		return nil, models.ErrCourseNotFound
	}

	return s.enrollmentRepo.Get(ctx, userID, courseID)
}

// CanAccess reports whether the user may access a lesson: preview lessons are
// open to everyone, all others require an enrollment in the lesson's course
func (s *enrollmentService) CanAccess(ctx context.Context, userID, lessonID int) (bool, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return false, err
	}

	if lesson.IsPreview {
		return true, nil
	}

	enrolled, err := s.enrollmentRepo.Exists(ctx, userID, lesson.CourseID)
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}

	return enrolled, nil
}
