package services

import (
	"context"
	"time"

	"github.com/coursehub/progress-service/internal/models"
)

// mockCourseRepository is a mock implementation of CourseRepository
type mockCourseRepository struct {
	course     *models.Course
	courses    []models.CourseListItem
	exists     bool
	getByIDErr error
	getAllErr  error
	existsErr  error
}

func (m *mockCourseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	if m.getByIDErr != nil {
		return nil, m.getByIDErr
	}
	return m.course, nil
}

func (m *mockCourseRepository) GetAll(ctx context.Context, userID int, difficulty *models.Difficulty, search string, page, count int) ([]models.CourseListItem, error) {
	if m.getAllErr != nil {
		return nil, m.getAllErr
	}
	return m.courses, nil
}

func (m *mockCourseRepository) Exists(ctx context.Context, id int) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.exists, nil
}

// mockLessonRepository is a mock implementation of LessonRepository
type mockLessonRepository struct {
	lesson     *models.Lesson
	lessons    []models.LessonListItem
	count      int
	getByIDErr error
	getErr     error
	countErr   error
}

func (m *mockLessonRepository) GetByID(ctx context.Context, id int) (*models.Lesson, error) {
	if m.getByIDErr != nil {
		return nil, m.getByIDErr
	}
	return m.lesson, nil
}

func (m *mockLessonRepository) GetByCourseIDWithCompletion(ctx context.Context, courseID, userID int) ([]models.LessonListItem, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.lessons, nil
}

func (m *mockLessonRepository) CountByCourseID(ctx context.Context, courseID int) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.count, nil
}

// mockEnrollmentRepository is a mock implementation of EnrollmentRepository
type mockEnrollmentRepository struct {
	exists       bool
	enrollment   *models.Enrollment
	count        int
	courseIDs    []int
	existsErr    error
	getErr       error
	createErr    error
	countErr     error
	courseIDsErr error
	createCalled bool
}

func (m *mockEnrollmentRepository) Exists(ctx context.Context, userID, courseID int) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.exists, nil
}

func (m *mockEnrollmentRepository) Get(ctx context.Context, userID, courseID int) (*models.Enrollment, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.enrollment, nil
}

func (m *mockEnrollmentRepository) CreateIgnore(ctx context.Context, userID, courseID int) error {
	m.createCalled = true
	return m.createErr
}

func (m *mockEnrollmentRepository) CountByUser(ctx context.Context, userID int) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.count, nil
}

func (m *mockEnrollmentRepository) GetCourseIDsByUser(ctx context.Context, userID int) ([]int, error) {
	if m.courseIDsErr != nil {
		return nil, m.courseIDsErr
	}
	return m.courseIDs, nil
}

// mockProgressRepository is a mock implementation of ProgressRepository.
// Upsert arguments are captured so tests can assert what was persisted.
type mockProgressRepository struct {
	record           *models.ProgressRecord
	records          []models.ProgressRecord
	completedCount   int
	lessonsCompleted int
	timeSpentSeconds int
	dates            []time.Time
	upsertErr        error
	getErr           error
	getByCourseErr   error
	countErr         error
	totalsErr        error
	datesErr         error

	upsertCalled    bool
	upsertCompleted bool
	upsertTimeSpent int
	upsertQuizScore *int
}

func (m *mockProgressRepository) Upsert(ctx context.Context, userID, lessonID int, completed bool, timeSpentSeconds int, quizScore *int) error {
	m.upsertCalled = true
	m.upsertCompleted = completed
	m.upsertTimeSpent = timeSpentSeconds
	m.upsertQuizScore = quizScore
	return m.upsertErr
}

func (m *mockProgressRepository) GetByUserAndLesson(ctx context.Context, userID, lessonID int) (*models.ProgressRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.record, nil
}

func (m *mockProgressRepository) GetByUserAndCourse(ctx context.Context, userID, courseID int) ([]models.ProgressRecord, error) {
	if m.getByCourseErr != nil {
		return nil, m.getByCourseErr
	}
	return m.records, nil
}

func (m *mockProgressRepository) CountCompletedByCourse(ctx context.Context, userID, courseID int) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.completedCount, nil
}

func (m *mockProgressRepository) GetUserTotals(ctx context.Context, userID int) (int, int, error) {
	if m.totalsErr != nil {
		return 0, 0, m.totalsErr
	}
	return m.lessonsCompleted, m.timeSpentSeconds, nil
}

func (m *mockProgressRepository) GetCompletionDates(ctx context.Context, userID int) ([]time.Time, error) {
	if m.datesErr != nil {
		return nil, m.datesErr
	}
	return m.dates, nil
}

// mockAccessChecker is a mock implementation of AccessChecker
type mockAccessChecker struct {
	allowed bool
	err     error
}

func (m *mockAccessChecker) CanAccess(ctx context.Context, userID, lessonID int) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.allowed, nil
}
