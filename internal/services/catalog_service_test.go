package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/coursehub/progress-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalogService(t *testing.T) {
	courseRepo := &mockCourseRepository{}
	lessonRepo := &mockLessonRepository{}
	progressRepo := &mockProgressRepository{}
	access := &mockAccessChecker{}

	svc := NewCatalogService(courseRepo, lessonRepo, progressRepo, access)

	assert.NotNil(t, svc)
	assert.Equal(t, courseRepo, svc.courseRepo)
	assert.Equal(t, lessonRepo, svc.lessonRepo)
	assert.Equal(t, progressRepo, svc.progressRepo)
	assert.Equal(t, access, svc.access)
}

func TestCatalogService_GetCoursesList(t *testing.T) {
	courses := []models.CourseListItem{
		{ID: 1, Title: "Go Fundamentals", Difficulty: models.DifficultyBeginner, TotalLessons: 10, CompletedLessons: 4},
		{ID: 2, Title: "Advanced SQL", Difficulty: models.DifficultyAdvanced, TotalLessons: 15, CompletedLessons: 0},
	}

	tests := []struct {
		name          string
		page          int
		count         int
		courseRepo    *mockCourseRepository
		expectedError bool
		expectedCount int
	}{
		{
			name:          "success",
			page:          1,
			count:         10,
			courseRepo:    &mockCourseRepository{courses: courses},
			expectedCount: 2,
		},
		{
			name:          "page less than 1 defaults to 1",
			page:          0,
			count:         10,
			courseRepo:    &mockCourseRepository{courses: courses},
			expectedCount: 2,
		},
		{
			name:          "count less than 1 defaults to 10",
			page:          1,
			count:         0,
			courseRepo:    &mockCourseRepository{courses: courses},
			expectedCount: 2,
		},
		{
			name:          "repository error",
			page:          1,
			count:         10,
			courseRepo:    &mockCourseRepository{getAllErr: errors.New("database error")},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewCatalogService(tt.courseRepo, &mockLessonRepository{}, &mockProgressRepository{}, &mockAccessChecker{})

			result, err := svc.GetCoursesList(context.Background(), 1, nil, "", tt.page, tt.count)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Len(t, result, tt.expectedCount)
			}
		})
	}
}

func TestCatalogService_GetCourseDetail(t *testing.T) {
	course := &models.Course{ID: 2, Title: "Go Fundamentals", Difficulty: models.DifficultyBeginner}

	tests := []struct {
		name          string
		courseRepo    *mockCourseRepository
		lessonRepo    *mockLessonRepository
		progressRepo  *mockProgressRepository
		expectedError error
		expectedPct   float64
	}{
		{
			name:         "success",
			courseRepo:   &mockCourseRepository{course: course},
			lessonRepo:   &mockLessonRepository{count: 4},
			progressRepo: &mockProgressRepository{completedCount: 1},
			expectedPct:  25,
		},
		{
			name:          "course not found",
			courseRepo:    &mockCourseRepository{getByIDErr: models.ErrCourseNotFound},
			lessonRepo:    &mockLessonRepository{},
			progressRepo:  &mockProgressRepository{},
			expectedError: models.ErrCourseNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewCatalogService(tt.courseRepo, tt.lessonRepo, tt.progressRepo, &mockAccessChecker{})

			result, err := svc.GetCourseDetail(context.Background(), 1, 2)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, result)
				assert.Equal(t, course.Title, result.Course.Title)
				assert.Equal(t, tt.expectedPct, result.Progress.Percentage)
			}
		})
	}
}

func TestCatalogService_GetLessonsInCourse(t *testing.T) {
	lessons := []models.LessonListItem{
		{ID: 10, Title: "Introduction", Order: 1, Completed: true},
		{ID: 11, Title: "Basics", Order: 2, Completed: false},
	}

	tests := []struct {
		name          string
		courseRepo    *mockCourseRepository
		lessonRepo    *mockLessonRepository
		expectedError error
		expectedCount int
	}{
		{
			name:          "success",
			courseRepo:    &mockCourseRepository{exists: true},
			lessonRepo:    &mockLessonRepository{lessons: lessons},
			expectedCount: 2,
		},
		{
			name:          "course not found",
			courseRepo:    &mockCourseRepository{exists: false},
			lessonRepo:    &mockLessonRepository{},
			expectedError: models.ErrCourseNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewCatalogService(tt.courseRepo, tt.lessonRepo, &mockProgressRepository{}, &mockAccessChecker{})

			result, err := svc.GetLessonsInCourse(context.Background(), 1, 2)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Len(t, result, tt.expectedCount)
			}
		})
	}
}

func TestCatalogService_GetLesson(t *testing.T) {
	videoLesson := &models.Lesson{
		ID:       10,
		CourseID: 2,
		Title:    "Introduction",
		Type:     models.LessonTypeVideo,
		Order:    1,
		Content:  []byte(`{"videoUrl":"https://example.com/v.mp4"}`),
	}

	tests := []struct {
		name          string
		lessonRepo    *mockLessonRepository
		progressRepo  *mockProgressRepository
		access        *mockAccessChecker
		expectedError error
		expectDone    bool
	}{
		{
			name:         "success - video content passes through",
			lessonRepo:   &mockLessonRepository{lesson: videoLesson},
			progressRepo: &mockProgressRepository{},
			access:       &mockAccessChecker{allowed: true},
			expectDone:   false,
		},
		{
			name:       "success - completed flag reflects progress record",
			lessonRepo: &mockLessonRepository{lesson: videoLesson},
			progressRepo: &mockProgressRepository{
				record: &models.ProgressRecord{ID: 1, UserID: 1, LessonID: 10, Completed: true},
			},
			access:     &mockAccessChecker{allowed: true},
			expectDone: true,
		},
		{
			name:          "not enrolled",
			lessonRepo:    &mockLessonRepository{lesson: videoLesson},
			progressRepo:  &mockProgressRepository{},
			access:        &mockAccessChecker{allowed: false},
			expectedError: models.ErrNotEnrolled,
		},
		{
			name:          "lesson not found",
			lessonRepo:    &mockLessonRepository{},
			progressRepo:  &mockProgressRepository{},
			access:        &mockAccessChecker{err: models.ErrLessonNotFound},
			expectedError: models.ErrLessonNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewCatalogService(&mockCourseRepository{}, tt.lessonRepo, tt.progressRepo, tt.access)

			result, err := svc.GetLesson(context.Background(), 1, 10)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, result)
				assert.Equal(t, videoLesson.Title, result.Title)
				assert.Equal(t, tt.expectDone, result.Completed)
				assert.JSONEq(t, string(videoLesson.Content), string(result.Content))
			}
		})
	}
}

func TestCatalogService_GetLesson_SanitizesQuizContent(t *testing.T) {
	content, err := json.Marshal(models.QuizContent{
		Questions: []models.QuizQuestion{
			{Question: "q1", Options: []string{"a", "b"}, CorrectAnswer: 1, Explanation: "because"},
			{Question: "q2", Options: []string{"x", "y", "z"}, CorrectAnswer: 0, Explanation: "obviously"},
		},
	})
	require.NoError(t, err)

	lesson := &models.Lesson{
		ID:       10,
		CourseID: 2,
		Title:    "Quiz",
		Type:     models.LessonTypeQuiz,
		Content:  content,
	}

	svc := NewCatalogService(
		&mockCourseRepository{},
		&mockLessonRepository{lesson: lesson},
		&mockProgressRepository{},
		&mockAccessChecker{allowed: true},
	)

	result, err := svc.GetLesson(context.Background(), 1, 10)

	require.NoError(t, err)
	require.NotNil(t, result)

	var sanitized struct {
		Questions []map[string]any `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(result.Content, &sanitized))
	require.Len(t, sanitized.Questions, 2)
	for _, q := range sanitized.Questions {
		assert.Contains(t, q, "question")
		assert.Contains(t, q, "options")
		assert.NotContains(t, q, "correctAnswer")
		assert.NotContains(t, q, "explanation")
	}
}
