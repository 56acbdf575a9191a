package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/coursehub/progress-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quizLesson(t *testing.T, id int, questions []models.QuizQuestion) *models.Lesson {
	t.Helper()
	content, err := json.Marshal(models.QuizContent{Questions: questions})
	require.NoError(t, err)
	return &models.Lesson{
		ID:       id,
		CourseID: 2,
		Title:    "Quiz",
		Type:     models.LessonTypeQuiz,
		Content:  content,
	}
}

func TestNewProgressService(t *testing.T) {
	courseRepo := &mockCourseRepository{}
	lessonRepo := &mockLessonRepository{}
	progressRepo := &mockProgressRepository{}
	access := &mockAccessChecker{}

	svc := NewProgressService(courseRepo, lessonRepo, progressRepo, access)

	assert.NotNil(t, svc)
	assert.Equal(t, courseRepo, svc.courseRepo)
	assert.Equal(t, lessonRepo, svc.lessonRepo)
	assert.Equal(t, progressRepo, svc.progressRepo)
	assert.Equal(t, access, svc.access)
}

func TestProgressService_MarkComplete(t *testing.T) {
	record := &models.ProgressRecord{ID: 1, UserID: 1, LessonID: 10, Completed: true, TimeSpentSeconds: 300, LastUpdated: time.Now()}
	validScore := 85
	negativeScore := -1
	overScore := 101

	tests := []struct {
		name             string
		timeSpentSeconds int
		quizScore        *int
		progressRepo     *mockProgressRepository
		access           *mockAccessChecker
		expectedError    error
		expectUpsert     bool
	}{
		{
			name:             "success",
			timeSpentSeconds: 300,
			quizScore:        nil,
			progressRepo:     &mockProgressRepository{record: record},
			access:           &mockAccessChecker{allowed: true},
			expectUpsert:     true,
		},
		{
			name:             "success with quiz score",
			timeSpentSeconds: 300,
			quizScore:        &validScore,
			progressRepo:     &mockProgressRepository{record: record},
			access:           &mockAccessChecker{allowed: true},
			expectUpsert:     true,
		},
		{
			name:             "negative time spent is rejected before any access check",
			timeSpentSeconds: -1,
			progressRepo:     &mockProgressRepository{},
			access:           &mockAccessChecker{allowed: true},
			expectedError:    models.ErrInvalidTimeSpent,
			expectUpsert:     false,
		},
		{
			name:             "negative quiz score is rejected",
			timeSpentSeconds: 300,
			quizScore:        &negativeScore,
			progressRepo:     &mockProgressRepository{},
			access:           &mockAccessChecker{allowed: true},
			expectedError:    models.ErrInvalidQuizScore,
			expectUpsert:     false,
		},
		{
			name:             "quiz score above 100 is rejected",
			timeSpentSeconds: 300,
			quizScore:        &overScore,
			progressRepo:     &mockProgressRepository{},
			access:           &mockAccessChecker{allowed: true},
			expectedError:    models.ErrInvalidQuizScore,
			expectUpsert:     false,
		},
		{
			name:             "not enrolled",
			timeSpentSeconds: 300,
			progressRepo:     &mockProgressRepository{},
			access:           &mockAccessChecker{allowed: false},
			expectedError:    models.ErrNotEnrolled,
			expectUpsert:     false,
		},
		{
			name:             "lesson not found",
			timeSpentSeconds: 300,
			progressRepo:     &mockProgressRepository{},
			access:           &mockAccessChecker{err: models.ErrLessonNotFound},
			expectedError:    models.ErrLessonNotFound,
			expectUpsert:     false,
		},
		{
			name:             "upsert error",
			timeSpentSeconds: 300,
			progressRepo:     &mockProgressRepository{upsertErr: errors.New("database error")},
			access:           &mockAccessChecker{allowed: true},
			expectUpsert:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewProgressService(&mockCourseRepository{}, &mockLessonRepository{}, tt.progressRepo, tt.access)

			result, err := svc.MarkComplete(context.Background(), 1, 10, tt.timeSpentSeconds, tt.quizScore)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			} else if tt.progressRepo.upsertErr != nil {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, result)
				assert.True(t, result.Completed)
			}
			assert.Equal(t, tt.expectUpsert, tt.progressRepo.upsertCalled)
			if tt.expectUpsert {
				assert.True(t, tt.progressRepo.upsertCompleted)
			}
		})
	}
}

func TestProgressService_SubmitQuiz(t *testing.T) {
	questions := []models.QuizQuestion{
		{Question: "q1", Options: []string{"a", "b"}, CorrectAnswer: 0, Explanation: "first"},
		{Question: "q2", Options: []string{"a", "b"}, CorrectAnswer: 1, Explanation: "second"},
		{Question: "q3", Options: []string{"a", "b"}, CorrectAnswer: 1, Explanation: "third"},
	}

	tests := []struct {
		name            string
		req             *models.SubmitQuizRequest
		lessonRepo      *mockLessonRepository
		access          *mockAccessChecker
		expectedError   error
		expectedScore   int
		expectedCorrect int
		expectUpsert    bool
	}{
		{
			name: "success - all correct",
			req: &models.SubmitQuizRequest{
				Answers: []models.QuizAnswer{
					{QuestionIndex: 0, SelectedOption: 0},
					{QuestionIndex: 1, SelectedOption: 1},
					{QuestionIndex: 2, SelectedOption: 1},
				},
				TimeSpentSeconds: 120,
			},
			access:          &mockAccessChecker{allowed: true},
			expectedScore:   100,
			expectedCorrect: 3,
			expectUpsert:    true,
		},
		{
			name: "success - two of three rounds to 67",
			req: &models.SubmitQuizRequest{
				Answers: []models.QuizAnswer{
					{QuestionIndex: 0, SelectedOption: 0},
					{QuestionIndex: 1, SelectedOption: 1},
					{QuestionIndex: 2, SelectedOption: 0},
				},
				TimeSpentSeconds: 120,
			},
			access:          &mockAccessChecker{allowed: true},
			expectedScore:   67,
			expectedCorrect: 2,
			expectUpsert:    true,
		},
		{
			name: "incomplete submission is rejected without mutation",
			req: &models.SubmitQuizRequest{
				Answers: []models.QuizAnswer{
					{QuestionIndex: 0, SelectedOption: 0},
				},
				TimeSpentSeconds: 120,
			},
			access:        &mockAccessChecker{allowed: true},
			expectedError: models.ErrIncompleteSubmission,
			expectUpsert:  false,
		},
		{
			name: "negative time spent",
			req: &models.SubmitQuizRequest{
				Answers:          []models.QuizAnswer{{QuestionIndex: 0, SelectedOption: 0}},
				TimeSpentSeconds: -5,
			},
			access:        &mockAccessChecker{allowed: true},
			expectedError: models.ErrInvalidTimeSpent,
			expectUpsert:  false,
		},
		{
			name: "not enrolled",
			req: &models.SubmitQuizRequest{
				Answers:          []models.QuizAnswer{{QuestionIndex: 0, SelectedOption: 0}},
				TimeSpentSeconds: 120,
			},
			access:        &mockAccessChecker{allowed: false},
			expectedError: models.ErrNotEnrolled,
			expectUpsert:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lessonRepo := tt.lessonRepo
			if lessonRepo == nil {
				lessonRepo = &mockLessonRepository{lesson: quizLesson(t, 10, questions)}
			}
			progressRepo := &mockProgressRepository{}
			svc := NewProgressService(&mockCourseRepository{}, lessonRepo, progressRepo, tt.access)

			result, err := svc.SubmitQuiz(context.Background(), 1, 10, tt.req)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, result)
				assert.Equal(t, tt.expectedScore, result.Score)
				assert.Equal(t, tt.expectedCorrect, result.CorrectCount)
				assert.Equal(t, len(questions), result.TotalCount)
				assert.Len(t, result.Results, len(questions))
				// the submission result reveals the answer key
				assert.Equal(t, 0, result.Results[0].CorrectAnswer)
				assert.Equal(t, "first", result.Results[0].Explanation)
			}
			assert.Equal(t, tt.expectUpsert, progressRepo.upsertCalled)
			if tt.expectUpsert {
				assert.True(t, progressRepo.upsertCompleted)
				require.NotNil(t, progressRepo.upsertQuizScore)
				assert.Equal(t, tt.expectedScore, *progressRepo.upsertQuizScore)
			}
		})
	}
}

func TestProgressService_SubmitQuiz_InvalidDefinition(t *testing.T) {
	tests := []struct {
		name   string
		lesson *models.Lesson
	}{
		{
			name:   "not a quiz lesson",
			lesson: &models.Lesson{ID: 10, CourseID: 2, Type: models.LessonTypeVideo, Content: []byte(`{"videoUrl":"https://example.com/v.mp4"}`)},
		},
		{
			name:   "malformed content",
			lesson: &models.Lesson{ID: 10, CourseID: 2, Type: models.LessonTypeQuiz, Content: []byte(`{not json`)},
		},
		{
			name:   "empty question list",
			lesson: &models.Lesson{ID: 10, CourseID: 2, Type: models.LessonTypeQuiz, Content: []byte(`{"questions":[]}`)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progressRepo := &mockProgressRepository{}
			svc := NewProgressService(
				&mockCourseRepository{},
				&mockLessonRepository{lesson: tt.lesson},
				progressRepo,
				&mockAccessChecker{allowed: true},
			)

			result, err := svc.SubmitQuiz(context.Background(), 1, 10, &models.SubmitQuizRequest{
				Answers:          []models.QuizAnswer{{QuestionIndex: 0, SelectedOption: 0}},
				TimeSpentSeconds: 60,
			})

			assert.ErrorIs(t, err, models.ErrInvalidQuizDefinition)
			assert.Nil(t, result)
			assert.False(t, progressRepo.upsertCalled)
		})
	}
}

func TestProgressService_SubmitCode(t *testing.T) {
	record := &models.ProgressRecord{ID: 1, UserID: 1, LessonID: 10, Completed: true, TimeSpentSeconds: 600}

	tests := []struct {
		name          string
		req           *models.SubmitCodeRequest
		access        *mockAccessChecker
		expectedError error
		expectUpsert  bool
	}{
		{
			name:         "success",
			req:          &models.SubmitCodeRequest{Code: "package main\n\nfunc main() {}\n", TimeSpentSeconds: 600},
			access:       &mockAccessChecker{allowed: true},
			expectUpsert: true,
		},
		{
			name:          "empty code is rejected without mutation",
			req:           &models.SubmitCodeRequest{Code: "", TimeSpentSeconds: 600},
			access:        &mockAccessChecker{allowed: true},
			expectedError: models.ErrEmptySubmission,
			expectUpsert:  false,
		},
		{
			name:          "whitespace-only code is rejected",
			req:           &models.SubmitCodeRequest{Code: "   \n\t  ", TimeSpentSeconds: 600},
			access:        &mockAccessChecker{allowed: true},
			expectedError: models.ErrEmptySubmission,
			expectUpsert:  false,
		},
		{
			name:          "negative time spent",
			req:           &models.SubmitCodeRequest{Code: "fmt.Println(42)", TimeSpentSeconds: -1},
			access:        &mockAccessChecker{allowed: true},
			expectedError: models.ErrInvalidTimeSpent,
			expectUpsert:  false,
		},
		{
			name:          "not enrolled",
			req:           &models.SubmitCodeRequest{Code: "fmt.Println(42)", TimeSpentSeconds: 600},
			access:        &mockAccessChecker{allowed: false},
			expectedError: models.ErrNotEnrolled,
			expectUpsert:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progressRepo := &mockProgressRepository{record: record}
			svc := NewProgressService(&mockCourseRepository{}, &mockLessonRepository{}, progressRepo, tt.access)

			result, err := svc.SubmitCode(context.Background(), 1, 10, tt.req)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, result)
				assert.True(t, result.Completed)
			}
			assert.Equal(t, tt.expectUpsert, progressRepo.upsertCalled)
			if tt.expectUpsert {
				assert.True(t, progressRepo.upsertCompleted)
				require.NotNil(t, progressRepo.upsertQuizScore)
				assert.Equal(t, codeSubmissionScore, *progressRepo.upsertQuizScore)
			}
		})
	}
}

func TestProgressService_GetCourseProgress(t *testing.T) {
	tests := []struct {
		name             string
		courseRepo       *mockCourseRepository
		lessonRepo       *mockLessonRepository
		progressRepo     *mockProgressRepository
		expectedError    error
		expectedProgress models.AggregateProgress
	}{
		{
			name:         "one of three lessons complete",
			courseRepo:   &mockCourseRepository{exists: true},
			lessonRepo:   &mockLessonRepository{count: 3},
			progressRepo: &mockProgressRepository{completedCount: 1},
			expectedProgress: models.AggregateProgress{
				CompletedCount:   1,
				TotalCount:       3,
				Percentage:       float64(1) / float64(3) * 100,
				IsCourseComplete: false,
			},
		},
		{
			name:         "all lessons complete",
			courseRepo:   &mockCourseRepository{exists: true},
			lessonRepo:   &mockLessonRepository{count: 3},
			progressRepo: &mockProgressRepository{completedCount: 3},
			expectedProgress: models.AggregateProgress{
				CompletedCount:   3,
				TotalCount:       3,
				Percentage:       100,
				IsCourseComplete: true,
			},
		},
		{
			name:         "course with no lessons is never complete",
			courseRepo:   &mockCourseRepository{exists: true},
			lessonRepo:   &mockLessonRepository{count: 0},
			progressRepo: &mockProgressRepository{completedCount: 0},
			expectedProgress: models.AggregateProgress{
				CompletedCount:   0,
				TotalCount:       0,
				Percentage:       0,
				IsCourseComplete: false,
			},
		},
		{
			name:          "course not found",
			courseRepo:    &mockCourseRepository{exists: false},
			lessonRepo:    &mockLessonRepository{},
			progressRepo:  &mockProgressRepository{},
			expectedError: models.ErrCourseNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewProgressService(tt.courseRepo, tt.lessonRepo, tt.progressRepo, &mockAccessChecker{})

			result, err := svc.GetCourseProgress(context.Background(), 1, 2)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, result)
				assert.Equal(t, tt.expectedProgress, *result)
			}
		})
	}
}

func TestProgressService_GetCourseRecords(t *testing.T) {
	records := []models.ProgressRecord{
		{ID: 1, UserID: 1, LessonID: 10, Completed: true},
		{ID: 2, UserID: 1, LessonID: 11, Completed: false},
	}

	tests := []struct {
		name          string
		courseRepo    *mockCourseRepository
		progressRepo  *mockProgressRepository
		expectedError error
		expectedCount int
	}{
		{
			name:          "success",
			courseRepo:    &mockCourseRepository{exists: true},
			progressRepo:  &mockProgressRepository{records: records},
			expectedCount: 2,
		},
		{
			name:          "success - no records yet",
			courseRepo:    &mockCourseRepository{exists: true},
			progressRepo:  &mockProgressRepository{},
			expectedCount: 0,
		},
		{
			name:          "course not found",
			courseRepo:    &mockCourseRepository{exists: false},
			progressRepo:  &mockProgressRepository{},
			expectedError: models.ErrCourseNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewProgressService(tt.courseRepo, &mockLessonRepository{}, tt.progressRepo, &mockAccessChecker{})

			result, err := svc.GetCourseRecords(context.Background(), 1, 2)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Len(t, result, tt.expectedCount)
			}
		})
	}
}
