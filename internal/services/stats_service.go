package services

import (
	"context"
	"fmt"
	"time"

	"github.com/coursehub/progress-service/internal/models"
)

type statsService struct {
	enrollmentRepo EnrollmentRepository
	lessonRepo     LessonRepository
	progressRepo   ProgressRepository
	now            func() time.Time
}

// NewStatsService creates a new stats service
func NewStatsService(
	enrollmentRepo EnrollmentRepository,
	lessonRepo LessonRepository,
	progressRepo ProgressRepository,
) *statsService {
	return &statsService{
		enrollmentRepo: enrollmentRepo,
		lessonRepo:     lessonRepo,
		progressRepo:   progressRepo,
		now:            time.Now,
	}
}

// GetStats derives the learner's dashboard statistics and achievement flags.
// Everything is recomputed on each call; nothing is persisted.
func (s *statsService) GetStats(ctx context.Context, userID int) (*models.StatsResponse, error) {
	enrolled, err := s.enrollmentRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	lessonsCompleted, timeSpentSeconds, err := s.progressRepo.GetUserTotals(ctx, userID)
	if err != nil {
		return nil, err
	}

	dates, err := s.progressRepo.GetCompletionDates(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := models.LearnerStats{
		TotalCoursesEnrolled:  enrolled,
		TotalLessonsCompleted: lessonsCompleted,
		TotalTimeSpentSeconds: timeSpentSeconds,
		CurrentStreak:         currentStreak(dates, s.now()),
	}

	aggregates, err := s.courseAggregates(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.StatsResponse{
		Stats:        stats,
		Achievements: EvaluateAchievements(stats, aggregates),
	}, nil
}

// courseAggregates derives the aggregate progress for every course the user
// is enrolled in
func (s *statsService) courseAggregates(ctx context.Context, userID int) ([]models.AggregateProgress, error) {
	courseIDs, err := s.enrollmentRepo.GetCourseIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	aggregates := make([]models.AggregateProgress, 0, len(courseIDs))
	for _, courseID := range courseIDs {
		total, err := s.lessonRepo.CountByCourseID(ctx, courseID)
		if err != nil {
			return nil, fmt.Errorf("failed to count lessons for course %d: %w", courseID, err)
		}

		completed, err := s.progressRepo.CountCompletedByCourse(ctx, userID, courseID)
		if err != nil {
			return nil, fmt.Errorf("failed to count completions for course %d: %w", courseID, err)
		}

		aggregates = append(aggregates, newAggregateProgress(completed, total))
	}

	return aggregates, nil
}

// currentStreak counts consecutive calendar days with at least one completion
// event. dates must be distinct days ordered most recent first. A streak is
// still alive if its last day is yesterday: the learner has until midnight to
// extend it.
func currentStreak(dates []time.Time, now time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	expected := dateOnly(now)
	if !dateOnly(dates[0]).Equal(expected) {
		expected = expected.AddDate(0, 0, -1)
	}

	streak := 0
	for _, d := range dates {
		if !dateOnly(d).Equal(expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}

	return streak
}

// dateOnly truncates a timestamp to its calendar day
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
