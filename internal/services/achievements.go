package services

import "github.com/coursehub/progress-service/internal/models"

// achievementRule pairs a badge with its predicate. Rules are pure and
// order-independent; adding a badge means adding a row here.
type achievementRule struct {
	Title       string
	Description string
	Earned      func(stats models.LearnerStats, aggregates []models.AggregateProgress) bool
}

var achievementRules = []achievementRule{
	{
		Title:       "First Course Completed",
		Description: "Completed your first course",
		Earned: func(_ models.LearnerStats, aggregates []models.AggregateProgress) bool {
			for _, aggregate := range aggregates {
				if aggregate.IsCourseComplete {
					return true
				}
			}
			return false
		},
	},
	{
		Title:       "Quick Learner",
		Description: "Completed 5 lessons",
		Earned: func(stats models.LearnerStats, _ []models.AggregateProgress) bool {
			return stats.TotalLessonsCompleted >= 5
		},
	},
	{
		Title:       "Consistent Learner",
		Description: "Learned for 7 days straight",
		Earned: func(stats models.LearnerStats, _ []models.AggregateProgress) bool {
			return stats.CurrentStreak >= 7
		},
	},
	{
		Title:       "Code Master",
		Description: "Completed 10 lessons",
		Earned: func(stats models.LearnerStats, _ []models.AggregateProgress) bool {
			return stats.TotalLessonsCompleted >= 10
		},
	},
}

// EvaluateAchievements evaluates every rule against the learner's stats and
// course aggregates. The full list is returned with earned flags; filtering
// is left to presentation.
func EvaluateAchievements(stats models.LearnerStats, aggregates []models.AggregateProgress) []models.Achievement {
	achievements := make([]models.Achievement, 0, len(achievementRules))
	for _, rule := range achievementRules {
		achievements = append(achievements, models.Achievement{
			Title:       rule.Title,
			Description: rule.Description,
			Earned:      rule.Earned(stats, aggregates),
		})
	}
	return achievements
}
