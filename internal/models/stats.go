package models

// LearnerStats is derived from enrollments and progress records on read
type LearnerStats struct {
	TotalCoursesEnrolled  int `json:"totalCoursesEnrolled"`
	TotalLessonsCompleted int `json:"totalLessonsCompleted"`
	TotalTimeSpentSeconds int `json:"totalTimeSpentSeconds"`
	CurrentStreak         int `json:"currentStreak"` // consecutive calendar days with a completion
}

// Achievement is a rule-derived badge, recomputed on every read and never
// persisted as earned
type Achievement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Earned      bool   `json:"earned"`
}

// StatsResponse is the learner dashboard payload
type StatsResponse struct {
	Stats        LearnerStats  `json:"stats"`
	Achievements []Achievement `json:"achievements"`
}
