package models

import "time"

// Enrollment represents a learner's enrollment in a course. Its presence is
// the single source of truth for non-preview lesson access. At most one
// record exists per (user, course); the database unique key enforces this.
type Enrollment struct {
	ID         int       `json:"id"`
	UserID     int       `json:"userId"`
	CourseID   int       `json:"courseId"`
	EnrolledAt time.Time `json:"enrolledAt"`
}
