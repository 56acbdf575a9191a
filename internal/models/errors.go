package models

import "errors"

// Domain errors surfaced to callers as typed failures.
// Handlers map these to HTTP status codes with errors.Is.
var (
	// ErrCourseNotFound is returned when a course does not exist
	ErrCourseNotFound = errors.New("course not found")
	// ErrLessonNotFound is returned when a lesson does not exist
	ErrLessonNotFound = errors.New("lesson not found")
	// ErrNotEnrolled is returned when a learner accesses a non-preview lesson without an enrollment
	ErrNotEnrolled = errors.New("not enrolled in course")
	// ErrInvalidQuizDefinition is returned when quiz content is malformed or has no questions.
	// This is an authoring data fault and is not retryable by the client.
	ErrInvalidQuizDefinition = errors.New("invalid quiz definition")
	// ErrIncompleteSubmission is returned when a quiz submission does not answer every question
	ErrIncompleteSubmission = errors.New("submission does not answer every question")
	// ErrEmptySubmission is returned when a code submission is blank or whitespace-only
	ErrEmptySubmission = errors.New("code submission is empty")
	// ErrInvalidTimeSpent is returned when the reported time spent is negative
	ErrInvalidTimeSpent = errors.New("time spent must not be negative")
	// ErrInvalidQuizScore is returned when a reported quiz score is outside [0,100]
	ErrInvalidQuizScore = errors.New("quiz score must be between 0 and 100")
)
