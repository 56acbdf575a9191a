package models

import "time"

// ProgressRecord is the unique completion record for one learner on one
// lesson. It is created on the first completion or submission event and
// upserted afterwards; (UserID, LessonID) is a unique key and Completed is
// monotonic, never reverting from true to false.
type ProgressRecord struct {
	ID               int       `json:"id"`
	UserID           int       `json:"userId"`
	LessonID         int       `json:"lessonId"`
	Completed        bool      `json:"completed"`
	TimeSpentSeconds int       `json:"timeSpentSeconds"`
	QuizScore        *int      `json:"quizScore"`
	LastUpdated      time.Time `json:"lastUpdated"`
}

// AggregateProgress is the derived course-level progress for one learner.
// It is computed on read and never stored.
type AggregateProgress struct {
	CompletedCount   int     `json:"completedCount"`
	TotalCount       int     `json:"totalCount"`
	Percentage       float64 `json:"percentage"`
	IsCourseComplete bool    `json:"isCourseComplete"`
}

// MarkCompleteRequest represents an explicit lesson completion request
type MarkCompleteRequest struct {
	TimeSpentSeconds int  `json:"timeSpentSeconds"`
	QuizScore        *int `json:"quizScore,omitempty"`
}

// QuizAnswer is one selected option for one question index
type QuizAnswer struct {
	QuestionIndex  int `json:"questionIndex"`
	SelectedOption int `json:"selectedOption"`
}

// SubmitQuizRequest represents a quiz submission. Any score computed by the
// client is display-only; scoring is authoritative on the server.
type SubmitQuizRequest struct {
	Answers          []QuizAnswer `json:"answers"`
	TimeSpentSeconds int          `json:"timeSpentSeconds"`
}

// SubmitCodeRequest represents a code exercise submission
type SubmitCodeRequest struct {
	Code             string `json:"code"`
	TimeSpentSeconds int    `json:"timeSpentSeconds"`
}

// QuizScore is the result of scoring a quiz submission
type QuizScore struct {
	Score        int `json:"score"` // percentage 0-100, rounded half-up
	CorrectCount int `json:"correctCount"`
	TotalCount   int `json:"totalCount"`
}

// QuizQuestionResult is the per-question outcome revealed after a submission
type QuizQuestionResult struct {
	QuestionIndex  int    `json:"questionIndex"`
	SelectedOption int    `json:"selectedOption"`
	CorrectAnswer  int    `json:"correctAnswer"`
	Correct        bool   `json:"correct"`
	Explanation    string `json:"explanation"`
}

// QuizSubmissionResult is the response to a quiz submission
type QuizSubmissionResult struct {
	QuizScore
	Results []QuizQuestionResult `json:"results"`
}

// CourseProgressResponse bundles the aggregate with the underlying records
type CourseProgressResponse struct {
	Progress AggregateProgress `json:"progress"`
	Records  []ProgressRecord  `json:"records"`
}
