package models

import (
	"encoding/json"
	"fmt"
)

// LessonType represents the type of a lesson
type LessonType string

const (
	LessonTypeVideo LessonType = "video"
	LessonTypeQuiz  LessonType = "quiz"
	LessonTypeCode  LessonType = "code"
	LessonTypeText  LessonType = "text"
)

// Valid reports whether the lesson type is one of the known types
func (t LessonType) Valid() bool {
	switch t {
	case LessonTypeVideo, LessonTypeQuiz, LessonTypeCode, LessonTypeText:
		return true
	}
	return false
}

// Lesson represents a lesson in a course. Content is a tagged variant: the
// JSON payload is interpreted according to Type at the boundary that needs it.
type Lesson struct {
	ID              int             `json:"id"`
	CourseID        int             `json:"courseId"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Type            LessonType      `json:"type"`
	Order           int             `json:"order"`
	DurationMinutes int             `json:"durationMinutes"`
	IsPreview       bool            `json:"isPreview"`
	Content         json.RawMessage `json:"content"`
}

// VideoContent is the content payload of a video lesson
type VideoContent struct {
	VideoURL string `json:"videoUrl"`
}

// QuizQuestion represents a single question in a quiz lesson
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"` // zero-based option index
	Explanation   string   `json:"explanation"`
}

// QuizContent is the content payload of a quiz lesson
type QuizContent struct {
	Questions []QuizQuestion `json:"questions"`
}

// CodeContent is the content payload of a code exercise lesson
type CodeContent struct {
	CodeTemplate   string `json:"codeTemplate"`
	CodeLanguage   string `json:"codeLanguage"`
	ExpectedOutput string `json:"expectedOutput"`
}

// TextContent is the content payload of a text lesson
type TextContent struct {
	Body string `json:"body"`
}

// DecodeQuizContent interprets the lesson content as a quiz definition.
// A non-quiz lesson, malformed payload, or an empty question list is an
// authoring error and yields ErrInvalidQuizDefinition.
func (l *Lesson) DecodeQuizContent() (*QuizContent, error) {
	if l.Type != LessonTypeQuiz {
		return nil, fmt.Errorf("%w: lesson %d is not a quiz", ErrInvalidQuizDefinition, l.ID)
	}

	var content QuizContent
	if err := json.Unmarshal(l.Content, &content); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuizDefinition, err)
	}

	if len(content.Questions) == 0 {
		return nil, fmt.Errorf("%w: quiz has no questions", ErrInvalidQuizDefinition)
	}

	return &content, nil
}

// LessonListItem represents a lesson in course listings with the learner's
// completion status. Content is omitted; it is fetched per lesson.
type LessonListItem struct {
	ID              int        `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Type            LessonType `json:"type"`
	Order           int        `json:"order"`
	DurationMinutes int        `json:"durationMinutes"`
	IsPreview       bool       `json:"isPreview"`
	Completed       bool       `json:"completed"`
}

// LessonResponse represents a full lesson returned to an authorized learner.
// Quiz content is sanitized: correct answers and explanations never leave the
// server outside of a submission result.
type LessonResponse struct {
	ID              int             `json:"id"`
	CourseID        int             `json:"courseId"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Type            LessonType      `json:"type"`
	Order           int             `json:"order"`
	DurationMinutes int             `json:"durationMinutes"`
	IsPreview       bool            `json:"isPreview"`
	Content         json.RawMessage `json:"content"`
	Completed       bool            `json:"completed"`
}
