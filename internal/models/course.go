package models

// Difficulty represents the difficulty level of a course
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Valid reports whether the difficulty is one of the known levels
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Course represents a course in the catalog. Courses are owned by authoring
// and are read-only for this service.
type Course struct {
	ID                int        `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Category          string     `json:"category"`
	Difficulty        Difficulty `json:"difficulty"`
	InstructorName    string     `json:"instructorName"`
	IsPaid            bool       `json:"isPaid"`
	Price             float64    `json:"price"`
	EstimatedDuration int        `json:"estimatedDuration"` // minutes
}

// CourseListItem represents a course in list responses, including the
// calling learner's completion counts
type CourseListItem struct {
	ID               int        `json:"id"`
	Title            string     `json:"title"`
	Category         string     `json:"category"`
	Difficulty       Difficulty `json:"difficulty"`
	IsPaid           bool       `json:"isPaid"`
	Price            float64    `json:"price"`
	TotalLessons     int        `json:"totalLessons"`
	CompletedLessons int        `json:"completedLessons"`
}

// CourseDetailResponse represents a course with the learner's aggregate progress
type CourseDetailResponse struct {
	Course   Course            `json:"course"`
	Progress AggregateProgress `json:"progress"`
}
