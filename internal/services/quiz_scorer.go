package services

import (
	"math"

	"github.com/coursehub/progress-service/internal/models"
)

// ScoreQuiz scores a set of submitted answers against the quiz's answer key.
// The percentage is computed over the full question count, so unanswered
// questions count as wrong, and is rounded half-up to an integer. The
// function tolerates partial or out-of-range answer maps; submission-level
// validation happens before it is called.
func ScoreQuiz(questions []models.QuizQuestion, answers map[int]int) models.QuizScore {
	result := models.QuizScore{
		TotalCount: len(questions),
	}

	if result.TotalCount == 0 {
		return result
	}

	for i, question := range questions {
		if selected, ok := answers[i]; ok && selected == question.CorrectAnswer {
			result.CorrectCount++
		}
	}

	result.Score = int(math.Round(float64(result.CorrectCount) / float64(result.TotalCount) * 100))
	return result
}
