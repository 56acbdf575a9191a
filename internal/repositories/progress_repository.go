package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/coursehub/progress-service/internal/models"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *sql.DB) *progressRepository {
	return &progressRepository{
		db: db,
	}
}

// Upsert creates or updates the progress record for (user, lesson). The
// unique key on (user_id, lesson_id) serializes concurrent submissions for
// the same lesson: last writer wins for time and score, while completed is
// monotonic and never reverts to false once set.
func (r *progressRepository) Upsert(ctx context.Context, userID, lessonID int, completed bool, timeSpentSeconds int, quizScore *int) error {
	query := `
		INSERT INTO lesson_progress (user_id, lesson_id, completed, time_spent_seconds, quiz_score)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			completed = completed OR VALUES(completed),
			time_spent_seconds = VALUES(time_spent_seconds),
			quiz_score = VALUES(quiz_score),
			last_updated = CURRENT_TIMESTAMP
	`

	if _, err := r.db.ExecContext(ctx, query, userID, lessonID, completed, timeSpentSeconds, quizScore); err != nil {
		return fmt.Errorf("failed to upsert progress record: %w", err)
	}

	return nil
}

// GetByUserAndLesson retrieves the progress record for user and lesson, or nil if none exists
func (r *progressRepository) GetByUserAndLesson(ctx context.Context, userID, lessonID int) (*models.ProgressRecord, error) {
	query := `
		SELECT id, user_id, lesson_id, completed, time_spent_seconds, quiz_score, last_updated
		FROM lesson_progress
		WHERE user_id = ? AND lesson_id = ?
		LIMIT 1
	`

	var record models.ProgressRecord
	var quizScore sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, userID, lessonID).Scan(
		&record.ID,
		&record.UserID,
		&record.LessonID,
		&record.Completed,
		&record.TimeSpentSeconds,
		&quizScore,
		&record.LastUpdated,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress record: %w", err)
	}

	if quizScore.Valid {
		score := int(quizScore.Int64)
		record.QuizScore = &score
	}

	return &record, nil
}

// GetByUserAndCourse retrieves the learner's progress records for all lessons of a course
func (r *progressRepository) GetByUserAndCourse(ctx context.Context, userID, courseID int) ([]models.ProgressRecord, error) {
	query := `
		SELECT lp.id, lp.user_id, lp.lesson_id, lp.completed, lp.time_spent_seconds, lp.quiz_score, lp.last_updated
		FROM lesson_progress lp
		JOIN lessons l ON l.id = lp.lesson_id
		WHERE lp.user_id = ? AND l.course_id = ?
		ORDER BY l.` + "`order`" + `
	`

	rows, err := r.db.QueryContext(ctx, query, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query progress records: %w", err)
	}
	defer rows.Close()

	var records []models.ProgressRecord
	for rows.Next() {
		var record models.ProgressRecord
		var quizScore sql.NullInt64
		err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.LessonID,
			&record.Completed,
			&record.TimeSpentSeconds,
			&quizScore,
			&record.LastUpdated,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan progress record: %w", err)
		}
		if quizScore.Valid {
			score := int(quizScore.Int64)
			record.QuizScore = &score
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}

// CountCompletedByCourse counts completed lessons for a user in a course
func (r *progressRepository) CountCompletedByCourse(ctx context.Context, userID, courseID int) (int, error) {
	query := `
		SELECT COUNT(DISTINCT lp.lesson_id)
		FROM lesson_progress lp
		JOIN lessons l ON l.id = lp.lesson_id
		WHERE lp.user_id = ? AND l.course_id = ? AND lp.completed = TRUE
	`

	var count int
	err := r.db.QueryRowContext(ctx, query, userID, courseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed lessons: %w", err)
	}

	return count, nil
}

// GetUserTotals retrieves the user's completed lesson count and total time spent
func (r *progressRepository) GetUserTotals(ctx context.Context, userID int) (int, int, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN completed = TRUE THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(time_spent_seconds), 0)
		FROM lesson_progress
		WHERE user_id = ?
	`

	var lessonsCompleted, timeSpentSeconds int
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&lessonsCompleted, &timeSpentSeconds)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get user totals: %w", err)
	}

	return lessonsCompleted, timeSpentSeconds, nil
}

// GetCompletionDates retrieves the distinct calendar days on which the user
// completed at least one lesson, most recent first
func (r *progressRepository) GetCompletionDates(ctx context.Context, userID int) ([]time.Time, error) {
	query := `
		SELECT DISTINCT DATE(last_updated)
		FROM lesson_progress
		WHERE user_id = ? AND completed = TRUE
		ORDER BY DATE(last_updated) DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query completion dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("failed to scan completion date: %w", err)
		}
		dates = append(dates, date)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return dates, nil
}
