package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/coursehub/progress-service/internal/models"
)

type lessonRepository struct {
	db *sql.DB
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db *sql.DB) *lessonRepository {
	return &lessonRepository{
		db: db,
	}
}

// GetByID retrieves a lesson by its ID, including its content payload
func (r *lessonRepository) GetByID(ctx context.Context, id int) (*models.Lesson, error) {
	query := `
		SELECT id, course_id, title, description, lesson_type, ` + "`order`" + `, duration_minutes, is_preview, content
		FROM lessons
		WHERE id = ?
		LIMIT 1
	`

	var lesson models.Lesson
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&lesson.ID,
		&lesson.CourseID,
		&lesson.Title,
		&lesson.Description,
		&lesson.Type,
		&lesson.Order,
		&lesson.DurationMinutes,
		&lesson.IsPreview,
		&lesson.Content,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrLessonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson by id: %w", err)
	}

	return &lesson, nil
}

// GetByCourseIDWithCompletion retrieves all lessons for a course ordered by
// their sequence, with the learner's completion status
func (r *lessonRepository) GetByCourseIDWithCompletion(ctx context.Context, courseID, userID int) ([]models.LessonListItem, error) {
	query := `
		SELECT
			l.id,
			l.title,
			l.description,
			l.lesson_type,
			l.` + "`order`" + `,
			l.duration_minutes,
			l.is_preview,
			CASE WHEN lp.id IS NOT NULL THEN 1 ELSE 0 END as completed
		FROM lessons l
		LEFT JOIN lesson_progress lp ON lp.lesson_id = l.id AND lp.user_id = ? AND lp.completed = TRUE
		WHERE l.course_id = ?
		ORDER BY l.` + "`order`" + `
	`

	rows, err := r.db.QueryContext(ctx, query, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	var lessons []models.LessonListItem
	for rows.Next() {
		var lesson models.LessonListItem
		var completed int
		err := rows.Scan(
			&lesson.ID,
			&lesson.Title,
			&lesson.Description,
			&lesson.Type,
			&lesson.Order,
			&lesson.DurationMinutes,
			&lesson.IsPreview,
			&completed,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lesson.Completed = completed == 1
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lessons, nil
}

// CountByCourseID counts lessons in a course
func (r *lessonRepository) CountByCourseID(ctx context.Context, courseID int) (int, error) {
	query := `SELECT COUNT(*) FROM lessons WHERE course_id = ?`

	var count int
	err := r.db.QueryRowContext(ctx, query, courseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count lessons: %w", err)
	}

	return count, nil
}
