package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/coursehub/progress-service/internal/models"
)

type courseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *sql.DB) *courseRepository {
	return &courseRepository{
		db: db,
	}
}

// GetByID retrieves a course by its ID
func (r *courseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	query := `
		SELECT id, title, description, category, difficulty, instructor_name, is_paid, price, estimated_duration
		FROM courses
		WHERE id = ?
		LIMIT 1
	`

	var course models.Course
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.Category,
		&course.Difficulty,
		&course.InstructorName,
		&course.IsPaid,
		&course.Price,
		&course.EstimatedDuration,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course by id: %w", err)
	}

	return &course, nil
}

// GetAll retrieves courses with per-learner completion counts, filtering and pagination
func (r *courseRepository) GetAll(ctx context.Context, userID int, difficulty *models.Difficulty, search string, page, count int) ([]models.CourseListItem, error) {
	var whereClauses []string
	args := []any{userID}

	if difficulty != nil {
		whereClauses = append(whereClauses, "c.difficulty = ?")
		args = append(args, *difficulty)
	}

	if search != "" {
		whereClauses = append(whereClauses, "c.title LIKE ?")
		args = append(args, "%"+search+"%")
	}

	whereClause := ""
	if len(whereClauses) > 0 {
		whereClause = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	// Calculate offset
	offset := (page - 1) * count

	query := fmt.Sprintf(`
		SELECT
			c.id,
			c.title,
			c.category,
			c.difficulty,
			c.is_paid,
			c.price,
			COUNT(DISTINCT l.id) as total_lessons,
			COUNT(DISTINCT lp.lesson_id) as completed_lessons
		FROM courses c
		LEFT JOIN lessons l ON l.course_id = c.id
		LEFT JOIN lesson_progress lp ON lp.lesson_id = l.id AND lp.user_id = ? AND lp.completed = TRUE
		%s
		GROUP BY c.id, c.title, c.category, c.difficulty, c.is_paid, c.price
		ORDER BY c.id
		LIMIT ? OFFSET ?
	`, whereClause)

	args = append(args, count, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []models.CourseListItem
	for rows.Next() {
		var course models.CourseListItem
		err := rows.Scan(
			&course.ID,
			&course.Title,
			&course.Category,
			&course.Difficulty,
			&course.IsPaid,
			&course.Price,
			&course.TotalLessons,
			&course.CompletedLessons,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, nil
}

// Exists checks if a course with the given ID exists
func (r *courseRepository) Exists(ctx context.Context, id int) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM courses WHERE id = ?)"
	var exists bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check course existence: %w", err)
	}
	return exists, nil
}
