package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/coursehub/progress-service/internal/models"
)

type enrollmentRepository struct {
	db *sql.DB
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *sql.DB) *enrollmentRepository {
	return &enrollmentRepository{
		db: db,
	}
}

// Exists checks if an enrollment record exists for user and course
func (r *enrollmentRepository) Exists(ctx context.Context, userID, courseID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM enrollments WHERE user_id = ? AND course_id = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, userID, courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment existence: %w", err)
	}

	return exists, nil
}

// Get retrieves the enrollment for user and course, or nil if none exists
func (r *enrollmentRepository) Get(ctx context.Context, userID, courseID int) (*models.Enrollment, error) {
	query := `
		SELECT id, user_id, course_id, enrolled_at
		FROM enrollments
		WHERE user_id = ? AND course_id = ?
		LIMIT 1
	`

	var enrollment models.Enrollment
	err := r.db.QueryRowContext(ctx, query, userID, courseID).Scan(
		&enrollment.ID,
		&enrollment.UserID,
		&enrollment.CourseID,
		&enrollment.EnrolledAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}

	return &enrollment, nil
}

// CreateIgnore inserts an enrollment if none exists. The unique key on
// (user_id, course_id) makes this safe under concurrent duplicate calls;
// a second insert is a no-op rather than an error.
func (r *enrollmentRepository) CreateIgnore(ctx context.Context, userID, courseID int) error {
	query := `INSERT IGNORE INTO enrollments (user_id, course_id) VALUES (?, ?)`

	if _, err := r.db.ExecContext(ctx, query, userID, courseID); err != nil {
		return fmt.Errorf("failed to create enrollment: %w", err)
	}

	return nil
}

// CountByUser counts enrollments for a user
func (r *enrollmentRepository) CountByUser(ctx context.Context, userID int) (int, error) {
	query := `SELECT COUNT(*) FROM enrollments WHERE user_id = ?`

	var count int
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count enrollments: %w", err)
	}

	return count, nil
}

// GetCourseIDsByUser retrieves the IDs of all courses a user is enrolled in
func (r *enrollmentRepository) GetCourseIDsByUser(ctx context.Context, userID int) ([]int, error) {
	query := `SELECT course_id FROM enrollments WHERE user_id = ? ORDER BY course_id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	var courseIDs []int
	for rows.Next() {
		var courseID int
		if err := rows.Scan(&courseID); err != nil {
			return nil, fmt.Errorf("failed to scan course id: %w", err)
		}
		courseIDs = append(courseIDs, courseID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courseIDs, nil
}
