package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deniz/coursehub/internal/app/models"
	"github.com/deniz/coursehub/internal/db"
	"github.com/deniz/coursehub/internal/pkg/apperrors"
	"github.com/deniz/coursehub/internal/pkg/dberrors"
)

// CourseFilter holds the optional filters for listing courses.
type CourseFilter struct {
	Subject string
	Number  string
	Term    string
}

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

// Create inserts a new course and sets its generated id.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (subject, number, title, term, instructor_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		course.Subject, course.Number, course.Title, course.Term, course.InstructorID,
	).Scan(&course.ID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrInstructorNotFound
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by ID. Returns nil when no course exists.
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `
		SELECT id, subject, number, title, term, instructor_id
		FROM courses
		WHERE id = $1
	`

	var course models.Course
	err := r.db.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Subject,
		&course.Number,
		&course.Title,
		&course.Term,
		&course.InstructorID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// List retrieves one page of courses matching the filter together with the
// total match count.
func (r *CourseRepository) List(ctx context.Context, filter CourseFilter, offset, limit int) ([]*models.Course, int64, error) {
	builder := squirrel.Select(
		"id", "subject", "number", "title", "term", "instructor_id",
		"COUNT(*) OVER() AS total_count",
	).
		From("courses").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Subject != "" {
		builder = builder.Where(squirrel.Eq{"subject": filter.Subject})
	}
	if filter.Number != "" {
		builder = builder.Where(squirrel.Eq{"number": filter.Number})
	}
	if filter.Term != "" {
		builder = builder.Where(squirrel.Eq{"term": filter.Term})
	}

	builder = builder.OrderBy("id ASC").Offset(uint64(offset)).Limit(uint64(limit))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building course list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	var totalCount int64
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID,
			&course.Subject,
			&course.Number,
			&course.Title,
			&course.Term,
			&course.InstructorID,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// An empty page past the end carries no window count; fetch it separately.
	if len(courses) == 0 {
		totalCount, err = r.countCourses(ctx, filter)
		if err != nil {
			return nil, 0, err
		}
	}

	return courses, totalCount, nil
}

func (r *CourseRepository) countCourses(ctx context.Context, filter CourseFilter) (int64, error) {
	builder := squirrel.Select("COUNT(*)").
		From("courses").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Subject != "" {
		builder = builder.Where(squirrel.Eq{"subject": filter.Subject})
	}
	if filter.Number != "" {
		builder = builder.Where(squirrel.Eq{"number": filter.Number})
	}
	if filter.Term != "" {
		builder = builder.Where(squirrel.Eq{"term": filter.Term})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building course count query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting courses: %w", err)
	}

	return count, nil
}

// ListByInstructorID retrieves all courses taught by the given instructor.
func (r *CourseRepository) ListByInstructorID(ctx context.Context, instructorID int64) ([]*models.Course, error) {
	query := `
		SELECT id, subject, number, title, term, instructor_id
		FROM courses
		WHERE instructor_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, instructorID)
	if err != nil {
		return nil, fmt.Errorf("error listing courses by instructor: %w", err)
	}
	defer rows.Close()

	return scanCourses(rows)
}

// ListByStudentID retrieves all courses the given student is enrolled in.
func (r *CourseRepository) ListByStudentID(ctx context.Context, studentID int64) ([]*models.Course, error) {
	query := `
		SELECT c.id, c.subject, c.number, c.title, c.term, c.instructor_id
		FROM courses c
		JOIN enrollments e ON e.course_id = c.id
		WHERE e.student_id = $1
		ORDER BY c.id
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing courses by student: %w", err)
	}
	defer rows.Close()

	return scanCourses(rows)
}

// Update applies the given column values to a course. Columns are limited to
// the writable course fields by the caller.
func (r *CourseRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	builder := squirrel.Update("courses").
		SetMap(fields).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("error building course update query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrInstructorNotFound
		}
		return fmt.Errorf("error updating course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// Delete removes a course together with its enrollments, assignments and
// submissions in one transaction. The schema cascades dependent rows; the
// explicit enrollment delete keeps the cleanup visible and ordered.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM enrollments WHERE course_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting course enrollments: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("error deleting course: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrCourseNotFound
		}

		return nil
	})
}

func scanCourses(rows pgx.Rows) ([]*models.Course, error) {
	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID,
			&course.Subject,
			&course.Number,
			&course.Title,
			&course.Term,
			&course.InstructorID,
		); err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}
