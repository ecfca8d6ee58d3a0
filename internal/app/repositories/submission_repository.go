package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deniz/coursehub/internal/app/models"
)

// SubmissionFilter holds the optional filters for listing submissions.
type SubmissionFilter struct {
	StudentID int64
}

// SubmissionRepository handles database operations for submissions
type SubmissionRepository struct {
	db *pgxpool.Pool
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{
		db: db,
	}
}

// Create inserts a new submission and sets its generated id and timestamp.
func (r *SubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	query := `
		INSERT INTO submissions (assignment_id, student_id, file)
		VALUES ($1, $2, $3)
		RETURNING id, timestamp
	`

	err := r.db.QueryRow(ctx, query,
		submission.AssignmentID, submission.StudentID, submission.File,
	).Scan(&submission.ID, &submission.Timestamp)
	if err != nil {
		return fmt.Errorf("error creating submission: %w", err)
	}

	return nil
}

// ListByAssignmentID retrieves one page of submissions for an assignment
// together with the total match count.
func (r *SubmissionRepository) ListByAssignmentID(ctx context.Context, assignmentID int64, filter SubmissionFilter, offset, limit int) ([]*models.Submission, int64, error) {
	builder := squirrel.Select(
		"id", "assignment_id", "student_id", "timestamp", "grade", "file",
		"COUNT(*) OVER() AS total_count",
	).
		From("submissions").
		Where(squirrel.Eq{"assignment_id": assignmentID}).
		PlaceholderFormat(squirrel.Dollar)

	if filter.StudentID != 0 {
		builder = builder.Where(squirrel.Eq{"student_id": filter.StudentID})
	}

	builder = builder.OrderBy("id ASC").Offset(uint64(offset)).Limit(uint64(limit))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building submission list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing submissions: %w", err)
	}
	defer rows.Close()

	var submissions []*models.Submission
	var totalCount int64
	for rows.Next() {
		var submission models.Submission
		if err := rows.Scan(
			&submission.ID,
			&submission.AssignmentID,
			&submission.StudentID,
			&submission.Timestamp,
			&submission.Grade,
			&submission.File,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning submission row: %w", err)
		}
		submissions = append(submissions, &submission)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(submissions) == 0 {
		totalCount, err = r.countByAssignmentID(ctx, assignmentID, filter)
		if err != nil {
			return nil, 0, err
		}
	}

	return submissions, totalCount, nil
}

func (r *SubmissionRepository) countByAssignmentID(ctx context.Context, assignmentID int64, filter SubmissionFilter) (int64, error) {
	builder := squirrel.Select("COUNT(*)").
		From("submissions").
		Where(squirrel.Eq{"assignment_id": assignmentID}).
		PlaceholderFormat(squirrel.Dollar)

	if filter.StudentID != 0 {
		builder = builder.Where(squirrel.Eq{"student_id": filter.StudentID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building submission count query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting submissions: %w", err)
	}

	return count, nil
}
