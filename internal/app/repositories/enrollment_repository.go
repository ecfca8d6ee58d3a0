package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deniz/coursehub/internal/db"
)

// EnrollmentRepository handles database operations for course enrollments
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
	}
}

// ApplyDiff adds and removes student enrollments for a course in a single
// transaction. Already-enrolled students in add and not-enrolled students in
// remove are skipped; the returned slices contain only the ids whose
// enrollment state actually changed.
func (r *EnrollmentRepository) ApplyDiff(ctx context.Context, courseID int64, add, remove []int64) (added, removed []int64, err error) {
	added = []int64{}
	removed = []int64{}

	err = db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if len(add) > 0 {
			builder := squirrel.Insert("enrollments").
				Columns("student_id", "course_id").
				PlaceholderFormat(squirrel.Dollar).
				Suffix("ON CONFLICT ON CONSTRAINT enrollments_student_course_key DO NOTHING RETURNING student_id")
			for _, studentID := range add {
				builder = builder.Values(studentID, courseID)
			}

			query, args, buildErr := builder.ToSql()
			if buildErr != nil {
				return fmt.Errorf("error building enrollment insert query: %w", buildErr)
			}

			rows, queryErr := tx.Query(ctx, query, args...)
			if queryErr != nil {
				return fmt.Errorf("error adding enrollments: %w", queryErr)
			}

			added, queryErr = scanIDs(rows)
			if queryErr != nil {
				return queryErr
			}
		}

		if len(remove) > 0 {
			rows, queryErr := tx.Query(ctx,
				`DELETE FROM enrollments WHERE course_id = $1 AND student_id = ANY($2) RETURNING student_id`,
				courseID, remove,
			)
			if queryErr != nil {
				return fmt.Errorf("error removing enrollments: %w", queryErr)
			}

			removed, queryErr = scanIDs(rows)
			if queryErr != nil {
				return queryErr
			}
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return added, removed, nil
}

func scanIDs(rows pgx.Rows) ([]int64, error) {
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning id row: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
