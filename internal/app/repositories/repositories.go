package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories aggregates all repository instances for dependency injection
type Repositories struct {
	UserRepository       *UserRepository
	CourseRepository     *CourseRepository
	AssignmentRepository *AssignmentRepository
	SubmissionRepository *SubmissionRepository
	EnrollmentRepository *EnrollmentRepository
}

// NewRepositories creates all repositories backed by the given pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		CourseRepository:     NewCourseRepository(db),
		AssignmentRepository: NewAssignmentRepository(db),
		SubmissionRepository: NewSubmissionRepository(db),
		EnrollmentRepository: NewEnrollmentRepository(db),
	}
}
