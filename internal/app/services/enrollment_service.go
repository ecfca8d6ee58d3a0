package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/deniz/coursehub/internal/app/models"
	"github.com/deniz/coursehub/internal/app/models/dto"
	"github.com/deniz/coursehub/internal/app/policy"
	"github.com/deniz/coursehub/internal/pkg/apperrors"
	"github.com/deniz/coursehub/internal/pkg/logger"
)

// enrollmentStore is the enrollment persistence surface the service depends on.
type enrollmentStore interface {
	ApplyDiff(ctx context.Context, courseID int64, add, remove []int64) (added, removed []int64, err error)
}

// studentResolver validates the students named in an enrollment diff.
type studentResolver interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*models.User, error)
}

// enrollmentCourseGetter loads the course an enrollment diff targets.
type enrollmentCourseGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
}

// EnrollmentService reconciles course enrollments against add/remove diffs.
type EnrollmentService struct {
	enrollments enrollmentStore
	users       studentResolver
	courses     enrollmentCourseGetter
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(enrollments enrollmentStore, users studentResolver, courses enrollmentCourseGetter) *EnrollmentService {
	return &EnrollmentService{
		enrollments: enrollments,
		users:       users,
		courses:     courses,
	}
}

// Reconcile applies an enrollment diff to a course. Every id in add must
// reference an existing student; removal is tolerant of ids that are not
// enrolled. Adds that are already enrolled are skipped, never duplicated.
// Restricted to admins and the owning instructor.
func (s *EnrollmentService) Reconcile(ctx context.Context, actor *models.User, courseID int64, req *dto.UpdateEnrollmentRequest) (*dto.EnrollmentDiffResponse, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, apperrors.ErrCourseNotFound
	}

	if decision := policy.Can(actor, policy.ActionModifyEnrollment, policy.Resource{CourseInstructorID: course.InstructorID}); !decision.Allowed {
		return nil, apperrors.NewForbiddenError(decision.Reason)
	}

	add := dedupe(*req.Add)
	remove := dedupe(*req.Remove)

	if invalid, err := s.findInvalidStudents(ctx, add); err != nil {
		return nil, err
	} else if len(invalid) > 0 {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("add contains ids that are not students: %s", joinIDs(invalid)))
	}

	added, removed, err := s.enrollments.ApplyDiff(ctx, courseID, add, remove)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("courseId", courseID).
		Int("added", len(added)).
		Int("removed", len(removed)).
		Msg("Enrollment reconciled")

	return &dto.EnrollmentDiffResponse{Added: added, Removed: removed}, nil
}

// findInvalidStudents returns the ids in the list that do not reference an
// existing user with the student role.
func (s *EnrollmentService) findInvalidStudents(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	users, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	students := make(map[int64]bool, len(users))
	for _, user := range users {
		if user.Role == models.RoleStudent {
			students[user.ID] = true
		}
	}

	var invalid []int64
	for _, id := range ids {
		if !students[id] {
			invalid = append(invalid, id)
		}
	}
	return invalid, nil
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ", ")
}
