package services

import (
	"context"

	"github.com/deniz/coursehub/internal/app/models"
	"github.com/deniz/coursehub/internal/app/models/dto"
	"github.com/deniz/coursehub/internal/app/policy"
	"github.com/deniz/coursehub/internal/pkg/apperrors"
	"github.com/deniz/coursehub/internal/pkg/logger"
)

// assignmentStore is the assignment persistence surface the service depends on.
type assignmentStore interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	GetByID(ctx context.Context, id int64) (*models.Assignment, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

// assignmentCourseGetter loads the parent course an assignment belongs to.
type assignmentCourseGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
}

// AssignmentService implements assignment CRUD gated by course ownership.
type AssignmentService struct {
	assignments assignmentStore
	courses     assignmentCourseGetter
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(assignments assignmentStore, courses assignmentCourseGetter) *AssignmentService {
	return &AssignmentService{
		assignments: assignments,
		courses:     courses,
	}
}

// Create creates a new assignment under a course. Restricted to admins and
// the owning instructor; a dangling course reference is a validation error.
func (s *AssignmentService) Create(ctx context.Context, actor *models.User, req *dto.CreateAssignmentRequest) (*models.Assignment, error) {
	course, err := s.courses.GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, apperrors.NewValidationError("courseId does not reference an existing course")
	}

	if decision := policy.Can(actor, policy.ActionCreateAssignment, policy.Resource{CourseInstructorID: course.InstructorID}); !decision.Allowed {
		return nil, apperrors.NewForbiddenError(decision.Reason)
	}

	assignment := &models.Assignment{
		CourseID: req.CourseID,
		Title:    req.Title,
		Points:   req.Points,
		Due:      req.Due,
	}

	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, err
	}

	logger.Info().Int64("assignmentId", assignment.ID).Int64("courseId", assignment.CourseID).Msg("Assignment created")
	return assignment, nil
}

// Get returns a single assignment by id.
func (s *AssignmentService) Get(ctx context.Context, id int64) (*models.Assignment, error) {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, apperrors.ErrAssignmentNotFound
	}
	return assignment, nil
}

// Update applies a partial update to an assignment. Ownership is decided
// against the parent course's instructor.
func (s *AssignmentService) Update(ctx context.Context, actor *models.User, id int64, req *dto.UpdateAssignmentRequest) (*models.Assignment, error) {
	assignment, course, err := s.getWithCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	if decision := policy.Can(actor, policy.ActionUpdateAssignment, policy.Resource{CourseInstructorID: course.InstructorID}); !decision.Allowed {
		return nil, apperrors.NewForbiddenError(decision.Reason)
	}

	if req.IsEmpty() {
		return nil, apperrors.NewValidationError("request contains no updatable fields")
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
		assignment.Title = *req.Title
	}
	if req.Points != nil {
		fields["points"] = *req.Points
		assignment.Points = *req.Points
	}
	if req.Due != nil {
		fields["due"] = *req.Due
		assignment.Due = *req.Due
	}

	if err := s.assignments.Update(ctx, id, fields); err != nil {
		return nil, err
	}

	return assignment, nil
}

// Delete removes an assignment and, through the schema, its submissions.
func (s *AssignmentService) Delete(ctx context.Context, actor *models.User, id int64) error {
	_, course, err := s.getWithCourse(ctx, id)
	if err != nil {
		return err
	}

	if decision := policy.Can(actor, policy.ActionDeleteAssignment, policy.Resource{CourseInstructorID: course.InstructorID}); !decision.Allowed {
		return apperrors.NewForbiddenError(decision.Reason)
	}

	if err := s.assignments.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("assignmentId", id).Msg("Assignment deleted")
	return nil
}

// getWithCourse loads an assignment and its parent course, mapping a missing
// assignment to NotFound before any policy evaluation.
func (s *AssignmentService) getWithCourse(ctx context.Context, id int64) (*models.Assignment, *models.Course, error) {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if assignment == nil {
		return nil, nil, apperrors.ErrAssignmentNotFound
	}

	course, err := s.courses.GetByID(ctx, assignment.CourseID)
	if err != nil {
		return nil, nil, err
	}
	if course == nil {
		return nil, nil, apperrors.ErrCourseNotFound
	}

	return assignment, course, nil
}
