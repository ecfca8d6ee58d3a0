package services

import (
	"context"

	"github.com/deniz/coursehub/internal/app/models"
	"github.com/deniz/coursehub/internal/app/models/dto"
	"github.com/deniz/coursehub/internal/app/policy"
	"github.com/deniz/coursehub/internal/app/repositories"
	"github.com/deniz/coursehub/internal/pkg/apperrors"
	"github.com/deniz/coursehub/internal/pkg/helpers"
	"github.com/deniz/coursehub/internal/pkg/logger"
)

// submissionStore is the submission persistence surface the service depends on.
type submissionStore interface {
	Create(ctx context.Context, submission *models.Submission) error
	ListByAssignmentID(ctx context.Context, assignmentID int64, filter repositories.SubmissionFilter, offset, limit int) ([]*models.Submission, int64, error)
}

// submissionAssignmentGetter loads the assignment a submission targets.
type submissionAssignmentGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Assignment, error)
}

// SubmissionService implements submission creation and paginated listing.
type SubmissionService struct {
	submissions submissionStore
	assignments submissionAssignmentGetter
	courses     assignmentCourseGetter
	pageSize    int
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(submissions submissionStore, assignments submissionAssignmentGetter, courses assignmentCourseGetter, pageSize int) *SubmissionService {
	if pageSize <= 0 {
		pageSize = helpers.DefaultPageSize
	}
	return &SubmissionService{
		submissions: submissions,
		assignments: assignments,
		courses:     courses,
		pageSize:    pageSize,
	}
}

// Create records a new submission for an assignment by the acting student.
// Creation is gated on the student role only, not on enrollment; each call
// creates a fresh record.
func (s *SubmissionService) Create(ctx context.Context, actor *models.User, assignmentID int64, req *dto.CreateSubmissionRequest) (*models.Submission, error) {
	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, apperrors.ErrAssignmentNotFound
	}

	if decision := policy.Can(actor, policy.ActionCreateSubmission, policy.Resource{}); !decision.Allowed {
		return nil, apperrors.NewForbiddenError(decision.Reason)
	}

	submission := &models.Submission{
		AssignmentID: assignmentID,
		StudentID:    actor.ID,
		File:         req.File,
	}

	if err := s.submissions.Create(ctx, submission); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("submissionId", submission.ID).
		Int64("assignmentId", assignmentID).
		Int64("studentId", actor.ID).
		Msg("Submission created")

	return submission, nil
}

// List returns one page of an assignment's submissions. Restricted to
// admins and the instructor owning the parent course.
func (s *SubmissionService) List(ctx context.Context, actor *models.User, assignmentID int64, filter repositories.SubmissionFilter, pageNumber int, basePath string) (*dto.SubmissionListResponse, error) {
	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, apperrors.ErrAssignmentNotFound
	}

	course, err := s.courses.GetByID(ctx, assignment.CourseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, apperrors.ErrCourseNotFound
	}

	if decision := policy.Can(actor, policy.ActionListSubmissions, policy.Resource{CourseInstructorID: course.InstructorID}); !decision.Allowed {
		return nil, apperrors.NewForbiddenError(decision.Reason)
	}

	offset, limit := helpers.CalculateOffsetLimit(pageNumber, s.pageSize)

	submissions, totalCount, err := s.submissions.ListByAssignmentID(ctx, assignmentID, filter, int(offset), limit)
	if err != nil {
		return nil, err
	}

	page := helpers.Paginate(totalCount, pageNumber, s.pageSize, basePath)

	if submissions == nil {
		submissions = []*models.Submission{}
	}

	return &dto.SubmissionListResponse{
		Submissions: submissions,
		PageNumber:  page.Number,
		TotalPages:  page.TotalPages,
		PageSize:    page.Size,
		TotalCount:  totalCount,
		Links:       page.Links,
	}, nil
}
