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

// courseStore is the course persistence surface the service depends on.
type courseStore interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	List(ctx context.Context, filter repositories.CourseFilter, offset, limit int) ([]*models.Course, int64, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

// instructorResolver validates instructor references on create and update.
type instructorResolver interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// rosterLoader resolves the enrolled students of a course.
type rosterLoader interface {
	GetStudentsByCourseID(ctx context.Context, courseID int64) ([]*models.User, error)
}

// courseAssignmentLister resolves the assignments belonging to a course.
type courseAssignmentLister interface {
	ListByCourseID(ctx context.Context, courseID int64) ([]*models.Assignment, error)
}

// CourseService implements course CRUD, listing and roster access.
type CourseService struct {
	courses     courseStore
	users       instructorResolver
	roster      rosterLoader
	assignments courseAssignmentLister
	pageSize    int
}

// NewCourseService creates a new course service
func NewCourseService(courses courseStore, users instructorResolver, roster rosterLoader, assignments courseAssignmentLister, pageSize int) *CourseService {
	if pageSize <= 0 {
		pageSize = helpers.DefaultPageSize
	}
	return &CourseService{
		courses:     courses,
		users:       users,
		roster:      roster,
		assignments: assignments,
		pageSize:    pageSize,
	}
}

// List returns one page of the course catalog. The listing is public.
func (s *CourseService) List(ctx context.Context, filter repositories.CourseFilter, pageNumber int, basePath string) (*dto.CourseListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(pageNumber, s.pageSize)

	courses, totalCount, err := s.courses.List(ctx, filter, int(offset), limit)
	if err != nil {
		return nil, err
	}

	page := helpers.Paginate(totalCount, pageNumber, s.pageSize, basePath)

	if courses == nil {
		courses = []*models.Course{}
	}

	return &dto.CourseListResponse{
		Courses:    courses,
		PageNumber: page.Number,
		TotalPages: page.TotalPages,
		PageSize:   page.Size,
		TotalCount: totalCount,
		Links:      page.Links,
	}, nil
}

// Get returns a single course by id.
func (s *CourseService) Get(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

// Create creates a new course. Admin only; the referenced instructor must
// exist and hold the instructor role.
func (s *CourseService) Create(ctx context.Context, actor *models.User, req *dto.CreateCourseRequest) (*models.Course, error) {
	if decision := policy.Can(actor, policy.ActionCreateCourse, policy.Resource{}); !decision.Allowed {
		return nil, apperrors.NewForbiddenError(decision.Reason)
	}

	if err := s.validateInstructor(ctx, req.InstructorID); err != nil {
		return nil, err
	}

	course := &models.Course{
		Subject:      req.Subject,
		Number:       req.Number,
		Title:        req.Title,
		Term:         req.Term,
		InstructorID: req.InstructorID,
	}

	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	logger.Info().Int64("courseId", course.ID).Int64("instructorId", course.InstructorID).Msg("Course created")
	return course, nil
}

// Update applies a partial update to a course. Ownership is decided against
// the course's current instructor, not any instructor id in the patch.
func (s *CourseService) Update(ctx context.Context, actor *models.User, id int64, req *dto.UpdateCourseRequest) error {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if course == nil {
		return apperrors.ErrCourseNotFound
	}

	if decision := policy.Can(actor, policy.ActionUpdateCourse, policy.Resource{CourseInstructorID: course.InstructorID}); !decision.Allowed {
		return apperrors.NewForbiddenError(decision.Reason)
	}

	if req.IsEmpty() {
		return apperrors.NewValidationError("request contains no updatable fields")
	}

	fields := map[string]interface{}{}
	if req.Subject != nil {
		fields["subject"] = *req.Subject
	}
	if req.Number != nil {
		fields["number"] = *req.Number
	}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Term != nil {
		fields["term"] = *req.Term
	}
	if req.InstructorID != nil {
		if err := s.validateInstructor(ctx, *req.InstructorID); err != nil {
			return err
		}
		fields["instructor_id"] = *req.InstructorID
	}

	return s.courses.Update(ctx, id, fields)
}

// Delete removes a course and its enrollments atomically. Admin only.
func (s *CourseService) Delete(ctx context.Context, actor *models.User, id int64) error {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if course == nil {
		return apperrors.ErrCourseNotFound
	}

	if decision := policy.Can(actor, policy.ActionDeleteCourse, policy.Resource{CourseInstructorID: course.InstructorID}); !decision.Allowed {
		return apperrors.NewForbiddenError(decision.Reason)
	}

	if err := s.courses.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("courseId", id).Msg("Course deleted")
	return nil
}

// GetStudents returns the students enrolled in a course. Restricted to
// admins and the owning instructor.
func (s *CourseService) GetStudents(ctx context.Context, actor *models.User, id int64) ([]*models.User, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, apperrors.ErrCourseNotFound
	}

	if decision := policy.Can(actor, policy.ActionReadRoster, policy.Resource{CourseInstructorID: course.InstructorID}); !decision.Allowed {
		return nil, apperrors.NewForbiddenError(decision.Reason)
	}

	students, err := s.roster.GetStudentsByCourseID(ctx, id)
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []*models.User{}
	}
	return students, nil
}

// GetAssignments returns the assignments belonging to a course. Public.
func (s *CourseService) GetAssignments(ctx context.Context, id int64) ([]*models.Assignment, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, apperrors.ErrCourseNotFound
	}

	assignments, err := s.assignments.ListByCourseID(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignments == nil {
		assignments = []*models.Assignment{}
	}
	return assignments, nil
}

func (s *CourseService) validateInstructor(ctx context.Context, instructorID int64) error {
	instructor, err := s.users.GetByID(ctx, instructorID)
	if err != nil {
		return err
	}
	if instructor == nil || instructor.Role != models.RoleInstructor {
		return apperrors.NewValidationError("instructorId does not reference an instructor")
	}
	return nil
}
