package dto

import (
	"github.com/deniz/coursehub/internal/app/models"
	"github.com/deniz/coursehub/internal/pkg/helpers"
)

// CreateCourseRequest is the payload for creating a new course.
type CreateCourseRequest struct {
	Subject      string `json:"subject" binding:"required,max=10" example:"CS"`
	Number       string `json:"number" binding:"required,max=3" example:"493"`
	Title        string `json:"title" binding:"required" example:"Cloud Application Development"`
	Term         string `json:"term" binding:"required,max=4" example:"sp24"`
	InstructorID int64  `json:"instructorId" binding:"required" example:"3"`
}

// UpdateCourseRequest is the partial payload for PATCH /courses/:id.
// Only the listed fields are client-writable.
type UpdateCourseRequest struct {
	Subject      *string `json:"subject,omitempty" binding:"omitempty,max=10"`
	Number       *string `json:"number,omitempty" binding:"omitempty,max=3"`
	Title        *string `json:"title,omitempty"`
	Term         *string `json:"term,omitempty" binding:"omitempty,max=4"`
	InstructorID *int64  `json:"instructorId,omitempty"`
}

// IsEmpty reports whether the patch carries no writable fields.
func (r *UpdateCourseRequest) IsEmpty() bool {
	return r.Subject == nil && r.Number == nil && r.Title == nil &&
		r.Term == nil && r.InstructorID == nil
}

// CourseLinks holds navigation links for a created course.
type CourseLinks struct {
	Course string `json:"course" example:"/courses/17"`
}

// CreateCourseResponse is the payload returned on course creation.
type CreateCourseResponse struct {
	ID    int64       `json:"id" example:"17"`
	Links CourseLinks `json:"links"`
}

// CourseListResponse is the paginated payload for GET /courses.
type CourseListResponse struct {
	Courses    []*models.Course  `json:"courses"`
	PageNumber int               `json:"pageNumber" example:"1"`
	TotalPages int               `json:"totalPages" example:"4"`
	PageSize   int               `json:"pageSize" example:"10"`
	TotalCount int64             `json:"totalCount" example:"31"`
	Links      helpers.PageLinks `json:"links"`
}

// CourseStudentsResponse lists the students enrolled in a course.
type CourseStudentsResponse struct {
	Students []*models.User `json:"students"`
}

// CourseAssignmentsResponse lists the assignments belonging to a course.
type CourseAssignmentsResponse struct {
	Assignments []*models.Assignment `json:"assignments"`
}
