package dto

import (
	"time"
)

// CreateAssignmentRequest is the payload for creating a new assignment.
type CreateAssignmentRequest struct {
	CourseID int64     `json:"courseId" binding:"required" example:"17"`
	Title    string    `json:"title" binding:"required" example:"Final project"`
	Points   int       `json:"points" binding:"gte=0" example:"100"`
	Due      time.Time `json:"due" binding:"required" example:"2024-06-14T17:00:00Z"`
}

// UpdateAssignmentRequest is the partial payload for PATCH /assignments/:id.
// CourseID is deliberately not client-writable on update; an assignment
// cannot be moved between courses.
type UpdateAssignmentRequest struct {
	Title  *string    `json:"title,omitempty"`
	Points *int       `json:"points,omitempty" binding:"omitempty,gte=0"`
	Due    *time.Time `json:"due,omitempty"`
}

// IsEmpty reports whether the patch carries no writable fields.
func (r *UpdateAssignmentRequest) IsEmpty() bool {
	return r.Title == nil && r.Points == nil && r.Due == nil
}
