package dto

import (
	"github.com/deniz/coursehub/internal/app/models"
	"github.com/deniz/coursehub/internal/pkg/helpers"
)

// CreateSubmissionRequest is the payload for POST /assignments/:id/submissions.
// The assignment id comes from the path and the student id from the
// authenticated actor; neither is client-writable.
type CreateSubmissionRequest struct {
	File string `json:"file" binding:"required" example:"https://files.example.edu/submissions/42.pdf"`
}

// SubmissionListResponse is the paginated payload for GET /assignments/:id/submissions.
type SubmissionListResponse struct {
	Submissions []*models.Submission `json:"submissions"`
	PageNumber  int                  `json:"pageNumber" example:"1"`
	TotalPages  int                  `json:"totalPages" example:"2"`
	PageSize    int                  `json:"pageSize" example:"10"`
	TotalCount  int64                `json:"totalCount" example:"12"`
	Links       helpers.PageLinks    `json:"links"`
}
