package dto

// UpdateEnrollmentRequest is the payload for POST /courses/:id/students.
// Both lists must be present; empty lists are valid no-ops.
type UpdateEnrollmentRequest struct {
	Add    *[]int64 `json:"add" binding:"required"`
	Remove *[]int64 `json:"remove" binding:"required"`
}

// EnrollmentDiffResponse reports the outcome of an enrollment reconciliation.
type EnrollmentDiffResponse struct {
	Added   []int64 `json:"added"`
	Removed []int64 `json:"removed"`
}
