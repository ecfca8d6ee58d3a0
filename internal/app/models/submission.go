package models

import "time"

// Submission represents a student's submission for an assignment.
// File is an opaque reference (URL) to the submitted content.
type Submission struct {
	ID           int64     `json:"id" db:"id"`
	AssignmentID int64     `json:"assignmentId" db:"assignment_id"`
	StudentID    int64     `json:"studentId" db:"student_id"`
	Timestamp    time.Time `json:"timestamp" db:"timestamp"`
	Grade        *float64  `json:"grade,omitempty" db:"grade"` // Nullable until graded
	File         string    `json:"file" db:"file"`
}
