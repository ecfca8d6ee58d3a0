package models

// Course represents a course taught by a single instructor.
type Course struct {
	ID           int64  `json:"id" db:"id"`
	Subject      string `json:"subject" db:"subject" example:"CS"`
	Number       string `json:"number" db:"number" example:"493"`
	Title        string `json:"title" db:"title" example:"Cloud Application Development"`
	Term         string `json:"term" db:"term" example:"sp24"`
	InstructorID int64  `json:"instructorId" db:"instructor_id"`
}
