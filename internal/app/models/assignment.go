package models

import "time"

// Assignment represents a graded assignment belonging to a course.
type Assignment struct {
	ID       int64     `json:"id" db:"id"`
	CourseID int64     `json:"courseId" db:"course_id"`
	Title    string    `json:"title" db:"title"`
	Points   int       `json:"points" db:"points"`
	Due      time.Time `json:"due" db:"due"`
}
