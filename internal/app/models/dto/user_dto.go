package dto

import (
	"github.com/deniz/coursehub/internal/app/models"
)

// CreateUserRequest is the payload for creating a new user.
// Role defaults to student when omitted.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,max=30" example:"Jane Doe"`
	Email    string `json:"email" binding:"required,email,max=50" example:"jane@example.edu"`
	Password string `json:"password" binding:"required,min=8" example:"hunter2hunter2"`
	Role     string `json:"role" binding:"omitempty,oneof=admin instructor student" example:"student"`
}

// LoginRequest is the payload for user authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jane@example.edu"`
	Password string `json:"password" binding:"required" example:"hunter2hunter2"`
}

// TokenResponse carries a freshly issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserProfileResponse is the role-dependent payload for GET /users/:id.
// Instructors see the courses they teach, students the courses they are
// enrolled in; admins get just their own profile.
type UserProfileResponse struct {
	User    *models.User     `json:"user"`
	Courses []*models.Course `json:"courses,omitempty"`
}
