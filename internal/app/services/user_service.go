package services

import (
	"context"

	"github.com/deniz/coursehub/internal/app/models"
	"github.com/deniz/coursehub/internal/app/models/dto"
	"github.com/deniz/coursehub/internal/app/policy"
	"github.com/deniz/coursehub/internal/pkg/apperrors"
	"github.com/deniz/coursehub/internal/pkg/auth"
	"github.com/deniz/coursehub/internal/pkg/logger"
)

// userStore is the user persistence surface the service depends on.
type userStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// userCourseLister resolves the role-dependent course list for a profile.
type userCourseLister interface {
	ListByInstructorID(ctx context.Context, instructorID int64) ([]*models.Course, error)
	ListByStudentID(ctx context.Context, studentID int64) ([]*models.Course, error)
}

// tokenIssuer mints bearer credentials for authenticated users.
type tokenIssuer interface {
	Issue(userID int64) (string, error)
}

// UserService implements registration, authentication and profile access.
type UserService struct {
	users   userStore
	courses userCourseLister
	tokens  tokenIssuer
}

// NewUserService creates a new user service
func NewUserService(users userStore, courses userCourseLister, tokens tokenIssuer) *UserService {
	return &UserService{
		users:   users,
		courses: courses,
		tokens:  tokens,
	}
}

// Register creates a new user on behalf of an authenticated actor. Any
// authenticated user may create student accounts; creating an admin or
// instructor requires an admin actor.
func (s *UserService) Register(ctx context.Context, actor *models.User, req *dto.CreateUserRequest) (*models.User, error) {
	role := models.RoleType(req.Role)
	if role == "" {
		role = models.RoleStudent
	}
	if !role.IsValid() {
		return nil, apperrors.NewValidationError("invalid role")
	}

	if decision := policy.Can(actor, policy.ActionCreateUser, policy.Resource{TargetRole: role}); !decision.Allowed {
		return nil, apperrors.NewForbiddenError(decision.Reason)
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
		Role:     role,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Int64("userId", user.ID).Str("role", string(user.Role)).Msg("User registered")
	return user, nil
}

// Login verifies credentials and returns a fresh bearer token. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, req *dto.LoginRequest) (string, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", err
	}

	logger.Info().Int64("userId", user.ID).Msg("User logged in")
	return token, nil
}

// GetProfile returns a user's profile. Access is self-only; the course list
// depends on the user's role: instructors get the courses they teach,
// students the courses they are enrolled in, admins neither.
func (s *UserService) GetProfile(ctx context.Context, actor *models.User, id int64) (*dto.UserProfileResponse, error) {
	if decision := policy.Can(actor, policy.ActionReadUser, policy.Resource{TargetUserID: id}); !decision.Allowed {
		return nil, apperrors.NewForbiddenError(decision.Reason)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	profile := &dto.UserProfileResponse{User: user}

	switch user.Role {
	case models.RoleInstructor:
		profile.Courses, err = s.courses.ListByInstructorID(ctx, user.ID)
	case models.RoleStudent:
		profile.Courses, err = s.courses.ListByStudentID(ctx, user.ID)
	}
	if err != nil {
		return nil, err
	}

	return profile, nil
}
