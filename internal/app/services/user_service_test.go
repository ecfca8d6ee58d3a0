package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deniz/coursehub/internal/app/models"
	"github.com/deniz/coursehub/internal/app/models/dto"
	"github.com/deniz/coursehub/internal/pkg/apperrors"
	"github.com/deniz/coursehub/internal/pkg/auth"
)

type fakeUserStore struct {
	byID    map[int64]*models.User
	byEmail map[string]*models.User
	nextID  int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byID:    map[int64]*models.User{},
		byEmail: map[string]*models.User{},
	}
}

func (f *fakeUserStore) add(user *models.User) {
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	if user.ID > f.nextID {
		f.nextID = user.ID
	}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return apperrors.ErrEmailAlreadyExists
	}
	f.nextID++
	user.ID = f.nextID
	f.add(user)
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	return f.byID[id], nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return f.byEmail[email], nil
}

type fakeCourseLister struct {
	taught   []*models.Course
	enrolled []*models.Course
}

func (f *fakeCourseLister) ListByInstructorID(_ context.Context, _ int64) ([]*models.Course, error) {
	return f.taught, nil
}

func (f *fakeCourseLister) ListByStudentID(_ context.Context, _ int64) ([]*models.Course, error) {
	return f.enrolled, nil
}

type fakeTokenIssuer struct {
	lastUserID int64
}

func (f *fakeTokenIssuer) Issue(userID int64) (string, error) {
	f.lastUserID = userID
	return "issued-token", nil
}

func TestRegisterDefaultsToStudentRole(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, &fakeCourseLister{}, &fakeTokenIssuer{})
	actor := &models.User{ID: 9, Role: models.RoleStudent}

	user, err := svc.Register(context.Background(), actor, &dto.CreateUserRequest{
		Name: "Jane Doe", Email: "jane@example.edu", Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.NotZero(t, user.ID)
	assert.True(t, auth.CheckPassword(user.Password, "hunter2hunter2"), "stored password must be the bcrypt hash")
}

func TestRegisterRequiresAuthenticatedActor(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, &fakeCourseLister{}, &fakeTokenIssuer{})

	_, err := svc.Register(context.Background(), nil, &dto.CreateUserRequest{
		Name: "Jane Doe", Email: "jane@example.edu", Password: "hunter2hunter2",
	})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Empty(t, store.byEmail, "no account may be created for an unauthenticated caller")
}

func TestRegisterElevatedRolesRequireAdmin(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, &fakeCourseLister{}, &fakeTokenIssuer{})

	req := &dto.CreateUserRequest{
		Name: "Sam Lee", Email: "sam@example.edu", Password: "hunter2hunter2", Role: "instructor",
	}

	_, err := svc.Register(context.Background(), nil, req)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.Register(context.Background(), &models.User{ID: 9, Role: models.RoleStudent}, req)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	user, err := svc.Register(context.Background(), &models.User{ID: 1, Role: models.RoleAdmin}, req)
	require.NoError(t, err)
	assert.Equal(t, models.RoleInstructor, user.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, &fakeCourseLister{}, &fakeTokenIssuer{})

	actor := &models.User{ID: 1, Role: models.RoleAdmin}
	req := &dto.CreateUserRequest{Name: "Jane", Email: "jane@example.edu", Password: "hunter2hunter2"}
	_, err := svc.Register(context.Background(), actor, req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), actor, req)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	store := newFakeUserStore()
	hashed, err := auth.HashPassword("hunter2hunter2")
	require.NoError(t, err)
	store.add(&models.User{ID: 7, Email: "jane@example.edu", Password: hashed, Role: models.RoleStudent})

	issuer := &fakeTokenIssuer{}
	svc := NewUserService(store, &fakeCourseLister{}, issuer)

	t.Run("valid credentials", func(t *testing.T) {
		token, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "jane@example.edu", Password: "hunter2hunter2"})
		require.NoError(t, err)
		assert.Equal(t, "issued-token", token)
		assert.Equal(t, int64(7), issuer.lastUserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "jane@example.edu", Password: "wrong"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "nobody@example.edu", Password: "hunter2hunter2"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestGetProfileIsSelfOnly(t *testing.T) {
	store := newFakeUserStore()
	store.add(&models.User{ID: 7, Role: models.RoleStudent})
	store.add(&models.User{ID: 8, Role: models.RoleStudent})
	svc := NewUserService(store, &fakeCourseLister{}, &fakeTokenIssuer{})

	_, err := svc.GetProfile(context.Background(), store.byID[7], 8)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestGetProfileRoleDependentCourses(t *testing.T) {
	taught := []*models.Course{{ID: 17, InstructorID: 3}}
	enrolled := []*models.Course{{ID: 21}, {ID: 22}}
	lister := &fakeCourseLister{taught: taught, enrolled: enrolled}

	store := newFakeUserStore()
	store.add(&models.User{ID: 1, Role: models.RoleAdmin})
	store.add(&models.User{ID: 3, Role: models.RoleInstructor})
	store.add(&models.User{ID: 9, Role: models.RoleStudent})
	svc := NewUserService(store, lister, &fakeTokenIssuer{})

	instructorProfile, err := svc.GetProfile(context.Background(), store.byID[3], 3)
	require.NoError(t, err)
	assert.Equal(t, taught, instructorProfile.Courses)

	studentProfile, err := svc.GetProfile(context.Background(), store.byID[9], 9)
	require.NoError(t, err)
	assert.Equal(t, enrolled, studentProfile.Courses)

	adminProfile, err := svc.GetProfile(context.Background(), store.byID[1], 1)
	require.NoError(t, err)
	assert.Nil(t, adminProfile.Courses)
}
