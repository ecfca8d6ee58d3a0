package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deniz/coursehub/internal/app/models"
	"github.com/deniz/coursehub/internal/app/models/dto"
	"github.com/deniz/coursehub/internal/pkg/apperrors"
)

type fakeEnrollmentStore struct {
	enrolled map[int64]bool

	lastAdd    []int64
	lastRemove []int64
	callCount  int
}

func (f *fakeEnrollmentStore) ApplyDiff(_ context.Context, _ int64, add, remove []int64) ([]int64, []int64, error) {
	f.callCount++
	f.lastAdd = add
	f.lastRemove = remove

	if f.enrolled == nil {
		f.enrolled = map[int64]bool{}
	}

	added := []int64{}
	for _, id := range add {
		if !f.enrolled[id] {
			f.enrolled[id] = true
			added = append(added, id)
		}
	}

	removed := []int64{}
	for _, id := range remove {
		if f.enrolled[id] {
			delete(f.enrolled, id)
			removed = append(removed, id)
		}
	}

	return added, removed, nil
}

type fakeUserDirectory struct {
	users map[int64]*models.User
}

func (f *fakeUserDirectory) GetByIDs(_ context.Context, ids []int64) ([]*models.User, error) {
	var out []*models.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeCourseGetter struct {
	courses map[int64]*models.Course
}

func (f *fakeCourseGetter) GetByID(_ context.Context, id int64) (*models.Course, error) {
	return f.courses[id], nil
}

func enrollRequest(add, remove []int64) *dto.UpdateEnrollmentRequest {
	return &dto.UpdateEnrollmentRequest{Add: &add, Remove: &remove}
}

func newEnrollmentFixture() (*EnrollmentService, *fakeEnrollmentStore) {
	store := &fakeEnrollmentStore{}
	users := &fakeUserDirectory{users: map[int64]*models.User{
		1:  {ID: 1, Role: models.RoleAdmin},
		3:  {ID: 3, Role: models.RoleInstructor},
		10: {ID: 10, Role: models.RoleStudent},
		11: {ID: 11, Role: models.RoleStudent},
		12: {ID: 12, Role: models.RoleStudent},
	}}
	courses := &fakeCourseGetter{courses: map[int64]*models.Course{
		17: {ID: 17, InstructorID: 3},
	}}
	return NewEnrollmentService(store, users, courses), store
}

func TestReconcileUnknownCourse(t *testing.T) {
	svc, _ := newEnrollmentFixture()
	admin := &models.User{ID: 1, Role: models.RoleAdmin}

	_, err := svc.Reconcile(context.Background(), admin, 99, enrollRequest([]int64{10}, nil))
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestReconcileDeniesNonOwner(t *testing.T) {
	svc, store := newEnrollmentFixture()
	otherInstructor := &models.User{ID: 4, Role: models.RoleInstructor}

	_, err := svc.Reconcile(context.Background(), otherInstructor, 17, enrollRequest([]int64{10}, nil))
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Zero(t, store.callCount, "no storage mutation after a denial")
}

func TestReconcileRejectsNonStudentAdds(t *testing.T) {
	svc, store := newEnrollmentFixture()
	admin := &models.User{ID: 1, Role: models.RoleAdmin}

	// 3 is an instructor, 99 does not exist.
	_, err := svc.Reconcile(context.Background(), admin, 17, enrollRequest([]int64{10, 3, 99}, nil))
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Contains(t, err.Error(), "3")
	assert.Contains(t, err.Error(), "99")
	assert.Zero(t, store.callCount)
}

func TestReconcileAppliesDiff(t *testing.T) {
	svc, _ := newEnrollmentFixture()
	owner := &models.User{ID: 3, Role: models.RoleInstructor}

	diff, err := svc.Reconcile(context.Background(), owner, 17, enrollRequest([]int64{10, 11}, []int64{12}))
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 11}, diff.Added)
	assert.Empty(t, diff.Removed, "12 was never enrolled, removal is a tolerant no-op")
}

func TestReconcileIsIdempotentOnAdd(t *testing.T) {
	svc, _ := newEnrollmentFixture()
	admin := &models.User{ID: 1, Role: models.RoleAdmin}

	first, err := svc.Reconcile(context.Background(), admin, 17, enrollRequest([]int64{10, 11}, nil))
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 11}, first.Added)

	second, err := svc.Reconcile(context.Background(), admin, 17, enrollRequest([]int64{10, 11}, nil))
	require.NoError(t, err)
	assert.Empty(t, second.Added, "repeating the same add list changes nothing")
}

func TestReconcileDedupesRequestLists(t *testing.T) {
	svc, store := newEnrollmentFixture()
	admin := &models.User{ID: 1, Role: models.RoleAdmin}

	diff, err := svc.Reconcile(context.Background(), admin, 17, enrollRequest([]int64{10, 10, 10}, nil))
	require.NoError(t, err)
	assert.Equal(t, []int64{10}, diff.Added)
	assert.Equal(t, []int64{10}, store.lastAdd)
}

func TestReconcileEmptyListsAreValidNoOps(t *testing.T) {
	svc, _ := newEnrollmentFixture()
	admin := &models.User{ID: 1, Role: models.RoleAdmin}

	diff, err := svc.Reconcile(context.Background(), admin, 17, enrollRequest([]int64{}, []int64{}))
	require.NoError(t, err)
	assert.Empty(t, diff.Added)
	assert.Empty(t, diff.Removed)
}
