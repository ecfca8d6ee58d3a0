package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deniz/coursehub/internal/app/models"
	"github.com/deniz/coursehub/internal/app/models/dto"
	"github.com/deniz/coursehub/internal/app/repositories"
	"github.com/deniz/coursehub/internal/pkg/apperrors"
)

type fakeCourseStore struct {
	courses map[int64]*models.Course
	nextID  int64

	updatedFields map[string]interface{}
	deletedID     int64
}

func (f *fakeCourseStore) Create(_ context.Context, course *models.Course) error {
	f.nextID++
	course.ID = f.nextID
	f.courses[course.ID] = course
	return nil
}

func (f *fakeCourseStore) GetByID(_ context.Context, id int64) (*models.Course, error) {
	return f.courses[id], nil
}

func (f *fakeCourseStore) List(_ context.Context, _ repositories.CourseFilter, offset, limit int) ([]*models.Course, int64, error) {
	all := make([]*models.Course, 0, len(f.courses))
	for id := int64(1); id <= f.nextID; id++ {
		if c, ok := f.courses[id]; ok {
			all = append(all, c)
		}
	}

	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeCourseStore) Update(_ context.Context, id int64, fields map[string]interface{}) error {
	if _, ok := f.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	f.updatedFields = fields
	return nil
}

func (f *fakeCourseStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(f.courses, id)
	f.deletedID = id
	return nil
}

type fakeInstructorResolver struct {
	users map[int64]*models.User
}

func (f *fakeInstructorResolver) GetByID(_ context.Context, id int64) (*models.User, error) {
	return f.users[id], nil
}

type fakeRosterLoader struct {
	students []*models.User
}

func (f *fakeRosterLoader) GetStudentsByCourseID(_ context.Context, _ int64) ([]*models.User, error) {
	return f.students, nil
}

type fakeAssignmentLister struct {
	assignments []*models.Assignment
}

func (f *fakeAssignmentLister) ListByCourseID(_ context.Context, _ int64) ([]*models.Assignment, error) {
	return f.assignments, nil
}

func newCourseFixture() (*CourseService, *fakeCourseStore) {
	store := &fakeCourseStore{
		courses: map[int64]*models.Course{
			17: {ID: 17, Subject: "CS", Number: "493", Title: "Cloud", Term: "sp24", InstructorID: 3},
		},
		nextID: 17,
	}
	users := &fakeInstructorResolver{users: map[int64]*models.User{
		1: {ID: 1, Role: models.RoleAdmin},
		3: {ID: 3, Role: models.RoleInstructor},
		4: {ID: 4, Role: models.RoleInstructor},
		9: {ID: 9, Role: models.RoleStudent},
	}}
	svc := NewCourseService(store, users, &fakeRosterLoader{}, &fakeAssignmentLister{}, 10)
	return svc, store
}

func strPtr(s string) *string { return &s }

func TestCourseCreateRequiresAdmin(t *testing.T) {
	svc, _ := newCourseFixture()
	req := &dto.CreateCourseRequest{Subject: "CS", Number: "361", Title: "Software", Term: "fa24", InstructorID: 3}

	_, err := svc.Create(context.Background(), &models.User{ID: 3, Role: models.RoleInstructor}, req)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	course, err := svc.Create(context.Background(), &models.User{ID: 1, Role: models.RoleAdmin}, req)
	require.NoError(t, err)
	assert.NotZero(t, course.ID)
}

func TestCourseCreateValidatesInstructorReference(t *testing.T) {
	svc, _ := newCourseFixture()
	admin := &models.User{ID: 1, Role: models.RoleAdmin}

	// 9 is a student, 99 does not exist.
	for _, instructorID := range []int64{9, 99} {
		req := &dto.CreateCourseRequest{Subject: "CS", Number: "361", Title: "Software", Term: "fa24", InstructorID: instructorID}
		_, err := svc.Create(context.Background(), admin, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "instructorId %d", instructorID)
	}
}

func TestCourseUpdateOwnership(t *testing.T) {
	svc, store := newCourseFixture()
	patch := &dto.UpdateCourseRequest{Title: strPtr("Cloud Application Development")}

	t.Run("non-owning instructor is denied", func(t *testing.T) {
		err := svc.Update(context.Background(), &models.User{ID: 4, Role: models.RoleInstructor}, 17, patch)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("owner may update", func(t *testing.T) {
		err := svc.Update(context.Background(), &models.User{ID: 3, Role: models.RoleInstructor}, 17, patch)
		require.NoError(t, err)
		assert.Equal(t, "Cloud Application Development", store.updatedFields["title"])
	})

	t.Run("admin may update any course", func(t *testing.T) {
		err := svc.Update(context.Background(), &models.User{ID: 1, Role: models.RoleAdmin}, 17, patch)
		assert.NoError(t, err)
	})
}

func TestCourseUpdateOwnershipUsesCurrentInstructor(t *testing.T) {
	svc, _ := newCourseFixture()

	// Instructor 4 tries to hand the course to themselves; ownership is
	// decided against the stored instructor, not the patch body.
	newOwner := int64(4)
	patch := &dto.UpdateCourseRequest{InstructorID: &newOwner}

	err := svc.Update(context.Background(), &models.User{ID: 4, Role: models.RoleInstructor}, 17, patch)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestCourseUpdateRejectsEmptyPatch(t *testing.T) {
	svc, _ := newCourseFixture()

	err := svc.Update(context.Background(), &models.User{ID: 1, Role: models.RoleAdmin}, 17, &dto.UpdateCourseRequest{})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCourseUpdateUnknownCourse(t *testing.T) {
	svc, _ := newCourseFixture()

	err := svc.Update(context.Background(), &models.User{ID: 1, Role: models.RoleAdmin}, 99, &dto.UpdateCourseRequest{Title: strPtr("x")})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestCourseDeleteRequiresAdmin(t *testing.T) {
	svc, store := newCourseFixture()

	err := svc.Delete(context.Background(), &models.User{ID: 3, Role: models.RoleInstructor}, 17)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	err = svc.Delete(context.Background(), &models.User{ID: 1, Role: models.RoleAdmin}, 17)
	require.NoError(t, err)
	assert.Equal(t, int64(17), store.deletedID)

	_, err = svc.Get(context.Background(), 17)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestCourseListPaginates(t *testing.T) {
	svc, store := newCourseFixture()
	admin := &models.User{ID: 1, Role: models.RoleAdmin}
	for i := 0; i < 14; i++ {
		_, err := svc.Create(context.Background(), admin, &dto.CreateCourseRequest{
			Subject: "CS", Number: "101", Title: "Intro", Term: "fa24", InstructorID: 3,
		})
		require.NoError(t, err)
	}
	require.Len(t, store.courses, 15)

	page1, err := svc.List(context.Background(), repositories.CourseFilter{}, 1, "/courses")
	require.NoError(t, err)
	assert.Len(t, page1.Courses, 10)
	assert.Equal(t, int64(15), page1.TotalCount)
	assert.Equal(t, 2, page1.TotalPages)
	assert.Equal(t, "/courses?page=2", page1.Links.NextPage)

	page2, err := svc.List(context.Background(), repositories.CourseFilter{}, 2, "/courses")
	require.NoError(t, err)
	assert.Len(t, page2.Courses, 5)
	assert.Empty(t, page2.Links.NextPage)
	assert.Equal(t, "/courses?page=1", page2.Links.PrevPage)
}

func TestCourseGetStudentsRequiresOwnership(t *testing.T) {
	store := &fakeCourseStore{courses: map[int64]*models.Course{17: {ID: 17, InstructorID: 3}}, nextID: 17}
	roster := &fakeRosterLoader{students: []*models.User{{ID: 9, Role: models.RoleStudent}}}
	svc := NewCourseService(store, &fakeInstructorResolver{}, roster, &fakeAssignmentLister{}, 10)

	_, err := svc.GetStudents(context.Background(), &models.User{ID: 4, Role: models.RoleInstructor}, 17)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	students, err := svc.GetStudents(context.Background(), &models.User{ID: 3, Role: models.RoleInstructor}, 17)
	require.NoError(t, err)
	assert.Len(t, students, 1)
}
