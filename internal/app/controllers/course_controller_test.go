package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/deniz/coursehub/internal/app/models"
	"github.com/deniz/coursehub/internal/app/repositories"
	"github.com/deniz/coursehub/internal/app/services"
	"github.com/deniz/coursehub/internal/middleware"
)

type fakeCourseStore struct {
	courses map[int64]*models.Course
}

func (f *fakeCourseStore) Create(_ context.Context, _ *models.Course) error { return nil }

func (f *fakeCourseStore) GetByID(_ context.Context, id int64) (*models.Course, error) {
	return f.courses[id], nil
}

func (f *fakeCourseStore) List(_ context.Context, _ repositories.CourseFilter, _, _ int) ([]*models.Course, int64, error) {
	return nil, 0, nil
}

func (f *fakeCourseStore) Update(_ context.Context, _ int64, _ map[string]interface{}) error {
	return nil
}

func (f *fakeCourseStore) Delete(_ context.Context, _ int64) error { return nil }

type fakeInstructorResolver struct{}

func (f *fakeInstructorResolver) GetByID(_ context.Context, _ int64) (*models.User, error) {
	return nil, nil
}

type fakeRoster struct {
	students []*models.User
}

func (f *fakeRoster) GetStudentsByCourseID(_ context.Context, _ int64) ([]*models.User, error) {
	return f.students, nil
}

type fakeAssignmentLister struct{}

func (f *fakeAssignmentLister) ListByCourseID(_ context.Context, _ int64) ([]*models.Assignment, error) {
	return nil, nil
}

func setActor(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, user)
		c.Next()
	}
}

func TestGetCourseRosterStreamsCompleteCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)

	courses := &fakeCourseStore{courses: map[int64]*models.Course{
		17: {ID: 17, Subject: "CS", Number: "493", Title: "Cloud Dev", Term: "sp26", InstructorID: 3},
	}}
	roster := &fakeRoster{students: []*models.User{
		{ID: 9, Name: "Jane Doe", Email: "jane@example.edu", Role: models.RoleStudent},
		{ID: 10, Name: "Sam Lee", Email: "sam@example.edu", Role: models.RoleStudent},
	}}
	courseService := services.NewCourseService(courses, &fakeInstructorResolver{}, roster, &fakeAssignmentLister{}, 10)
	controller := NewCourseController(courseService, nil)

	admin := &models.User{ID: 1, Role: models.RoleAdmin}
	router := gin.New()
	router.GET("/courses/:id/roster", setActor(admin), controller.GetCourseRoster)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/courses/17/roster", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "course-17-roster.csv")

	// Every enrolled student must make it onto the wire, in order, after the
	// header row.
	assert.Equal(t, "ID,Name,Email\n9,Jane Doe,jane@example.edu\n10,Sam Lee,sam@example.edu\n", w.Body.String())
}

func TestGetCourseRosterDeniedForNonOwner(t *testing.T) {
	gin.SetMode(gin.TestMode)

	courses := &fakeCourseStore{courses: map[int64]*models.Course{
		17: {ID: 17, InstructorID: 3},
	}}
	courseService := services.NewCourseService(courses, &fakeInstructorResolver{}, &fakeRoster{}, &fakeAssignmentLister{}, 10)
	controller := NewCourseController(courseService, nil)

	other := &models.User{ID: 4, Role: models.RoleInstructor}
	router := gin.New()
	router.GET("/courses/:id/roster", setActor(other), controller.GetCourseRoster)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/courses/17/roster", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
