package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deniz/coursehub/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	userController *controllers.UserController,
	courseController *controllers.CourseController,
	assignmentController *controllers.AssignmentController,
	requireAuth gin.HandlerFunc,
) {
	// API version group
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- User routes ---
	users := v1.Group("/users")
	{
		// Registration requires a token: any authenticated user may create
		// student accounts, admin tokens may create any role.
		users.POST("", requireAuth, userController.CreateUser)
		users.POST("/login", userController.Login)
		users.GET("/:id", requireAuth, userController.GetUser)
	}

	// --- Course routes ---
	courses := v1.Group("/courses")
	{
		// Catalog reads are public
		courses.GET("", courseController.ListCourses)
		courses.GET("/:id", courseController.GetCourse)
		courses.GET("/:id/assignments", courseController.GetCourseAssignments)

		coursesProtected := courses.Group("")
		coursesProtected.Use(requireAuth)
		{
			coursesProtected.POST("", courseController.CreateCourse)
			coursesProtected.PATCH("/:id", courseController.UpdateCourse)
			coursesProtected.DELETE("/:id", courseController.DeleteCourse)
			coursesProtected.GET("/:id/students", courseController.GetCourseStudents)
			coursesProtected.POST("/:id/students", courseController.UpdateEnrollment)
			coursesProtected.GET("/:id/roster", courseController.GetCourseRoster)
		}
	}

	// --- Assignment routes ---
	assignments := v1.Group("/assignments")
	assignments.Use(requireAuth)
	{
		assignments.POST("", assignmentController.CreateAssignment)
		assignments.GET("/:id", assignmentController.GetAssignment)
		assignments.PATCH("/:id", assignmentController.UpdateAssignment)
		assignments.DELETE("/:id", assignmentController.DeleteAssignment)
		assignments.GET("/:id/submissions", assignmentController.ListSubmissions)
		assignments.POST("/:id/submissions", assignmentController.CreateSubmission)
	}
}
