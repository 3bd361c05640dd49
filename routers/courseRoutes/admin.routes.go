package courseRoutes

import (
	courseController "lms/controllers/course"
	"lms/middleware"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all admin course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.AdminOnly)

	// Course CRUD (delete is a soft-deactivate)
	adminGroup.Post("/courses", courseValidator.CreateCourseAdmin(), courseController.AdminCreateCourse)
	adminGroup.Get("/courses", courseController.AdminGetAllCourses)
	adminGroup.Put("/courses/:id", courseValidator.CourseID(), courseValidator.UpdateCourseAdmin(), courseController.AdminUpdateCourse)
	adminGroup.Delete("/courses/:id", courseValidator.CourseID(), courseController.AdminDeleteCourse)

	// Recorded-course content and live-course schedule
	adminGroup.Put("/courses/:id/videos", courseValidator.CourseID(), courseValidator.UpdateVideosAdmin(), courseController.AdminUpdateVideos)
	adminGroup.Put("/courses/:id/schedule", courseValidator.CourseID(), courseValidator.UpdateScheduleAdmin(), courseController.AdminUpdateSchedule)

	// Dashboard
	adminGroup.Get("/students", courseController.AdminGetStudents)
	adminGroup.Get("/reports", courseController.AdminGetReports)
}
