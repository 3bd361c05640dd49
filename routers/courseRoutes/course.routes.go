package courseRoutes

import (
	courseController "lms/controllers/course"
	"lms/middleware"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the public course catalog routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses")

	// Catalog is public; video locators and meeting links stay hidden
	courseGroup.Get("/", courseValidator.CourseList(), courseController.GetAllCourses)

	// Detail reveals locators only to callers with an active enrollment
	courseGroup.Get("/:id", middleware.OptionalJWTMiddleware, courseValidator.CourseID(), courseController.GetCourseDetails)
}
