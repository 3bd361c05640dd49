package enrollmentRoutes

import (
	enrollmentController "lms/controllers/enrollment"
	"lms/middleware"
	enrollmentValidator "lms/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

// SetupEnrollmentRoutes sets up enrollment and progress routes
func SetupEnrollmentRoutes(app *fiber.App) {
	enrollmentGroup := app.Group("/enrollments", middleware.JWTMiddleware)

	enrollmentGroup.Get("/", enrollmentController.GetUserEnrollments)
	enrollmentGroup.Post("/check-access", enrollmentValidator.CheckAccess(), enrollmentController.CheckAccess)
	enrollmentGroup.Post("/progress", enrollmentValidator.RecordProgress(), enrollmentController.RecordProgress)
}
