package authRoutes

import (
	authController "lms/controllers/auth"
	"lms/middleware"
	authValidator "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up identity-sync and profile routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")
	authGroup.Post("/sync", middleware.JWTMiddleware, authController.SyncUser)

	profileGroup := app.Group("/student")
	profileGroup.Get("/profile", middleware.JWTMiddleware, authController.GetProfile)
	profileGroup.Put("/profile", middleware.JWTMiddleware, authValidator.UpdateProfile(), authController.UpdateProfile)
}
