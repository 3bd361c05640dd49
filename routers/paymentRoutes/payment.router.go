package paymentRoutes

import (
	paymentController "lms/controllers/payment"
	"lms/middleware"
	paymentValidator "lms/validators/payment"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentRoutes sets up the payment gateway routes
func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payments", middleware.JWTMiddleware)

	paymentGroup.Post("/create-order", paymentValidator.CreateOrder(), paymentController.CreateOrder)
	paymentGroup.Post("/verify", paymentValidator.VerifyPayment(), paymentController.VerifyPayment)
}
