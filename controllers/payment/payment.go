package paymentController

import (
	"fmt"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

func currentUser(c *fiber.Ctx) (*models.User, error) {
	subjectID, ok := c.Locals("subjectId").(string)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}

	var user models.User
	if err := database.Database.Db.Where("subject_id = ? AND is_deleted = ?", subjectID, false).First(&user).Error; err != nil {
		return nil, fiber.ErrNotFound
	}
	return &user, nil
}

// CreateOrder opens a gateway order for a course purchase and records a
// PENDING payment keyed by the gateway order id.
func CreateOrder(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		if err == fiber.ErrUnauthorized {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found! Sync your account first.", nil)
	}

	reqData, ok := c.Locals("validatedOrder").(*struct {
		CourseID uint `json:"course_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_active = ?", reqData.CourseID, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Amount goes to the gateway in paise
	amount := int64(course.Price * 100)
	receipt := fmt.Sprintf("receipt_%d", time.Now().UnixMilli())

	order, err := utils.CreateRazorpayOrder(amount, "INR", receipt, map[string]string{
		"course_id":   fmt.Sprintf("%d", course.ID),
		"user_id":     fmt.Sprintf("%d", user.ID),
		"course_name": course.Name,
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create payment order!", nil)
	}

	payment := models.Payment{
		UserID:          user.ID,
		CourseID:        course.ID,
		Amount:          course.Price,
		Currency:        "INR",
		RazorpayOrderID: order.ID,
		Status:          models.PaymentStatusPending,
	}
	if err := database.Database.Db.Create(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record payment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Order created successfully!", fiber.Map{
		"order_id":   order.ID,
		"amount":     order.Amount,
		"currency":   order.Currency,
		"payment_id": payment.ID,
	})
}

// VerifyPayment checks the gateway callback signature, marks the payment
// SUCCESS and grants the enrollment. Safe to call twice: a duplicate
// callback returns the existing enrollment.
func VerifyPayment(c *fiber.Ctx) error {
	if _, err := currentUser(c); err != nil {
		if err == fiber.ErrUnauthorized {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found! Sync your account first.", nil)
	}

	reqData, ok := c.Locals("validatedVerify").(*struct {
		RazorpayOrderID   string `json:"razorpay_order_id"`
		RazorpayPaymentID string `json:"razorpay_payment_id"`
		RazorpaySignature string `json:"razorpay_signature"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if !utils.VerifyPaymentSignature(reqData.RazorpayOrderID, reqData.RazorpayPaymentID, reqData.RazorpaySignature) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid payment signature!", nil)
	}

	db := database.Database.Db

	var payment models.Payment
	if err := db.Where("razorpay_order_id = ?", reqData.RazorpayOrderID).First(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Payment record not found!", nil)
	}

	// SUCCESS is terminal; a replayed callback must not regress the record
	if payment.Status != models.PaymentStatusSuccess {
		payment.RazorpayPaymentID = reqData.RazorpayPaymentID
		payment.RazorpaySignature = reqData.RazorpaySignature
		payment.Status = models.PaymentStatusSuccess
		if err := db.Save(&payment).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update payment!", nil)
		}
	}

	var course models.Course
	if err := db.Where("id = ?", payment.CourseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	enrollment, err := utils.CreateEnrollmentFromPayment(db, &payment, &course, time.Now())
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create enrollment!", nil)
	}

	var user models.User
	if err := db.Where("id = ?", payment.UserID).First(&user).Error; err == nil {
		utils.SendEnrollmentConfirmationEmail(user.Email, user.Name, course.Name, enrollment.ExpiryDate)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment verified and enrolled successfully!", enrollment)
}
