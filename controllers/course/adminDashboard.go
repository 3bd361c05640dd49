package courseController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

// AdminGetStudents lists all users with their enrollment counts, optionally
// scoped to one course
func AdminGetStudents(c *fiber.Ctx) error {
	courseID := c.QueryInt("course_id", 0)

	var users []models.User
	if err := database.Database.Db.
		Where("is_deleted = ?", false).
		Order("created_at desc").
		Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch students!", nil)
	}

	students := make([]fiber.Map, 0, len(users))
	for _, user := range users {
		query := database.Database.Db.Model(&models.Enrollment{}).Where("user_id = ?", user.ID)
		if courseID > 0 {
			query = query.Where("course_id = ?", courseID)
		}

		var enrollmentCount int64
		query.Count(&enrollmentCount)

		students = append(students, fiber.Map{
			"user":             user,
			"enrollment_count": enrollmentCount,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Students fetched successfully!", students)
}

// AdminGetReports returns payment statistics, optionally bounded by a
// created-at date range
func AdminGetReports(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Model(&models.Payment{})
	if startDate := c.Query("start_date"); startDate != "" {
		if parsed, err := time.Parse(time.RFC3339, startDate); err == nil {
			query = query.Where("created_at >= ?", parsed)
		}
	}
	if endDate := c.Query("end_date"); endDate != "" {
		if parsed, err := time.Parse(time.RFC3339, endDate); err == nil {
			query = query.Where("created_at <= ?", parsed)
		}
	}

	var payments []models.Payment
	if err := query.Order("created_at desc").Find(&payments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
	}

	var totalRevenue float64
	var successful, failed, pending int
	for _, payment := range payments {
		switch payment.Status {
		case models.PaymentStatusSuccess:
			successful++
			totalRevenue += payment.Amount
		case models.PaymentStatusFailed:
			failed++
		case models.PaymentStatusPending:
			pending++
		}
	}

	// Course-wise revenue over successful payments
	type courseRevenue struct {
		CourseID     uint    `json:"course_id"`
		CourseName   string  `json:"course_name"`
		CourseType   string  `json:"course_type"`
		TotalRevenue float64 `json:"total_revenue"`
		Count        int64   `json:"count"`
	}
	var revenue []courseRevenue
	if err := db.Model(&models.Payment{}).
		Select("payments.course_id, courses.name as course_name, courses.course_type, SUM(payments.amount) as total_revenue, COUNT(payments.id) as count").
		Joins("JOIN courses ON courses.id = payments.course_id").
		Where("payments.status = ?", models.PaymentStatusSuccess).
		Group("payments.course_id, courses.name, courses.course_type").
		Order("total_revenue desc").
		Scan(&revenue).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to aggregate revenue!", nil)
	}

	// Enrollments crossing the renewal-warning window
	now := time.Now()
	warningCutoff := now.AddDate(0, 0, utils.ExpiryWarningDays)
	var expiringSoon int64
	db.Model(&models.Enrollment{}).
		Where("is_active = ? AND expiry_date IS NOT NULL AND expiry_date > ? AND expiry_date <= ?", true, now, warningCutoff).
		Count(&expiringSoon)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reports fetched successfully!", fiber.Map{
		"summary": fiber.Map{
			"total_revenue":       totalRevenue,
			"successful_payments": successful,
			"failed_payments":     failed,
			"pending_payments":    pending,
			"total_payments":      len(payments),
			"expiring_soon":       expiringSoon,
		},
		"payments":       payments,
		"course_revenue": revenue,
	})
}
