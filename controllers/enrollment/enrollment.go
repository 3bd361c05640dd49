package enrollmentController

import (
	"errors"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
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

// GetUserEnrollments lists the caller's enrollments with course details and
// remaining validity
func GetUserEnrollments(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		if err == fiber.ErrUnauthorized {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found! Sync your account first.", nil)
	}

	var enrollments []models.Enrollment
	if err := database.Database.Db.
		Where("user_id = ?", user.ID).
		Preload("Progress").
		Preload("Course").
		Preload("Course.Modules").
		Preload("Course.Videos").
		Preload("Course.Schedule").
		Order("created_at desc").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	now := time.Now()
	response := make([]fiber.Map, 0, len(enrollments))
	for i := range enrollments {
		enrollment := &enrollments[i]

		// Deactivated courses stay out of the student's list
		if !enrollment.Course.IsActive {
			continue
		}

		entry := fiber.Map{
			"enrollment": enrollment,
			"course":     enrollment.Course,
		}
		if enrollment.ExpiryDate != nil {
			entry["days_remaining"] = utils.DaysRemaining(*enrollment.ExpiryDate, now)
		}
		response = append(response, entry)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", response)
}

// CheckAccess answers the admission question for (caller, course) and
// lazily persists an expiry-driven deactivation.
func CheckAccess(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		if err == fiber.ErrUnauthorized {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found! Sync your account first.", nil)
	}

	reqData, ok := c.Locals("validatedCheckAccess").(*struct {
		CourseID uint `json:"course_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", user.ID, reqData.CourseID).
		Preload("Progress").
		First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", fiber.Map{"has_access": false})
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollment!", nil)
	}

	var course models.Course
	if err := db.Where("id = ?", enrollment.CourseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Course is no longer available!", fiber.Map{"has_access": false})
	}

	result := utils.EvaluateAccess(&enrollment, &course, time.Now())

	if result.NeedsDeactivation {
		// Lazy expiry: correct the stored state on read
		if err := db.Model(&enrollment).Update("is_active", false).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update enrollment!", nil)
		}
	}

	if !result.HasAccess {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Course access "+result.Reason+"!", fiber.Map{
			"has_access": false,
			"reason":     result.Reason,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Access granted!", fiber.Map{
		"has_access": true,
		"enrollment": enrollment,
	})
}

// RecordProgress upserts the caller's watch state for one video. Requires
// the enrollment to currently evaluate to access-granted.
func RecordProgress(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		if err == fiber.ErrUnauthorized {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found! Sync your account first.", nil)
	}

	reqData, ok := c.Locals("validatedProgress").(*struct {
		CourseID        uint `json:"course_id"`
		VideoID         uint `json:"video_id"`
		WatchedDuration int  `json:"watched_duration"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", user.ID, reqData.CourseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", nil)
	}

	var course models.Course
	if err := db.Where("id = ?", enrollment.CourseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Course is no longer available!", nil)
	}

	result := utils.EvaluateAccess(&enrollment, &course, time.Now())
	if result.NeedsDeactivation {
		db.Model(&enrollment).Update("is_active", false)
	}
	if !result.HasAccess {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Course access "+result.Reason+"!", nil)
	}

	var video models.Video
	if err := db.Where("id = ? AND course_id = ?", reqData.VideoID, course.ID).First(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found in this course!", nil)
	}

	if _, err := utils.RecordVideoProgress(db, &enrollment, &video, reqData.WatchedDuration); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	var progress []models.VideoProgress
	db.Where("enrollment_id = ?", enrollment.ID).Find(&progress)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated!", progress)
}
