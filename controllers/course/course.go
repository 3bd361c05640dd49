package courseController

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

// hideLocators blanks the fields reserved for enrolled users: video source
// URLs and live-session meeting links.
func hideLocators(course *models.Course) {
	for i := range course.Videos {
		course.Videos[i].URL = ""
	}
	for i := range course.Schedule {
		course.Schedule[i].MeetingLink = ""
	}
}

// GetAllCourses lists active courses, optionally filtered by type. Public:
// video locators and meeting links are always hidden here.
func GetAllCourses(c *fiber.Ctx) error {
	courseType, _ := c.Locals("courseType").(string)

	db := database.Database.Db.
		Where("is_active = ?", true).
		Preload("Modules").
		Preload("Videos").
		Preload("Schedule")

	if courseType != "" {
		db = db.Where("course_type = ?", courseType)
	}

	var courses []models.Course
	if err := db.Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	for i := range courses {
		hideLocators(&courses[i])
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

// GetCourseDetails returns one course. Anonymous callers and callers without
// an active enrollment get the course with locators hidden; enrolled callers
// get the full record plus their enrollment.
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.
		Preload("Modules").
		Preload("Videos").
		Preload("Schedule").
		Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Resolve the caller if a token was presented
	if subjectID, ok := c.Locals("subjectId").(string); ok {
		var user models.User
		if err := database.Database.Db.Where("subject_id = ? AND is_deleted = ?", subjectID, false).First(&user).Error; err == nil {
			var enrollment models.Enrollment
			err := database.Database.Db.
				Where("user_id = ? AND course_id = ?", user.ID, course.ID).
				Preload("Progress").
				First(&enrollment).Error
			if err == nil {
				result := utils.EvaluateAccess(&enrollment, &course, time.Now())
				if result.NeedsDeactivation {
					// Lazy expiry: correct the stored state on read
					database.Database.Db.Model(&enrollment).Update("is_active", false)
				}
				if result.HasAccess {
					return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
						"course":     course,
						"enrolled":   true,
						"enrollment": enrollment,
					})
				}
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollment!", nil)
			}
		}
	}

	hideLocators(&course)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":   course,
		"enrolled": false,
	})
}
