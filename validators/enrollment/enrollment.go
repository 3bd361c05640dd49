package enrollmentValidator

import (
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// CheckAccess validates the admission-check body
func CheckAccess() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID uint `json:"course_id"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.CourseID == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		c.Locals("validatedCheckAccess", reqData)
		return c.Next()
	}
}

// RecordProgress validates the video-progress body
func RecordProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID        uint `json:"course_id"`
			VideoID         uint `json:"video_id"`
			WatchedDuration int  `json:"watched_duration"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourseID == 0 {
			errors["course_id"] = "Course ID is required!"
		}
		if reqData.VideoID == 0 {
			errors["video_id"] = "Video ID is required!"
		}
		if reqData.WatchedDuration < 0 {
			errors["watched_duration"] = "Watched duration must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}
