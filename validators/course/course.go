package courseValidator

import (
	"lms/middleware"
	"lms/models"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Helper to validate HH:MM time-of-day format
func isValidTimeOfDay(t string) bool {
	re := regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	return re.MatchString(t)
}

// ScheduleSlotRequest is one weekly live-session entry in a request body
type ScheduleSlotRequest struct {
	DayOfWeek   int    `json:"day_of_week"`
	Time        string `json:"time"`
	MeetingLink string `json:"meeting_link"`
	IsActive    *bool  `json:"is_active"`
}

// CreateCourseRequest is the admin course-creation body
type CreateCourseRequest struct {
	Name           string                `json:"name"`
	Description    string                `json:"description"`
	CourseType     string                `json:"course_type"`
	Price          *float64              `json:"price"`
	Thumbnail      string                `json:"thumbnail"`
	ValidityMonths int                   `json:"validity_months"`
	DurationDays   int                   `json:"duration_days"`
	StartDate      string                `json:"start_date"` // RFC3339
	EndDate        string                `json:"end_date"`
	Schedule       []ScheduleSlotRequest `json:"schedule"`
}

// UpdateCourseRequest allows partial course updates
type UpdateCourseRequest struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Price          *float64 `json:"price"`
	Thumbnail      string   `json:"thumbnail"`
	ValidityMonths int      `json:"validity_months"`
	DurationDays   int      `json:"duration_days"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
}

// VideoRequest is one video entry in the admin videos body
type VideoRequest struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	Duration   int    `json:"duration"`
	ModuleID   uint   `json:"module_id"`
	OrderIndex int    `json:"order_index"`
}

// ModuleRequest is one module entry in the admin videos body
type ModuleRequest struct {
	Name       string `json:"name"`
	OrderIndex int    `json:"order_index"`
}

// UpdateVideosRequest replaces a recorded course's videos and modules
type UpdateVideosRequest struct {
	Videos  []VideoRequest  `json:"videos"`
	Modules []ModuleRequest `json:"modules"`
}

// UpdateScheduleRequest replaces a live course's weekly schedule
type UpdateScheduleRequest struct {
	Schedule []ScheduleSlotRequest `json:"schedule"`
}

func validateScheduleSlots(slots []ScheduleSlotRequest, errors map[string]string) {
	for _, slot := range slots {
		if slot.DayOfWeek < 0 || slot.DayOfWeek > 6 {
			errors["schedule"] = "Day of week must be between 0 (Sunday) and 6 (Saturday)!"
		}
		if !isValidTimeOfDay(slot.Time) {
			errors["schedule"] = "Schedule time must be in HH:MM format!"
		}
		if strings.TrimSpace(slot.MeetingLink) == "" {
			errors["schedule"] = "Meeting link is required for every schedule slot!"
		}
	}
}

// CourseID validates the :id route parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		// Validate CourseID is a valid integer
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// CourseList validates the public catalog filters
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseType := strings.TrimSpace(c.Query("type"))
		if courseType != "" && courseType != models.CourseTypeRecorded && courseType != models.CourseTypeLive {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course type must be RECORDED or LIVE!", nil)
		}

		c.Locals("courseType", courseType)
		return c.Next()
	}
}

// CreateCourseAdmin validates the admin course-creation body
func CreateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Course name is required!"
		}
		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Course description is required!"
		}
		if reqData.Price == nil || *reqData.Price < 0 {
			errors["price"] = "Price is required and must not be negative!"
		}

		switch reqData.CourseType {
		case models.CourseTypeRecorded:
			if reqData.ValidityMonths < 0 {
				errors["validity_months"] = "Validity must not be negative!"
			}
		case models.CourseTypeLive:
			if reqData.DurationDays <= 0 {
				errors["duration_days"] = "Duration in days is required for LIVE courses!"
			}
			if reqData.StartDate != "" {
				if _, err := time.Parse(time.RFC3339, reqData.StartDate); err != nil {
					errors["start_date"] = "Start date must be RFC3339!"
				}
			}
			if reqData.EndDate != "" {
				if _, err := time.Parse(time.RFC3339, reqData.EndDate); err != nil {
					errors["end_date"] = "End date must be RFC3339!"
				}
			}
			validateScheduleSlots(reqData.Schedule, errors)
		default:
			errors["course_type"] = "Course type must be RECORDED or LIVE!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourseAdmin validates the admin course-update body
func UpdateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Price != nil && *reqData.Price < 0 {
			errors["price"] = "Price must not be negative!"
		}
		if reqData.ValidityMonths < 0 {
			errors["validity_months"] = "Validity must not be negative!"
		}
		if reqData.StartDate != "" {
			if _, err := time.Parse(time.RFC3339, reqData.StartDate); err != nil {
				errors["start_date"] = "Start date must be RFC3339!"
			}
		}
		if reqData.EndDate != "" {
			if _, err := time.Parse(time.RFC3339, reqData.EndDate); err != nil {
				errors["end_date"] = "End date must be RFC3339!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// UpdateVideosAdmin validates the recorded-course videos body
func UpdateVideosAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateVideosRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		for _, video := range reqData.Videos {
			if strings.TrimSpace(video.Title) == "" {
				errors["videos"] = "Every video needs a title!"
			}
			if strings.TrimSpace(video.URL) == "" {
				errors["videos"] = "Every video needs a source URL!"
			}
			if video.Duration <= 0 {
				errors["videos"] = "Every video needs a positive duration!"
			}
		}
		for _, module := range reqData.Modules {
			if strings.TrimSpace(module.Name) == "" {
				errors["modules"] = "Every module needs a name!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedVideos", reqData)
		return c.Next()
	}
}

// UpdateScheduleAdmin validates the live-course schedule body
func UpdateScheduleAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateScheduleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		validateScheduleSlots(reqData.Schedule, errors)

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSchedule", reqData)
		return c.Next()
	}
}
