package courseController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	courseValidator "lms/validators/course"
	"time"

	"github.com/gofiber/fiber/v2"
)

func adminUser(c *fiber.Ctx) (*models.User, error) {
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

func buildScheduleSlots(courseID uint, slots []courseValidator.ScheduleSlotRequest) []models.ScheduleSlot {
	out := make([]models.ScheduleSlot, 0, len(slots))
	for _, slot := range slots {
		active := true
		if slot.IsActive != nil {
			active = *slot.IsActive
		}
		out = append(out, models.ScheduleSlot{
			CourseID:    courseID,
			DayOfWeek:   slot.DayOfWeek,
			Time:        slot.Time,
			MeetingLink: slot.MeetingLink,
			IsActive:    active,
		})
	}
	return out
}

// AdminCreateCourse creates a new course
func AdminCreateCourse(c *fiber.Ctx) error {
	user, err := adminUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := models.Course{
		Name:        reqData.Name,
		Description: reqData.Description,
		CourseType:  reqData.CourseType,
		Price:       *reqData.Price,
		Thumbnail:   reqData.Thumbnail,
		CreatedBy:   user.ID,
		IsActive:    true,
	}

	switch reqData.CourseType {
	case models.CourseTypeRecorded:
		course.ValidityMonths = reqData.ValidityMonths
		if course.ValidityMonths == 0 {
			course.ValidityMonths = utils.DefaultValidityMonths
		}
	case models.CourseTypeLive:
		course.DurationDays = reqData.DurationDays

		start := time.Now()
		if reqData.StartDate != "" {
			start, _ = time.Parse(time.RFC3339, reqData.StartDate)
		}
		course.StartDate = &start

		if reqData.EndDate != "" {
			end, _ := time.Parse(time.RFC3339, reqData.EndDate)
			course.EndDate = &end
		} else if reqData.DurationDays > 0 {
			end := start.AddDate(0, 0, reqData.DurationDays)
			course.EndDate = &end
		}
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	if len(reqData.Schedule) > 0 {
		slots := buildScheduleSlots(course.ID, reqData.Schedule)
		if err := database.Database.Db.Create(&slots).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create schedule!", nil)
		}
		course.Schedule = slots
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// AdminUpdateCourse updates an existing course. Fields belonging to the
// other course type are rejected rather than silently ignored.
func AdminUpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*courseValidator.UpdateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if course.CourseType == models.CourseTypeRecorded {
		if reqData.DurationDays > 0 || reqData.StartDate != "" || reqData.EndDate != "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Live-course fields cannot be set on a RECORDED course!", nil)
		}
	} else {
		if reqData.ValidityMonths > 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Validity cannot be set on a LIVE course!", nil)
		}
	}

	// Update only provided fields
	if reqData.Name != "" {
		course.Name = reqData.Name
	}
	if reqData.Description != "" {
		course.Description = reqData.Description
	}
	if reqData.Price != nil {
		course.Price = *reqData.Price
	}
	if reqData.Thumbnail != "" {
		course.Thumbnail = reqData.Thumbnail
	}
	if reqData.ValidityMonths > 0 {
		course.ValidityMonths = reqData.ValidityMonths
	}
	if reqData.DurationDays > 0 {
		course.DurationDays = reqData.DurationDays
	}
	if reqData.StartDate != "" {
		start, _ := time.Parse(time.RFC3339, reqData.StartDate)
		course.StartDate = &start
	}
	if reqData.EndDate != "" {
		end, _ := time.Parse(time.RFC3339, reqData.EndDate)
		course.EndDate = &end
	}

	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// AdminDeleteCourse soft-deactivates a course. Historical enrollments keep
// referencing it; access evaluation denies them from now on.
func AdminDeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsActive = false
	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deactivated successfully!", nil)
}

// AdminGetAllCourses lists all courses including deactivated ones
func AdminGetAllCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := database.Database.Db.
		Preload("Modules").
		Preload("Videos").
		Preload("Schedule").
		Order("created_at desc").
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

// AdminUpdateVideos replaces the videos and modules of a RECORDED course
func AdminUpdateVideos(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.CourseType != models.CourseTypeRecorded {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Can only add videos to RECORDED courses!", nil)
	}

	reqData, ok := c.Locals("validatedVideos").(*courseValidator.UpdateVideosRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	tx := database.Database.Db.Begin()

	if err := tx.Where("course_id = ?", course.ID).Delete(&models.CourseModule{}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update modules!", nil)
	}
	if err := tx.Where("course_id = ?", course.ID).Delete(&models.Video{}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update videos!", nil)
	}

	for _, module := range reqData.Modules {
		m := models.CourseModule{CourseID: course.ID, Name: module.Name, OrderIndex: module.OrderIndex}
		if err := tx.Create(&m).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update modules!", nil)
		}
	}
	for _, video := range reqData.Videos {
		v := models.Video{
			CourseID:   course.ID,
			ModuleID:   video.ModuleID,
			Title:      video.Title,
			URL:        video.URL,
			Duration:   video.Duration,
			OrderIndex: video.OrderIndex,
		}
		if err := tx.Create(&v).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update videos!", nil)
		}
	}

	tx.Commit()

	database.Database.Db.Preload("Modules").Preload("Videos").First(&course, course.ID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Videos updated successfully!", course)
}

// AdminUpdateSchedule replaces the weekly schedule of a LIVE course
func AdminUpdateSchedule(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.CourseType != models.CourseTypeLive {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Can only update schedule for LIVE courses!", nil)
	}

	reqData, ok := c.Locals("validatedSchedule").(*courseValidator.UpdateScheduleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	tx := database.Database.Db.Begin()

	if err := tx.Where("course_id = ?", course.ID).Delete(&models.ScheduleSlot{}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update schedule!", nil)
	}

	if len(reqData.Schedule) > 0 {
		slots := buildScheduleSlots(course.ID, reqData.Schedule)
		if err := tx.Create(&slots).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update schedule!", nil)
		}
	}

	tx.Commit()

	database.Database.Db.Preload("Schedule").First(&course, course.ID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Schedule updated successfully!", course)
}
