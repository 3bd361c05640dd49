package authController

import (
	"errors"
	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SyncUser mirrors the identity-provider account into the local users table.
// Called by the frontend after first login. The role claim is authoritative:
// it is written on every sync and never edited locally.
func SyncUser(c *fiber.Ctx) error {
	subjectID, ok := c.Locals("subjectId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	email, _ := c.Locals("email").(string)
	name, _ := c.Locals("name").(string)
	phone, _ := c.Locals("phone").(string)
	role, _ := c.Locals("role").(string)

	if email == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Identity token carries no email!", nil)
	}
	if name == "" {
		name = "User"
	}

	db := database.Database.Db

	var user models.User
	err := db.Where("subject_id = ?", subjectID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			SubjectID: subjectID,
			Email:     email,
			Name:      name,
			Phone:     phone,
			Role:      role,
		}
		if cerr := db.Create(&user).Error; cerr != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to sync user!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusCreated, true, "User synced successfully!", user)
	}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to sync user!", nil)
	}

	// Re-sync: refresh provider-owned fields, keep local profile edits
	user.Email = email
	user.Role = role
	if err := db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to sync user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User already synced!", user)
}

// GetProfile returns the caller's local profile
func GetProfile(c *fiber.Ctx) error {
	subjectID, ok := c.Locals("subjectId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("subject_id = ? AND is_deleted = ?", subjectID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found! Sync your account first.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched!", user)
}

// UpdateProfile updates name and phone. Email and role belong to the
// identity provider and are rejected here.
func UpdateProfile(c *fiber.Ctx) error {
	subjectID, ok := c.Locals("subjectId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("subject_id = ? AND is_deleted = ?", subjectID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found! Sync your account first.", nil)
	}

	reqData, ok := c.Locals("validatedProfile").(*struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Name != "" {
		user.Name = reqData.Name
	}
	if reqData.Phone != "" {
		user.Phone = reqData.Phone
	}

	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully!", user)
}
