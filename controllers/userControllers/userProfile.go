package userController

import (
	"log"

	"github.com/Manel-Mahdjoubi/novexa/config"
	"github.com/Manel-Mahdjoubi/novexa/database"
	"github.com/Manel-Mahdjoubi/novexa/middleware"
	"github.com/Manel-Mahdjoubi/novexa/models"
	"github.com/Manel-Mahdjoubi/novexa/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// GetProfile returns the current user's profile
func GetProfile(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", user)
}

// UpdateProfile updates the display fields of the current user's profile
func UpdateProfile(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedProfile").(*struct {
		Name     string `json:"name" validate:"omitempty,min=2,max=100"`
		Headline string `json:"headline" validate:"omitempty,max=120"`
		Bio      string `json:"bio" validate:"omitempty,max=2000"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Name != "" {
		user.Name = reqData.Name
	}
	if reqData.Headline != "" {
		user.Headline = reqData.Headline
	}
	if reqData.Bio != "" {
		user.Bio = reqData.Bio
	}

	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully!", user)
}

// UploadProfileImage saves a new profile picture for the current user
func UploadProfileImage(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Image file is required!", nil)
	}

	path, err := utils.SaveUploadedFile(file, "public/uploads/profiles")
	if err != nil {
		log.Printf("Error saving profile image: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save image!", nil)
	}

	user.ProfileImage = utils.GetFileURL(path)
	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile image updated!", fiber.Map{
		"profile_image": user.ProfileImage,
	})
}

// ChangePassword updates the current user's password after verifying the old one
func ChangePassword(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData := new(struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	if len(reqData.NewPassword) < 8 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "New password must be at least 8 characters!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.OldPassword)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Old password is incorrect!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	user.Password = string(hashedPassword)
	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to change password!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password changed successfully!", nil)
}
