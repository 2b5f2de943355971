package controllers

import (
	"strconv"

	"github.com/Manel-Mahdjoubi/novexa/database"
	"github.com/Manel-Mahdjoubi/novexa/middleware"
	"github.com/Manel-Mahdjoubi/novexa/models"
	courseModels "github.com/Manel-Mahdjoubi/novexa/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetPlatformStats returns headline counts for the admin dashboard
func GetPlatformStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalStudents, totalTeachers, totalCourses, publishedCourses int64
	var totalEnrollments, completedEnrollments, totalCertificates, totalFeedback int64

	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", models.RoleStudent, false).Count(&totalStudents)
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", models.RoleTeacher, false).Count(&totalTeachers)
	db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	db.Model(&courseModels.Course{}).Where("is_published = ? AND is_deleted = ?", true, false).Count(&publishedCourses)
	db.Model(&courseModels.Enrollment{}).Where("is_deleted = ?", false).Count(&totalEnrollments)
	db.Model(&courseModels.Enrollment{}).Where("status = ? AND is_deleted = ?", "COMPLETED", false).Count(&completedEnrollments)
	db.Model(&courseModels.Certificate{}).Where("is_deleted = ?", false).Count(&totalCertificates)
	db.Model(&courseModels.Feedback{}).Where("is_deleted = ?", false).Count(&totalFeedback)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Platform stats fetched successfully!", fiber.Map{
		"total_students":        totalStudents,
		"total_teachers":        totalTeachers,
		"total_courses":         totalCourses,
		"published_courses":     publishedCourses,
		"total_enrollments":     totalEnrollments,
		"completed_enrollments": completedEnrollments,
		"total_certificates":    totalCertificates,
		"total_feedback":        totalFeedback,
	})
}

// GetUserList returns a paginated list of platform users
func GetUserList(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := database.Database.Db.Model(&models.User{}).Where("is_deleted = ?", false)
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ? OR email ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	var users []models.User
	if err := query.
		Omit("password").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
		"users": users,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// SetUserBlocked blocks or unblocks a user account
func SetUserBlocked(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	targetID, err := strconv.Atoi(c.Params("userId"))
	if err != nil || targetID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}
	if uint(targetID) == adminID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You cannot block your own account!", nil)
	}

	reqData := new(struct {
		Blocked bool `json:"blocked"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := database.Database.Db.Model(&user).Update("is_blocked", reqData.Blocked).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	message := "User unblocked successfully!"
	if reqData.Blocked {
		message = "User blocked successfully!"
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
		"user_id": user.ID,
		"blocked": reqData.Blocked,
	})
}
