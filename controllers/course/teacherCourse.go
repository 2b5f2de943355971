package controllers

import (
	"github.com/Manel-Mahdjoubi/novexa/database"
	"github.com/Manel-Mahdjoubi/novexa/middleware"
	"github.com/Manel-Mahdjoubi/novexa/models"
	courseModels "github.com/Manel-Mahdjoubi/novexa/models/course"

	"github.com/gofiber/fiber/v2"
)

// loadOwnedCourse fetches a course and checks the caller may author it.
// Returns a nil course after writing the error response when not allowed.
func loadOwnedCourse(c *fiber.Ctx, courseID int) (*courseModels.Course, *models.User, error) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return nil, nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return nil, nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.TeacherID != user.ID && user.Role != models.RoleAdmin {
		return nil, nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	return &course, &user, nil
}

// CreateCourse creates a new draft course owned by the calling teacher
func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title              string `json:"title" validate:"required,min=3,max=200"`
		Description        string `json:"description" validate:"required"`
		Category           string `json:"category" validate:"required,max=100"`
		Level              string `json:"level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
		Duration           int64  `json:"duration" validate:"omitempty,min=0"`
		ThumbnailURL       string `json:"thumbnail_url"`
		CertificateEnabled *bool  `json:"certificate_enabled"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := courseModels.Course{
		TeacherID:    userID,
		Title:        reqData.Title,
		Description:  reqData.Description,
		Category:     reqData.Category,
		Duration:     reqData.Duration,
		ThumbnailURL: reqData.ThumbnailURL,
		Status:       "DRAFT",
		IsPublished:  false,
	}
	if reqData.Level != "" {
		course.Level = reqData.Level
	}
	if reqData.CertificateEnabled != nil {
		course.CertificateEnabled = *reqData.CertificateEnabled
	} else {
		course.CertificateEnabled = true
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse updates fields on an owned course
func UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	course, _, err := loadOwnedCourse(c, courseID)
	if course == nil {
		return err
	}

	reqData := new(struct {
		Title              *string `json:"title"`
		Description        *string `json:"description"`
		Category           *string `json:"category"`
		Level              *string `json:"level"`
		Duration           *int64  `json:"duration"`
		ThumbnailURL       *string `json:"thumbnail_url"`
		Status             *string `json:"status"`
		CertificateEnabled *bool   `json:"certificate_enabled"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Title != nil {
		course.Title = *reqData.Title
	}
	if reqData.Description != nil {
		course.Description = *reqData.Description
	}
	if reqData.Category != nil {
		course.Category = *reqData.Category
	}
	if reqData.Level != nil {
		course.Level = *reqData.Level
	}
	if reqData.Duration != nil {
		course.Duration = *reqData.Duration
	}
	if reqData.ThumbnailURL != nil {
		course.ThumbnailURL = *reqData.ThumbnailURL
	}
	if reqData.Status != nil {
		course.Status = *reqData.Status
	}
	if reqData.CertificateEnabled != nil {
		course.CertificateEnabled = *reqData.CertificateEnabled
	}

	if err := database.Database.Db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// PublishCourse marks an owned course published and active
func PublishCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	course, _, err := loadOwnedCourse(c, courseID)
	if course == nil {
		return err
	}

	var lectureCount int64
	database.Database.Db.Model(&courseModels.Lecture{}).
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Count(&lectureCount)
	if lectureCount == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot publish a course with no published lectures!", nil)
	}

	course.IsPublished = true
	course.Status = "ACTIVE"
	if err := database.Database.Db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", course)
}

// DeleteCourse soft-deletes an owned course
func DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	course, _, err := loadOwnedCourse(c, courseID)
	if course == nil {
		return err
	}

	course.IsDeleted = true
	course.IsPublished = false
	course.Status = "INACTIVE"
	if err := database.Database.Db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// GetMyCourses lists the calling teacher's courses, drafts included
func GetMyCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var courses []courseModels.Course
	if err := database.Database.Db.
		Where("teacher_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"total":   len(courses),
	})
}
