package controllers

import (
	"log"

	"github.com/Manel-Mahdjoubi/novexa/database"
	"github.com/Manel-Mahdjoubi/novexa/middleware"
	"github.com/Manel-Mahdjoubi/novexa/models"
	courseModels "github.com/Manel-Mahdjoubi/novexa/models/course"
	"github.com/Manel-Mahdjoubi/novexa/utils"

	"github.com/gofiber/fiber/v2"
)

// EnrollInCourse enrolls the current user into a published course
func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	// Check if course exists and is active
	var course courseModels.Course
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ? AND is_published = ? AND status = ?", courseID, false, true, "ACTIVE").
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not active!", nil)
	}

	// Check if user is already enrolled
	var existingEnrollment courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&existingEnrollment).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", nil)
	}

	var totalLectures int64
	database.Database.Db.Model(&courseModels.Lecture{}).
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Count(&totalLectures)

	enrollment := courseModels.Enrollment{
		UserID:        userID,
		CourseID:      uint(courseID),
		Status:        "ENROLLED",
		TotalLectures: int(totalLectures),
	}

	if err := database.Database.Db.Create(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	// Confirmation mail is best-effort
	go func(email, name, courseTitle string) {
		if err := utils.SendEnrollmentEmail(email, name, courseTitle); err != nil {
			log.Printf("Error sending enrollment email to %s: %v", email, err)
		}
	}(user.Email, user.Name, course.Title)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course successfully!", enrollment)
}

// GetEnrollments lists the current user's enrollments with course info
func GetEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	type EnrollmentWithCourse struct {
		courseModels.Enrollment
		CourseTitle    string `json:"course_title"`
		CourseCategory string `json:"course_category"`
		ThumbnailURL   string `json:"thumbnail_url"`
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	result := make([]EnrollmentWithCourse, len(enrollments))
	for i, e := range enrollments {
		var course courseModels.Course
		database.Database.Db.Where("id = ?", e.CourseID).First(&course)
		result[i] = EnrollmentWithCourse{
			Enrollment:     e,
			CourseTitle:    course.Title,
			CourseCategory: course.Category,
			ThumbnailURL:   course.ThumbnailURL,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
		"total":       len(result),
	})
}
