package controllers

import (
	"github.com/Manel-Mahdjoubi/novexa/database"
	"github.com/Manel-Mahdjoubi/novexa/middleware"
	"github.com/Manel-Mahdjoubi/novexa/models"
	courseModels "github.com/Manel-Mahdjoubi/novexa/models/course"

	"github.com/gofiber/fiber/v2"
)

// SubmitFeedback creates or updates the caller's feedback for an enrolled course
func SubmitFeedback(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedFeedback").(*struct {
		CourseID uint   `json:"course_id" validate:"required"`
		Rating   int    `json:"rating" validate:"required,min=1,max=5"`
		Comment  string `json:"comment" validate:"omitempty,max=2000"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, reqData.CourseID, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must be enrolled in the course to leave feedback!", nil)
	}

	var feedback courseModels.Feedback
	err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, reqData.CourseID, false).
		First(&feedback).Error
	if err == nil {
		feedback.Rating = reqData.Rating
		feedback.Comment = reqData.Comment
		if err := database.Database.Db.Save(&feedback).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update feedback!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Feedback updated successfully!", feedback)
	}

	feedback = courseModels.Feedback{
		UserID:   userID,
		CourseID: reqData.CourseID,
		Rating:   reqData.Rating,
		Comment:  reqData.Comment,
	}
	if err := database.Database.Db.Create(&feedback).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit feedback!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Feedback submitted successfully!", feedback)
}

// ListCourseFeedback returns feedback for a course with the average rating
func ListCourseFeedback(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", courseID, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	type feedbackView struct {
		ID        uint   `json:"id"`
		UserName  string `json:"user_name"`
		Rating    int    `json:"rating"`
		Comment   string `json:"comment"`
		CreatedAt string `json:"created_at"`
	}

	var rows []feedbackView
	if err := database.Database.Db.Model(&courseModels.Feedback{}).
		Select("feedbacks.id, users.name AS user_name, feedbacks.rating, feedbacks.comment, feedbacks.created_at").
		Joins("JOIN users ON users.id = feedbacks.user_id").
		Where("feedbacks.course_id = ? AND feedbacks.is_deleted = ?", courseID, false).
		Order("feedbacks.created_at DESC").
		Scan(&rows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch feedback!", nil)
	}

	var avgRating float64
	database.Database.Db.Model(&courseModels.Feedback{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Select("COALESCE(AVG(rating), 0)").Scan(&avgRating)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Feedback fetched successfully!", fiber.Map{
		"feedback":       rows,
		"average_rating": avgRating,
		"total":          len(rows),
	})
}
