package controllers

import (
	"github.com/Manel-Mahdjoubi/novexa/database"
	"github.com/Manel-Mahdjoubi/novexa/middleware"
	"github.com/Manel-Mahdjoubi/novexa/models"
	courseModels "github.com/Manel-Mahdjoubi/novexa/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists published active courses with pagination and optional filters
func GetAllCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedCourseList").(*struct {
		Page     *int   `json:"page"`
		Limit    *int   `json:"limit"`
		Category string `json:"category"`
		Search   string `json:"search"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	page := *reqData.Page
	limit := *reqData.Limit
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).
		Where("is_deleted = ? AND is_published = ? AND status = ?", false, true, "ACTIVE")

	if reqData.Category != "" {
		db = db.Where("category = ?", reqData.Category)
	}
	if reqData.Search != "" {
		db = db.Where("title ILIKE ?", "%"+reqData.Search+"%")
	}

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetCourseDetails returns a course with its chapter outline and rating summary
func GetCourseDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	query := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false)
	if err := query.First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Unpublished courses are visible only to the owning teacher and admins
	if !course.IsPublished && course.TeacherID != userID && user.Role != models.RoleAdmin {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var chapters []courseModels.Chapter
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&chapters)

	type ChapterOutline struct {
		courseModels.Chapter
		LectureCount int64 `json:"lecture_count"`
		QuizCount    int64 `json:"quiz_count"`
	}

	outline := make([]ChapterOutline, len(chapters))
	for i, ch := range chapters {
		var lectureCount, quizCount int64
		database.Database.Db.Model(&courseModels.Lecture{}).
			Where("chapter_id = ? AND is_deleted = ? AND is_published = ?", ch.ID, false, true).Count(&lectureCount)
		database.Database.Db.Model(&courseModels.Quiz{}).
			Where("chapter_id = ? AND is_deleted = ?", ch.ID, false).Count(&quizCount)
		outline[i] = ChapterOutline{Chapter: ch, LectureCount: lectureCount, QuizCount: quizCount}
	}

	var teacher models.User
	database.Database.Db.Select("id", "name", "headline", "profile_image").
		Where("id = ?", course.TeacherID).First(&teacher)

	var avgRating float64
	var ratingCount int64
	database.Database.Db.Model(&courseModels.Feedback{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).Count(&ratingCount)
	if ratingCount > 0 {
		database.Database.Db.Model(&courseModels.Feedback{}).
			Where("course_id = ? AND is_deleted = ?", courseID, false).
			Select("AVG(rating)").Scan(&avgRating)
	}

	var enrollment courseModels.Enrollment
	enrolled := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error == nil

	response := fiber.Map{
		"course":       course,
		"chapters":     outline,
		"teacher":      fiber.Map{"id": teacher.ID, "name": teacher.Name, "headline": teacher.Headline, "profile_image": teacher.ProfileImage},
		"avg_rating":   avgRating,
		"rating_count": ratingCount,
		"is_enrolled":  enrolled,
	}
	if enrolled {
		response["enrollment"] = enrollment
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", response)
}
