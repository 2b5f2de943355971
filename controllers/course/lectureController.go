package controllers

import (
	"time"

	"github.com/Manel-Mahdjoubi/novexa/database"
	"github.com/Manel-Mahdjoubi/novexa/middleware"
	"github.com/Manel-Mahdjoubi/novexa/models"
	courseModels "github.com/Manel-Mahdjoubi/novexa/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetCourseContent returns the chapter/lecture tree for an enrolled user
func GetCourseContent(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	// Only enrolled users (or the owning teacher / admins) see lecture content
	var enrollment courseModels.Enrollment
	enrolled := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error == nil

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !enrolled && course.TeacherID != userID && user.Role != models.RoleAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var chapters []courseModels.Chapter
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&chapters)

	type ChapterContent struct {
		courseModels.Chapter
		Lectures []courseModels.Lecture `json:"lectures"`
		Quizzes  []courseModels.Quiz    `json:"quizzes"`
	}

	content := make([]ChapterContent, len(chapters))
	for i, ch := range chapters {
		var lectures []courseModels.Lecture
		database.Database.Db.
			Where("chapter_id = ? AND is_deleted = ? AND is_published = ?", ch.ID, false, true).
			Order("order_index asc").Find(&lectures)

		var quizzes []courseModels.Quiz
		database.Database.Db.
			Where("chapter_id = ? AND is_deleted = ?", ch.ID, false).
			Order("order_index asc").Find(&quizzes)

		content[i] = ChapterContent{Chapter: ch, Lectures: lectures, Quizzes: quizzes}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course content fetched successfully!", fiber.Map{
		"course":   course,
		"chapters": content,
	})
}

// MarkLectureComplete records lecture completion and recomputes progress
func MarkLectureComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lectureID := c.Locals("lectureID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var lecture courseModels.Lecture
	if err := database.Database.Db.
		Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?", lectureID, courseID, false, true).
		First(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
	}

	// Already completed is a no-op success
	var existing courseModels.LectureCompletion
	if err := database.Database.Db.
		Where("user_id = ? AND lecture_id = ? AND is_deleted = ?", userID, lectureID, false).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture already completed!", existing)
	}

	completion := courseModels.LectureCompletion{
		UserID:    userID,
		CourseID:  uint(courseID),
		LectureID: uint(lectureID),
		Status:    "COMPLETED",
	}
	if err := database.Database.Db.Create(&completion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark lecture complete!", nil)
	}

	updateEnrollmentProgress(userID, uint(courseID))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture marked as completed!", completion)
}

// GetUserProgress gets the user's progress in a course, chapter by chapter
func GetUserProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var completions []courseModels.LectureCompletion
	database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		Find(&completions)

	completedIDs := make([]uint, len(completions))
	for i, cc := range completions {
		completedIDs[i] = cc.LectureID
	}

	var chapters []courseModels.Chapter
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&chapters)

	type ChapterProgress struct {
		ChapterID         uint    `json:"chapter_id"`
		ChapterName       string  `json:"chapter_name"`
		TotalLectures     int64   `json:"total_lectures"`
		CompletedLectures int64   `json:"completed_lectures"`
		Progress          float64 `json:"progress"`
	}

	chapterProgress := make([]ChapterProgress, len(chapters))
	for i, ch := range chapters {
		var total int64
		var completed int64

		database.Database.Db.Model(&courseModels.Lecture{}).
			Where("chapter_id = ? AND is_deleted = ? AND is_published = ?", ch.ID, false, true).
			Count(&total)
		database.Database.Db.Model(&courseModels.LectureCompletion{}).
			Joins("JOIN lectures ON lecture_completions.lecture_id = lectures.id").
			Where("lecture_completions.user_id = ? AND lectures.chapter_id = ? AND lecture_completions.is_deleted = ?", userID, ch.ID, false).
			Count(&completed)

		progress := float64(0)
		if total > 0 {
			progress = float64(completed) / float64(total) * 100
		}

		chapterProgress[i] = ChapterProgress{
			ChapterID:         ch.ID,
			ChapterName:       ch.Title,
			TotalLectures:     total,
			CompletedLectures: completed,
			Progress:          progress,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment":       enrollment,
		"completed_ids":    completedIDs,
		"chapter_progress": chapterProgress,
	})
}

// updateEnrollmentProgress updates the enrollment progress after lecture completion
func updateEnrollmentProgress(userID uint, courseID uint) {
	var totalLectures int64
	var completedLectures int64

	database.Database.Db.Model(&courseModels.Lecture{}).
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Count(&totalLectures)
	database.Database.Db.Model(&courseModels.LectureCompletion{}).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		Count(&completedLectures)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error; err != nil {
		return
	}

	enrollment.CompletedLectures = int(completedLectures)
	enrollment.TotalLectures = int(totalLectures)

	if totalLectures > 0 {
		enrollment.Progress = float64(completedLectures) / float64(totalLectures) * 100
	}

	if enrollment.Progress >= 100 {
		enrollment.Status = "COMPLETED"
		if enrollment.CompletedAt == nil {
			now := time.Now()
			enrollment.CompletedAt = &now
		}
	} else if enrollment.Progress > 0 {
		enrollment.Status = "IN_PROGRESS"
	}

	database.Database.Db.Save(&enrollment)
}
