package controllers

import (
	"github.com/Manel-Mahdjoubi/novexa/database"
	"github.com/Manel-Mahdjoubi/novexa/middleware"
	courseModels "github.com/Manel-Mahdjoubi/novexa/models/course"

	"github.com/gofiber/fiber/v2"
)

// CreateChapter adds a chapter to an owned course
func CreateChapter(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	course, _, err := loadOwnedCourse(c, courseID)
	if course == nil {
		return err
	}

	reqData := new(struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		OrderIndex  int    `json:"order_index"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.Title == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Chapter title is required!", nil)
	}

	chapter := courseModels.Chapter{
		CourseID:    uint(courseID),
		Title:       reqData.Title,
		Description: reqData.Description,
		OrderIndex:  reqData.OrderIndex,
	}
	if err := database.Database.Db.Create(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Chapter created successfully!", chapter)
}

// UpdateChapter updates a chapter of an owned course
func UpdateChapter(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	chapterID := c.Locals("chapterID").(int)
	course, _, err := loadOwnedCourse(c, courseID)
	if course == nil {
		return err
	}

	var chapter courseModels.Chapter
	if err := database.Database.Db.
		Where("id = ? AND course_id = ? AND is_deleted = ?", chapterID, courseID, false).
		First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	reqData := new(struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		OrderIndex  *int    `json:"order_index"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Title != nil {
		chapter.Title = *reqData.Title
	}
	if reqData.Description != nil {
		chapter.Description = *reqData.Description
	}
	if reqData.OrderIndex != nil {
		chapter.OrderIndex = *reqData.OrderIndex
	}

	if err := database.Database.Db.Save(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter updated successfully!", chapter)
}

// DeleteChapter soft-deletes a chapter and its lectures
func DeleteChapter(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	chapterID := c.Locals("chapterID").(int)
	course, _, err := loadOwnedCourse(c, courseID)
	if course == nil {
		return err
	}

	var chapter courseModels.Chapter
	if err := database.Database.Db.
		Where("id = ? AND course_id = ? AND is_deleted = ?", chapterID, courseID, false).
		First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	tx := database.Database.Db.Begin()
	if err := tx.Model(&courseModels.Chapter{}).Where("id = ?", chapterID).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete chapter!", nil)
	}
	if err := tx.Model(&courseModels.Lecture{}).Where("chapter_id = ?", chapterID).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete chapter!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter deleted successfully!", nil)
}

// CreateLecture adds a lecture to a chapter of an owned course
func CreateLecture(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	chapterID := c.Locals("chapterID").(int)
	course, _, err := loadOwnedCourse(c, courseID)
	if course == nil {
		return err
	}

	var chapter courseModels.Chapter
	if err := database.Database.Db.
		Where("id = ? AND course_id = ? AND is_deleted = ?", chapterID, courseID, false).
		First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	reqData, ok := c.Locals("validatedLecture").(*struct {
		Title       string `json:"title" validate:"required,min=3,max=200"`
		Description string `json:"description"`
		ContentType string `json:"content_type" validate:"required,oneof=TEXT VIDEO"`
		TextContent string `json:"text_content"`
		VideoURL    string `json:"video_url"`
		Duration    int    `json:"duration" validate:"omitempty,min=0"`
		OrderIndex  int    `json:"order_index"`
		IsPublished bool   `json:"is_published"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lecture := courseModels.Lecture{
		CourseID:    uint(courseID),
		ChapterID:   uint(chapterID),
		Title:       reqData.Title,
		Description: reqData.Description,
		ContentType: reqData.ContentType,
		TextContent: reqData.TextContent,
		VideoURL:    reqData.VideoURL,
		Duration:    reqData.Duration,
		OrderIndex:  reqData.OrderIndex,
		IsPublished: reqData.IsPublished,
	}
	if err := database.Database.Db.Create(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lecture!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lecture created successfully!", lecture)
}

// UpdateLecture updates a lecture of an owned course
func UpdateLecture(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	lectureID := c.Locals("lectureID").(int)
	course, _, err := loadOwnedCourse(c, courseID)
	if course == nil {
		return err
	}

	var lecture courseModels.Lecture
	if err := database.Database.Db.
		Where("id = ? AND course_id = ? AND is_deleted = ?", lectureID, courseID, false).
		First(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
	}

	reqData := new(struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		ContentType *string `json:"content_type"`
		TextContent *string `json:"text_content"`
		VideoURL    *string `json:"video_url"`
		Duration    *int    `json:"duration"`
		OrderIndex  *int    `json:"order_index"`
		IsPublished *bool   `json:"is_published"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Title != nil {
		lecture.Title = *reqData.Title
	}
	if reqData.Description != nil {
		lecture.Description = *reqData.Description
	}
	if reqData.ContentType != nil {
		lecture.ContentType = *reqData.ContentType
	}
	if reqData.TextContent != nil {
		lecture.TextContent = *reqData.TextContent
	}
	if reqData.VideoURL != nil {
		lecture.VideoURL = *reqData.VideoURL
	}
	if reqData.Duration != nil {
		lecture.Duration = *reqData.Duration
	}
	if reqData.OrderIndex != nil {
		lecture.OrderIndex = *reqData.OrderIndex
	}
	if reqData.IsPublished != nil {
		lecture.IsPublished = *reqData.IsPublished
	}

	if err := database.Database.Db.Save(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lecture!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture updated successfully!", lecture)
}

// CreateQuiz adds a quiz with questions and options to a chapter
func CreateQuiz(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	chapterID := c.Locals("chapterID").(int)
	course, _, err := loadOwnedCourse(c, courseID)
	if course == nil {
		return err
	}

	var chapter courseModels.Chapter
	if err := database.Database.Db.
		Where("id = ? AND course_id = ? AND is_deleted = ?", chapterID, courseID, false).
		First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	reqData := new(struct {
		Title      string `json:"title"`
		OrderIndex int    `json:"order_index"`
		Questions  []struct {
			QuestionText string `json:"question_text"`
			OrderIndex   int    `json:"order_index"`
			Options      []struct {
				OptionText string `json:"option_text"`
				IsCorrect  bool   `json:"is_correct"`
				OrderIndex int    `json:"order_index"`
			} `json:"options"`
		} `json:"questions"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.Title == "" || len(reqData.Questions) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Quiz title and at least one question are required!", nil)
	}
	for _, q := range reqData.Questions {
		hasCorrect := false
		for _, opt := range q.Options {
			if opt.IsCorrect {
				hasCorrect = true
			}
		}
		if len(q.Options) < 2 || !hasCorrect {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Each question needs at least two options and one correct answer!", nil)
		}
	}

	quiz := courseModels.Quiz{
		CourseID:   uint(courseID),
		ChapterID:  uint(chapterID),
		Title:      reqData.Title,
		OrderIndex: reqData.OrderIndex,
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&quiz).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}
	for _, q := range reqData.Questions {
		question := courseModels.QuizQuestion{
			QuizID:       quiz.ID,
			QuestionText: q.QuestionText,
			OrderIndex:   q.OrderIndex,
		}
		if err := tx.Create(&question).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
		}
		for _, opt := range q.Options {
			option := courseModels.QuizOption{
				QuestionID: question.ID,
				OptionText: opt.OptionText,
				IsCorrect:  opt.IsCorrect,
				OrderIndex: opt.OrderIndex,
			}
			if err := tx.Create(&option).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
			}
		}
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", quiz)
}

// DeleteQuiz soft-deletes a quiz and its questions
func DeleteQuiz(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	quizID := c.Locals("quizID").(int)
	course, _, err := loadOwnedCourse(c, courseID)
	if course == nil {
		return err
	}

	var quiz courseModels.Quiz
	if err := database.Database.Db.
		Where("id = ? AND course_id = ? AND is_deleted = ?", quizID, courseID, false).
		First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	if err := database.Database.Db.Model(&courseModels.Quiz{}).
		Where("id = ?", quizID).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz deleted successfully!", nil)
}
