package controllers

import (
	"encoding/json"

	"github.com/Manel-Mahdjoubi/novexa/database"
	"github.com/Manel-Mahdjoubi/novexa/middleware"
	"github.com/Manel-Mahdjoubi/novexa/models"
	courseModels "github.com/Manel-Mahdjoubi/novexa/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// GetQuiz returns a quiz with its questions and options (correct flags hidden)
func GetQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	quizID := c.Locals("quizID").(int)

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	// Check enrollment
	var enrollment courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, quiz.CourseID, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var questions []courseModels.QuizQuestion
	database.Database.Db.Where("quiz_id = ? AND is_deleted = ?", quizID, false).Order("order_index asc").Find(&questions)

	type OptionView struct {
		ID         uint   `json:"id"`
		OptionText string `json:"option_text"`
		OrderIndex int    `json:"order_index"`
	}
	type QuestionView struct {
		courseModels.QuizQuestion
		Options []OptionView `json:"options"`
	}

	result := make([]QuestionView, len(questions))
	for i, q := range questions {
		var options []courseModels.QuizOption
		database.Database.Db.Where("question_id = ? AND is_deleted = ?", q.ID, false).Order("order_index asc").Find(&options)

		views := make([]OptionView, len(options))
		for j, opt := range options {
			views[j] = OptionView{ID: opt.ID, OptionText: opt.OptionText, OrderIndex: opt.OrderIndex}
		}
		result[i] = QuestionView{QuizQuestion: q, Options: views}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", fiber.Map{
		"quiz":      quiz,
		"questions": result,
	})
}

// SubmitQuizAttempt grades a quiz submission and stores the attempt
func SubmitQuizAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	quizID := c.Locals("quizID").(int)

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	// Check enrollment
	var enrollment courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, quiz.CourseID, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	reqData := new(struct {
		// question ID -> selected option IDs
		Answers map[uint][]uint `json:"answers"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if len(reqData.Answers) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please answer at least one question!", nil)
	}

	var questions []courseModels.QuizQuestion
	database.Database.Db.Where("quiz_id = ? AND is_deleted = ?", quizID, false).Find(&questions)
	if len(questions) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Quiz has no questions!", nil)
	}

	// Grade: a question counts as correct when the selected set matches the
	// correct set exactly
	correctCount := 0
	for _, q := range questions {
		var correctOptions []courseModels.QuizOption
		database.Database.Db.
			Where("question_id = ? AND is_correct = ? AND is_deleted = ?", q.ID, true, false).
			Find(&correctOptions)

		correctIDs := make(map[uint]bool)
		for _, opt := range correctOptions {
			correctIDs[opt.ID] = true
		}

		selected := reqData.Answers[q.ID]
		if len(selected) != len(correctIDs) || len(correctIDs) == 0 {
			continue
		}
		matches := 0
		for _, id := range selected {
			if correctIDs[id] {
				matches++
			}
		}
		if matches == len(correctIDs) {
			correctCount++
		}
	}

	score := correctCount * 100 / len(questions)

	// Get attempt number
	var attemptCount int64
	database.Database.Db.Model(&courseModels.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ? AND is_deleted = ?", userID, quizID, false).
		Count(&attemptCount)

	selectedJSON, _ := json.Marshal(reqData.Answers)

	attempt := courseModels.QuizAttempt{
		UserID:          userID,
		QuizID:          uint(quizID),
		SelectedOptions: datatypes.JSON(selectedJSON),
		Score:           score,
		CorrectAnswers:  correctCount,
		TotalQuestions:  len(questions),
		AttemptNumber:   int(attemptCount) + 1,
		Status:          "COMPLETED",
	}

	if err := database.Database.Db.Create(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit attempt!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt submitted!", fiber.Map{
		"attempt":         attempt,
		"score":           score,
		"correct_answers": correctCount,
		"total_questions": len(questions),
	})
}

// GetQuizAttempts lists the user's attempts and best score for a quiz
func GetQuizAttempts(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("quizID").(int)

	var attempts []courseModels.QuizAttempt
	if err := database.Database.Db.
		Where("user_id = ? AND quiz_id = ? AND is_deleted = ?", userID, quizID, false).
		Order("attempt_number asc").
		Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	best := 0
	for _, a := range attempts {
		if a.Score > best {
			best = a.Score
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", fiber.Map{
		"attempts":   attempts,
		"best_score": best,
		"total":      len(attempts),
	})
}
