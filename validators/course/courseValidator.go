package courseValidator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Manel-Mahdjoubi/novexa/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// Helper to turn validator errors into a field -> message map
func fieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["body"] = "Invalid request data!"
		return errors
	}
	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errors[field] = "This field is required!"
		case "min":
			errors[field] = fmt.Sprintf("Must be at least %s!", e.Param())
		case "max":
			errors[field] = fmt.Sprintf("Must be at most %s!", e.Param())
		case "oneof":
			errors[field] = fmt.Sprintf("Must be one of: %s!", e.Param())
		default:
			errors[field] = "Invalid value!"
		}
	}
	return errors
}

// Helper to validate a positive integer route param into Locals
func paramID(localKey, paramName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params(paramName))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+paramName+"!", nil)
		}
		c.Locals(localKey, id)
		return c.Next()
	}
}

// CourseID validates the :courseId route param
func CourseID() fiber.Handler {
	return paramID("courseID", "courseId")
}

// ChapterID validates the :chapterId route param
func ChapterID() fiber.Handler {
	return paramID("chapterID", "chapterId")
}

// LectureID validates the :lectureId route param
func LectureID() fiber.Handler {
	return paramID("lectureID", "lectureId")
}

// QuizID validates the :quizId route param
func QuizID() fiber.Handler {
	return paramID("quizID", "quizId")
}

// CourseList validator middleware for the public catalogue query
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := strconv.Atoi(c.Query("page", "1"))
		if err != nil || page < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid page!", nil)
		}
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil || limit < 1 || limit > 100 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid limit!", nil)
		}

		reqData := &struct {
			Page     *int   `json:"page"`
			Limit    *int   `json:"limit"`
			Category string `json:"category"`
			Search   string `json:"search"`
		}{
			Page:     &page,
			Limit:    &limit,
			Category: strings.TrimSpace(c.Query("category")),
			Search:   strings.TrimSpace(c.Query("search")),
		}

		c.Locals("validatedCourseList", reqData)
		return c.Next()
	}
}

// CreateCourse validator middleware
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title              string `json:"title" validate:"required,min=3,max=200"`
			Description        string `json:"description" validate:"required"`
			Category           string `json:"category" validate:"required,max=100"`
			Level              string `json:"level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
			Duration           int64  `json:"duration" validate:"omitempty,min=0"`
			ThumbnailURL       string `json:"thumbnail_url"`
			CertificateEnabled *bool  `json:"certificate_enabled"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// CreateLecture validator middleware
func CreateLecture() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title" validate:"required,min=3,max=200"`
			Description string `json:"description"`
			ContentType string `json:"content_type" validate:"required,oneof=TEXT VIDEO"`
			TextContent string `json:"text_content"`
			VideoURL    string `json:"video_url"`
			Duration    int    `json:"duration" validate:"omitempty,min=0"`
			OrderIndex  int    `json:"order_index"`
			IsPublished bool   `json:"is_published"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		errors := make(map[string]string)
		if reqData.ContentType == "TEXT" && strings.TrimSpace(reqData.TextContent) == "" {
			errors["text_content"] = "Text content is required for TEXT lectures!"
		}
		if reqData.ContentType == "VIDEO" && strings.TrimSpace(reqData.VideoURL) == "" {
			errors["video_url"] = "Video URL is required for VIDEO lectures!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLecture", reqData)
		return c.Next()
	}
}

// SubmitFeedback validator middleware
func SubmitFeedback() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID uint   `json:"course_id" validate:"required"`
			Rating   int    `json:"rating" validate:"required,min=1,max=5"`
			Comment  string `json:"comment" validate:"omitempty,max=2000"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedFeedback", reqData)
		return c.Next()
	}
}

// GenerateCertificate validator middleware
func GenerateCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			StudentID uint   `json:"student_id" validate:"required"`
			CourseID  uint   `json:"course_id" validate:"required"`
			Format    string `json:"format" validate:"omitempty,oneof=png jpg pdf"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Format = strings.ToLower(strings.TrimSpace(reqData.Format))

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedCertificate", reqData)
		return c.Next()
	}
}
