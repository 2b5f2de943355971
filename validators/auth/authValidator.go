package authValidator

import (
	"fmt"
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
		case "email":
			errors[field] = "Invalid email!"
		case "min":
			errors[field] = fmt.Sprintf("Must be at least %s characters long!", e.Param())
		case "max":
			errors[field] = fmt.Sprintf("Must be at most %s characters long!", e.Param())
		case "oneof":
			errors[field] = fmt.Sprintf("Must be one of: %s!", e.Param())
		default:
			errors[field] = "Invalid value!"
		}
	}
	return errors
}

// Signup validator middleware
func Signup() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name     string `json:"name" validate:"required,min=2,max=100"`
			Email    string `json:"email" validate:"required,email"`
			Password string `json:"password" validate:"required,min=8"`
			Role     string `json:"role" validate:"required,oneof=STUDENT TEACHER"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Email = strings.ToLower(strings.TrimSpace(reqData.Email))
		reqData.Name = strings.TrimSpace(reqData.Name)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedSignup", reqData)
		return c.Next()
	}
}
