package userValidator

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
		case "min":
			errors[field] = fmt.Sprintf("Must be at least %s characters long!", e.Param())
		case "max":
			errors[field] = fmt.Sprintf("Must be at most %s characters long!", e.Param())
		default:
			errors[field] = "Invalid value!"
		}
	}
	return errors
}

// UpdateProfile validator middleware
func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name     string `json:"name" validate:"omitempty,min=2,max=100"`
			Headline string `json:"headline" validate:"omitempty,max=120"`
			Bio      string `json:"bio" validate:"omitempty,max=2000"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Name = strings.TrimSpace(reqData.Name)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedProfile", reqData)
		return c.Next()
	}
}
