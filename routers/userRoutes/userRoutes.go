package userRoutes

import (
	controllers "github.com/Manel-Mahdjoubi/novexa/controllers/userControllers"
	"github.com/Manel-Mahdjoubi/novexa/middleware"
	validators "github.com/Manel-Mahdjoubi/novexa/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up profile management routes
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/profile", middleware.JWTMiddleware, controllers.GetProfile)
	userGroup.Put("/profile", middleware.JWTMiddleware, validators.UpdateProfile(), controllers.UpdateProfile)
	userGroup.Post("/profile/image", middleware.JWTMiddleware, controllers.UploadProfileImage)
	userGroup.Put("/change-password", middleware.JWTMiddleware, controllers.ChangePassword)
}
