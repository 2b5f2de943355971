package authRoutes

import (
	controllers "github.com/Manel-Mahdjoubi/novexa/controllers/auth"
	"github.com/Manel-Mahdjoubi/novexa/middleware"
	validators "github.com/Manel-Mahdjoubi/novexa/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up signup, login and email verification routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", validators.Signup(), controllers.Signup)
	authGroup.Post("/login", controllers.Login)
	authGroup.Post("/send-otp", controllers.SendOTP)
	authGroup.Post("/verify-otp", controllers.VerifyOTP)
	authGroup.Get("/login-history", middleware.JWTMiddleware, controllers.LoginHistoryList)
}
