package adminRoutes

import (
	controllers "github.com/Manel-Mahdjoubi/novexa/controllers/course"
	"github.com/Manel-Mahdjoubi/novexa/middleware"
	"github.com/Manel-Mahdjoubi/novexa/models"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up the admin dashboard and user management routes
func SetupAdminRoutes(app *fiber.App) {
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, adminOnly)

	adminGroup.Get("/dashboard/stats", controllers.GetPlatformStats)
	adminGroup.Get("/users", controllers.GetUserList)
	adminGroup.Put("/users/:userId/block", controllers.SetUserBlocked)
}
