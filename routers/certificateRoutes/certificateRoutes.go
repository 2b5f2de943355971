package certificateRoutes

import (
	controllers "github.com/Manel-Mahdjoubi/novexa/controllers/course"
	"github.com/Manel-Mahdjoubi/novexa/middleware"
	validators "github.com/Manel-Mahdjoubi/novexa/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCertificateRoutes sets up issuance, download, listing and the
// public verification endpoint.
func SetupCertificateRoutes(app *fiber.App) {
	certGroup := app.Group("/certificates")

	certGroup.Post("/generate", middleware.JWTMiddleware, validators.GenerateCertificate(), controllers.GenerateCertificate)
	certGroup.Get("/download/:certificateId", middleware.JWTMiddleware, controllers.DownloadCertificate)
	certGroup.Get("/student/:studentId", middleware.JWTMiddleware, controllers.GetStudentCertificates)

	// Public endpoint backing the QR code on the certificate itself
	certGroup.Get("/verify/:certificateId", controllers.VerifyCertificate)
}
