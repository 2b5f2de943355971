package main

import (
	"log"

	"github.com/Manel-Mahdjoubi/novexa/certificate"
	"github.com/Manel-Mahdjoubi/novexa/config"
	courseControllers "github.com/Manel-Mahdjoubi/novexa/controllers/course"
	"github.com/Manel-Mahdjoubi/novexa/database"
	"github.com/Manel-Mahdjoubi/novexa/routers/adminRoutes"
	"github.com/Manel-Mahdjoubi/novexa/routers/authRoutes"
	"github.com/Manel-Mahdjoubi/novexa/routers/certificateRoutes"
	"github.com/Manel-Mahdjoubi/novexa/routers/courseRoutes"
	"github.com/Manel-Mahdjoubi/novexa/routers/userRoutes"
	"github.com/Manel-Mahdjoubi/novexa/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	// Certificate pipeline wiring
	cipher, err := certificate.NewCipher(config.AppConfig.CertEncryptionKey)
	if err != nil {
		log.Fatalf("Invalid certificate encryption key: %v", err)
	}
	renderer, err := certificate.NewTemplateRenderer(config.AppConfig.CertTemplatePath)
	if err != nil {
		log.Fatalf("Failed to load certificate template: %v", err)
	}
	var uploader certificate.Uploader
	if config.AppConfig.CloudinaryCloudName != "" {
		uploader = certificate.NewCloudinaryClient(
			config.AppConfig.CloudinaryCloudName,
			config.AppConfig.CloudinaryUploadPreset,
		)
	}
	certService := certificate.NewService(
		database.Database.Db,
		cipher,
		renderer,
		uploader,
		certificate.Config{
			VerifyBaseURL: config.AppConfig.VerifyBaseURL,
			PassThreshold: config.AppConfig.QuizPassThreshold,
			UploadFolder:  config.AppConfig.CertUploadFolder,
		},
	)
	courseControllers.InitCertificateService(certService)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupTeacherRoutes(app)
	certificateRoutes.SetupCertificateRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	cleanup := utils.StartCleanupScheduler()
	defer cleanup.Stop()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
