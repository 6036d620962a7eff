package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"lms/config"
	authController "lms/controllers/auth"
	courseController "lms/controllers/course"
	instructorController "lms/controllers/instructor"
	userController "lms/controllers/user"
	"lms/database"
	"lms/mailer"
	"lms/payment"
	"lms/routers/authRoutes"
	"lms/routers/courseRoutes"
	"lms/routers/instructorRoutes"
	"lms/routers/userRoutes"
	"lms/services"
	"lms/storage"
	"lms/utils"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Collaborators, built once here and handed down explicitly.
	mail := mailer.New(cfg)
	files := storage.NewLocalStore(cfg.UploadDir)
	payments := payment.NewClient(cfg)

	identity := services.NewIdentityService(db, mail, files, cfg)
	catalog := services.NewCatalogService(db, files)
	enrollments := services.NewEnrollmentService(db, mail)

	janitor := utils.StartEmailCodeJanitor(db)
	defer janitor.Stop()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded files
	app.Static("/uploads", cfg.UploadDir)

	authRoutes.SetupAuthRoutes(app, authController.New(identity, cfg.JWTKey))
	userRoutes.SetupUserRoutes(app, userController.New(identity, enrollments), cfg.JWTKey)
	courseRoutes.SetupCourseRoutes(app, courseController.New(catalog, enrollments, payments), cfg.JWTKey)
	instructorRoutes.SetupInstructorRoutes(app, instructorController.New(catalog), cfg.JWTKey)

	log.Printf("Server is running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
