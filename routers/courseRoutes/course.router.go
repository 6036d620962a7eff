package courseRoutes

import (
	"github.com/gofiber/fiber/v2"

	courseController "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	courseValidator "lms/validators/course"
)

// SetupCourseRoutes sets up all student-facing course routes
func SetupCourseRoutes(app *fiber.App, ctrl *courseController.Controller, jwtSecret string) {
	courseGroup := app.Group("/course", middleware.JWT(jwtSecret))

	// Course listing and details
	courseGroup.Get("/list", ctrl.List)
	courseGroup.Get("/:id", courseValidator.CourseID(), ctrl.Detail)

	// Enrollment and payment
	student := middleware.RequireRole(models.RoleStudent)
	courseGroup.Post("/:id/enroll", student, courseValidator.CourseID(), ctrl.Enroll)
	courseGroup.Post("/:id/checkout", student, courseValidator.CourseID(), ctrl.Checkout)
	courseGroup.Post("/:id/payment/confirm", student, courseValidator.CourseID(), courseValidator.PaymentConfirm(), ctrl.ConfirmPayment)

	// Lesson viewing and completion
	courseGroup.Get("/:id/lessons", courseValidator.CourseID(), ctrl.Lessons)
	courseGroup.Post("/lesson/:lesson_id/complete", student, courseValidator.LessonID(), ctrl.CompleteLesson)

	// Progress and certificate
	courseGroup.Get("/:id/progress", student, courseValidator.CourseID(), ctrl.Progress)
	courseGroup.Post("/:id/certificate", student, courseValidator.CourseID(), ctrl.Certificate)
}
