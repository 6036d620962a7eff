package instructorRoutes

import (
	"github.com/gofiber/fiber/v2"

	instructorController "lms/controllers/instructor"
	"lms/middleware"
	"lms/models"
	courseValidator "lms/validators/course"
)

// SetupInstructorRoutes sets up the instructor-facing catalog routes
func SetupInstructorRoutes(app *fiber.App, ctrl *instructorController.Controller, jwtSecret string) {
	group := app.Group("/instructor",
		middleware.JWT(jwtSecret),
		middleware.RequireRole(models.RoleInstructor),
	)

	group.Get("/courses", ctrl.MyCourses)
	group.Post("/course", courseValidator.CourseBody(), ctrl.CreateCourse)
	group.Put("/course/:id", courseValidator.CourseID(), courseValidator.CourseBody(), ctrl.UpdateCourse)
	group.Delete("/course/:id", courseValidator.CourseID(), ctrl.ArchiveCourse)
	group.Patch("/course/:id/hide", courseValidator.CourseID(), ctrl.ToggleHide)
	group.Patch("/course/:id/certificate", courseValidator.CourseID(), ctrl.ToggleCertificate)

	group.Post("/course/:id/lesson", courseValidator.CourseID(), courseValidator.LessonBody(), ctrl.AddLesson)
	group.Put("/lesson/:lesson_id", courseValidator.LessonID(), courseValidator.LessonBody(), ctrl.UpdateLesson)
	group.Delete("/lesson/:lesson_id", courseValidator.LessonID(), ctrl.DeleteLesson)
}
