package userRoutes

import (
	"github.com/gofiber/fiber/v2"

	userController "lms/controllers/user"
	"lms/middleware"
	userValidator "lms/validators/user"
)

func SetupUserRoutes(app *fiber.App, ctrl *userController.Controller, jwtSecret string) {
	userGroup := app.Group("/user", middleware.JWT(jwtSecret))

	userGroup.Get("/profile", ctrl.Me)
	userGroup.Put("/profile", userValidator.UpdateProfile(), ctrl.UpdateProfile)
	userGroup.Post("/profile/image", ctrl.UploadProfileImage)
	userGroup.Post("/profile/signature", ctrl.UploadSignature)

	userGroup.Post("/email/change", userValidator.RequestEmailChange(), ctrl.RequestEmailChange)
	userGroup.Patch("/email/confirm", userValidator.ConfirmEmailChange(), ctrl.ConfirmEmailChange)

	userGroup.Get("/enrollments", ctrl.MyEnrollments)
}
