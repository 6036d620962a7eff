package authRoutes

import (
	"github.com/gofiber/fiber/v2"

	authController "lms/controllers/auth"
	authValidator "lms/validators/auth"
)

func SetupAuthRoutes(app *fiber.App, ctrl *authController.Controller) {
	authGroup := app.Group("/auth")

	authGroup.Post("/register", authValidator.Register(), ctrl.Register)
	authGroup.Post("/login", authValidator.Login(), ctrl.Login)
	authGroup.Post("/forgot/password", authValidator.ForgotPassword(), ctrl.ForgotPassword)
	authGroup.Patch("/reset/password", authValidator.ResetPassword(), ctrl.ResetPassword)
}
