package authController

import (
	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/models"
	"lms/services"
	authValidator "lms/validators/auth"
)

// Controller handles registration, login and the password reset flow.
type Controller struct {
	identity  *services.IdentityService
	jwtSecret string
}

func New(identity *services.IdentityService, jwtSecret string) *Controller {
	return &Controller{identity: identity, jwtSecret: jwtSecret}
}

func (ct *Controller) Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegister").(*authValidator.RegisterRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	user, err := ct.identity.Register(services.RegisterInput{
		Username: reqData.Username,
		Email:    reqData.Email,
		Password: reqData.Password,
		Role:     models.Role(reqData.Role),
	})
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", user)
}

func (ct *Controller) Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	user, err := ct.identity.Authenticate(reqData.Email, reqData.Password)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	token, err := middleware.GenerateJWT(ct.jwtSecret, user)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"user":  user,
		"token": token,
	})
}

// ForgotPassword answers identically whether or not the email is
// registered, so the endpoint cannot be used to probe for accounts.
func (ct *Controller) ForgotPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedForgotPassword").(*authValidator.ForgotPasswordRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	ct.identity.RequestPasswordReset(reqData.Email)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "If that email is registered, a reset link has been sent.", nil)
}

func (ct *Controller) ResetPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedResetPassword").(*authValidator.ResetPasswordRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := ct.identity.ResetPassword(reqData.Token, reqData.Password); err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset successfully.", nil)
}
