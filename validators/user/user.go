package userValidator

import (
	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/validators"
)

type UpdateProfileRequest struct {
	Bio           string `json:"bio" validate:"max=500"`
	Qualification string `json:"qualification" validate:"max=200"`
	Institution   string `json:"institution" validate:"max=200"`
	Website       string `json:"website" validate:"omitempty,url"`
	Twitter       string `json:"twitter" validate:"max=100"`
	LinkedIn      string `json:"linkedin" validate:"max=200"`
}

// UpdateProfile validator middleware
func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateProfileRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errs := validators.Check(reqData); errs != nil {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals("validatedProfile", reqData)
		return c.Next()
	}
}

type EmailChangeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RequestEmailChange validator middleware
func RequestEmailChange() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(EmailChangeRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errs := validators.Check(reqData); errs != nil {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals("validatedEmailChange", reqData)
		return c.Next()
	}
}

type ConfirmEmailChangeRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

// ConfirmEmailChange validator middleware
func ConfirmEmailChange() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ConfirmEmailChangeRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errs := validators.Check(reqData); errs != nil {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals("validatedConfirmEmailChange", reqData)
		return c.Next()
	}
}
