package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"lms/services"
)

// ServiceError maps a service error onto the JSON envelope with the right
// HTTP status. Unknown errors are logged and answered with a generic 500.
func ServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return JsonResponse(c, fiber.StatusNotFound, false, "Not found!", nil)
	case errors.Is(err, services.ErrForbidden):
		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to perform this action!", nil)
	case errors.Is(err, services.ErrValidation):
		return JsonResponse(c, fiber.StatusUnprocessableEntity, false, err.Error(), nil)
	case errors.Is(err, services.ErrUsernameTaken):
		return JsonResponse(c, fiber.StatusConflict, false, "Username is already registered!", nil)
	case errors.Is(err, services.ErrEmailTaken):
		return JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	case errors.Is(err, services.ErrSameEmail):
		return JsonResponse(c, fiber.StatusConflict, false, "New email matches the current one!", nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	case errors.Is(err, services.ErrPaymentRequired):
		return JsonResponse(c, fiber.StatusPaymentRequired, false, "Payment required to enroll in this course!", nil)
	case errors.Is(err, services.ErrNotEnrolled):
		return JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", nil)
	case errors.Is(err, services.ErrCertificatesDisabled):
		return JsonResponse(c, fiber.StatusBadRequest, false, "Certificates are disabled for this course!", nil)
	case errors.Is(err, services.ErrCourseIncomplete):
		return JsonResponse(c, fiber.StatusBadRequest, false, "Please complete the course before requesting a certificate!", nil)
	case errors.Is(err, services.ErrInvalidToken):
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token!", nil)
	case errors.Is(err, services.ErrInvalidCode):
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid code!", nil)
	default:
		log.Printf("Unhandled service error: %v", err)
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	}
}
