package courseValidator

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/validators"
)

// idParam validates a positive integer path parameter and stores it in
// Locals under localKey.
func idParam(param, localKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params(param))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ID!", nil)
		}

		c.Locals(localKey, uint(id))
		return c.Next()
	}
}

// CourseID validates the :id course path parameter.
func CourseID() fiber.Handler {
	return idParam("id", "courseID")
}

// LessonID validates the :lesson_id path parameter.
func LessonID() fiber.Handler {
	return idParam("lesson_id", "lessonID")
}

type CourseRequest struct {
	Title              string `json:"title" form:"title" validate:"required,max=100"`
	Description        string `json:"description" form:"description" validate:"required"`
	Price              uint   `json:"price" form:"price"`
	CertificateEnabled bool   `json:"certificate_enabled" form:"certificate_enabled"`
}

// CourseBody validator middleware, shared by create and update.
func CourseBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errs := validators.Check(reqData); errs != nil {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

type LessonRequest struct {
	Title   string `json:"title" form:"title" validate:"required,max=100"`
	Content string `json:"content" form:"content"`
}

// LessonBody validator middleware, shared by create and update.
func LessonBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LessonRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errs := validators.Check(reqData); errs != nil {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

type PaymentConfirmRequest struct {
	TransactionID string `json:"transaction_id" validate:"required"`
	Amount        uint   `json:"amount"`
}

// PaymentConfirm validator middleware
func PaymentConfirm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PaymentConfirmRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errs := validators.Check(reqData); errs != nil {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals("validatedPayment", reqData)
		return c.Next()
	}
}
