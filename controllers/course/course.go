package courseController

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/payment"
	"lms/services"
	courseValidator "lms/validators/course"
)

// Controller handles the student-facing catalog: browsing, enrollment,
// payment, lesson completion, progress and certificates.
type Controller struct {
	catalog     *services.CatalogService
	enrollments *services.EnrollmentService
	payments    *payment.Client
}

func New(catalog *services.CatalogService, enrollments *services.EnrollmentService, payments *payment.Client) *Controller {
	return &Controller{catalog: catalog, enrollments: enrollments, payments: payments}
}

func (ct *Controller) List(c *fiber.Ctx) error {
	courses, err := ct.catalog.ListPublished()
	if err != nil {
		return middleware.ServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully.", courses)
}

func (ct *Controller) Detail(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(uint)
	courseID := c.Locals("courseID").(uint)

	course, err := ct.catalog.GetCourse(userID, courseID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	lessons, err := ct.catalog.ListLessons(courseID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully.", fiber.Map{
		"course":  course,
		"lessons": lessons,
	})
}

// Enroll enrolls the caller in a free course. For priced courses it
// answers 402 and points the caller at the checkout endpoint.
func (ct *Controller) Enroll(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	enrollment, err := ct.enrollments.Enroll(userID, courseID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

// Checkout opens a payment session for a priced course.
func (ct *Controller) Checkout(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	course, err := ct.catalog.GetCourse(userID, courseID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}
	if course.Price == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This course is free, enroll directly!", nil)
	}

	session, err := ct.payments.CreateCheckout(userID, courseID, course.Price)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to create payment session!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkout session created.", session)
}

// ConfirmPayment verifies the transaction with the gateway and records the
// enrollment.
func (ct *Controller) ConfirmPayment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedPayment").(*courseValidator.PaymentConfirmRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	settled, err := ct.payments.VerifyPayment(reqData.TransactionID)
	if err != nil || !settled {
		return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "Payment not verified!", nil)
	}

	enrollment, err := ct.enrollments.RecordPayment(userID, courseID, reqData.Amount, reqData.TransactionID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment recorded, enrolled in course successfully!", enrollment)
}

// Lessons lists lesson content; the caller must own the course or hold an
// enrollment.
func (ct *Controller) Lessons(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	course, err := ct.catalog.GetCourse(userID, courseID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	if course.InstructorID != userID {
		if _, err := ct.enrollments.Get(userID, courseID); err != nil {
			if errors.Is(err, services.ErrNotEnrolled) {
				return middleware.ServiceError(c, services.ErrNotEnrolled)
			}
			return middleware.ServiceError(c, err)
		}
	}

	lessons, err := ct.catalog.ListLessons(courseID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully.", lessons)
}

func (ct *Controller) CompleteLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	lessonID := c.Locals("lessonID").(uint)

	percent, err := ct.enrollments.CompleteLesson(userID, lessonID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as complete.", fiber.Map{
		"progress": percent,
	})
}

// Progress recomputes from the live lesson count before answering, so the
// dashboard always reflects the current state of the course.
func (ct *Controller) Progress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	if _, err := ct.enrollments.RecomputeProgress(userID, courseID); err != nil {
		return middleware.ServiceError(c, err)
	}

	view, err := ct.enrollments.Progress(userID, courseID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully.", view)
}

func (ct *Controller) Certificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	cert, err := ct.enrollments.IssueCertificate(userID, courseID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate issued successfully.", cert)
}
