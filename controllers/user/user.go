package userController

import (
	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/services"
	userValidator "lms/validators/user"
)

// Controller handles the logged-in user's profile, email change and
// enrollment listing.
type Controller struct {
	identity    *services.IdentityService
	enrollments *services.EnrollmentService
}

func New(identity *services.IdentityService, enrollments *services.EnrollmentService) *Controller {
	return &Controller{identity: identity, enrollments: enrollments}
}

func (ct *Controller) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	user, err := ct.identity.GetUser(userID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully.", user)
}

func (ct *Controller) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedProfile").(*userValidator.UpdateProfileRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	user, err := ct.identity.UpdateProfile(userID, services.ProfileInput{
		Bio:           reqData.Bio,
		Qualification: reqData.Qualification,
		Institution:   reqData.Institution,
		Website:       reqData.Website,
		Twitter:       reqData.Twitter,
		LinkedIn:      reqData.LinkedIn,
	})
	if err != nil {
		return middleware.ServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully.", user)
}

func (ct *Controller) UploadProfileImage(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Image file is required!", nil)
	}

	user, err := ct.identity.SetProfileImage(userID, file)
	if err != nil {
		return middleware.ServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile image updated successfully.", user)
}

func (ct *Controller) UploadSignature(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	file, err := c.FormFile("signature")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Signature file is required!", nil)
	}

	user, err := ct.identity.SetSignatureFile(userID, file)
	if err != nil {
		return middleware.ServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Signature updated successfully.", user)
}

func (ct *Controller) RequestEmailChange(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedEmailChange").(*userValidator.EmailChangeRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := ct.identity.RequestEmailChange(userID, reqData.Email); err != nil {
		return middleware.ServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Verification code sent to the new email address.", nil)
}

func (ct *Controller) ConfirmEmailChange(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedConfirmEmailChange").(*userValidator.ConfirmEmailChangeRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	user, err := ct.identity.ConfirmEmailChange(userID, reqData.Code)
	if err != nil {
		return middleware.ServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Email address updated successfully.", user)
}

func (ct *Controller) MyEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollments, err := ct.enrollments.ListByStudent(userID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully.", fiber.Map{
		"enrollments": enrollments,
		"total":       len(enrollments),
	})
}
