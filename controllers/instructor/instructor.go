package instructorController

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/services"
	courseValidator "lms/validators/course"
)

// Controller handles the instructor's side of the catalog: course and
// lesson lifecycle.
type Controller struct {
	catalog *services.CatalogService
}

func New(catalog *services.CatalogService) *Controller {
	return &Controller{catalog: catalog}
}

// formFile fetches an optional multipart file; absence is not an error.
func formFile(c *fiber.Ctx, name string) *multipart.FileHeader {
	file, err := c.FormFile(name)
	if err != nil {
		return nil
	}
	return file
}

// MyCourses lists everything the instructor owns, hidden and archived
// included.
func (ct *Controller) MyCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courses, err := ct.catalog.ListByInstructor(userID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully.", courses)
}

func (ct *Controller) CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, err := ct.catalog.CreateCourse(userID, services.CourseInput{
		Title:              reqData.Title,
		Description:        reqData.Description,
		Price:              reqData.Price,
		CertificateEnabled: reqData.CertificateEnabled,
	}, formFile(c, "video"), formFile(c, "resource"))
	if err != nil {
		return middleware.ServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

func (ct *Controller) UpdateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, err := ct.catalog.UpdateCourse(userID, courseID, services.CourseInput{
		Title:              reqData.Title,
		Description:        reqData.Description,
		Price:              reqData.Price,
		CertificateEnabled: reqData.CertificateEnabled,
	}, formFile(c, "video"), formFile(c, "resource"))
	if err != nil {
		return middleware.ServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// ArchiveCourse soft-deletes the course; there is no way back.
func (ct *Controller) ArchiveCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	if err := ct.catalog.ArchiveCourse(userID, courseID); err != nil {
		return middleware.ServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course archived successfully!", nil)
}

func (ct *Controller) ToggleHide(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	hidden, err := ct.catalog.ToggleHide(userID, courseID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course visibility updated!", fiber.Map{
		"is_hidden": hidden,
	})
}

func (ct *Controller) ToggleCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	enabled, err := ct.catalog.ToggleCertificate(userID, courseID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate setting updated!", fiber.Map{
		"certificate_enabled": enabled,
	})
}

func (ct *Controller) AddLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedLesson").(*courseValidator.LessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lesson, err := ct.catalog.CreateLesson(userID, courseID, services.LessonInput{
		Title:   reqData.Title,
		Content: reqData.Content,
	}, formFile(c, "video"), formFile(c, "resource"))
	if err != nil {
		return middleware.ServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson added successfully!", lesson)
}

func (ct *Controller) UpdateLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	lessonID := c.Locals("lessonID").(uint)

	reqData, ok := c.Locals("validatedLesson").(*courseValidator.LessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lesson, err := ct.catalog.UpdateLesson(userID, lessonID, services.LessonInput{
		Title:   reqData.Title,
		Content: reqData.Content,
	}, formFile(c, "video"), formFile(c, "resource"))
	if err != nil {
		return middleware.ServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

func (ct *Controller) DeleteLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	lessonID := c.Locals("lessonID").(uint)

	if err := ct.catalog.DeleteLesson(userID, lessonID); err != nil {
		return middleware.ServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}
