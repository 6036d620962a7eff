package services

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"

	"gorm.io/gorm"

	"lms/models"
	"lms/storage"
)

// CatalogService owns the course and lesson lifecycle: create, edit,
// archive, hide, certificate toggle, and lesson file attachments. All
// mutations are owner-only.
type CatalogService struct {
	db    *gorm.DB
	files storage.Store
}

func NewCatalogService(db *gorm.DB, files storage.Store) *CatalogService {
	return &CatalogService{db: db, files: files}
}

type CourseInput struct {
	Title              string
	Description        string
	Price              uint
	CertificateEnabled bool
}

// CreateCourse opens a new course owned by the acting instructor. Courses
// start active and not hidden.
func (s *CatalogService) CreateCourse(actorID uint, in CourseInput, video, resource *multipart.FileHeader) (*models.Course, error) {
	var actor models.User
	if err := s.db.First(&actor, actorID).Error; err != nil {
		return nil, ErrNotFound
	}
	switch actor.Role {
	case models.RoleInstructor:
	case models.RoleStudent, models.RoleAdmin:
		return nil, ErrForbidden
	default:
		return nil, ErrForbidden
	}

	course := models.Course{
		Title:              in.Title,
		Description:        in.Description,
		Price:              in.Price,
		InstructorID:       actorID,
		IsActive:           true,
		IsHidden:           false,
		CertificateEnabled: in.CertificateEnabled,
	}
	if video != nil {
		stored, err := s.files.Save(video)
		if err != nil {
			return nil, fmt.Errorf("save video: %w", err)
		}
		course.VideoFile = stored
	}
	if resource != nil {
		stored, err := s.files.Save(resource)
		if err != nil {
			return nil, fmt.Errorf("save resource: %w", err)
		}
		course.ResourceFile = stored
	}
	if err := s.db.Create(&course).Error; err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	return &course, nil
}

// ownedActiveCourse resolves a course for a mutating operation. Archived
// courses answer "not found"; a non-owner gets a refusal and no state change.
func (s *CatalogService) ownedActiveCourse(actorID, courseID uint) (*models.Course, error) {
	var course models.Course
	if err := s.db.Where("id = ? AND is_active = ?", courseID, true).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if course.InstructorID != actorID {
		return nil, ErrForbidden
	}
	return &course, nil
}

// UpdateCourse edits the course fields and optionally replaces the attached
// video/resource files. A replaced file is scheduled for deletion from
// storage; failure to delete is logged, not propagated.
func (s *CatalogService) UpdateCourse(actorID, courseID uint, in CourseInput, video, resource *multipart.FileHeader) (*models.Course, error) {
	course, err := s.ownedActiveCourse(actorID, courseID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title":       in.Title,
		"description": in.Description,
		"price":       in.Price,
	}

	var stale []string
	if video != nil {
		stored, err := s.files.Save(video)
		if err != nil {
			return nil, fmt.Errorf("save video: %w", err)
		}
		stale = append(stale, course.VideoFile)
		updates["video_file"] = stored
	}
	if resource != nil {
		stored, err := s.files.Save(resource)
		if err != nil {
			return nil, fmt.Errorf("save resource: %w", err)
		}
		stale = append(stale, course.ResourceFile)
		updates["resource_file"] = stored
	}

	if err := s.db.Model(course).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update course: %w", err)
	}
	s.discard(stale)
	return course, nil
}

// ArchiveCourse soft-deletes the course. There is no un-archive.
func (s *CatalogService) ArchiveCourse(actorID, courseID uint) error {
	course, err := s.ownedActiveCourse(actorID, courseID)
	if err != nil {
		return err
	}
	return s.db.Model(course).Update("is_active", false).Error
}

// ToggleHide flips owner-only visibility and returns the new state.
func (s *CatalogService) ToggleHide(actorID, courseID uint) (bool, error) {
	course, err := s.ownedActiveCourse(actorID, courseID)
	if err != nil {
		return false, err
	}
	hidden := !course.IsHidden
	if err := s.db.Model(course).Update("is_hidden", hidden).Error; err != nil {
		return false, err
	}
	return hidden, nil
}

// ToggleCertificate flips certificate issuance for the course.
func (s *CatalogService) ToggleCertificate(actorID, courseID uint) (bool, error) {
	course, err := s.ownedActiveCourse(actorID, courseID)
	if err != nil {
		return false, err
	}
	enabled := !course.CertificateEnabled
	if err := s.db.Model(course).Update("certificate_enabled", enabled).Error; err != nil {
		return false, err
	}
	return enabled, nil
}

// GetCourse resolves a course for viewing. Hidden courses are only visible
// to their owner; archived courses are gone for everyone on this path.
func (s *CatalogService) GetCourse(actorID, courseID uint) (*models.Course, error) {
	var course models.Course
	if err := s.db.Where("id = ? AND is_active = ?", courseID, true).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if course.IsHidden && course.InstructorID != actorID {
		return nil, ErrNotFound
	}
	return &course, nil
}

// ListPublished returns the public catalog: active, not hidden.
func (s *CatalogService) ListPublished() ([]models.Course, error) {
	var courses []models.Course
	err := s.db.Where("is_active = ? AND is_hidden = ?", true, false).
		Order("created_at desc").Find(&courses).Error
	return courses, err
}

// ListByInstructor returns everything the instructor owns, archived and
// hidden included. This is the only path that still reaches an archived
// course.
func (s *CatalogService) ListByInstructor(instructorID uint) ([]models.Course, error) {
	var courses []models.Course
	err := s.db.Where("instructor_id = ?", instructorID).
		Order("created_at desc").Find(&courses).Error
	return courses, err
}

type LessonInput struct {
	Title   string
	Content string
}

// CreateLesson attaches a lesson, with optional uploaded files, to an owned
// course.
func (s *CatalogService) CreateLesson(actorID, courseID uint, in LessonInput, video, resource *multipart.FileHeader) (*models.Lesson, error) {
	course, err := s.ownedActiveCourse(actorID, courseID)
	if err != nil {
		return nil, err
	}

	lesson := models.Lesson{
		CourseID: course.ID,
		Title:    in.Title,
		Content:  in.Content,
	}
	if video != nil {
		stored, err := s.files.Save(video)
		if err != nil {
			return nil, fmt.Errorf("save video: %w", err)
		}
		lesson.VideoFile = stored
	}
	if resource != nil {
		stored, err := s.files.Save(resource)
		if err != nil {
			return nil, fmt.Errorf("save resource: %w", err)
		}
		lesson.ResourceFile = stored
	}

	if err := s.db.Create(&lesson).Error; err != nil {
		return nil, fmt.Errorf("create lesson: %w", err)
	}
	return &lesson, nil
}

// UpdateLesson edits a lesson; replaced files are scheduled for best-effort
// deletion from storage.
func (s *CatalogService) UpdateLesson(actorID, lessonID uint, in LessonInput, video, resource *multipart.FileHeader) (*models.Lesson, error) {
	lesson, err := s.ownedLesson(actorID, lessonID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title":   in.Title,
		"content": in.Content,
	}

	var stale []string
	if video != nil {
		stored, err := s.files.Save(video)
		if err != nil {
			return nil, fmt.Errorf("save video: %w", err)
		}
		stale = append(stale, lesson.VideoFile)
		updates["video_file"] = stored
	}
	if resource != nil {
		stored, err := s.files.Save(resource)
		if err != nil {
			return nil, fmt.Errorf("save resource: %w", err)
		}
		stale = append(stale, lesson.ResourceFile)
		updates["resource_file"] = stored
	}

	if err := s.db.Model(lesson).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update lesson: %w", err)
	}
	s.discard(stale)
	return lesson, nil
}

// DeleteLesson removes a lesson from an owned course. Completions pointing
// at it stay; enrolled students' percentages shift on their next recompute.
func (s *CatalogService) DeleteLesson(actorID, lessonID uint) error {
	lesson, err := s.ownedLesson(actorID, lessonID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(lesson).Error; err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	s.discard([]string{lesson.VideoFile, lesson.ResourceFile})
	return nil
}

// GetLesson fetches one lesson; the course must still be active.
func (s *CatalogService) GetLesson(lessonID uint) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := s.db.First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var course models.Course
	if err := s.db.Where("id = ? AND is_active = ?", lesson.CourseID, true).First(&course).Error; err != nil {
		return nil, ErrNotFound
	}
	return &lesson, nil
}

// ListLessons returns a course's lessons in creation order.
func (s *CatalogService) ListLessons(courseID uint) ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := s.db.Where("course_id = ?", courseID).
		Order("created_at asc").Find(&lessons).Error
	return lessons, err
}

func (s *CatalogService) ownedLesson(actorID, lessonID uint) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := s.db.First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := s.ownedActiveCourse(actorID, lesson.CourseID); err != nil {
		return nil, err
	}
	return &lesson, nil
}

// discard deletes replaced files from storage, best-effort.
func (s *CatalogService) discard(names []string) {
	for _, name := range names {
		if name == "" {
			continue
		}
		if err := s.files.Delete(name); err != nil {
			log.Printf("Error deleting replaced file %s: %v", name, err)
		}
	}
}
