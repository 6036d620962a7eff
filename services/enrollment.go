package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lms/mailer"
	"lms/models"
)

// EnrollmentService owns enrollment, lesson completion, the derived
// progress percentage, and certificate issuance.
type EnrollmentService struct {
	db   *gorm.DB
	mail mailer.Mailer
}

func NewEnrollmentService(db *gorm.DB, mail mailer.Mailer) *EnrollmentService {
	return &EnrollmentService{db: db, mail: mail}
}

// Enroll creates an enrollment for a free course, or routes the caller to
// payment for a priced one. Calling it again for the same pair returns the
// existing record unchanged.
func (s *EnrollmentService) Enroll(studentID, courseID uint) (*models.Enrollment, error) {
	student, err := s.student(studentID)
	if err != nil {
		return nil, err
	}

	// Re-enroll is a no-op, even if the course has since been hidden or
	// archived.
	var existing models.Enrollment
	if err := s.db.Where("user_id = ? AND course_id = ?", studentID, courseID).First(&existing).Error; err == nil {
		return &existing, nil
	}

	var course models.Course
	if err := s.db.Where("id = ? AND is_active = ? AND is_hidden = ?", courseID, true, false).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if course.Price > 0 {
		return nil, ErrPaymentRequired
	}

	enrollment := models.Enrollment{
		UserID:        studentID,
		CourseID:      courseID,
		Progress:      0,
		AmountPaid:    0,
		PaymentStatus: models.PaymentCompleted,
	}
	if err := s.db.Create(&enrollment).Error; err != nil {
		return nil, fmt.Errorf("create enrollment: %w", err)
	}

	mailer.SendEnrollmentEmail(s.mail, student.Email, student.Username, course.Title)
	return &enrollment, nil
}

// RecordPayment creates the enrollment for a paid course once the payment
// succeeded. Idempotent on an existing enrollment; there is no refund path.
func (s *EnrollmentService) RecordPayment(studentID, courseID, amount uint, transactionID string) (*models.Enrollment, error) {
	student, err := s.student(studentID)
	if err != nil {
		return nil, err
	}

	var existing models.Enrollment
	if err := s.db.Where("user_id = ? AND course_id = ?", studentID, courseID).First(&existing).Error; err == nil {
		return &existing, nil
	}

	var course models.Course
	if err := s.db.Where("id = ? AND is_active = ? AND is_hidden = ?", courseID, true, false).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	enrollment := models.Enrollment{
		UserID:        studentID,
		CourseID:      courseID,
		Progress:      0,
		AmountPaid:    amount,
		TransactionID: transactionID,
		PaymentStatus: models.PaymentCompleted,
	}
	if err := s.db.Create(&enrollment).Error; err != nil {
		return nil, fmt.Errorf("create enrollment: %w", err)
	}

	mailer.SendEnrollmentEmail(s.mail, student.Email, student.Username, course.Title)
	return &enrollment, nil
}

// Get returns the enrollment for a (student, course) pair.
func (s *EnrollmentService) Get(studentID, courseID uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := s.db.Where("user_id = ? AND course_id = ?", studentID, courseID).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, err
	}
	return &enrollment, nil
}

// ListByStudent returns all enrollments of a student, newest first, with
// the course preloaded.
func (s *EnrollmentService) ListByStudent(studentID uint) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := s.db.Where("user_id = ?", studentID).
		Preload("Course").Order("created_at desc").Find(&enrollments).Error
	return enrollments, err
}

// CompleteLesson marks a lesson done for the student, once, and returns the
// recomputed percentage. The insert is append-if-absent: the unique
// (user, lesson) index plus ON CONFLICT DO NOTHING keeps concurrent
// completions from double-counting.
func (s *EnrollmentService) CompleteLesson(studentID, lessonID uint) (int, error) {
	var lesson models.Lesson
	if err := s.db.First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	enrollment, err := s.Get(studentID, lesson.CourseID)
	if err != nil {
		return 0, err
	}

	completion := models.LessonCompletion{
		UserID:   studentID,
		CourseID: lesson.CourseID,
		LessonID: lessonID,
	}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoNothing: true,
	}).Create(&completion).Error
	if err != nil {
		return 0, fmt.Errorf("record completion: %w", err)
	}

	return s.recompute(enrollment)
}

// RecomputeProgress re-derives the percentage from the live lesson count
// and writes it back. Exposed because the lesson set can change after
// completions: a course that gains or loses lessons shifts previously
// computed percentages.
func (s *EnrollmentService) RecomputeProgress(studentID, courseID uint) (int, error) {
	enrollment, err := s.Get(studentID, courseID)
	if err != nil {
		return 0, err
	}
	return s.recompute(enrollment)
}

// recompute reads the current lesson count each call. No historical
// snapshot is kept, so the result can move backwards when lessons are
// added after completions.
func (s *EnrollmentService) recompute(enrollment *models.Enrollment) (int, error) {
	var total int64
	if err := s.db.Model(&models.Lesson{}).Where("course_id = ?", enrollment.CourseID).Count(&total).Error; err != nil {
		return 0, err
	}

	var done int64
	err := s.db.Model(&models.LessonCompletion{}).
		Joins("JOIN lessons ON lessons.id = lesson_completions.lesson_id AND lessons.deleted_at IS NULL").
		Where("lesson_completions.user_id = ? AND lesson_completions.course_id = ?", enrollment.UserID, enrollment.CourseID).
		Count(&done).Error
	if err != nil {
		return 0, err
	}

	percent := 0
	if total > 0 {
		percent = int(100 * done / total)
	}

	if err := s.db.Model(enrollment).Update("progress", percent).Error; err != nil {
		return 0, fmt.Errorf("update progress: %w", err)
	}
	enrollment.Progress = percent
	return percent, nil
}

// ProgressView is what the student dashboard shows for one course.
type ProgressView struct {
	Progress         int    `json:"progress"`
	TotalLessons     int64  `json:"total_lessons"`
	CompletedLessons []uint `json:"completed_lessons"`
}

// Progress reports the stored percentage plus the completed lesson ids.
func (s *EnrollmentService) Progress(studentID, courseID uint) (*ProgressView, error) {
	enrollment, err := s.Get(studentID, courseID)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := s.db.Model(&models.Lesson{}).Where("course_id = ?", courseID).Count(&total).Error; err != nil {
		return nil, err
	}

	var completions []models.LessonCompletion
	if err := s.db.Where("user_id = ? AND course_id = ?", studentID, courseID).Find(&completions).Error; err != nil {
		return nil, err
	}
	completed := make([]uint, 0, len(completions))
	for _, c := range completions {
		completed = append(completed, c.LessonID)
	}

	return &ProgressView{
		Progress:         enrollment.Progress,
		TotalLessons:     total,
		CompletedLessons: completed,
	}, nil
}

// Certificate is the view value returned on successful issuance; nothing
// is persisted.
type Certificate struct {
	Number      string    `json:"number"`
	StudentName string    `json:"student_name"`
	CourseTitle string    `json:"course_title"`
	IssuedAt    time.Time `json:"issued_at"`
}

// IssueCertificate checks, in order: enrollment exists, certificates are
// enabled for the course, progress is 100. Each refusal has its own reason.
func (s *EnrollmentService) IssueCertificate(studentID, courseID uint) (*Certificate, error) {
	enrollment, err := s.Get(studentID, courseID)
	if err != nil {
		return nil, err
	}

	var course models.Course
	if err := s.db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !course.CertificateEnabled {
		return nil, ErrCertificatesDisabled
	}
	if enrollment.Progress != 100 {
		return nil, ErrCourseIncomplete
	}

	student, err := s.student(studentID)
	if err != nil {
		return nil, err
	}

	cert := &Certificate{
		Number:      uuid.NewString(),
		StudentName: student.Username,
		CourseTitle: course.Title,
		IssuedAt:    NowFunc(),
	}
	mailer.SendCertificateEmail(s.mail, student.Email, student.Username, course.Title, cert.Number)
	return cert, nil
}

// student resolves a user and enforces the student role exhaustively.
func (s *EnrollmentService) student(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	switch user.Role {
	case models.RoleStudent:
		return &user, nil
	case models.RoleInstructor, models.RoleAdmin:
		return nil, ErrForbidden
	default:
		return nil, ErrForbidden
	}
}
