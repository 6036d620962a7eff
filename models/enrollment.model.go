package models

import "gorm.io/gorm"

type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "COMPLETED"
)

// Enrollment links one student to one course; at most one per
// (student, course) pair, enforced by the composite unique index.
type Enrollment struct {
	gorm.Model
	UserID   uint `gorm:"uniqueIndex:idx_enrollment_user_course;not null" json:"user_id"`
	CourseID uint `gorm:"uniqueIndex:idx_enrollment_user_course;not null" json:"course_id"`

	// Progress is a whole percent, 0-100. It normally only grows, but a
	// change in the course's lesson count after completions retroactively
	// shifts it on the next recompute.
	Progress int `gorm:"default:0" json:"progress"`

	AmountPaid    uint          `gorm:"default:0" json:"amount_paid"`
	TransactionID string        `json:"transaction_id"`
	PaymentStatus PaymentStatus `gorm:"size:20;default:'COMPLETED'" json:"payment_status"`

	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Course Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

// LessonCompletion is the per-student progress record: one row per
// completed lesson, append-only. The unique index makes completion
// idempotent under concurrent requests.
type LessonCompletion struct {
	gorm.Model
	UserID   uint `gorm:"uniqueIndex:idx_completion_user_lesson;not null" json:"user_id"`
	CourseID uint `gorm:"index;not null" json:"course_id"`
	LessonID uint `gorm:"uniqueIndex:idx_completion_user_lesson;not null" json:"lesson_id"`

	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Lesson Lesson `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE" json:"-"`
}
