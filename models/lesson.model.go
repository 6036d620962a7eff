package models

import "gorm.io/gorm"

// Lesson belongs to one course. Lessons are ordered within a course by
// creation time ascending; there is no manual reordering.
type Lesson struct {
	gorm.Model
	CourseID uint   `gorm:"index;not null" json:"course_id"`
	Title    string `gorm:"size:100;not null" json:"title"`
	Content  string `gorm:"type:text" json:"content"`

	VideoFile    string `json:"video_file"`
	ResourceFile string `json:"resource_file"`

	Course Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}
