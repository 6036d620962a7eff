package models

import "gorm.io/gorm"

// Course is owned by exactly one instructor. A course is visible to
// students iff IsActive && !IsHidden; archiving (IsActive=false) is
// irreversible.
type Course struct {
	gorm.Model
	Title        string `gorm:"size:100;not null" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	Price        uint   `gorm:"default:0" json:"price"` // 0 = free
	InstructorID uint   `gorm:"index;not null" json:"instructor_id"`

	VideoFile    string `json:"video_file"`
	ResourceFile string `json:"resource_file"`

	IsActive           bool `gorm:"default:true" json:"is_active"`
	IsHidden           bool `gorm:"default:false" json:"is_hidden"`
	CertificateEnabled bool `gorm:"default:false" json:"certificate_enabled"`

	Instructor User `gorm:"foreignKey:InstructorID" json:"-"`
}

// Visible reports whether the course shows up for students.
func (c *Course) Visible() bool {
	return c.IsActive && !c.IsHidden
}
