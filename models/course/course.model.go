package course

import "gorm.io/gorm"

// Course represents a learning course
type Course struct {
	gorm.Model
	TeacherID          uint   `json:"teacher_id" gorm:"index;not null"`
	Title              string `json:"title"`
	Description        string `json:"description" gorm:"type:text"`
	Category           string `json:"category"`
	Level              string `json:"level" gorm:"default:'BEGINNER'"` // BEGINNER, INTERMEDIATE, ADVANCED
	Duration           int64  `json:"duration" gorm:"default:0"`       // duration in hours
	Status             string `json:"status" gorm:"default:'DRAFT'"`   // DRAFT, ACTIVE, INACTIVE
	ThumbnailURL       string `json:"thumbnail_url"`
	IsPublished        bool   `json:"is_published" gorm:"default:false"`
	CertificateEnabled bool   `json:"certificate_enabled" gorm:"default:true"`
	IsDeleted          bool   `gorm:"default:false"`
}
