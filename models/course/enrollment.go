package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment tracks a user's enrollment in a course with progress
type Enrollment struct {
	gorm.Model
	UserID            uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollments_user_course"`
	CourseID          uint       `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollments_user_course"`
	Status            string     `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, IN_PROGRESS, COMPLETED
	Progress          float64    `json:"progress" gorm:"default:0"`        // Completion percentage (0-100)
	CompletedLectures int        `json:"completed_lectures" gorm:"default:0"`
	TotalLectures     int        `json:"total_lectures" gorm:"default:0"`
	CompletedAt       *time.Time `json:"completed_at"`
	IsDeleted         bool       `gorm:"default:false"`
}
