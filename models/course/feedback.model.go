package course

import "gorm.io/gorm"

// Feedback is a student's rating and comment on a course
type Feedback struct {
	gorm.Model
	UserID    uint   `gorm:"not null;uniqueIndex:idx_feedbacks_user_course" json:"user_id"`
	CourseID  uint   `gorm:"not null;uniqueIndex:idx_feedbacks_user_course" json:"course_id"`
	Rating    int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"` // 1-5 rating
	Comment   string `gorm:"type:text;default:''" json:"comment"`
	IsDeleted bool   `gorm:"default:false"`
}
