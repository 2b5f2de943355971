package course

import "gorm.io/gorm"

// Lecture represents a content unit within a chapter
type Lecture struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	ChapterID   uint   `json:"chapter_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ContentType string `json:"content_type" gorm:"default:'TEXT'"` // TEXT, VIDEO
	TextContent string `json:"text_content" gorm:"type:text"`      // For TEXT type
	VideoURL    string `json:"video_url"`                          // For VIDEO type
	Duration    int    `json:"duration" gorm:"default:0"`          // minutes
	OrderIndex  int    `json:"order_index" gorm:"default:0"`       // Order within chapter
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}

// LectureCompletion tracks a student's completion of a lecture
type LectureCompletion struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null;uniqueIndex:idx_lecture_completion_user_lecture"`
	CourseID  uint   `json:"course_id" gorm:"index;not null"`
	LectureID uint   `json:"lecture_id" gorm:"index;not null;uniqueIndex:idx_lecture_completion_user_lecture"`
	Status    string `json:"status" gorm:"default:'COMPLETED'"`
	IsDeleted bool   `gorm:"default:false"`
}
