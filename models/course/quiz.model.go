package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quiz represents a graded quiz attached to a chapter
type Quiz struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	ChapterID  uint   `json:"chapter_id" gorm:"index;not null"`
	Title      string `json:"title"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
}

// QuizQuestion represents a single question within a quiz
type QuizQuestion struct {
	gorm.Model
	QuizID       uint   `json:"quiz_id" gorm:"index;not null"`
	QuestionText string `json:"question_text" gorm:"type:text"`
	OrderIndex   int    `json:"order_index" gorm:"default:0"`
	IsDeleted    bool   `gorm:"default:false"`
}

// QuizOption represents an answer option for a quiz question
type QuizOption struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	OptionText string `json:"option_text"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
}

// QuizAttempt represents a student's graded attempt at a quiz.
// Score is a percentage (0-100); the best score across attempts is what
// certificate eligibility looks at.
type QuizAttempt struct {
	gorm.Model
	UserID          uint           `json:"user_id" gorm:"index;not null"`
	QuizID          uint           `json:"quiz_id" gorm:"index;not null"`
	SelectedOptions datatypes.JSON `json:"selected_options"` // question ID -> selected option IDs
	Score           int            `json:"score"`            // percentage 0-100
	CorrectAnswers  int            `json:"correct_answers"`
	TotalQuestions  int            `json:"total_questions"`
	AttemptNumber   int            `json:"attempt_number" gorm:"default:1"`
	Status          string         `json:"status" gorm:"default:'COMPLETED'"`
	IsDeleted       bool           `gorm:"default:false"`
}
