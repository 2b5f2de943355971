package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles a user account can hold.
const (
	RoleStudent = "STUDENT"
	RoleTeacher = "TEACHER"
	RoleAdmin   = "ADMIN"
)

type User struct {
	gorm.Model
	ProfileImage        string `gorm:"default:''"`
	Name                string `gorm:"default:''"`
	Email               string `gorm:"unique;not null"`
	Role                string `gorm:"default:'STUDENT'"` // STUDENT, TEACHER, ADMIN
	Password            string `gorm:"not null" json:"-"`
	Headline            string `gorm:"default:''"` // teacher-facing display title
	Bio                 string `gorm:"type:text;default:''"`
	IsEmailVerified     bool   `gorm:"default:false"`
	LastLogin           time.Time
	FailedLoginAttempts int        `gorm:"default:0"`
	LastFailedLogin     *time.Time `json:"last_failed_login"`
	IsBlocked           bool       `gorm:"default:false"`
	BlockedUntil        *time.Time `json:"blocked_until"`
	IsDeleted           bool       `gorm:"default:false"`
}
