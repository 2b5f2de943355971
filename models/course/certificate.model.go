package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate represents an issued course-completion certificate.
// One per (user, course), enforced by a composite unique index; rows are
// never updated after creation. FileData holds the AES-GCM encrypted
// artifact and is never serialized into API responses.
type Certificate struct {
	gorm.Model
	CertificateID      string    `json:"certificate_id" gorm:"uniqueIndex;size:32;not null"`
	UserID             uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_certificates_user_course"`
	CourseID           uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_certificates_user_course"`
	StudentName        string    `json:"student_name"` // display name captured at issuance
	CourseName         string    `json:"course_name"`  // course title captured at issuance
	CompletionDate     time.Time `json:"completion_date"`
	Format             string    `json:"format" gorm:"size:4"` // png, jpg, pdf
	FileData           []byte    `json:"-" gorm:"type:bytea"`  // encrypted artifact, decrypt-on-read only
	QRCodeData         string    `json:"qr_code_data" gorm:"type:text"` // data URL of the verification QR
	CloudinaryURL      *string   `json:"cloudinary_url"`
	CloudinaryPublicID *string   `json:"cloudinary_public_id"`
	IsDeleted          bool      `gorm:"default:false"`
}
