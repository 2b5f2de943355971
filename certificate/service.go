package certificate

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Manel-Mahdjoubi/novexa/models"
	courseModels "github.com/Manel-Mahdjoubi/novexa/models/course"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Config holds the pipeline settings the service needs beyond its injected
// collaborators.
type Config struct {
	VerifyBaseURL string
	PassThreshold int
	UploadFolder  string
}

// Service runs the certificate pipeline: eligibility gate, ID/QR generation,
// template compositing, format conversion, at-rest encryption and
// best-effort external hosting. Each request runs the steps sequentially
// within its own lifecycle; the only cross-request coordination is the
// database's unique indexes.
type Service struct {
	db       *gorm.DB
	cipher   *Cipher
	renderer *TemplateRenderer
	uploader Uploader // nil when external hosting is not configured
	cfg      Config
}

// NewService wires the pipeline together.
func NewService(db *gorm.DB, cipher *Cipher, renderer *TemplateRenderer, uploader Uploader, cfg Config) *Service {
	return &Service{db: db, cipher: cipher, renderer: renderer, uploader: uploader, cfg: cfg}
}

// GenerateResult is a successful issuance outcome.
type GenerateResult struct {
	Certificate  *courseModels.Certificate
	Created      bool   // false when an existing certificate was returned
	StudentEmail string // for the issuance notification, empty on re-requests
}

// Generate runs the full pipeline for a (student, course, format) request.
// A non-nil Decision is an expected eligibility failure; a non-nil error is
// a fatal pipeline or database failure.
func (s *Service) Generate(userID, courseID uint, format string) (*GenerateResult, *Decision, error) {
	if !IsSupportedFormat(format) {
		return nil, nil, fmt.Errorf("%w: %q", ErrBadFormat, format)
	}

	var user models.User
	if err := s.db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, failed(ReasonNotFound, "User not found!", nil), nil
		}
		return nil, nil, err
	}

	// Idempotent re-request: return the existing record before doing any work.
	if existing, err := s.findExisting(userID, courseID); err != nil {
		return nil, nil, err
	} else if existing != nil {
		return &GenerateResult{Certificate: existing, Created: false}, nil, nil
	}

	elig, decision, err := checkEligibility(s.db, s.cfg.PassThreshold, userID, courseID)
	if err != nil || decision != nil {
		return nil, decision, err
	}

	certificateID, err := NewCertificateID()
	if err != nil {
		return nil, nil, err
	}

	qrCodeData, _, err := BuildVerification(s.cfg.VerifyBaseURL, certificateID)
	if err != nil {
		return nil, nil, err
	}

	raster, err := s.renderer.Render(user.Name, elig.course.Title, FormatCompletionDate(elig.completionDate))
	if err != nil {
		return nil, nil, err
	}

	finalBytes, err := ToFormat(raster, format)
	if err != nil {
		return nil, nil, err
	}

	encrypted, err := s.cipher.Encrypt(finalBytes)
	if err != nil {
		return nil, nil, err
	}

	cert := &courseModels.Certificate{
		CertificateID:  certificateID,
		UserID:         userID,
		CourseID:       courseID,
		StudentName:    user.Name,
		CourseName:     elig.course.Title,
		CompletionDate: elig.completionDate,
		Format:         format,
		FileData:       encrypted,
		QRCodeData:     qrCodeData,
	}

	// Best-effort public hosting of the plaintext copy. The encrypted row is
	// the authoritative record; a hosting failure must never block issuance.
	if s.uploader != nil {
		if upload, err := s.uploader.Upload(finalBytes, format, s.cfg.UploadFolder, uuid.NewString()); err != nil {
			log.Printf("Warning: certificate upload failed for %s: %v", certificateID, err)
		} else {
			cert.CloudinaryURL = &upload.URL
			cert.CloudinaryPublicID = &upload.PublicID
		}
	}

	if err := s.db.Create(cert).Error; err != nil {
		if !isDuplicateKey(err) {
			return nil, nil, err
		}
		// Lost a race on the (user, course) unique index: the other request's
		// row is the certificate, return it as an idempotent success.
		if existing, ferr := s.findExisting(userID, courseID); ferr == nil && existing != nil {
			return &GenerateResult{Certificate: existing, Created: false}, nil, nil
		}
		// Otherwise the collision was on the certificate ID itself; retry
		// once with a fresh ID.
		if cert.CertificateID, err = NewCertificateID(); err != nil {
			return nil, nil, err
		}
		if cert.QRCodeData, _, err = BuildVerification(s.cfg.VerifyBaseURL, cert.CertificateID); err != nil {
			return nil, nil, err
		}
		if err := s.db.Create(cert).Error; err != nil {
			return nil, nil, err
		}
	}

	return &GenerateResult{Certificate: cert, Created: true, StudentEmail: user.Email}, nil, nil
}

// Download returns the decrypted artifact for streaming. Only the owning
// student or an admin may decrypt; decrypted bytes are never cached.
func (s *Service) Download(certificateID string, requesterID uint, requesterRole string) ([]byte, *courseModels.Certificate, error) {
	var cert courseModels.Certificate
	if err := s.db.Where("certificate_id = ? AND is_deleted = ?", certificateID, false).First(&cert).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	if cert.UserID != requesterID && requesterRole != models.RoleAdmin {
		return nil, nil, ErrNotOwner
	}

	plain, err := s.cipher.Decrypt(cert.FileData)
	if err != nil {
		return nil, nil, err
	}
	return plain, &cert, nil
}

// PublicCertificate is the non-sensitive metadata the verification endpoint
// exposes. No internal IDs, no blob.
type PublicCertificate struct {
	CertificateID  string    `json:"certificate_id"`
	StudentName    string    `json:"student_name"`
	CourseName     string    `json:"course_name"`
	CompletionDate time.Time `json:"completion_date"`
	IssuedAt       time.Time `json:"issued_at"`
}

// Verify confirms existence of a certificate by ID. Unknown and malformed
// IDs get the same (false, nil) shape so probing leaks nothing structural.
func (s *Service) Verify(certificateID string) (bool, *PublicCertificate, error) {
	var cert courseModels.Certificate
	if err := s.db.Where("certificate_id = ? AND is_deleted = ?", certificateID, false).First(&cert).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil, nil
		}
		return false, nil, err
	}

	return true, &PublicCertificate{
		CertificateID:  cert.CertificateID,
		StudentName:    cert.StudentName,
		CourseName:     cert.CourseName,
		CompletionDate: cert.CompletionDate,
		IssuedAt:       cert.CreatedAt,
	}, nil
}

// ListByStudent returns a student's certificates, metadata only.
func (s *Service) ListByStudent(studentID uint) ([]courseModels.Certificate, error) {
	var certs []courseModels.Certificate
	err := s.db.Omit("file_data").
		Where("user_id = ? AND is_deleted = ?", studentID, false).
		Order("created_at desc").
		Find(&certs).Error
	return certs, err
}

func (s *Service) findExisting(userID, courseID uint) (*courseModels.Certificate, error) {
	var cert courseModels.Certificate
	err := s.db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&cert).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

// isDuplicateKey detects unique-index violations across drivers. GORM's
// translated error covers postgres and sqlite; the string check is a
// fallback for untranslated paths.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
