package controllers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/Manel-Mahdjoubi/novexa/certificate"
	"github.com/Manel-Mahdjoubi/novexa/middleware"
	"github.com/Manel-Mahdjoubi/novexa/models"
	"github.com/Manel-Mahdjoubi/novexa/utils"

	"github.com/gofiber/fiber/v2"
)

// CertService is injected from main at startup.
var CertService *certificate.Service

// InitCertificateService wires the certificate pipeline into the HTTP layer.
func InitCertificateService(s *certificate.Service) {
	CertService = s
}

// GenerateCertificate issues (or returns) a certificate for the caller
func GenerateCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCertificate").(*struct {
		StudentID uint   `json:"student_id" validate:"required"`
		CourseID  uint   `json:"course_id" validate:"required"`
		Format    string `json:"format" validate:"omitempty,oneof=png jpg pdf"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.StudentID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only request your own certificate!", nil)
	}

	format := reqData.Format
	if format == "" {
		format = certificate.FormatPNG
	}

	result, decision, err := CertService.Generate(userID, reqData.CourseID, format)
	if err != nil {
		if errors.Is(err, certificate.ErrBadFormat) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unsupported certificate format!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate certificate!", nil)
	}
	if decision != nil {
		status := fiber.StatusForbidden
		if decision.Reason == certificate.ReasonNotFound {
			status = fiber.StatusNotFound
		}
		details := fiber.Map{"reason": decision.Reason}
		for k, v := range decision.Details {
			details[k] = v
		}
		return middleware.JsonResponse(c, status, false, decision.Message, details)
	}

	cert := result.Certificate
	data := fiber.Map{
		"certificate_id":  cert.CertificateID,
		"student_name":    cert.StudentName,
		"course_name":     cert.CourseName,
		"completion_date": cert.CompletionDate,
		"format":          cert.Format,
		"qr_code_data":    cert.QRCodeData,
		"cloudinary_url":  cert.CloudinaryURL,
	}
	if result.Created {
		// Issuance mail is best-effort
		go func(email, name, courseName, certificateID string) {
			if err := utils.SendCertificateEmail(email, name, courseName, certificateID); err != nil {
				log.Printf("Error sending certificate email to %s: %v", email, err)
			}
		}(result.StudentEmail, cert.StudentName, cert.CourseName, cert.CertificateID)

		return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate generated successfully!", data)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate already issued!", data)
}

// DownloadCertificate streams the decrypted certificate file to its owner
func DownloadCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(string)

	certificateID := c.Params("certificateId")
	if certificateID == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate id is required!", nil)
	}

	data, cert, err := CertService.Download(certificateID, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, certificate.ErrNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
		case errors.Is(err, certificate.ErrNotOwner):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this certificate!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to download certificate!", nil)
		}
	}

	c.Set(fiber.HeaderContentType, certificate.ContentType(cert.Format))
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", cert.CertificateID+"."+cert.Format))
	return c.Status(fiber.StatusOK).Send(data)
}

// VerifyCertificate is the public QR code verification endpoint
func VerifyCertificate(c *fiber.Ctx) error {
	certificateID := c.Params("certificateId")
	if certificateID == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate id is required!", nil)
	}

	valid, cert, err := CertService.Verify(certificateID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify certificate!", nil)
	}
	if !valid {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate verification result", fiber.Map{
			"verified": false,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate verification result", fiber.Map{
		"verified":        true,
		"certificate_id":  cert.CertificateID,
		"student_name":    cert.StudentName,
		"course_name":     cert.CourseName,
		"completion_date": cert.CompletionDate,
		"issued_at":       cert.IssuedAt,
	})
}

// GetStudentCertificates lists a student's certificates without file payloads
func GetStudentCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(string)

	studentID, err := strconv.Atoi(c.Params("studentId"))
	if err != nil || studentID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid student id!", nil)
	}

	if uint(studentID) != userID && role != models.RoleAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only view your own certificates!", nil)
	}

	certs, err := CertService.ListByStudent(uint(studentID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": certs,
		"total":        len(certs),
	})
}
