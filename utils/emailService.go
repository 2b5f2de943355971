package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Manel-Mahdjoubi/novexa/config"
)

// sendMailFunc is swapped out in tests
var sendMailFunc = smtp.SendMail

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: NoveXa <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := sendMailFunc(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper shared by all outgoing mail
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1B2A4A; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B2A4A; line-height: 1.6; }
			.content h2 { color: #1B2A4A; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #d7b56d; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>NOVEXA</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 NoveXa. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendWelcomeEmail greets a freshly registered account
func SendWelcomeEmail(name, email string) error {
	subject := "Welcome to NoveXa"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>NoveXa</strong>! We are thrilled to have you onboard.</p>
		<p>Your account has been successfully created. Verify your email address to start exploring courses.</p>
		<p>If you have any questions, feel free to reach out to our support team.</p>
	`, name)

	return SendEmail([]string{email}, subject, getEmailTemplate("Welcome Onboard!", body))
}

// SendOTPEmail delivers an email verification code
func SendOTPEmail(otp, email string) error {
	subject := "OTP Verification Code for NoveXa"
	body := fmt.Sprintf(`
		<p style="text-align: center;">Your One Time Password (OTP) is:</p>
		<h1 style="text-align: center; color: #4CAF50; font-size: 40px; margin: 20px 0;">%s</h1>
		<p style="text-align: center; font-size: 14px; color: #999999;">The code expires in 5 minutes. Do not share it with anyone.</p>
	`, otp)

	return SendEmail([]string{email}, subject, getEmailTemplate("Email Verification", body))
}

// SendEnrollmentEmail confirms a course enrollment
func SendEnrollmentEmail(email, userName, courseName string) error {
	subject := "Course Enrollment Confirmation - NoveXa"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations! You have successfully enrolled in:</p>
		<h3 style="text-align: center; color: #4CAF50; margin: 20px 0;">%s</h3>
		<p>You can now access all the course content. Complete every lecture and pass the quizzes to earn your certificate.</p>
	`, userName, courseName)

	return SendEmail([]string{email}, subject, getEmailTemplate("Enrollment Successful", body))
}

// SendCertificateEmail notifies a student that their certificate is ready
func SendCertificateEmail(email, userName, courseName, certificateID string) error {
	subject := "Course Completion Certificate - NoveXa"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations on completing the course:</p>
		<h3 style="text-align: center; color: #4CAF50; margin: 20px 0;">%s</h3>
		<div class="info-box" style="text-align: center;">
			<p style="margin-bottom: 10px;">Your Certificate ID:</p>
			<h2 style="color: #2196F3; margin: 0;">%s</h2>
		</div>
		<p>Your certificate is now available for download. Anyone can confirm its authenticity by scanning the QR code printed on it.</p>
	`, userName, courseName, certificateID)

	return SendEmail([]string{email}, subject, getEmailTemplate("Certificate of Completion", body))
}
