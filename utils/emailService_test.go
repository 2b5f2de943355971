package utils

import (
	"net/smtp"
	"testing"

	"github.com/Manel-Mahdjoubi/novexa/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedMail struct {
	to  []string
	msg string
}

func captureMail(t *testing.T) *capturedMail {
	t.Helper()
	config.AppConfig = &config.Config{EmailSender: "noreply@novexa.app", Password: "x"}

	captured := &capturedMail{}
	sendMailFunc = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		captured.to = to
		captured.msg = string(msg)
		return nil
	}
	t.Cleanup(func() { sendMailFunc = smtp.SendMail })
	return captured
}

func TestSendEnrollmentEmail(t *testing.T) {
	captured := captureMail(t)

	require.NoError(t, SendEnrollmentEmail("ada@novexa.app", "Ada Lovelace", "Intro to Computing"))

	assert.Equal(t, []string{"ada@novexa.app"}, captured.to)
	assert.Contains(t, captured.msg, "Subject: Course Enrollment Confirmation - NoveXa")
	assert.Contains(t, captured.msg, "Ada Lovelace")
	assert.Contains(t, captured.msg, "Intro to Computing")
}

func TestSendCertificateEmail(t *testing.T) {
	captured := captureMail(t)

	require.NoError(t, SendCertificateEmail("ada@novexa.app", "Ada Lovelace", "Intro to Computing", "NOVX-2026-A3F7B9C1"))

	assert.Equal(t, []string{"ada@novexa.app"}, captured.to)
	assert.Contains(t, captured.msg, "Subject: Course Completion Certificate - NoveXa")
	assert.Contains(t, captured.msg, "NOVX-2026-A3F7B9C1")
	assert.Contains(t, captured.msg, "Intro to Computing")
}

func TestSendEmailHeaders(t *testing.T) {
	captured := captureMail(t)

	require.NoError(t, SendEmail([]string{"ada@novexa.app"}, "Hello", "<p>body</p>"))

	assert.Contains(t, captured.msg, "Content-Type: text/html")
	assert.Contains(t, captured.msg, "From: NoveXa <noreply@novexa.app>")
	assert.Contains(t, captured.msg, "To: ada@novexa.app")
}
