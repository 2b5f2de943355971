package certificate

import (
	"encoding/base64"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// qrSize is the pixel size of the generated QR image.
const qrSize = 256

// VerificationLink builds the public verification URL for a certificate ID.
func VerificationLink(baseURL, certificateID string) string {
	return strings.TrimRight(baseURL, "/") + "/certificates/verify/" + certificateID
}

// BuildVerification returns the verification link for a certificate ID and a
// scannable QR code encoding exactly that link, as an embeddable PNG data
// URL. Pure function of its inputs; regenerable at any time.
func BuildVerification(baseURL, certificateID string) (qrCodeData string, verificationLink string, err error) {
	verificationLink = VerificationLink(baseURL, certificateID)

	png, err := qrcode.Encode(verificationLink, qrcode.Medium, qrSize)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate QR code: %w", err)
	}

	qrCodeData = "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
	return qrCodeData, verificationLink, nil
}
