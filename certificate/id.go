package certificate

import (
	"crypto/rand"
	"fmt"
	"time"
)

// certPrefix is the fixed prefix of every NoveXa certificate ID.
const certPrefix = "NOVX"

// nowFunc is swapped out in tests
var nowFunc = time.Now

// NewCertificateID returns a globally unique human-readable certificate ID
// of the form NOVX-YEAR-XXXXXXXX, e.g. "NOVX-2026-A3F7B9C1". The token is
// 4 random bytes rendered as uppercase hex; the database's unique index is
// the collision backstop, not this function.
func NewCertificateID() (string, error) {
	token := make([]byte, 4)
	if _, err := rand.Read(token); err != nil {
		return "", fmt.Errorf("generate certificate token: %w", err)
	}
	return fmt.Sprintf("%s-%d-%02X%02X%02X%02X", certPrefix, nowFunc().Year(), token[0], token[1], token[2], token[3]), nil
}
