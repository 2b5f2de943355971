package certificate

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var certIDPattern = regexp.MustCompile(`^NOVX-\d{4}-[A-Z0-9]{8}$`)

func TestNewCertificateIDFormat(t *testing.T) {
	id, err := NewCertificateID()
	require.NoError(t, err)
	assert.Regexp(t, certIDPattern, id)
}

func TestNewCertificateIDUsesCurrentYear(t *testing.T) {
	nowFunc = func() time.Time { return time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC) }
	defer func() { nowFunc = time.Now }()

	id, err := NewCertificateID()
	require.NoError(t, err)
	assert.Equal(t, "NOVX-2026-", id[:10])
}

func TestNewCertificateIDDistinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := NewCertificateID()
		require.NoError(t, err)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestVerificationLink(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{base: "https://novexa.app", want: "https://novexa.app/certificates/verify/NOVX-2026-A3F7B9C1"},
		{base: "https://novexa.app/", want: "https://novexa.app/certificates/verify/NOVX-2026-A3F7B9C1"},
		{base: "http://localhost:3000", want: "http://localhost:3000/certificates/verify/NOVX-2026-A3F7B9C1"},
	}
	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			got := VerificationLink(tt.base, "NOVX-2026-A3F7B9C1")
			assert.Equal(t, tt.want, got)
		})
	}
}

func ExampleVerificationLink() {
	fmt.Println(VerificationLink("https://novexa.app", "NOVX-2026-A3F7B9C1"))
	// Output: https://novexa.app/certificates/verify/NOVX-2026-A3F7B9C1
}
