package helpers

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// CodeTTL is how long an issued verification code stays valid.
const CodeTTL = 30 * time.Minute

// GenerateVerificationCode returns a 6-digit numeric code drawn uniformly
// from [100000, 999999].
func GenerateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %v", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func CodeExpiry(now time.Time) time.Time {
	return now.Add(CodeTTL)
}

// StringTrim normalizes an incoming id or text value: strips spaces and the
// surrounding quotes clients sometimes pass in JSON strings or templates.
func StringTrim(s string) string {
	s = strings.TrimSpace(s)
	return strings.Trim(s, "\"'")
}
