package helpers

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateVerificationCode(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateVerificationCode()
		assert.NoError(t, err)
		assert.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestCodeExpiry(t *testing.T) {
	now := time.Now()
	expiry := CodeExpiry(now)
	assert.Equal(t, now.Add(30*time.Minute), expiry)
}

func TestStringTrim(t *testing.T) {
	assert.Equal(t, "abc", StringTrim(`  "abc" `))
	assert.Equal(t, "abc", StringTrim("'abc'"))
	assert.Equal(t, "abc", StringTrim("abc"))
	assert.Equal(t, "", StringTrim(`""`))
}
