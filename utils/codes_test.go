package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode(16)
	require.NoError(t, err)
	assert.Len(t, code, 32)

	other, err := GenerateCode(16)
	require.NoError(t, err)
	assert.NotEqual(t, code, other)
}

func TestFormatOrderNumber(t *testing.T) {
	date := time.Date(2025, time.March, 7, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "EK2503070042", FormatOrderNumber(date, 42))
	assert.Equal(t, "EK2503079999", FormatOrderNumber(date, 9999))
	assert.Equal(t, "EK2503070000", FormatOrderNumber(date, 0))
}

func TestNewOrderNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^EK\d{10}$`)
	date := time.Date(2025, time.December, 31, 23, 59, 0, 0, time.UTC)

	for i := 0; i < 20; i++ {
		number := NewOrderNumber(date)
		assert.Regexp(t, pattern, number)
		assert.Equal(t, "EK251231", number[:8])
	}
}
