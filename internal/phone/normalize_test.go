package phone

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"local ten digits", "9876543210", "+919876543210"},
		{"formatted local", "98765-43210", "+919876543210"},
		{"spaces and parens", " (987) 654 3210 ", "+919876543210"},
		{"trunk prefix", "09876543210", "+919876543210"},
		{"country code without plus", "919876543210", "+919876543210"},
		{"already canonical", "+919876543210", "+919876543210"},
		{"canonical with separators", "+91 98765 43210", "+919876543210"},
		{"foreign canonical", "+14155550123", "+14155550123"},
		{"inner plus dropped", "98765+43210", "+919876543210"},
		{"short fallback", "12345", "+12345"},
		{"long fallback", "4412345678901", "+4412345678901"},
		{"no digits", "n/a", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw, "91"))
		})
	}
}

func TestNormalize_LocalNumbersGetCountryCode(t *testing.T) {
	for i := 0; i < 200; i++ {
		local := fmt.Sprintf("%010d", 6000000000+int64(i)*7919)
		assert.Equal(t, "+91"+local, Normalize(local, "91"))
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"+1234567890", "+919876543210", "+123456789012345", "+4915112345678"}

	for _, in := range inputs {
		once := Normalize(in, "91")
		assert.Equal(t, in, once)
		assert.Equal(t, once, Normalize(once, "91"))
	}
}

func TestNormalize_DefaultCountryCode(t *testing.T) {
	assert.Equal(t, "+919876543210", Normalize("9876543210", ""))
	assert.Equal(t, "+449876543210", Normalize("9876543210", "44"))
}

func TestIsCanonical(t *testing.T) {
	assert.True(t, IsCanonical("+919876543210"))
	assert.False(t, IsCanonical("919876543210"))
	assert.False(t, IsCanonical("+123"))
	assert.False(t, IsCanonical("+1234567890123456"))
}
