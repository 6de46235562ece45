package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/partout/internal/core/domain"
)

func TestParseSecret(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected domain.Secret
	}{
		{
			name:  "password login and otp",
			input: "secret\nuser\notpauth://totp/x\n",
			expected: domain.Secret{
				Password:  "secret",
				Login:     "user",
				HasLogin:  true,
				OTPURI:    "otpauth://totp/x",
				LineCount: 3,
			},
		},
		{
			name:     "password only",
			input:    "secret\n",
			expected: domain.Secret{Password: "secret", LineCount: 1},
		},
		{
			name:     "no trailing newline",
			input:    "secret",
			expected: domain.Secret{Password: "secret", LineCount: 1},
		},
		{
			name:     "empty",
			input:    "",
			expected: domain.Secret{},
		},
		{
			name:     "trailing blank lines",
			input:    "secret\n\n\n",
			expected: domain.Secret{Password: "secret", LineCount: 3},
		},
		{
			name:     "blank login",
			input:    "secret\n  \nnotes\n",
			expected: domain.Secret{Password: "secret", LineCount: 3},
		},
		{
			name:  "crlf line endings",
			input: "secret\r\nuser\r\n",
			expected: domain.Secret{
				Password:  "secret",
				Login:     "user",
				HasLogin:  true,
				LineCount: 2,
			},
		},
		{
			name:  "first otp line wins",
			input: "secret\nuser\nurl: example.com\notpauth://totp/a\notpauth://totp/b\n",
			expected: domain.Secret{
				Password:  "secret",
				Login:     "user",
				HasLogin:  true,
				OTPURI:    "otpauth://totp/a",
				LineCount: 5,
			},
		},
		{
			name:  "otp in login position is a login",
			input: "secret\notpauth://totp/x\n",
			expected: domain.Secret{
				Password:  "secret",
				Login:     "otpauth://totp/x",
				HasLogin:  true,
				LineCount: 2,
			},
		},
		{
			name:     "otp scheme must prefix the line",
			input:    "secret\nuser\n otpauth://totp/x\n",
			expected: domain.Secret{Password: "secret", Login: "user", HasLogin: true, LineCount: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ParseSecret(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.expected.OTPURI != "", got.HasOTP())
		})
	}
}
