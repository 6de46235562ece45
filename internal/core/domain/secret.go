package domain

import "strings"

// OTPScheme is the prefix of a line holding a one-time password URI.
const OTPScheme = "otpauth://"

// Secret is the positional interpretation of a decrypted entry.
type Secret struct {
	// Password is the first line.
	Password string
	// Login is the second line when present and not blank.
	Login    string
	HasLogin bool
	// OTPURI is the first line after the login that starts with OTPScheme.
	OTPURI string
	// OTPCode is filled in once a code has been derived from OTPURI.
	OTPCode   string
	LineCount int
}

// HasOTP reports whether the entry carries an otpauth URI.
func (s Secret) HasOTP() bool {
	return s.OTPURI != ""
}

// ParseSecret splits decrypted text into lines and interprets them.
// A single trailing newline does not start a new line and carriage returns
// before a newline are dropped.
func ParseSecret(text string) Secret {
	lines := splitLines(text)

	var s Secret
	s.LineCount = len(lines)
	if len(lines) > 0 {
		s.Password = lines[0]
	}
	if len(lines) > 1 && strings.TrimSpace(lines[1]) != "" {
		s.Login = lines[1]
		s.HasLogin = true
	}
	for _, line := range lines[min(2, len(lines)):] {
		if strings.HasPrefix(line, OTPScheme) {
			s.OTPURI = line
			break
		}
	}
	return s
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
