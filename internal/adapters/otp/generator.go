// Package otp derives time-based one-time passwords from otpauth URIs.
package otp

import (
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"go.trai.ch/partout/internal/core/domain"
	"go.trai.ch/zerr"
)

// Generator implements ports.CodeGenerator.
type Generator struct {
	now func() time.Time
}

// NewGenerator creates a Generator using the wall clock.
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// WithClock replaces the clock used to derive codes.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate returns the current code for uri.
func (g *Generator) Generate(uri string) (string, error) {
	key, err := otp.NewKeyFromURL(strings.TrimSpace(uri))
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrOTPInvalid.Error())
	}
	if key.Type() != "totp" {
		return "", zerr.With(domain.ErrOTPInvalid, "type", key.Type())
	}
	if key.Secret() == "" {
		return "", zerr.With(domain.ErrOTPInvalid, "reason", "missing secret")
	}

	code, err := totp.GenerateCodeCustom(key.Secret(), g.now(), totp.ValidateOpts{
		Period:    uint(key.Period()),
		Digits:    key.Digits(),
		Algorithm: key.Algorithm(),
	})
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrOTPInvalid.Error())
	}
	return code, nil
}
