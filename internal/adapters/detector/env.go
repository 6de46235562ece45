// Package detector picks between the interactive dashboard and plain output.
package detector

import (
	"os"

	"go.trai.ch/partout/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// OutputMode represents the rendering mode for the application.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeTUI forces the interactive dashboard.
	ModeTUI
	// ModeLinear forces plain line output.
	ModeLinear
)

// ErrInvalidMode is returned for an unknown --output-mode value.
var ErrInvalidMode = zerr.New("invalid output mode, expected 'auto', 'tui' or 'linear'")

// isTerminal is replaced in tests.
var isTerminal = func(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// DetectEnvironment returns ModeTUI when both stdin and stdout are terminals and
// CI is not set, and ModeLinear otherwise.
func DetectEnvironment() OutputMode {
	ci := os.Getenv("CI")
	if ci == "true" || ci == "1" {
		return ModeLinear
	}
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return ModeLinear
	}
	return ModeTUI
}

// ParseMode validates a user supplied mode.
func ParseMode(flag string) (OutputMode, error) {
	switch flag {
	case "auto", "":
		return ModeAuto, nil
	case "tui":
		return ModeTUI, nil
	case "linear", "ci":
		return ModeLinear, nil
	default:
		return ModeAuto, zerr.With(ErrInvalidMode, "mode", flag)
	}
}

// ResolveMode applies the user's choice to the detected mode.
func ResolveMode(autoDetected, requested OutputMode) OutputMode {
	if requested == ModeAuto {
		return autoDetected
	}
	return requested
}

// RequireTerminal fails unless the dashboard can be shown.
func RequireTerminal(mode OutputMode) error {
	if mode != ModeTUI {
		return domain.ErrNotATerminal
	}
	return nil
}
