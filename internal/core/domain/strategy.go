package domain

import "go.trai.ch/zerr"

// Strategy selects how copy and one-time-password operations are carried out.
type Strategy string

const (
	// StrategyPass delegates to the pass command line tool.
	StrategyPass Strategy = "pass"
	// StrategyDecrypt decrypts the entry file directly and works on its lines.
	StrategyDecrypt Strategy = "gpg"
)

// ParseStrategy validates a backend name from configuration.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyPass, "":
		return StrategyPass, nil
	case StrategyDecrypt:
		return StrategyDecrypt, nil
	default:
		return "", zerr.With(ErrInvalidBackend, "backend", s)
	}
}
