package domain

import "time"

// Config is the resolved runtime configuration.
type Config struct {
	StoreDir    string
	PassBinary  string
	GPGBinary   string
	Strategy    Strategy
	ClipTimeout time.Duration
	Watch       bool
	EventBuffer int
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		PassBinary:  "pass",
		GPGBinary:   "gpg",
		Strategy:    StrategyPass,
		ClipTimeout: DefaultClipTimeout,
		Watch:       true,
		EventBuffer: DefaultEventBuffer,
	}
}
