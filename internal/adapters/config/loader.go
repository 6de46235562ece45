// Package config provides the configuration loader for partout.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/partout/internal/core/domain"
	"go.trai.ch/partout/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger    ports.Logger
	configDir func() (string, error)
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, configDir: os.UserConfigDir}
}

// WithConfigDir replaces the lookup of the user configuration directory.
func (l *Loader) WithConfigDir(fn func() (string, error)) *Loader {
	l.configDir = fn
	return l
}

// DefaultPath returns the location of config.yaml below the user configuration directory.
func (l *Loader) DefaultPath() (string, error) {
	dir, err := l.configDir()
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}
	return filepath.Join(dir, domain.ConfigDirName, domain.ConfigFileName), nil
}

// Load reads the configuration at path, or at DefaultPath when path is empty.
// A missing default file yields the defaults; a missing explicit file is an error.
func (l *Loader) Load(path string) (*domain.Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = l.DefaultPath(); err != nil {
			l.Logger.Debug(err.Error())
			cfg := domain.DefaultConfig()
			return &cfg, nil
		}
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			cfg := domain.DefaultConfig()
			return &cfg, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	l.Logger.Debug("loaded configuration from " + path)
	return cfg, nil
}

// Parse decodes a config file and applies it on top of the defaults.
func Parse(data []byte) (*domain.Config, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	cfg := domain.DefaultConfig()
	cfg.StoreDir = file.StoreDir
	if file.PassBinary != "" {
		cfg.PassBinary = file.PassBinary
	}
	if file.GPGBinary != "" {
		cfg.GPGBinary = file.GPGBinary
	}

	strategy, err := domain.ParseStrategy(file.Backend)
	if err != nil {
		return nil, err
	}
	cfg.Strategy = strategy

	if file.ClipTimeout != "" {
		d, err := time.ParseDuration(file.ClipTimeout)
		if err != nil || d < 0 {
			return nil, zerr.With(domain.ErrInvalidClipTimeout, "clip_timeout", file.ClipTimeout)
		}
		cfg.ClipTimeout = d
	}
	if file.Watch != nil {
		cfg.Watch = *file.Watch
	}
	if file.EventBuffer > 0 {
		cfg.EventBuffer = file.EventBuffer
	}
	return &cfg, nil
}
