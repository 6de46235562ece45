package catalog

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/partout/internal/core/domain"
	"go.trai.ch/zerr"
)

// ResolveRoot maps a store directory override to an absolute path.
//
// An absolute override is used as is. An override starting with "~" or "$HOME"
// is taken relative to home. Anything else, including an empty override,
// selects the default store below home.
func ResolveRoot(override, home string) string {
	switch {
	case override == "":
	case filepath.IsAbs(override):
		return filepath.Clean(override)
	default:
		for _, prefix := range []string{"~", "$HOME"} {
			rest, ok := strings.CutPrefix(override, prefix)
			if !ok {
				continue
			}
			if rest == "" {
				return filepath.Clean(home)
			}
			if rest[0] == '/' || rest[0] == filepath.Separator {
				return filepath.Join(home, rest[1:])
			}
		}
	}
	return filepath.Join(home, domain.DefaultStoreDirName)
}

// Environment supplies the process environment to StoreRoot.
type Environment struct {
	LookupEnv func(key string) (string, bool)
	HomeDir   func() (string, error)
}

// OSEnvironment reads the real process environment.
func OSEnvironment() Environment {
	return Environment{LookupEnv: os.LookupEnv, HomeDir: os.UserHomeDir}
}

// StoreRoot determines the store directory.
// PASSWORD_STORE_DIR takes precedence over the configured directory.
func StoreRoot(env Environment, configured string) (string, error) {
	home, err := env.HomeDir()
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrStoreUnresolvable.Error())
	}
	if home == "" {
		return "", domain.ErrStoreUnresolvable
	}

	override := configured
	if v, ok := env.LookupEnv(domain.StoreDirEnvVar); ok && v != "" {
		override = v
	}
	return ResolveRoot(override, home), nil
}
