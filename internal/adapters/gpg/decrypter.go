// Package gpg decrypts entry files with the gpg command line tool.
package gpg

import (
	"context"
	"unicode/utf8"

	"go.trai.ch/partout/internal/core/domain"
	"go.trai.ch/partout/internal/core/ports"
	"go.trai.ch/zerr"
)

// Decrypter implements ports.Decrypter by running gpg.
type Decrypter struct {
	runner ports.CommandRunner
	binary string
}

// NewDecrypter creates a Decrypter running binary through runner.
func NewDecrypter(runner ports.CommandRunner, binary string) *Decrypter {
	if binary == "" {
		binary = "gpg"
	}
	return &Decrypter{runner: runner, binary: binary}
}

// Decrypt returns the plaintext of the entry file at path.
func (d *Decrypter) Decrypt(ctx context.Context, path string) (string, error) {
	out, err := d.runner.Run(ctx, domain.Command{
		Program: d.binary,
		Args:    []string{"--quiet", "--batch", "--yes", "--decrypt", path},
		Capture: true,
	})
	if err != nil {
		if domain.IsLaunchFailure(err) {
			return "", err
		}
		return "", zerr.With(zerr.Wrap(err, domain.ErrDecryptionFailed.Error()), "path", path)
	}
	if !utf8.Valid(out) {
		return "", zerr.With(domain.ErrDecryptionFailed, "reason", "plaintext is not valid UTF-8")
	}
	return string(out), nil
}
