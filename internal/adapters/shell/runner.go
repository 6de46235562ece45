// Package shell provides the external process runner adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.trai.ch/partout/internal/core/domain"
	"go.trai.ch/partout/internal/core/ports"
)

// DefaultWaitDelay bounds how long Run waits for output pipes after the process exited.
// Clipboard helpers started by pass may keep inherited pipes open long after pass returns.
const DefaultWaitDelay = 500 * time.Millisecond

// Runner implements ports.CommandRunner using os/exec.
type Runner struct {
	logger    ports.Logger
	waitDelay time.Duration
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger, waitDelay: DefaultWaitDelay}
}

// Run executes cmd and waits for it to exit.
func (r *Runner) Run(ctx context.Context, c domain.Command) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.Program, c.Args...) //nolint:gosec // program comes from configuration
	cmd.Env = mergeEnvironment(os.Environ(), c.Env)
	cmd.WaitDelay = r.waitDelay

	var stdout, stderr bytes.Buffer
	if c.Capture {
		cmd.Stdout = &stdout
	}
	cmd.Stderr = &stderr

	r.logger.Debug("running " + c.Program + " " + strings.Join(c.Args, " "))

	err := cmd.Run()
	if errors.Is(err, exec.ErrWaitDelay) {
		// The process itself succeeded; only its pipes outlived it.
		err = nil
	}
	if err == nil {
		return stdout.Bytes(), nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil, &domain.ProcessError{
			Kind:     domain.ErrProcessNonZeroExit,
			Program:  c.Program,
			ExitCode: exitErr.ExitCode(),
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
	}

	return nil, &domain.ProcessError{
		Kind:     domain.ErrProcessLaunchFailed,
		Program:  c.Program,
		ExitCode: -1,
		Err:      err,
	}
}

// mergeEnvironment applies overrides on top of base. Later keys win.
func mergeEnvironment(base, overrides []string) []string {
	if len(overrides) == 0 {
		return base
	}

	keys := make(map[string]struct{}, len(overrides))
	for _, entry := range overrides {
		if k, _, ok := strings.Cut(entry, "="); ok {
			keys[k] = struct{}{}
		}
	}

	merged := make([]string, 0, len(base)+len(overrides))
	for _, entry := range base {
		k, _, _ := strings.Cut(entry, "=")
		if _, overridden := keys[k]; overridden {
			continue
		}
		merged = append(merged, entry)
	}
	return append(merged, overrides...)
}
