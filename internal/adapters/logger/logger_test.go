package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/partout/internal/adapters/logger"
	"go.trai.ch/partout/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger writing into a buffer without ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Debug("hidden")
	lg.Info("store opened")
	lg.Warn("clipboard not available")

	g := goldie.New(t)
	g.Assert(t, "levels", buf.Bytes())
}

func TestLogger_Verbose(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetVerbose(true)

	lg.Debug("span copy_password:web/example took 12ms")

	assert.Equal(t, "● span copy_password:web/example took 12ms\n", buf.String())
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "standard error",
			err:        errors.New("boom"),
			goldenName: "error_basic",
		},
		{
			name: "zerr chain",
			err: zerr.Wrap(
				zerr.Wrap(errors.New("permission denied"), domain.ErrConfigReadFailed.Error()),
				"failed to open session",
			),
			goldenName: "error_chain",
		},
		{
			name: "process failure",
			err: errors.Join(domain.ErrOperationFailed, &domain.ProcessError{
				Kind:   domain.ErrProcessNonZeroExit,
				Stderr: "Error: web/example is not in the password store.",
			}),
			goldenName: "error_process",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Info("store opened")
	lg.Error(zerr.New("entry not found"))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var info map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &info))
	assert.Equal(t, "INFO", info["level"])
	assert.Equal(t, "store opened", info["msg"])

	var failure map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &failure))
	assert.Equal(t, "ERROR", failure["level"])
	assert.Equal(t, "entry not found", failure["error"])
}

func TestFormatChain_MetadataOnlyWrapper(t *testing.T) {
	err := zerr.With(errors.New("no such file"), "path", "/tmp/x")
	assert.Equal(t, "Error: no such file", logger.FormatChain(err))
}
