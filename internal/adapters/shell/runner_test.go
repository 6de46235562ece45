package shell_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/partout/internal/adapters/shell"
	"go.trai.ch/partout/internal/core/domain"
	"go.trai.ch/partout/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newRunner(t *testing.T) *shell.Runner {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	return shell.NewRunner(log)
}

func sh(script string, capture bool) domain.Command {
	return domain.Command{Program: "sh", Args: []string{"-c", script}, Capture: capture}
}

func TestRunner_Capture(t *testing.T) {
	out, err := newRunner(t).Run(context.Background(), sh("printf '123456\\n'", true))
	require.NoError(t, err)
	assert.Equal(t, "123456\n", string(out))
}

func TestRunner_DiscardsStdout(t *testing.T) {
	out, err := newRunner(t).Run(context.Background(), sh("echo secret", false))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRunner_EmptyStdin(t *testing.T) {
	out, err := newRunner(t).Run(context.Background(), sh("cat; echo done", true))
	require.NoError(t, err)
	assert.Equal(t, "done\n", string(out))
}

func TestRunner_Env(t *testing.T) {
	cmd := sh("printf '%s' \"$PASSWORD_STORE_DIR\"", true)
	cmd.Env = []string{"PASSWORD_STORE_DIR=/srv/store"}

	out, err := newRunner(t).Run(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, "/srv/store", string(out))
}

func TestRunner_NonZeroExitWithStderr(t *testing.T) {
	_, err := newRunner(t).Run(context.Background(), sh("echo 'Error: x is not in the password store.' >&2; exit 1", false))
	require.Error(t, err)

	var pe *domain.ProcessError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 1, pe.ExitCode)
	assert.Equal(t, "Error: x is not in the password store.", err.Error())
	assert.ErrorIs(t, err, domain.ErrProcessNonZeroExit)
}

func TestRunner_NonZeroExitWithoutStderr(t *testing.T) {
	_, err := newRunner(t).Run(context.Background(), sh("exit 3", false))
	require.Error(t, err)
	assert.Equal(t, "exit status 3", err.Error())
}

func TestRunner_LaunchFailure(t *testing.T) {
	_, err := newRunner(t).Run(context.Background(), domain.Command{Program: "partout-missing-binary"})
	require.Error(t, err)
	assert.True(t, domain.IsLaunchFailure(err))
	assert.ErrorIs(t, err, domain.ErrProcessLaunchFailed)
}

func TestRunner_LingeringPipe(t *testing.T) {
	start := time.Now()
	_, err := newRunner(t).Run(context.Background(), sh("(sleep 5) & exit 0", false))
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestMergeEnvironment(t *testing.T) {
	merged := shell.MergeEnvironment(
		[]string{"HOME=/home/alice", "PASSWORD_STORE_DIR=/old", "PATH=/bin"},
		[]string{"PASSWORD_STORE_DIR=/new"},
	)
	assert.Equal(t, []string{"HOME=/home/alice", "PATH=/bin", "PASSWORD_STORE_DIR=/new"}, merged)
}
