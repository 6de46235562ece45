package gpg_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/partout/internal/adapters/gpg"
	"go.trai.ch/partout/internal/core/domain"
	"go.trai.ch/partout/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestDecrypter_Decrypt(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)

	runner.EXPECT().Run(gomock.Any(), domain.Command{
		Program: "gpg2",
		Args:    []string{"--quiet", "--batch", "--yes", "--decrypt", "/store/web/example.gpg"},
		Capture: true,
	}).Return([]byte("secret\nuser\n"), nil)

	text, err := gpg.NewDecrypter(runner, "gpg2").Decrypt(context.Background(), "/store/web/example.gpg")
	require.NoError(t, err)
	assert.Equal(t, "secret\nuser\n", text)
}

func TestDecrypter_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)

	runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil, &domain.ProcessError{
		Kind:   domain.ErrProcessNonZeroExit,
		Stderr: "gpg: decryption failed: No secret key",
		Err:    errors.New("exit status 2"),
	})

	_, err := gpg.NewDecrypter(runner, "").Decrypt(context.Background(), "/store/x.gpg")
	require.ErrorContains(t, err, domain.ErrDecryptionFailed.Error())
	require.ErrorContains(t, err, "No secret key")
}

func TestDecrypter_LaunchFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)

	launch := &domain.ProcessError{Kind: domain.ErrProcessLaunchFailed, Err: errors.New(`exec: "gpg": executable file not found in $PATH`)}
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil, launch)

	_, err := gpg.NewDecrypter(runner, "").Decrypt(context.Background(), "/store/x.gpg")
	assert.True(t, domain.IsLaunchFailure(err))
}

func TestDecrypter_InvalidUTF8(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)

	runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return([]byte{0xff, 0xfe}, nil)

	_, err := gpg.NewDecrypter(runner, "").Decrypt(context.Background(), "/store/x.gpg")
	require.ErrorContains(t, err, domain.ErrDecryptionFailed.Error())
}
