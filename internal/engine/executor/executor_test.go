package executor_test

import (
	"context"
	"errors"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/partout/internal/core/domain"
	"go.trai.ch/partout/internal/core/ports"
	"go.trai.ch/partout/internal/core/ports/mocks"
	"go.trai.ch/partout/internal/engine/executor"
	"go.uber.org/mock/gomock"
)

const entryID = "web/example"

type fakeCatalog struct{ root string }

func (c fakeCatalog) Root() string { return c.root }
func (c fakeCatalog) Entries() []domain.Entry { return []domain.Entry{{ID: entryID}} }
func (c fakeCatalog) Contains(id string) bool { return id == entryID }
func (c fakeCatalog) Path(id string) string { return c.root + "/" + id + ".gpg" }
func (c fakeCatalog) Refresh() bool { return false }

type executorTestMocks struct {
	runner    *mocks.MockCommandRunner
	decrypter *mocks.MockDecrypter
	clipboard *mocks.MockClipboard
	otp       *mocks.MockCodeGenerator
	span      *mocks.MockSpan
}

// setupExecutorTest creates an executor and its mocks. withClipboard=false simulates a
// system without clipboard.
func setupExecutorTest(t *testing.T, cfg executor.Config, withClipboard bool) (*executor.Executor, executorTestMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := executorTestMocks{
		runner:    mocks.NewMockCommandRunner(ctrl),
		decrypter: mocks.NewMockDecrypter(ctrl),
		clipboard: mocks.NewMockClipboard(ctrl),
		otp:       mocks.NewMockCodeGenerator(ctrl),
		span:      mocks.NewMockSpan(ctrl),
	}

	m.span.EXPECT().End().AnyTimes()
	m.span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	m.span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()

	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Span) {
			return ctx, m.span
		},
	).AnyTimes()

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	var clip ports.Clipboard
	if withClipboard {
		clip = m.clipboard
	}

	e := executor.New(m.runner, m.decrypter, clip, m.otp, fakeCatalog{root: "/store"}, tracer, log, cfg)
	return e, m
}

// run executes op and checks that exactly one terminal event was emitted, last.
func run(t *testing.T, e *executor.Executor, kind domain.OperationKind) ([]domain.Event, domain.Event) {
	t.Helper()
	var got []domain.Event
	op := domain.NewOperationID(kind, entryID)

	terminal := e.Run(context.Background(), op, "run-1", func(ev domain.Event) {
		got = append(got, ev)
	})

	require.NotEmpty(t, got)
	terminals := 0
	for _, ev := range got {
		assert.Equal(t, op, ev.Operation)
		assert.Equal(t, "run-1", ev.RunID)
		if ev.Terminal {
			terminals++
		}
	}
	require.Equal(t, 1, terminals, "exactly one terminal event")
	require.True(t, got[len(got)-1].Terminal, "terminal event comes last")
	assert.Equal(t, got[len(got)-1], terminal)
	return got, terminal
}

func messages(events []domain.Event) []string {
	out := make([]string, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Message)
	}
	return out
}

func passCommand(capture bool, args ...string) domain.Command {
	return domain.Command{
		Program: "pass",
		Args:    args,
		Env:     []string{"PASSWORD_STORE_DIR=/store", "PASSWORD_STORE_CLIP_TIME=45"},
		Capture: capture,
	}
}

var passConfig = executor.Config{Strategy: domain.StrategyPass, ClipTimeout: 45 * time.Second}

var gpgConfig = executor.Config{Strategy: domain.StrategyDecrypt, ClipTimeout: 45 * time.Second}

func TestRun_PassCopyPassword(t *testing.T) {
	e, m := setupExecutorTest(t, passConfig, true)
	m.runner.EXPECT().Run(gomock.Any(), passCommand(false, "show", "--clip", "--", entryID)).Return(nil, nil)

	events, terminal := run(t, e, domain.OpCopyPassword)

	assert.Equal(t, []string{
		"⧗ (pass) Copying password...",
		"Password copied to clipboard, clears after 45 seconds",
	}, messages(events))
	assert.NoError(t, terminal.Err)
}

func TestRun_PassCopyLogin(t *testing.T) {
	e, m := setupExecutorTest(t, passConfig, true)
	m.runner.EXPECT().Run(gomock.Any(), passCommand(false, "show", "--clip=2", "--", entryID)).Return(nil, nil)

	events, _ := run(t, e, domain.OpCopyLogin)

	assert.Equal(t, "Login copied to clipboard, clears after 45 seconds", events[1].Message)
}

func TestRun_PassCopyOTP(t *testing.T) {
	e, m := setupExecutorTest(t, passConfig, true)
	m.runner.EXPECT().Run(gomock.Any(), passCommand(false, "otp", "code", "--clip", "--", entryID)).Return(nil, nil)

	events, _ := run(t, e, domain.OpCopyOTP)

	assert.Equal(t, []string{
		"⧗ (pass) Copying one-time password...",
		"One-time password copied to clipboard",
	}, messages(events))
}

func TestRun_PassDashLeadingID(t *testing.T) {
	const id = "--clip=3"

	tests := []struct {
		kind    domain.OperationKind
		capture bool
		args    []string
	}{
		{domain.OpFetchEntry, true, []string{"show", "--", id}},
		{domain.OpCopyPassword, false, []string{"show", "--clip", "--", id}},
		{domain.OpCopyLogin, false, []string{"show", "--clip=2", "--", id}},
		{domain.OpCopyOTP, false, []string{"otp", "code", "--clip", "--", id}},
		{domain.OpFetchOTP, true, []string{"otp", "code", "--", id}},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			e, m := setupExecutorTest(t, passConfig, true)
			m.runner.EXPECT().Run(gomock.Any(), passCommand(tt.capture, tt.args...)).Return([]byte("000000\n"), nil)

			terminal := e.Run(context.Background(), domain.NewOperationID(tt.kind, id), "run-1", func(domain.Event) {})

			require.NoError(t, terminal.Err)
		})
	}
}

func TestRun_PassLaunchFailure(t *testing.T) {
	e, m := setupExecutorTest(t, passConfig, true)
	m.runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil, &domain.ProcessError{
		Kind:     domain.ErrProcessLaunchFailed,
		Program:  "pass",
		ExitCode: -1,
		Err:      errors.New(`exec: "pass": executable file not found in $PATH`),
	})

	_, terminal := run(t, e, domain.OpCopyPassword)

	assert.Equal(t, `✗ (pass) exec: "pass": executable file not found in $PATH`, terminal.Message)
	assert.True(t, domain.IsLaunchFailure(terminal.Err))
	assert.True(t, terminal.Failed())
}

func TestRun_PassNonZeroExit(t *testing.T) {
	tests := []struct {
		name     string
		stderr   string
		expected string
	}{
		{"stderr payload", "Error: web/example is not in the password store.", "✗ (pass) Error: web/example is not in the password store."},
		{"exit status", "", "✗ (pass) exit status 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, m := setupExecutorTest(t, passConfig, true)
			m.runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil, &domain.ProcessError{
				Kind:     domain.ErrProcessNonZeroExit,
				ExitCode: 1,
				Stderr:   tt.stderr,
				Err:      errors.New("exit status 1"),
			})

			_, terminal := run(t, e, domain.OpCopyLogin)

			assert.Equal(t, tt.expected, terminal.Message)
			assert.ErrorIs(t, terminal.Err, domain.ErrProcessNonZeroExit)
		})
	}
}

func TestRun_PassFetchOTP(t *testing.T) {
	e, m := setupExecutorTest(t, passConfig, true)
	m.runner.EXPECT().Run(gomock.Any(), passCommand(true, "otp", "code", "--", entryID)).Return([]byte("492039\n"), nil)

	events, terminal := run(t, e, domain.OpFetchOTP)

	assert.Equal(t, "⧗ (pass) Fetching one-time password...", events[0].Message)
	assert.Equal(t, domain.EventOneTimePassword, terminal.Kind)
	assert.Equal(t, "492039", terminal.Code)
	assert.Empty(t, terminal.Message)
}

func TestRun_PassFetchEntry(t *testing.T) {
	e, m := setupExecutorTest(t, passConfig, true)
	contents := "secret\nuser\notpauth://totp/x?secret=ABC\n"
	m.runner.EXPECT().Run(gomock.Any(), passCommand(true, "show", "--", entryID)).Return([]byte(contents), nil)
	m.otp.EXPECT().Generate("otpauth://totp/x?secret=ABC").Return("123456", nil)

	_, terminal := run(t, e, domain.OpFetchEntry)

	assert.Equal(t, domain.EventEntryContents, terminal.Kind)
	assert.Equal(t, contents, terminal.Contents)
	assert.Equal(t, domain.Secret{
		Password:  "secret",
		Login:     "user",
		HasLogin:  true,
		OTPURI:    "otpauth://totp/x?secret=ABC",
		OTPCode:   "123456",
		LineCount: 3,
	}, terminal.Secret)
}

func TestRun_FetchEntryInvalidOTPStillSucceeds(t *testing.T) {
	e, m := setupExecutorTest(t, gpgConfig, true)
	m.decrypter.EXPECT().Decrypt(gomock.Any(), "/store/web/example.gpg").Return("secret\nuser\notpauth://totp/x\n", nil)
	m.otp.EXPECT().Generate(gomock.Any()).Return("", domain.ErrOTPInvalid)

	events, terminal := run(t, e, domain.OpFetchEntry)

	assert.Equal(t, "⧗ (gpg) Fetching password entry...", events[0].Message)
	require.NoError(t, terminal.Err)
	assert.Empty(t, terminal.Secret.OTPCode)
	assert.Equal(t, 3, terminal.Secret.LineCount)
}

func TestRun_DecryptFailure(t *testing.T) {
	e, m := setupExecutorTest(t, gpgConfig, true)
	m.decrypter.EXPECT().Decrypt(gomock.Any(), gomock.Any()).Return("", errors.New("failed to decrypt entry: gpg: decryption failed: No secret key"))

	_, terminal := run(t, e, domain.OpCopyPassword)

	assert.Equal(t, "✗ (gpg) failed to decrypt entry: gpg: decryption failed: No secret key", terminal.Message)
	assert.True(t, terminal.Failed())
}

func TestRun_DecryptCopyLoginWithoutLogin(t *testing.T) {
	e, m := setupExecutorTest(t, gpgConfig, true)
	m.decrypter.EXPECT().Decrypt(gomock.Any(), gomock.Any()).Return("secret\n", nil)

	_, terminal := run(t, e, domain.OpCopyLogin)

	assert.Equal(t, "✗ (gpg) entry has no login", terminal.Message)
}

func TestRun_DecryptCopyOTPWithoutOTP(t *testing.T) {
	e, m := setupExecutorTest(t, gpgConfig, true)
	m.decrypter.EXPECT().Decrypt(gomock.Any(), gomock.Any()).Return("secret\nuser\n", nil)

	_, terminal := run(t, e, domain.OpCopyOTP)

	assert.Equal(t, "✗ (gpg) entry has no one-time password", terminal.Message)
}

func TestRun_DecryptWithoutClipboard(t *testing.T) {
	e, m := setupExecutorTest(t, gpgConfig, false)
	m.decrypter.EXPECT().Decrypt(gomock.Any(), gomock.Any()).Return("secret\n", nil)

	_, terminal := run(t, e, domain.OpCopyPassword)

	assert.Equal(t, "✗ Clipboard not available", terminal.Message)
	assert.Equal(t, domain.ErrClipboardUnavailable, terminal.Err)
}

func TestRun_DecryptCopyPasswordClearsClipboard(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		e, m := setupExecutorTest(t, gpgConfig, true)
		m.decrypter.EXPECT().Decrypt(gomock.Any(), "/store/web/example.gpg").Return("secret\nuser\n", nil)
		m.clipboard.EXPECT().WriteText("secret").Return(nil)

		events, _ := run(t, e, domain.OpCopyPassword)
		assert.Equal(t, []string{
			"⧗ (gpg) Copying password...",
			"Password copied to clipboard, clears after 45 seconds",
		}, messages(events))
		assert.Equal(t, 1, e.PendingClears())

		time.Sleep(44 * time.Second)
		synctest.Wait()

		m.clipboard.EXPECT().ClearIf("secret").Return(nil)
		time.Sleep(2 * time.Second)
		synctest.Wait()

		assert.Equal(t, 0, e.PendingClears())
	})
}

func TestWaitClears(t *testing.T) {
	t.Run("waits for the timer", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			e, m := setupExecutorTest(t, gpgConfig, true)
			m.decrypter.EXPECT().Decrypt(gomock.Any(), gomock.Any()).Return("secret\n", nil)
			m.clipboard.EXPECT().WriteText("secret").Return(nil)
			run(t, e, domain.OpCopyPassword)

			start := time.Now()
			m.clipboard.EXPECT().ClearIf("secret").Return(nil)
			e.WaitClears(context.Background())

			assert.Equal(t, 45*time.Second, time.Since(start))
			assert.Equal(t, 0, e.PendingClears())
		})
	})

	t.Run("clears now when cancelled", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			e, m := setupExecutorTest(t, gpgConfig, true)
			m.decrypter.EXPECT().Decrypt(gomock.Any(), gomock.Any()).Return("secret\n", nil)
			m.clipboard.EXPECT().WriteText("secret").Return(nil)
			run(t, e, domain.OpCopyPassword)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			start := time.Now()
			m.clipboard.EXPECT().ClearIf("secret").Return(nil).Times(1)
			e.WaitClears(ctx)

			assert.Equal(t, 5*time.Second, time.Since(start))
			assert.Equal(t, 0, e.PendingClears())

			// The stopped timer must not clear a second time.
			time.Sleep(time.Minute)
			synctest.Wait()
		})
	})

	t.Run("nothing pending", func(t *testing.T) {
		e, _ := setupExecutorTest(t, passConfig, true)
		e.WaitClears(context.Background())
	})
}

func TestRun_DecryptCopyOTP(t *testing.T) {
	cfg := gpgConfig
	cfg.ClipTimeout = 0
	e, m := setupExecutorTest(t, cfg, true)
	m.decrypter.EXPECT().Decrypt(gomock.Any(), gomock.Any()).Return("secret\nuser\notpauth://totp/x?secret=ABC\n", nil)
	m.otp.EXPECT().Generate("otpauth://totp/x?secret=ABC").Return("654321", nil)
	m.clipboard.EXPECT().WriteText("654321").Return(nil)

	_, terminal := run(t, e, domain.OpCopyOTP)

	assert.Equal(t, "One-time password copied to clipboard", terminal.Message)
	assert.Equal(t, 0, e.PendingClears())
}

func TestRun_DecryptFetchOTP(t *testing.T) {
	e, m := setupExecutorTest(t, gpgConfig, true)
	m.decrypter.EXPECT().Decrypt(gomock.Any(), gomock.Any()).Return("secret\n\notpauth://totp/x?secret=ABC\n", nil)
	m.otp.EXPECT().Generate(gomock.Any()).Return("000111", nil)

	_, terminal := run(t, e, domain.OpFetchOTP)

	assert.Equal(t, "000111", terminal.Code)
}

func TestRun_CopyID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		e, m := setupExecutorTest(t, passConfig, true)
		m.clipboard.EXPECT().WriteText(entryID).Return(nil)

		events, terminal := run(t, e, domain.OpCopyID)

		assert.Len(t, events, 1)
		assert.Equal(t, "Password file identifier copied to clipboard", terminal.Message)
	})

	t.Run("write failure", func(t *testing.T) {
		e, m := setupExecutorTest(t, passConfig, true)
		m.clipboard.EXPECT().WriteText(entryID).Return(errors.New("failed to write clipboard: no display"))

		_, terminal := run(t, e, domain.OpCopyID)

		assert.Equal(t, "✗ Failed to copy password file identifier: failed to write clipboard: no display", terminal.Message)
	})

	t.Run("no clipboard", func(t *testing.T) {
		e, _ := setupExecutorTest(t, passConfig, false)

		_, terminal := run(t, e, domain.OpCopyID)

		assert.Equal(t, "✗ Clipboard not available", terminal.Message)
	})
}

func TestRun_Panic(t *testing.T) {
	e, m := setupExecutorTest(t, gpgConfig, true)
	m.decrypter.EXPECT().Decrypt(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, string) (string, error) {
		panic("backend exploded")
	})

	_, terminal := run(t, e, domain.OpFetchEntry)

	assert.True(t, terminal.Failed())
	assert.Contains(t, terminal.Message, domain.ErrOperationPanicked.Error())
}

func TestRun_UnknownOperation(t *testing.T) {
	e, _ := setupExecutorTest(t, passConfig, true)

	_, terminal := run(t, e, domain.OperationKind("rename"))

	assert.Equal(t, "✗ (pass) unknown operation", terminal.Message)
}
