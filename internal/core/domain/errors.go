package domain

import "go.trai.ch/zerr"

var (
	// ErrStoreUnresolvable is returned when the store root cannot be determined,
	// typically because the home directory is unknown.
	ErrStoreUnresolvable = zerr.New("could not determine password store directory")

	// ErrCatalogReadPartial marks an entry that was dropped from the catalog
	// because its metadata could not be read.
	ErrCatalogReadPartial = zerr.New("failed to read entry metadata")

	// ErrEntryNotFound is returned when an operation names an entry that is not in the catalog.
	ErrEntryNotFound = zerr.New("entry not found")

	// ErrUnknownOperation is returned when an operation kind has no executor.
	ErrUnknownOperation = zerr.New("unknown operation")

	// ErrOperationFailed is returned by one-shot commands whose operation ended in failure.
	ErrOperationFailed = zerr.New("operation failed")

	// ErrOperationPanicked is recorded when an operation aborted with a panic.
	ErrOperationPanicked = zerr.New("operation panicked")

	// ErrProcessLaunchFailed is returned when the external tool could not be started.
	ErrProcessLaunchFailed = zerr.New("failed to launch process")

	// ErrProcessNonZeroExit is returned when the external tool exited with a failure status.
	ErrProcessNonZeroExit = zerr.New("process exited with failure")

	// ErrClipboardUnavailable is returned when no usable clipboard exists.
	ErrClipboardUnavailable = zerr.New("clipboard not available")

	// ErrClipboardWriteFailed is returned when writing to the clipboard fails.
	ErrClipboardWriteFailed = zerr.New("failed to write clipboard")

	// ErrDecryptionFailed is returned when the decryption backend fails.
	ErrDecryptionFailed = zerr.New("failed to decrypt entry")

	// ErrNoLogin is returned when an entry has no login line.
	ErrNoLogin = zerr.New("entry has no login")

	// ErrNoOTP is returned when an entry has no otpauth line.
	ErrNoOTP = zerr.New("entry has no one-time password")

	// ErrOTPInvalid is returned when an otpauth URI cannot produce a code.
	ErrOTPInvalid = zerr.New("invalid one-time password URI")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidBackend is returned when the configured backend is not known.
	ErrInvalidBackend = zerr.New("invalid backend, expected 'pass' or 'gpg'")

	// ErrInvalidClipTimeout is returned when clip_timeout is not a non-negative duration.
	ErrInvalidClipTimeout = zerr.New("invalid clip_timeout, expected a non-negative duration")

	// ErrNotATerminal is returned when the dashboard is requested without a terminal.
	ErrNotATerminal = zerr.New("the dashboard requires an interactive terminal")
)

// ErrStoreClosed is returned when an operation is requested after shutdown began.
var ErrStoreClosed = zerr.New("operation store is closed")
