package domain

import (
	"errors"
	"strings"
)

// ProcessError describes a failed invocation of an external program.
// Its message is the failure payload shown to the user: the trimmed stderr
// of the process, or the exit status description when stderr was empty.
type ProcessError struct {
	// Kind is ErrProcessLaunchFailed or ErrProcessNonZeroExit.
	Kind     error
	Program  string
	ExitCode int
	Stderr   string
	Err      error
}

// Error implements error.
func (e *ProcessError) Error() string {
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		return msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Kind != nil {
		return e.Kind.Error()
	}
	return "process failed"
}

// Unwrap exposes both the kind and the underlying error to errors.Is.
func (e *ProcessError) Unwrap() []error {
	var errs []error
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// IsLaunchFailure reports whether err is a ProcessError for a program that never started.
func IsLaunchFailure(err error) bool {
	var pe *ProcessError
	return errors.As(err, &pe) && pe.Kind == ErrProcessLaunchFailed
}
