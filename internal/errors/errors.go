package errors

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

type ErrorType int

const (
	ErrorTypeUsage ErrorType = iota + 1
	ErrorTypeValidation
	ErrorTypeIO
	ErrorTypeConfig
	ErrorTypeInternal
)

type CLIError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// ExitCode maps the richer internal error taxonomy onto process exit
// codes: usage, validation and I/O errors exit 1; config errors exit
// 4 and internal errors exit 5, so those two stay distinguishable for
// scripting against. Success (0) and cancelling the interactive file
// picker (also 0) never produce a CLIError.
func (e *CLIError) ExitCode() int {
	switch e.Type {
	case ErrorTypeUsage:
		return 1
	case ErrorTypeValidation:
		return 1
	case ErrorTypeIO:
		return 1
	case ErrorTypeConfig:
		return 4
	case ErrorTypeInternal:
		return 5
	default:
		return 1
	}
}

func NewUsageError(message string) *CLIError {
	return &CLIError{
		Type:    ErrorTypeUsage,
		Message: message,
	}
}

func NewValidationError(message string, err error) *CLIError {
	return &CLIError{
		Type:    ErrorTypeValidation,
		Message: message,
		Err:     err,
	}
}

func NewIOError(message string, err error) *CLIError {
	return &CLIError{
		Type:    ErrorTypeIO,
		Message: message,
		Err:     err,
	}
}

func NewConfigError(message string, err error) *CLIError {
	return &CLIError{
		Type:    ErrorTypeConfig,
		Message: message,
		Err:     err,
	}
}

// NewInternalError wraps err with a captured stack trace before storing
// it, unlike the other constructors here: usage/validation/io/config
// errors are expected conditions the user caused and can act on, but an
// internal error is a bug, and a stack trace is what turns a one-line
// "something broke" report into something fixable.
func NewInternalError(message string, err error) *CLIError {
	var wrapped error
	if err != nil {
		wrapped = goerrors.Wrap(err, 1)
	}
	return &CLIError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     wrapped,
	}
}

// StackTrace returns the captured stack trace for an internal error, or
// "" if err carries none (it did not originate from NewInternalError).
func StackTrace(err error) string {
	var ge *goerrors.Error
	if errors.As(err, &ge) {
		return string(ge.Stack())
	}
	return ""
}

// NewCompileError wraps a structural validation failure (an
// accumulated *multierror.Error from bpmn.Validate) as a CLIError,
// so the compile command reports it with the validation exit code and
// the full list of rule violations intact. The HTTP adapter does not
// use it; it joins the violations into its JSON error string itself.
func NewCompileError(err error) *CLIError {
	return &CLIError{
		Type:    ErrorTypeValidation,
		Message: "bpmn validation failed",
		Err:     err,
	}
}

func IsCLIError(err error) (*CLIError, bool) {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr, true
	}
	return nil, false
}