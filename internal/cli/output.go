package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/davral/sysprop/internal/prop"
)

// Exit codes for the CLI.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Operation failure (set/delete failed, get found nothing)
	ExitCommandError = 2 // Command error (bad flags, unreadable config, store won't open)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message; empty means exit silently
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		if e.Message == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// NewSilentExit creates an ExitError carrying only an exit code. The
// entry point prints nothing for it; any diagnostics were already
// written by the command.
func NewSilentExit(code int) *ExitError {
	return &ExitError{Code: code}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for the CLI.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // diagnostics; defaults to Writer when nil
	Verbose   bool
}

// Response is the JSON response envelope for CLI output.
type Response struct {
	Status string   `json:"status"`          // "ok" or "error"
	Data   any      `json:"data,omitempty"`  // success payload
	Error  *RespErr `json:"error,omitempty"` // error details
}

// RespErr is the error structure for JSON responses.
type RespErr struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(Response{Status: "ok", Data: data})
	}
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format. Errors go to
// ErrWriter in text mode so they never mix with value output.
func (f *OutputFormatter) Error(code, message string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(Response{
			Status: "error",
			Error:  &RespErr{Code: code, Message: message},
		})
	}
	fmt.Fprintf(f.errWriter(), "sysprop: [%s] %s\n", code, message)
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Verbose output always goes to ErrWriter so it cannot corrupt value
// or JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.errWriter(), format+"\n", args...)
}

func (f *OutputFormatter) errWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}

// errorCode maps a store error to a stable code string for output.
func errorCode(err error) string {
	var se *prop.StoreError
	if errors.As(err, &se) {
		return string(se.Code)
	}
	return "ERROR"
}
