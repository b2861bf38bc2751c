// Package errors formats command failures for the terminal.
package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/soberly/internal/logger"
	"github.com/julianstephens/soberly/internal/storage"
	"github.com/julianstephens/soberly/internal/validation"
)

// Exit codes returned by the CLI.
const (
	ExitFailure = 1
	ExitInvalid = 2
)

// Format formats an error message with a consistent "Error: " prefix.
// Input errors get a retry hint on a second line.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\n" + hint
	}
	return msg
}

// Hint returns a short suggestion for well-known error kinds.
func Hint(err error) string {
	switch {
	case stderrors.Is(err, validation.ErrInvalidInput):
		return "Please check the value and try again."
	case stderrors.Is(err, storage.ErrNotFound):
		return "Run 'soberly onboard' to create your profile."
	default:
		return ""
	}
}

// ExitCode maps err to a process exit code.
func ExitCode(err error) int {
	if stderrors.Is(err, validation.ErrInvalidInput) {
		return ExitInvalid
	}
	return ExitFailure
}

// Fatal reports err on stderr and exits with ExitCode(err). A nil err is a
// no-op. The log file is closed first since os.Exit skips deferred calls.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err, "exit", ExitCode(err))
	_ = logger.Close()
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(ExitCode(err))
}
