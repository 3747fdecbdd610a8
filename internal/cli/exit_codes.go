package cli

import (
	"errors"
	"fmt"

	errs "github.com/gutterlabs/relnotes/internal/errors"
)

// Exit codes for the relnotes CLI.
// These codes support programmatic composition and CI integration.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitLintFailed indicates lint or index validation found errors
	ExitLintFailed = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitMissingPrerequisites indicates required files or directories are missing
	ExitMissingPrerequisites = 4
)

// ExitError signals a specific process exit code without an extra error
// message; commands print their own diagnostics before returning it.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError returns an error carrying the given exit code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// ExitCode extracts the process exit code from an error returned by Execute.
// CLIErrors map by category: argument problems exit 3, missing prerequisites
// exit 4, everything else exits 1.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	var cliErr *errs.CLIError
	if errors.As(err, &cliErr) {
		switch cliErr.Category {
		case errs.Argument:
			return ExitInvalidArguments
		case errs.Prerequisite:
			return ExitMissingPrerequisites
		}
	}
	return ExitLintFailed
}

func isExitError(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr)
}
