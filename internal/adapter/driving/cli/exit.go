package cli

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1 // Fetch failed: unknown user, HTTP error, connection error.
	ExitUsage   = 2 // Bad arguments, flags or configuration.
)

// exitError carries a process exit code for an error already reported to the user.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit with code %d: %v", e.code, e.err)
}

func (e *exitError) Unwrap() error {
	return e.err
}

func (e *exitError) ExitCode() int {
	return e.code
}

// ExitCode maps the error returned by the root command to a process exit code.
// Errors without an explicit code come from cobra's argument and flag parsing.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	return ExitUsage
}
