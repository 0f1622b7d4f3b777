// Package exitcode carries process exit codes through cobra's error return.
package exitcode

import "fmt"

const (
	Success = 0
	ExecErr = 1
	Usage   = 2
)

// Error pairs an error with the exit code main should use for it.
type Error struct {
	Code int
	Err  error
}

func (e Error) Error() string { return e.Err.Error() }
func (e Error) ExitCode() int { return e.Code }
func (e Error) Unwrap() error { return e.Err }

// Usagef builds a usage error (exit 2).
func Usagef(format string, a ...any) error {
	return Error{Code: Usage, Err: fmt.Errorf(format, a...)}
}

// AsUsage marks err as a usage error. A nil err stays nil.
func AsUsage(err error) error {
	if err == nil {
		return nil
	}
	return Error{Code: Usage, Err: err}
}
