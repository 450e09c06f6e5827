package runner

import (
	"fmt"

	"github.com/oneconcern/texpack/pkg/runner/status"
)

// Result of a job process: either it started then exited with some code,
// or it failed to start at all.
type Result struct {
	Job      string
	Started  bool
	ExitCode int
	Cause    error
}

// Exited is the result of a process that ran and exited with code
func Exited(job string, code int) Result {
	return Result{Job: job, Started: true, ExitCode: code}
}

// FailedToStart is the result of a process that could not be started
func FailedToStart(job string, cause error) Result {
	return Result{Job: job, Cause: cause}
}

// Err is nil iff the process started and exited with code 0.
func (r Result) Err() error {
	switch {
	case !r.Started:
		return &SpawnError{Job: r.Job, Cause: r.Cause}
	case r.ExitCode != 0 || r.Cause != nil:
		return &ExitFailure{Job: r.Job, Code: r.ExitCode, Err: r.Cause}
	default:
		return nil
	}
}

// ExitFailure reports a job process that exited with a non-zero status.
//
// Code is -1 when the process was terminated by a signal.
type ExitFailure struct {
	Job  string
	Code int
	Err  error
}

func (e *ExitFailure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("job %q exited with %d: %v", e.Job, e.Code, e.Err)
	}
	return fmt.Sprintf("job %q exited with %d", e.Job, e.Code)
}

// Unwrap the wait error, if any
func (e *ExitFailure) Unwrap() error {
	return e.Err
}

// Is an ExitFailure a status.ErrExitFailure
func (e *ExitFailure) Is(target error) bool {
	return target == status.ErrExitFailure
}

// SpawnError reports a job process that could not be started
type SpawnError struct {
	Job   string
	Cause error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("job %q: %v: %v", e.Job, status.ErrSpawn, e.Cause)
}

// Unwrap the start error
func (e *SpawnError) Unwrap() error {
	return e.Cause
}

// Is a SpawnError a status.ErrSpawn
func (e *SpawnError) Is(target error) bool {
	return target == status.ErrSpawn
}
