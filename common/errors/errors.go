package errors

import (
	"fmt"
	"time"
)

// ExitCoder is implemented by every error in this package so main can map
// a failure to a shell exit status without inspecting concrete types.
type ExitCoder interface {
	GetExitCode() ExitCode
}

type ExitCodeError struct {
	code ExitCode
	error
}

func NewError(err error, exitCode ExitCode) *ExitCodeError {
	if err == nil {
		return nil
	}
	return &ExitCodeError{exitCode, err}
}

func (e *ExitCodeError) GetExitCode() ExitCode {
	if e == nil {
		return 0
	}
	return e.code
}

// AmbiguousDeploymentError is returned when a command can target either
// backend and neither an explicit --deployment flag nor the active profile
// settles which one. Usage error, never retried.
type AmbiguousDeploymentError struct {
	Command string
}

func (e *AmbiguousDeploymentError) Error() string {
	return fmt.Sprintf("cannot determine deployment for %q: pass --deployment cloud|enterprise or select a profile with a declared deployment", e.Command)
}

func (e *AmbiguousDeploymentError) GetExitCode() ExitCode {
	return AmbiguousDeploymentExitCode
}

// ProfileUnresolvedReason distinguishes "no profile exists at all" from
// "a profile was found but is unusable".
type ProfileUnresolvedReason int

const (
	// NoProfileConfigured: no profile named, no default, nothing in the store.
	NoProfileConfigured ProfileUnresolvedReason = iota
	// ProfileNotFound: a name was given but the store has no such profile.
	ProfileNotFound
	// ProfileMissingDeployment: the profile exists but declares no deployment.
	ProfileMissingDeployment
)

type ProfileUnresolvedError struct {
	Name   string
	Reason ProfileUnresolvedReason
}

func (e *ProfileUnresolvedError) Error() string {
	switch e.Reason {
	case ProfileNotFound:
		return fmt.Sprintf("profile %q not found; run 'redisctl profile list' to see configured profiles", e.Name)
	case ProfileMissingDeployment:
		return fmt.Sprintf("profile %q declares no deployment type", e.Name)
	default:
		return "no profile configured; run 'redisctl profile set' to configure one"
	}
}

func (e *ProfileUnresolvedError) GetExitCode() ExitCode {
	return ProfileUnresolvedExitCode
}

// RemoteOperationFailedError: the backend reported the operation itself as
// failed. Detail is the backend's own error text, passed through verbatim.
type RemoteOperationFailedError struct {
	OperationID string
	Detail      string
}

func (e *RemoteOperationFailedError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("operation %s failed", e.OperationID)
	}
	return fmt.Sprintf("operation %s failed: %s", e.OperationID, e.Detail)
}

func (e *RemoteOperationFailedError) GetExitCode() ExitCode {
	return RemoteOperationFailedExitCode
}

// TimeoutError: the wait budget ran out before the operation reached a
// terminal state. RecheckCommand names the command that re-attaches to the
// identifier, since the remote operation may well still be running.
type TimeoutError struct {
	OperationID    string
	Timeout        time.Duration
	RecheckCommand string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("operation %s did not complete within %s; it may still be running, re-check with 'redisctl %s %s'",
		e.OperationID, e.Timeout, e.RecheckCommand, e.OperationID)
}

func (e *TimeoutError) GetExitCode() ExitCode {
	return TimeoutExitCode
}

// PollingUnreliableError: we lost the ability to check status, which is not
// the same thing as the remote operation failing.
type PollingUnreliableError struct {
	OperationID string
	Failures    int
	LastErr     error
}

func (e *PollingUnreliableError) Error() string {
	return fmt.Sprintf("gave up polling operation %s after %d consecutive status query failures, last: %v",
		e.OperationID, e.Failures, e.LastErr)
}

func (e *PollingUnreliableError) GetExitCode() ExitCode {
	return PollingUnreliableExitCode
}

func (e *PollingUnreliableError) Unwrap() error {
	return e.LastErr
}
