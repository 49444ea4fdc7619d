package operation

import (
	"time"

	"github.com/redisctl/redisctl/deployment"
)

// Origin records which envelope convention yielded an operation identifier.
type Origin int

const (
	// OriginField: a direct top-level identifier field.
	OriginField Origin = iota
	// OriginLink: a task reference inside a links array.
	OriginLink
	// OriginNested: an in-progress task object nested in the response.
	OriginNested
)

func (o Origin) String() string {
	switch o {
	case OriginField:
		return "field"
	case OriginLink:
		return "link"
	case OriginNested:
		return "nested"
	default:
		return "unknown"
	}
}

// Handle references a server-side operation. One is built only after a
// successful mutating call, and only when the response carried an operation
// identifier; it is a value, never mutated, and discarded once its poll
// terminates.
type Handle struct {
	ID      string
	Backend deployment.Kind
	Origin  Origin
}

// Status is the terminal disposition of one poll of an operation.
type Status int

const (
	// Polling: not yet terminal; seen only in progress reports.
	Polling Status = iota
	// Succeeded: the backend reported the operation complete.
	Succeeded
	// Failed: the backend reported the operation itself as failed.
	Failed
	// TimedOut: the wait budget ran out with the operation still running.
	TimedOut
	// Cancelled: the caller's context was cancelled mid-poll.
	Cancelled
	// Unreliable: consecutive status queries failed; the operation's real
	// state is unknown.
	Unreliable
)

func (s Status) String() string {
	switch s {
	case Polling:
		return "polling"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case TimedOut:
		return "timed out"
	case Cancelled:
		return "cancelled"
	case Unreliable:
		return "unreliable"
	default:
		return "unknown"
	}
}

// Outcome summarizes a poll. LastRemoteStatus is the most recent status
// string the backend reported, useful for interactive display and for
// explaining a timeout.
type Outcome struct {
	Status           Status
	Elapsed          time.Duration
	LastRemoteStatus string
	ErrorDetail      string
}

// WaitPolicy controls whether and how long a caller awaits completion of an
// asynchronous operation. Immutable for the duration of one invocation.
type WaitPolicy struct {
	Enabled  bool
	Timeout  time.Duration
	Interval time.Duration
}

const (
	DefaultWaitTimeout  = 600 * time.Second
	DefaultWaitInterval = 10 * time.Second
)

// DefaultWaitPolicy returns the policy used when --wait is given without
// explicit timeout or interval values.
func DefaultWaitPolicy() WaitPolicy {
	return WaitPolicy{Enabled: true, Timeout: DefaultWaitTimeout, Interval: DefaultWaitInterval}
}
