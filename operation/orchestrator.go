package operation

import (
	"context"

	uuid "github.com/nu7hatch/gouuid"
	log "github.com/sirupsen/logrus"

	cerrors "github.com/redisctl/redisctl/common/errors"
	"github.com/redisctl/redisctl/common/stats"
	"github.com/redisctl/redisctl/deployment"
)

// Result is the uniform outcome every mutating command handler gets back.
// Response is always the raw mutating-call response. Handle and Outcome are
// set only when an operation identifier was extracted and polled.
type Result struct {
	Response map[string]interface{}
	Handle   *Handle
	Outcome  *Outcome
}

// Await is the single entry point mutating handlers use, so poll logic lives
// here once instead of at every call site. It performs the mutating call,
// and if the policy asks for it, extracts an operation identifier from the
// response and polls it to termination.
//
// The mutating call itself is issued exactly once and never retried; only
// status queries retry. A failed mutating call yields an error and no
// Handle. Each Await invocation is independent: it owns its policy, handle
// and poller, so any number can run concurrently.
//
// Terminal poll states map to errors as follows: Failed becomes
// RemoteOperationFailedError carrying the backend's detail verbatim,
// TimedOut becomes TimeoutError (the remote operation may still be running),
// Unreliable becomes PollingUnreliableError, and Cancelled surfaces the
// context's own error. The Result is returned alongside the error in every
// polled case so callers can still render what they know.
func Await(ctx context.Context, b Backend, req Request, policy WaitPolicy, progress ProgressFunc) (Result, error) {
	logger := log.WithFields(log.Fields{
		"backend":    b.Kind().String(),
		"invocation": invocationID(),
	})
	stat := stats.DefaultReceiver().Scope("operation", b.Kind().String())

	resp, err := b.Mutate(ctx, req)
	if err != nil {
		stat.Counter("mutateFailures").Inc(1)
		return Result{}, err
	}
	stat.Counter("mutations").Inc(1)

	if !policy.Enabled {
		return Result{Response: resp}, nil
	}

	handle, ok := Extract(b.Kind(), resp)
	if !ok {
		// Nothing to await: the operation completed synchronously.
		logger.Debug("no operation reference in response, not polling")
		return Result{Response: resp}, nil
	}
	logger = logger.WithFields(log.Fields{"operation": handle.ID, "origin": handle.Origin.String()})
	logger.Debugf("awaiting operation, timeout %s interval %s", policy.Timeout, policy.Interval)

	outcome, err := poll(ctx, b, handle, policy, progress, stat)
	return Result{Response: resp, Handle: &handle, Outcome: &outcome}, err
}

// Resume re-attaches to a previously issued operation identifier and polls
// it to termination. This is how a caller re-checks an operation after a
// prior invocation timed out; polling never auto-resumes on its own.
func Resume(ctx context.Context, b Backend, id string, policy WaitPolicy, progress ProgressFunc) (Outcome, error) {
	handle := Handle{ID: id, Backend: b.Kind(), Origin: OriginField}
	stat := stats.DefaultReceiver().Scope("operation", b.Kind().String())
	return poll(ctx, b, handle, policy, progress, stat)
}

// poll drives the poller and maps its terminal state onto the error
// taxonomy scripted callers branch on.
func poll(ctx context.Context, b Backend, handle Handle, policy WaitPolicy, progress ProgressFunc, stat stats.Receiver) (Outcome, error) {
	outcome := NewPoller(b, policy, progress, stat).Poll(ctx, handle)

	switch outcome.Status {
	case Succeeded:
		return outcome, nil
	case Failed:
		return outcome, &cerrors.RemoteOperationFailedError{
			OperationID: handle.ID,
			Detail:      outcome.ErrorDetail,
		}
	case TimedOut:
		return outcome, &cerrors.TimeoutError{
			OperationID:    handle.ID,
			Timeout:        policy.Timeout,
			RecheckCommand: recheckCommand(b.Kind()),
		}
	case Unreliable:
		return outcome, &cerrors.PollingUnreliableError{
			OperationID: handle.ID,
			Failures:    maxConsecutiveFailures,
			LastErr:     errDetail(outcome),
		}
	default: // Cancelled
		return outcome, ctx.Err()
	}
}

// recheckCommand names the command that re-attaches to an operation
// identifier out of band. Polling does not auto-resume across invocations.
func recheckCommand(kind deployment.Kind) string {
	if kind == deployment.Enterprise {
		return "action wait"
	}
	return "task wait"
}

func invocationID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return "unknown"
	}
	return id.String()
}

type detailError string

func (e detailError) Error() string { return string(e) }

func errDetail(o Outcome) error {
	if o.ErrorDetail == "" {
		return nil
	}
	return detailError(o.ErrorDetail)
}
