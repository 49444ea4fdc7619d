package operation

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	cerrors "github.com/redisctl/redisctl/common/errors"
)

func quickPolicy() WaitPolicy {
	return WaitPolicy{Enabled: true, Timeout: time.Second, Interval: time.Millisecond}
}

func TestAwait_MutateFailureYieldsNoHandle(t *testing.T) {
	b := &fakeBackend{mutateErr: fmt.Errorf("402 payment required")}
	result, err := Await(context.Background(), b, Request{Method: "POST", Path: "/things"}, quickPolicy(), nil)

	if err == nil {
		t.Fatal("Expected the mutating call's error to surface")
	}
	if result.Handle != nil {
		t.Error("Expected no handle after a failed mutating call")
	}
	if b.queries() != 0 {
		t.Errorf("Expected no status queries after a failed mutating call, got %d", b.queries())
	}
	if b.mutateCalls != 1 {
		t.Errorf("Expected exactly one mutating call, got %d", b.mutateCalls)
	}
}

func TestAwait_WaitDisabledReturnsRawResponse(t *testing.T) {
	b := &fakeBackend{
		mutateResp: map[string]interface{}{"taskId": "t-1"},
		steps:      []statusStep{{status: "done"}},
	}
	result, err := Await(context.Background(), b, Request{Method: "POST", Path: "/things"}, WaitPolicy{}, nil)

	if err != nil {
		t.Fatal(err)
	}
	if result.Handle != nil || result.Outcome != nil {
		t.Error("Expected no polling when the policy is disabled")
	}
	if b.queries() != 0 {
		t.Errorf("Expected no status queries, got %d", b.queries())
	}
	if result.Response["taskId"] != "t-1" {
		t.Error("Expected the raw response back")
	}
}

// No extractable reference means the operation completed synchronously: the
// orchestrator neither builds a handle nor invokes the poller.
func TestAwait_NoReferenceNoPoll(t *testing.T) {
	b := &fakeBackend{
		mutateResp: map[string]interface{}{"name": "db-1", "status": "active"},
		steps:      []statusStep{{status: "done"}},
	}
	result, err := Await(context.Background(), b, Request{Method: "PUT", Path: "/things/1"}, quickPolicy(), nil)

	if err != nil {
		t.Fatal(err)
	}
	if result.Handle != nil {
		t.Error("Expected no handle without an operation reference")
	}
	if b.queries() != 0 {
		t.Errorf("Expected the poller never to run, got %d queries", b.queries())
	}
}

func TestAwait_PollsToSuccess(t *testing.T) {
	b := &fakeBackend{
		mutateResp: map[string]interface{}{"taskId": "t-9"},
		steps:      []statusStep{{status: "working"}, {status: "done"}},
	}
	result, err := Await(context.Background(), b, Request{Method: "POST", Path: "/things"}, quickPolicy(), nil)

	if err != nil {
		t.Fatal(err)
	}
	if result.Handle == nil || result.Handle.ID != "t-9" {
		t.Fatalf("Expected a handle for t-9, got %+v", result.Handle)
	}
	if result.Outcome == nil || result.Outcome.Status != Succeeded {
		t.Fatalf("Expected a Succeeded outcome, got %+v", result.Outcome)
	}
	if b.mutateCalls != 1 {
		t.Errorf("Expected the mutating call never to be retried, got %d calls", b.mutateCalls)
	}
}

func TestAwait_RemoteFailureError(t *testing.T) {
	b := &fakeBackend{
		mutateResp: map[string]interface{}{"taskId": "t-2"},
		steps:      []statusStep{{status: "broken"}},
	}
	_, err := Await(context.Background(), b, Request{Method: "DELETE", Path: "/things/2"}, quickPolicy(), nil)

	failure, ok := err.(*cerrors.RemoteOperationFailedError)
	if !ok {
		t.Fatalf("Expected RemoteOperationFailedError, got %T: %v", err, err)
	}
	if failure.OperationID != "t-2" {
		t.Errorf("Expected the operation id on the error, got %q", failure.OperationID)
	}
}

func TestAwait_TimeoutError(t *testing.T) {
	b := &fakeBackend{
		mutateResp: map[string]interface{}{"taskId": "t-3"},
		steps:      []statusStep{{status: "working"}},
	}
	policy := WaitPolicy{Enabled: true, Timeout: 30 * time.Millisecond, Interval: 10 * time.Millisecond}
	result, err := Await(context.Background(), b, Request{Method: "POST", Path: "/things"}, policy, nil)

	timeout, ok := err.(*cerrors.TimeoutError)
	if !ok {
		t.Fatalf("Expected TimeoutError, got %T: %v", err, err)
	}
	// The user must be told the remote operation may still be running and
	// how to re-check it.
	if !strings.Contains(timeout.Error(), "may still be running") {
		t.Errorf("Expected a still-running warning, got %q", timeout.Error())
	}
	if !strings.Contains(timeout.Error(), "task wait") {
		t.Errorf("Expected a re-check hint, got %q", timeout.Error())
	}
	if result.Outcome == nil || result.Outcome.Status != TimedOut {
		t.Errorf("Expected the TimedOut outcome alongside the error, got %+v", result.Outcome)
	}
}

func TestAwait_UnreliableError(t *testing.T) {
	queryErr := fmt.Errorf("dns failure")
	b := &fakeBackend{
		mutateResp: map[string]interface{}{"taskId": "t-4"},
		steps:      []statusStep{{err: queryErr}, {err: queryErr}, {err: queryErr}},
	}
	_, err := Await(context.Background(), b, Request{Method: "POST", Path: "/things"}, quickPolicy(), nil)

	if _, ok := err.(*cerrors.PollingUnreliableError); !ok {
		t.Fatalf("Expected PollingUnreliableError, got %T: %v", err, err)
	}
	if _, ok := err.(*cerrors.RemoteOperationFailedError); ok {
		t.Fatal("A degraded status channel must not be reported as a remote failure")
	}
}

func TestAwait_CancelledSurfacesContextError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	b := &fakeBackend{
		mutateResp: map[string]interface{}{"taskId": "t-5"},
		steps:      []statusStep{{status: "working"}},
	}
	policy := WaitPolicy{Enabled: true, Timeout: time.Minute, Interval: time.Minute}

	errCh := make(chan error, 1)
	go func() {
		_, err := Await(ctx, b, Request{Method: "POST", Path: "/things"}, policy, nil)
		errCh <- err
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err != context.Canceled {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Await did not stop promptly after cancellation")
	}
}

func TestResume_PollsExistingIdentifier(t *testing.T) {
	b := &fakeBackend{steps: []statusStep{{status: "working"}, {status: "done"}}}
	o, err := Resume(context.Background(), b, "t-old", quickPolicy(), nil)

	if err != nil {
		t.Fatal(err)
	}
	if o.Status != Succeeded {
		t.Errorf("Expected Succeeded, got %v", o.Status)
	}
	if b.mutateCalls != 0 {
		t.Error("Resume must never issue a mutating call")
	}
}

// Exit codes differ per failure class so scripts can branch.
func TestExitCodes(t *testing.T) {
	cases := []struct {
		err  error
		code cerrors.ExitCode
	}{
		{&cerrors.RemoteOperationFailedError{OperationID: "x"}, cerrors.RemoteOperationFailedExitCode},
		{&cerrors.TimeoutError{OperationID: "x"}, cerrors.TimeoutExitCode},
		{&cerrors.PollingUnreliableError{OperationID: "x"}, cerrors.PollingUnreliableExitCode},
		{&cerrors.AmbiguousDeploymentError{Command: "database create"}, cerrors.AmbiguousDeploymentExitCode},
		{&cerrors.ProfileUnresolvedError{}, cerrors.ProfileUnresolvedExitCode},
	}
	for _, c := range cases {
		if got := cerrors.CodeOf(c.err); got != c.code {
			t.Errorf("CodeOf(%T) = %d, want %d", c.err, got, c.code)
		}
	}
	if cerrors.CodeOf(nil) != 0 {
		t.Error("CodeOf(nil) must be 0")
	}
	if cerrors.CodeOf(fmt.Errorf("plain")) != 1 {
		t.Error("CodeOf(plain error) must be the generic failure code")
	}
}
