// Package operation tracks asynchronous backend operations to completion.
// Mutating API calls on either control plane may return an operation
// reference instead of a finished result; this package extracts that
// reference, polls its status until a terminal state, and folds the whole
// exchange into one outcome for the calling command handler.
package operation

import (
	"context"

	"github.com/redisctl/redisctl/deployment"
)

// Request is a mutating call against a backend, described abstractly so the
// orchestrator never touches HTTP. Body is marshaled as the request payload;
// a nil Body sends none.
type Request struct {
	Method string
	Path   string
	Body   interface{}
}

// Classification is a backend's reading of one status document. The two
// status vocabularies differ, so each backend supplies its own classifier.
type Classification struct {
	// RemoteStatus is the backend's status string, verbatim.
	RemoteStatus string
	// Terminal reports whether the operation has finished, one way or the other.
	Terminal bool
	// Failed is meaningful only when Terminal is set.
	Failed bool
	// Detail carries the backend's own error text for failed operations.
	Detail string
}

// Backend is the closed capability set the orchestrator and poller are
// generic over. Exactly two implementations exist, one per control plane;
// the closed set is deliberate and documents that invariant.
//
// Implementations must be safe for concurrent use: many orchestrator
// invocations may run at once against the same backend value.
type Backend interface {
	Kind() deployment.Kind

	// Mutate performs the mutating call. It is invoked exactly once per
	// orchestration and never retried here; create/delete calls are not
	// idempotent.
	Mutate(ctx context.Context, req Request) (map[string]interface{}, error)

	// OperationStatus fetches the current status document for an operation
	// identifier.
	OperationStatus(ctx context.Context, id string) (map[string]interface{}, error)

	// Classify interprets a status document in this backend's vocabulary.
	Classify(doc map[string]interface{}) Classification
}
