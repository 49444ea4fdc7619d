package cloud

import (
	"context"
	"strings"

	"github.com/redisctl/redisctl/deployment"
	"github.com/redisctl/redisctl/operation"
)

// Backend adapts the cloud client to the operation package's capability set.
type Backend struct {
	client *Client
}

func NewBackend(client *Client) *Backend {
	return &Backend{client: client}
}

func (b *Backend) Kind() deployment.Kind {
	return deployment.Cloud
}

func (b *Backend) Client() *Client {
	return b.client
}

// Get passes an idempotent read through to the client.
func (b *Backend) Get(ctx context.Context, path string) (interface{}, error) {
	return b.client.Get(ctx, path)
}

func (b *Backend) Mutate(ctx context.Context, req operation.Request) (map[string]interface{}, error) {
	doc, err := b.client.Do(ctx, req.Method, req.Path, req.Body)
	if err != nil {
		return nil, err
	}
	return asObject(doc), nil
}

func (b *Backend) OperationStatus(ctx context.Context, id string) (map[string]interface{}, error) {
	doc, err := b.client.Get(ctx, "/tasks/"+id)
	if err != nil {
		return nil, err
	}
	return asObject(doc), nil
}

// Classify reads a task document in the cloud vocabulary. Anything not
// recognized as terminal is still in flight.
func (b *Backend) Classify(doc map[string]interface{}) operation.Classification {
	status, _ := doc["status"].(string)
	if status == "" {
		status, _ = doc["state"].(string)
	}
	c := operation.Classification{RemoteStatus: status}
	switch strings.ToLower(status) {
	case "processing-completed", "completed", "complete", "succeeded", "success", "done":
		c.Terminal = true
	case "processing-error", "failed", "error", "cancelled":
		c.Terminal = true
		c.Failed = true
		c.Detail = failureDetail(doc)
	}
	return c
}

// failureDetail digs out the API's own error text for a failed task.
func failureDetail(doc map[string]interface{}) string {
	if resp, ok := doc["response"].(map[string]interface{}); ok {
		for _, key := range []string{"error", "additionalInfo", "additional_info"} {
			if s, ok := resp[key].(string); ok && s != "" {
				return s
			}
		}
	}
	for _, key := range []string{"errorMessage", "description"} {
		if s, ok := doc[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// Some endpoints answer with a bare array or scalar; keep the orchestrator's
// view uniform by boxing those.
func asObject(doc interface{}) map[string]interface{} {
	if m, ok := doc.(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{"response": doc}
}
