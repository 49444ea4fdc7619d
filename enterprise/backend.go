package enterprise

import (
	"context"
	"strings"

	"github.com/redisctl/redisctl/deployment"
	"github.com/redisctl/redisctl/operation"
)

// Backend adapts the cluster client to the operation package's capability set.
type Backend struct {
	client *Client
}

func NewBackend(client *Client) *Backend {
	return &Backend{client: client}
}

func (b *Backend) Kind() deployment.Kind {
	return deployment.Enterprise
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
	doc, err := b.client.Get(ctx, "/v1/actions/"+id)
	if err != nil {
		return nil, err
	}
	return asObject(doc), nil
}

// Classify reads an action document in the cluster vocabulary.
func (b *Backend) Classify(doc map[string]interface{}) operation.Classification {
	status, _ := doc["status"].(string)
	c := operation.Classification{RemoteStatus: status}
	switch strings.ToLower(status) {
	case "completed", "finished", "succeeded":
		c.Terminal = true
	case "failed", "error", "cancelled":
		c.Terminal = true
		c.Failed = true
		c.Detail = failureDetail(doc)
	}
	return c
}

func failureDetail(doc map[string]interface{}) string {
	for _, key := range []string{"error", "error_message", "description"} {
		if s, ok := doc[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func asObject(doc interface{}) map[string]interface{} {
	if m, ok := doc.(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{"response": doc}
}
