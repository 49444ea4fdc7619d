package operation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/redisctl/redisctl/deployment"
)

func TestExtract_CloudDirectField(t *testing.T) {
	doc := map[string]interface{}{"taskId": "task-123", "description": "creating"}
	h, ok := Extract(deployment.Cloud, doc)

	assert.True(t, ok)
	assert.Equal(t, "task-123", h.ID)
	assert.Equal(t, deployment.Cloud, h.Backend)
	assert.Equal(t, OriginField, h.Origin)
}

func TestExtract_CloudSnakeCaseField(t *testing.T) {
	doc := map[string]interface{}{"task_id": "task-456"}
	h, ok := Extract(deployment.Cloud, doc)

	assert.True(t, ok)
	assert.Equal(t, "task-456", h.ID)
	assert.Equal(t, OriginField, h.Origin)
}

func TestExtract_EnterpriseActionUID(t *testing.T) {
	doc := map[string]interface{}{"action_uid": "a1b2c3"}
	h, ok := Extract(deployment.Enterprise, doc)

	assert.True(t, ok)
	assert.Equal(t, "a1b2c3", h.ID)
	assert.Equal(t, deployment.Enterprise, h.Backend)
	assert.Equal(t, OriginField, h.Origin)
}

// Enterprise uids arrive as bare JSON numbers on some endpoints.
func TestExtract_NumericIdentifier(t *testing.T) {
	doc := map[string]interface{}{"action_uid": float64(42)}
	h, ok := Extract(deployment.Enterprise, doc)

	assert.True(t, ok)
	assert.Equal(t, "42", h.ID)
}

func TestExtract_LinkWithRel(t *testing.T) {
	doc := map[string]interface{}{
		"links": []interface{}{
			map[string]interface{}{"rel": "self", "href": "https://api.example/v1/subscriptions/7"},
			map[string]interface{}{"rel": "task", "href": "https://api.example/v1/tasks/task-789"},
		},
	}
	h, ok := Extract(deployment.Cloud, doc)

	assert.True(t, ok)
	assert.Equal(t, "task-789", h.ID)
	assert.Equal(t, OriginLink, h.Origin)
}

func TestExtract_LinkWithInlineIdentifier(t *testing.T) {
	doc := map[string]interface{}{
		"links": []interface{}{
			map[string]interface{}{"type": "task", "taskId": "task-inline"},
		},
	}
	h, ok := Extract(deployment.Cloud, doc)

	assert.True(t, ok)
	assert.Equal(t, "task-inline", h.ID)
	assert.Equal(t, OriginLink, h.Origin)
}

// A link is recognized by its target path even without a rel marker.
func TestExtract_LinkByHrefShape(t *testing.T) {
	doc := map[string]interface{}{
		"links": []interface{}{
			map[string]interface{}{"href": "/v1/actions/deadbeef"},
		},
	}
	h, ok := Extract(deployment.Enterprise, doc)

	assert.True(t, ok)
	assert.Equal(t, "deadbeef", h.ID)
	assert.Equal(t, OriginLink, h.Origin)
}

func TestExtract_CloudNestedResponse(t *testing.T) {
	doc := map[string]interface{}{
		"response": map[string]interface{}{"taskId": "nested-1", "resourceId": float64(9)},
	}
	h, ok := Extract(deployment.Cloud, doc)

	assert.True(t, ok)
	assert.Equal(t, "nested-1", h.ID)
	assert.Equal(t, OriginNested, h.Origin)
}

func TestExtract_EnterpriseNestedAction(t *testing.T) {
	doc := map[string]interface{}{
		"action": map[string]interface{}{"action_uid": "uid-77", "status": "queued"},
	}
	h, ok := Extract(deployment.Enterprise, doc)

	assert.True(t, ok)
	assert.Equal(t, "uid-77", h.ID)
	assert.Equal(t, OriginNested, h.Origin)
}

// Fixed priority: a direct field wins over a links entry, which wins over a
// nested object, regardless of map iteration order.
func TestExtract_PriorityOrder(t *testing.T) {
	doc := map[string]interface{}{
		"taskId": "from-field",
		"links": []interface{}{
			map[string]interface{}{"rel": "task", "taskId": "from-link"},
		},
		"response": map[string]interface{}{"id": "from-nested"},
	}
	h, ok := Extract(deployment.Cloud, doc)
	assert.True(t, ok)
	assert.Equal(t, "from-field", h.ID)
	assert.Equal(t, OriginField, h.Origin)

	delete(doc, "taskId")
	h, ok = Extract(deployment.Cloud, doc)
	assert.True(t, ok)
	assert.Equal(t, "from-link", h.ID)
	assert.Equal(t, OriginLink, h.Origin)

	delete(doc, "links")
	h, ok = Extract(deployment.Cloud, doc)
	assert.True(t, ok)
	assert.Equal(t, "from-nested", h.ID)
	assert.Equal(t, OriginNested, h.Origin)
}

// Responses with no recognizable reference mean the operation completed
// synchronously; that is not an error and yields no handle.
func TestExtract_NoReference(t *testing.T) {
	for _, doc := range []map[string]interface{}{
		nil,
		{},
		{"name": "db-1", "status": "active"},
		{"links": []interface{}{map[string]interface{}{"rel": "self", "href": "/v1/bdbs/1"}}},
		{"taskId": ""},
	} {
		if _, ok := Extract(deployment.Cloud, doc); ok {
			t.Errorf("Expected no handle from %v", doc)
		}
	}
}

// Extraction is deterministic: the same document always yields the same
// identifier and origin.
func TestExtract_Deterministic(t *testing.T) {
	doc := map[string]interface{}{
		"links": []interface{}{
			map[string]interface{}{"rel": "task", "href": "/v1/tasks/t-1"},
			map[string]interface{}{"rel": "task", "href": "/v1/tasks/t-2"},
		},
	}
	first, ok := Extract(deployment.Cloud, doc)
	assert.True(t, ok)
	for i := 0; i < 100; i++ {
		h, ok := Extract(deployment.Cloud, doc)
		assert.True(t, ok)
		assert.Equal(t, first, h)
	}
}
