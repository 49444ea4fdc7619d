package operation

import (
	"strconv"
	"strings"

	"github.com/redisctl/redisctl/deployment"
)

// Extract locates an operation identifier in a successful mutating-call
// response. The two backends embed identifiers differently, so extraction is
// driven by the producing backend's conventions, tried in fixed priority
// order with the first match winning:
//
//  1. a direct top-level identifier field
//  2. a links array entry marked as a task reference
//  3. a nested in-progress task object
//
// Extract is pure. A response with no recognizable identifier means the
// operation completed synchronously; that is a normal result, not an error.
func Extract(kind deployment.Kind, doc map[string]interface{}) (Handle, bool) {
	if doc == nil {
		return Handle{}, false
	}
	for _, ex := range []struct {
		origin Origin
		fn     func(deployment.Kind, map[string]interface{}) (string, bool)
	}{
		{OriginField, extractField},
		{OriginLink, extractLink},
		{OriginNested, extractNested},
	} {
		if id, ok := ex.fn(kind, doc); ok {
			return Handle{ID: id, Backend: kind, Origin: ex.origin}, true
		}
	}
	return Handle{}, false
}

// identifierFields are the direct top-level field names, per backend.
func identifierFields(kind deployment.Kind) []string {
	if kind == deployment.Enterprise {
		return []string{"action_uid", "task_id"}
	}
	return []string{"taskId", "task_id"}
}

func extractField(kind deployment.Kind, doc map[string]interface{}) (string, bool) {
	return firstIdentifier(doc, identifierFields(kind))
}

// extractLink scans a links array for an entry marked as a task reference,
// either by its rel/type or by a task-like target path, and reads the
// identifier from the entry itself or from the last segment of its href.
func extractLink(kind deployment.Kind, doc map[string]interface{}) (string, bool) {
	links, ok := doc["links"].([]interface{})
	if !ok {
		return "", false
	}
	for _, raw := range links {
		entry, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		if !isTaskLink(entry) {
			continue
		}
		if id, ok := firstIdentifier(entry, identifierFields(kind)); ok {
			return id, true
		}
		if href, ok := asIdentifier(entry["href"]); ok {
			if id := lastPathSegment(href); id != "" {
				return id, true
			}
		}
	}
	return "", false
}

func isTaskLink(entry map[string]interface{}) bool {
	for _, key := range []string{"rel", "type"} {
		if s, ok := entry[key].(string); ok {
			switch strings.ToLower(s) {
			case "task", "action", "operation":
				return true
			}
		}
	}
	if href, ok := entry["href"].(string); ok {
		if strings.Contains(href, "/tasks/") || strings.Contains(href, "/actions/") {
			return true
		}
	}
	return false
}

// extractNested looks for an in-progress task object embedded in the
// response body.
func extractNested(kind deployment.Kind, doc map[string]interface{}) (string, bool) {
	var containers []string
	var fields []string
	if kind == deployment.Enterprise {
		containers = []string{"action", "task"}
		fields = []string{"action_uid", "uid", "task_id"}
	} else {
		containers = []string{"response", "task"}
		fields = []string{"taskId", "task_id", "id"}
	}
	for _, name := range containers {
		nested, ok := doc[name].(map[string]interface{})
		if !ok {
			continue
		}
		if id, ok := firstIdentifier(nested, fields); ok {
			return id, true
		}
	}
	return "", false
}

func firstIdentifier(doc map[string]interface{}, fields []string) (string, bool) {
	for _, f := range fields {
		if id, ok := asIdentifier(doc[f]); ok {
			return id, true
		}
	}
	return "", false
}

// asIdentifier accepts the identifier encodings the APIs actually produce:
// strings, and bare JSON numbers for enterprise action uids.
func asIdentifier(v interface{}) (string, bool) {
	switch id := v.(type) {
	case string:
		if id == "" {
			return "", false
		}
		return id, true
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), true
	default:
		return "", false
	}
}

func lastPathSegment(href string) string {
	href = strings.TrimRight(href, "/")
	if i := strings.LastIndex(href, "/"); i >= 0 {
		return href[i+1:]
	}
	return href
}
