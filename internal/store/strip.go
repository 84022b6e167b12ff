package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vinodtana/ai-tools-admin-web/internal/models"
)

// StripEmpty drops blank strings, empty lists and nulls from a JSON object
// and removes planType unless type is "tools".
func StripEmpty(body json.RawMessage) (json.RawMessage, error) {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, fmt.Errorf("body must be a JSON object: %w", err)
	}

	for k, v := range obj {
		if isEmpty(v) {
			delete(obj, k)
			continue
		}
		if list, ok := v.([]any); ok {
			obj[k] = compact(list)
			if len(obj[k].([]any)) == 0 {
				delete(obj, k)
			}
		}
	}
	if t, ok := obj["type"].(string); ok && models.ContentType(t) != models.ContentTypeTools {
		delete(obj, "planType")
	}

	return json.Marshal(obj)
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []any:
		return len(val) == 0
	default:
		return false
	}
}

func compact(list []any) []any {
	out := make([]any, 0, len(list))
	for _, v := range list {
		if !isEmpty(v) {
			out = append(out, v)
		}
	}
	return out
}
