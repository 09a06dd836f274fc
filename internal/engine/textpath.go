package engine

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// extractText pulls the transcript out of a JSON engine response. The
// configured dot path (e.g. "results[0].alternatives[0].transcript") is tried
// first, then the conventional top-level "text" field.
func extractText(body []byte, path string) string {
	var root any
	if err := json.Unmarshal(body, &root); err != nil {
		return ""
	}
	if path != "" {
		if v, ok := valueAt(root, path); ok {
			return v
		}
	}
	if m, ok := root.(map[string]any); ok {
		if v, ok := m["text"]; ok {
			if s, ok := asString(v); ok {
				return s
			}
		}
	}
	return ""
}

// valueAt walks a parsed JSON structure along a dot-separated path with
// optional [n] indexes and returns the value as a string.
func valueAt(root any, path string) (string, bool) {
	cur := root
	for _, token := range strings.Split(path, ".") {
		key, idxs, err := splitToken(token)
		if err != nil {
			return "", false
		}
		if key != "" {
			m, ok := cur.(map[string]any)
			if !ok {
				return "", false
			}
			cur, ok = m[key]
			if !ok {
				return "", false
			}
		}
		for _, idx := range idxs {
			arr, ok := cur.([]any)
			if !ok || idx < 0 || idx >= len(arr) {
				return "", false
			}
			cur = arr[idx]
		}
	}
	return asString(cur)
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case float64:
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10), true
		}
		return fmt.Sprintf("%v", s), true
	case bool:
		return strconv.FormatBool(s), true
	default:
		return "", false
	}
}

// splitToken parses a path token like "foo[0][1]" into its key and indexes.
func splitToken(token string) (string, []int, error) {
	if token == "" {
		return "", nil, fmt.Errorf("empty path token")
	}
	br := strings.Index(token, "[")
	if br == -1 {
		return token, nil, nil
	}
	key := token[:br]
	var idxs []int
	rest := token[br:]
	for rest != "" {
		if !strings.HasPrefix(rest, "[") {
			return "", nil, fmt.Errorf("invalid index syntax in %s", token)
		}
		end := strings.Index(rest, "]")
		if end <= 1 {
			return "", nil, fmt.Errorf("malformed index in %s", token)
		}
		n, err := strconv.Atoi(rest[1:end])
		if err != nil {
			return "", nil, fmt.Errorf("invalid index '%s' in %s", rest[1:end], token)
		}
		idxs = append(idxs, n)
		rest = rest[end+1:]
	}
	return key, idxs, nil
}
