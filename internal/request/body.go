package request

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// BodyKind identifies how a request body was decoded
type BodyKind string

const (
	BodyJSON BodyKind = "json"
	BodyForm BodyKind = "form"
)

// maxFormDepth bounds how many bracket segments of a form key are expanded.
// Anything deeper is kept as a literal key on the last expanded level.
const maxFormDepth = 5

// Body is the request body as decoded by the body stage.
type Body struct {
	Kind BodyKind
	// Raw holds the JSON document for BodyJSON.
	Raw []byte
	// Form holds the expanded key tree for BodyForm.
	Form map[string]any
}

// Decode unmarshals the body into v. Form bodies are decoded through their JSON
// representation so handlers can use the same struct for both encodings.
func (b *Body) Decode(v any) error {
	if b == nil {
		return fmt.Errorf("request has no body")
	}
	switch b.Kind {
	case BodyJSON:
		return json.Unmarshal(b.Raw, v)
	case BodyForm:
		data, err := json.Marshal(b.Form)
		if err != nil {
			return fmt.Errorf("encode form body: %w", err)
		}
		return json.Unmarshal(data, v)
	default:
		return fmt.Errorf("unsupported body kind %q", b.Kind)
	}
}

// ParseExtendedForm expands bracket-notation form keys into nested values:
// "a[b]=1" becomes {"a":{"b":"1"}}, "tags[]=x&tags[]=y" becomes {"tags":["x","y"]},
// and maps keyed 0..n-1 become arrays.
func ParseExtendedForm(values url.Values) map[string]any {
	root := make(map[string]any)

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		path := splitFormKey(key)
		if len(path) == 0 {
			continue
		}
		for _, v := range values[key] {
			assignFormValue(root, path, v)
		}
	}

	for k, v := range root {
		root[k] = compactIndexes(v)
	}
	return root
}

// splitFormKey turns "a[b][]" into ["a", "b", ""].
func splitFormKey(key string) []string {
	open := strings.IndexByte(key, '[')
	if open <= 0 {
		if key == "" {
			return nil
		}
		return []string{key}
	}

	path := []string{key[:open]}
	rest := key[open:]
	for len(rest) > 0 && rest[0] == '[' {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			break
		}
		if len(path) > maxFormDepth {
			break
		}
		path = append(path, rest[1:end])
		rest = rest[end+1:]
	}
	if rest != "" {
		// Unbalanced or too deep: keep the remainder as a literal segment.
		path = append(path, rest)
	}
	return path
}

func assignFormValue(node map[string]any, path []string, value string) {
	for i, seg := range path {
		last := i == len(path)-1
		if last {
			setLeaf(node, seg, value)
			return
		}
		if path[i+1] == "" && i+1 == len(path)-1 {
			appendValue(node, seg, value)
			return
		}
		node = childMap(node, seg)
	}
}

// appendValue handles "seg[]". Values already stored under seg, whether a
// scalar or an indexed map from "seg[n]", are kept.
func appendValue(node map[string]any, seg, value string) {
	switch existing := node[seg].(type) {
	case []any:
		node[seg] = append(existing, value)
	case string:
		node[seg] = []any{existing, value}
	case map[string]any:
		existing[nextIndex(existing)] = value
	default:
		node[seg] = []any{value}
	}
}

// childMap returns the map stored under seg, creating it if needed. A list or
// scalar already stored there becomes an indexed map so its values survive.
func childMap(node map[string]any, seg string) map[string]any {
	switch existing := node[seg].(type) {
	case map[string]any:
		return existing
	case []any:
		child := make(map[string]any, len(existing))
		for i, v := range existing {
			child[strconv.Itoa(i)] = v
		}
		node[seg] = child
		return child
	case string:
		child := map[string]any{"0": existing}
		node[seg] = child
		return child
	}
	child := make(map[string]any)
	node[seg] = child
	return child
}

// nextIndex returns the smallest unused index key not below len(m).
func nextIndex(m map[string]any) string {
	n := len(m)
	for {
		key := strconv.Itoa(n)
		if _, taken := m[key]; !taken {
			return key
		}
		n++
	}
}

func setLeaf(node map[string]any, key, value string) {
	switch existing := node[key].(type) {
	case nil:
		node[key] = value
	case []any:
		node[key] = append(existing, value)
	case string:
		node[key] = []any{existing, value}
	default:
		node[key] = value
	}
}

// compactIndexes converts maps whose keys are exactly "0".."n-1" into slices.
func compactIndexes(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			val[k] = compactIndexes(child)
		}
		if len(val) == 0 {
			return val
		}
		list := make([]any, len(val))
		for k, child := range val {
			idx, err := strconv.Atoi(k)
			if err != nil || idx < 0 || idx >= len(val) || strconv.Itoa(idx) != k {
				return val
			}
			list[idx] = child
		}
		return list
	case []any:
		for i, child := range val {
			val[i] = compactIndexes(child)
		}
		return val
	default:
		return v
	}
}
