package typelist

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// MarshalSorted renders v as indented JSON after the deterministic recursive
// sort: arrays whose elements are all records with a string "name" field are
// ordered by that name; object keys are ordered "name" first, scalar-valued
// keys next, nested-valued keys last, alphabetically within each group.
// Scalar arrays keep their order, which is semantic (enum values, property
// name lists).
func MarshalSorted(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := writeSorted(&buf, raw, 0); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

const indentUnit = "  "

func writeSorted(buf *bytes.Buffer, v any, depth int) error {
	switch val := v.(type) {
	case map[string]any:
		return writeObject(buf, val, depth)
	case []any:
		return writeArray(buf, val, depth)
	default:
		scalar, err := json.Marshal(val)
		if err != nil {
			return err
		}
		buf.Write(scalar)
		return nil
	}
}

func writeObject(buf *bytes.Buffer, obj map[string]any, depth int) error {
	if len(obj) == 0 {
		buf.WriteString("{}")
		return nil
	}

	keys := sortedObjectKeys(obj)
	buf.WriteString("{\n")
	inner := strings.Repeat(indentUnit, depth+1)
	for i, key := range keys {
		buf.WriteString(inner)
		keyJSON, err := json.Marshal(key)
		if err != nil {
			return err
		}
		buf.Write(keyJSON)
		buf.WriteString(": ")
		if err := writeSorted(buf, obj[key], depth+1); err != nil {
			return err
		}
		if i < len(keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(strings.Repeat(indentUnit, depth))
	buf.WriteByte('}')
	return nil
}

func writeArray(buf *bytes.Buffer, arr []any, depth int) error {
	if len(arr) == 0 {
		buf.WriteString("[]")
		return nil
	}

	elems := arr
	if allNamedRecords(arr) {
		elems = make([]any, len(arr))
		copy(elems, arr)
		sort.SliceStable(elems, func(i, j int) bool {
			ni := elems[i].(map[string]any)["name"].(string)
			nj := elems[j].(map[string]any)["name"].(string)
			return ni < nj
		})
	}

	buf.WriteString("[\n")
	inner := strings.Repeat(indentUnit, depth+1)
	for i, elem := range elems {
		buf.WriteString(inner)
		if err := writeSorted(buf, elem, depth+1); err != nil {
			return err
		}
		if i < len(elems)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(strings.Repeat(indentUnit, depth))
	buf.WriteByte(']')
	return nil
}

// allNamedRecords reports whether every element is an object carrying a
// string "name" field, the shape eligible for by-name ordering.
func allNamedRecords(arr []any) bool {
	for _, elem := range arr {
		obj, ok := elem.(map[string]any)
		if !ok {
			return false
		}
		if _, ok := obj["name"].(string); !ok {
			return false
		}
	}
	return true
}

// sortedObjectKeys orders keys: "name" first, scalar-valued keys next,
// nested-valued keys last, alphabetically within each group.
func sortedObjectKeys(obj map[string]any) []string {
	var scalars, nested []string
	hasName := false
	for key, val := range obj {
		if key == "name" {
			hasName = true
			continue
		}
		switch val.(type) {
		case map[string]any, []any:
			nested = append(nested, key)
		default:
			scalars = append(scalars, key)
		}
	}
	sort.Strings(scalars)
	sort.Strings(nested)

	keys := make([]string, 0, len(obj))
	if hasName {
		keys = append(keys, "name")
	}
	keys = append(keys, scalars...)
	keys = append(keys, nested...)
	return keys
}
