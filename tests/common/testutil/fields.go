//go:build unit || e2e

package testutil

import (
	"strconv"
	"strings"
)

// Field sets or, for a nil value, deletes the entry at path in a decoded JSON
// body. Path segments are separated by dots; numeric segments index into
// arrays, e.g. "seats.0.ticket_class". Missing intermediate nodes are left
// untouched.
func Field(path string, value any) func(m map[string]any) {
	keys := strings.Split(path, ".")
	return func(m map[string]any) {
		var node any = m
		for _, k := range keys[:len(keys)-1] {
			node = child(node, k)
			if node == nil {
				return
			}
		}
		last := keys[len(keys)-1]
		switch n := node.(type) {
		case map[string]any:
			if value == nil {
				delete(n, last)
			} else {
				n[last] = value
			}
		case []any:
			if i, err := strconv.Atoi(last); err == nil && i >= 0 && i < len(n) {
				n[i] = value
			}
		}
	}
}

func child(node any, key string) any {
	switch n := node.(type) {
	case map[string]any:
		return n[key]
	case []any:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(n) {
			return nil
		}
		return n[i]
	default:
		return nil
	}
}
