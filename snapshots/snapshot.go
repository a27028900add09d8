// Package snapshots defines the order-sensitive structural encoding used to
// export and re-import the contents of a visualized data structure.
package snapshots

import (
	"encoding/json"
	"errors"
	"slices"
)

var ErrInvalid = errors.New("invalid snapshot")

// Snapshot is algorithm-defined: a red-black tree exports a pre-order walk of
// its keys, a list its elements front to back.
type Snapshot struct {
	Elements []int `json:"elements" cbor:"elements" yaml:"elements"`
}

func (s Snapshot) Len() int {
	return len(s.Elements)
}

func (s Snapshot) Equal(other Snapshot) bool {
	return slices.Equal(s.Elements, other.Elements)
}

// IsSnapshot reports whether a decoded JSON value qualifies as a snapshot:
// elements must exist and be an array whose first item, if any, is a number.
func IsSnapshot(value any) bool {
	obj, ok := value.(map[string]any)
	if !ok {
		return false
	}
	elements, ok := obj["elements"]
	if !ok || elements == nil {
		return false
	}
	list, ok := elements.([]any)
	if !ok {
		return false
	}
	if len(list) > 0 {
		switch list[0].(type) {
		case float64, int, int64, json.Number:
			return true
		}
		return false
	}
	return true
}
