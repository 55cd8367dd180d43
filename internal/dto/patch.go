package dto

import (
	"bytes"
	"encoding/json"
)

// nullFields records which keys of a PATCH body were an explicit JSON null.
// Absent keys and null keys both decode to a nil pointer; this set tells
// them apart.
type nullFields map[string]struct{}

func (n nullFields) has(field string) bool {
	_, ok := n[field]
	return ok
}

func decodeNullFields(data []byte) (nullFields, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	var nulls nullFields
	for key, value := range raw {
		if !bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			continue
		}
		if nulls == nil {
			nulls = nullFields{}
		}
		nulls[key] = struct{}{}
	}
	return nulls, nil
}
