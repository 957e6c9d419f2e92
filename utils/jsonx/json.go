package jsonx

import (
	"encoding/json"
	"fmt"
)

// ToGeneric re-decodes v into plain maps, slices and scalars.
func ToGeneric(v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal value: %w", err)
	}
	var generic interface{}
	if err := json.Unmarshal(b, &generic); err != nil {
		return nil, fmt.Errorf("failed to unmarshal value: %w", err)
	}
	return generic, nil
}
