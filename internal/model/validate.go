package model

import "fmt"

// ValidateUnit parses and validates every raw identifier in ids, preserving
// order. It is the single entry point the pipeline uses before any stage
// runs, per §7: identifier format is enforced on all input positions before
// any stage does work.
func ValidateUnit(ids []string) ([]EntityId, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("model: unit must not be empty")
	}
	out := make([]EntityId, len(ids))
	for i, raw := range ids {
		id, err := NewEntityId(raw)
		if err != nil {
			return nil, fmt.Errorf("model: unit[%d]: %w", i, err)
		}
		out[i] = id
	}
	return out, nil
}
