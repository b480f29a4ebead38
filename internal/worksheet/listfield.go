package worksheet

import (
	"fmt"
	"slices"
)

// ListField is an ordered, append-only list of editable text entries (SWOT items, goals).
type ListField []string

// NewListField returns a list holding one blank entry.
func NewListField() ListField {
	return ListField{""}
}

// Append returns a copy of l with one blank entry added at the end.
func (l ListField) Append() ListField {
	out := make(ListField, len(l), len(l)+1)
	copy(out, l)
	return append(out, "")
}

// Update returns a copy of l with the entry at index replaced by value.
func (l ListField) Update(index int, value string) (ListField, error) {
	if index < 0 || index >= len(l) {
		return l, fmt.Errorf("list entry %d: %w", index, ErrNotFound)
	}
	out := slices.Clone(l)
	out[index] = value
	return out, nil
}
