package engine

import (
	"strings"

	"github.com/jurisdesk/jurisdesk-backend/internal/common"
)

// DefaultSeparator is the section divider inserted between assembled
// templates so the combined document reads as a sequence of sections.
const DefaultSeparator = "\n\n---\n\n"

// Assemble concatenates template contents in the given order, inserting
// separator between consecutive sections. Fewer than two sections is a caller
// error: a single template never goes through assembly.
func Assemble(contents []string, separator string) (string, error) {
	if len(contents) < 2 {
		return "", common.ErrInvalidAssemblyInput
	}
	if separator == "" {
		separator = DefaultSeparator
	}
	return strings.Join(contents, separator), nil
}

// Move returns a copy of ids with the element at index i moved one position
// in the given direction (-1 left, +1 right). Out-of-range moves return an
// unchanged copy. The set of elements is always preserved; only order changes.
func Move(ids []string, i, direction int) []string {
	out := make([]string, len(ids))
	copy(out, ids)

	if direction != -1 && direction != 1 {
		return out
	}
	j := i + direction
	if i < 0 || i >= len(out) || j < 0 || j >= len(out) {
		return out
	}
	out[i], out[j] = out[j], out[i]
	return out
}
