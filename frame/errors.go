package frame

import (
	"errors"
	"fmt"
)

// Errors reported by checked table mutations and projections.
var (
	// ErrInconsistentIndexOrder is returned when a key would break the
	// strictly increasing order of the index.
	ErrInconsistentIndexOrder = errors.New("inconsistent index order")

	// ErrInconsistentDataSize is returned when a column length would no
	// longer match the index length.
	ErrInconsistentDataSize = errors.New("inconsistent data size")

	// ErrUnknownField is returned when a projection names a field the table
	// does not have.
	ErrUnknownField = errors.New("unknown field")

	// ErrDuplicateIndex is returned by AppendNew when the key equals the last
	// key. It matches ErrInconsistentIndexOrder with errors.Is.
	ErrDuplicateIndex = fmt.Errorf("%w: duplicate key", ErrInconsistentIndexOrder)
)

func unknownField[F comparable](field F) error {
	return fmt.Errorf("%w: %v", ErrUnknownField, field)
}
