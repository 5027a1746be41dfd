package itertools

import "errors"

var (
	// ErrEmpty indicates a sequence with no items, or none matching.
	ErrEmpty = errors.New("itertools: sequence is empty")

	// ErrMultiple indicates Single found more than one item.
	ErrMultiple = errors.New("itertools: sequence has more than one item")

	// ErrUneven indicates GroupsOfN got a length not divisible by n.
	ErrUneven = errors.New("itertools: sequence length not divisible by group size")

	// ErrNotFound indicates a compound path step that does not resolve.
	ErrNotFound = errors.New("itertools: item not found")

	// ErrNotContainer indicates a compound path step into a scalar value.
	ErrNotContainer = errors.New("itertools: value is not a container")
)
