package itertools

import "fmt"

// A compound path is a list of steps into nested documents: string steps
// index map[string]any values and int steps index []any values.

// GetCompoundItem returns the value the path points to inside doc.
//
//	GetCompoundItem([]any{"a", map[string]any{"b": "value"}}, 1, "b") // "value"
func GetCompoundItem(doc any, path ...any) (any, error) {
	cur := doc
	for i, step := range path {
		next, err := index(cur, step)
		if err != nil {
			return nil, fmt.Errorf("step %d (%v): %w", i, step, err)
		}
		cur = next
	}
	return cur, nil
}

// SetCompoundItem replaces the value the path points to. The parent
// container must exist; a missing final map key is created.
func SetCompoundItem(doc any, value any, path ...any) error {
	if len(path) == 0 {
		return fmt.Errorf("%w: empty path", ErrNotFound)
	}
	parent, err := GetCompoundItem(doc, path[:len(path)-1]...)
	if err != nil {
		return err
	}
	last := path[len(path)-1]
	switch c := parent.(type) {
	case map[string]any:
		k, ok := last.(string)
		if !ok {
			return fmt.Errorf("%w: map key %v is not a string", ErrNotFound, last)
		}
		c[k] = value
		return nil
	case []any:
		i, err := sliceIndex(c, last)
		if err != nil {
			return err
		}
		c[i] = value
		return nil
	}
	return fmt.Errorf("%w: %T", ErrNotContainer, parent)
}

// DelCompoundItem removes the map key the path points to. Slices cannot
// shrink in place, so a final int step sets the element to nil instead.
func DelCompoundItem(doc any, path ...any) error {
	if len(path) == 0 {
		return fmt.Errorf("%w: empty path", ErrNotFound)
	}
	parent, err := GetCompoundItem(doc, path[:len(path)-1]...)
	if err != nil {
		return err
	}
	last := path[len(path)-1]
	switch c := parent.(type) {
	case map[string]any:
		k, ok := last.(string)
		if !ok {
			return fmt.Errorf("%w: map key %v is not a string", ErrNotFound, last)
		}
		if _, ok := c[k]; !ok {
			return fmt.Errorf("%w: key %q", ErrNotFound, k)
		}
		delete(c, k)
		return nil
	case []any:
		i, err := sliceIndex(c, last)
		if err != nil {
			return err
		}
		c[i] = nil
		return nil
	}
	return fmt.Errorf("%w: %T", ErrNotContainer, parent)
}

func index(cur any, step any) (any, error) {
	switch c := cur.(type) {
	case map[string]any:
		k, ok := step.(string)
		if !ok {
			return nil, fmt.Errorf("%w: map key %v is not a string", ErrNotFound, step)
		}
		v, ok := c[k]
		if !ok {
			return nil, fmt.Errorf("%w: key %q", ErrNotFound, k)
		}
		return v, nil
	case []any:
		i, err := sliceIndex(c, step)
		if err != nil {
			return nil, err
		}
		return c[i], nil
	}
	return nil, fmt.Errorf("%w: %T", ErrNotContainer, cur)
}

// sliceIndex resolves an int step, counting from the end when negative.
func sliceIndex(s []any, step any) (int, error) {
	i, ok := step.(int)
	if !ok {
		return 0, fmt.Errorf("%w: slice index %v is not an int", ErrNotFound, step)
	}
	if i < 0 {
		i += len(s)
	}
	if i < 0 || i >= len(s) {
		return 0, fmt.Errorf("%w: index %v out of range [0, %d)", ErrNotFound, step, len(s))
	}
	return i, nil
}
