package itertools

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"time"
)

// All reports whether pred holds for every item. It is true for an empty seq.
func All[T any](seq iter.Seq[T], pred func(T) bool) bool {
	for v := range seq {
		if !pred(v) {
			return false
		}
	}
	return true
}

// Any reports whether pred holds for at least one item.
func Any[T any](seq iter.Seq[T], pred func(T) bool) bool {
	for v := range seq {
		if pred(v) {
			return true
		}
	}
	return false
}

// Bucket groups the value projections of items by their key projection.
func Bucket[T any, K comparable, V any](seq iter.Seq[T], key func(T) K, value func(T) V) map[K][]V {
	out := make(map[K][]V)
	for v := range seq {
		k := key(v)
		out[k] = append(out[k], value(v))
	}
	return out
}

// Count returns the number of items matching pred, or all items when pred is nil.
func Count[T any](seq iter.Seq[T], pred func(T) bool) int {
	n := 0
	for v := range seq {
		if pred == nil || pred(v) {
			n++
		}
	}
	return n
}

// DateSpan yields times from start toward end in steps of step.
// start is always yielded first unless it equals end; end is never yielded.
// When start is after end the walk runs backwards.
func DateSpan(start, end time.Time, step time.Duration) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		if step <= 0 {
			return
		}
		if start.Before(end) {
			for t := start; t.Before(end); t = t.Add(step) {
				if !yield(t) {
					return
				}
			}
			return
		}
		for t := start; t.After(end); t = t.Add(-step) {
			if !yield(t) {
				return
			}
		}
	}
}

// First returns the first item matching pred, or the first item when pred
// is nil. It returns ErrEmpty when nothing matches.
func First[T any](seq iter.Seq[T], pred func(T) bool) (T, error) {
	for v := range seq {
		if pred == nil || pred(v) {
			return v, nil
		}
	}
	var zero T
	return zero, ErrEmpty
}

// FirstOrDefault is First returning def instead of an error.
func FirstOrDefault[T any](seq iter.Seq[T], pred func(T) bool, def T) T {
	v, err := First(seq, pred)
	if err != nil {
		return def
	}
	return v
}

// Last returns the last item matching pred, or the last item when pred is nil.
func Last[T any](seq iter.Seq[T], pred func(T) bool) (T, error) {
	var (
		last  T
		found bool
	)
	for v := range seq {
		if pred == nil || pred(v) {
			last, found = v, true
		}
	}
	if !found {
		return last, ErrEmpty
	}
	return last, nil
}

// LastOrDefault is Last returning def instead of an error.
func LastOrDefault[T any](seq iter.Seq[T], pred func(T) bool, def T) T {
	v, err := Last(seq, pred)
	if err != nil {
		return def
	}
	return v
}

// Single returns the only item of seq.
func Single[T any](seq iter.Seq[T]) (T, error) {
	var (
		result T
		n      int
	)
	for v := range seq {
		if n == 1 {
			var zero T
			return zero, ErrMultiple
		}
		result = v
		n++
	}
	if n == 0 {
		return result, ErrEmpty
	}
	return result, nil
}

// FlatMap yields every item of fn(v) for each v in seq.
func FlatMap[T, U any](seq iter.Seq[T], fn func(T) iter.Seq[U]) iter.Seq[U] {
	return func(yield func(U) bool) {
		for v := range seq {
			for u := range fn(v) {
				if !yield(u) {
					return
				}
			}
		}
	}
}

// GroupBy2 sorts seq by key and yields each key with its run of items.
// Items sharing a key keep their input order.
func GroupBy2[T any, K cmp.Ordered](seq iter.Seq[T], key func(T) K) iter.Seq2[K, []T] {
	return func(yield func(K, []T) bool) {
		items := slices.Collect(seq)
		slices.SortStableFunc(items, func(a, b T) int { return cmp.Compare(key(a), key(b)) })
		for i := 0; i < len(items); {
			k := key(items[i])
			j := i + 1
			for j < len(items) && key(items[j]) == k {
				j++
			}
			if !yield(k, items[i:j:j]) {
				return
			}
			i = j
		}
	}
}

// GroupsOfN splits s into consecutive groups of n items.
// The groups share s's backing array.
func GroupsOfN[T any](s []T, n int) ([][]T, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: group size %d", ErrUneven, n)
	}
	if len(s)%n != 0 {
		return nil, fmt.Errorf("%w: length %d, group size %d", ErrUneven, len(s), n)
	}
	return slices.Collect(slices.Chunk(s, n)), nil
}

// Skip yields every item after the first n.
func Skip[T any](seq iter.Seq[T], n int) iter.Seq[T] {
	return func(yield func(T) bool) {
		i := 0
		for v := range seq {
			if i < n {
				i++
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Take yields at most n items matching pred, or any items when pred is nil.
func Take[T any](seq iter.Seq[T], n int, pred func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		if n <= 0 {
			return
		}
		taken := 0
		for v := range seq {
			if pred != nil && !pred(v) {
				continue
			}
			if !yield(v) {
				return
			}
			taken++
			if taken >= n {
				return
			}
		}
	}
}

// Unique yields items whose key has not been seen before.
func Unique[T any, K comparable](seq iter.Seq[T], key func(T) K) iter.Seq[T] {
	return func(yield func(T) bool) {
		seen := make(map[K]struct{})
		for v := range seq {
			k := key(v)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			if !yield(v) {
				return
			}
		}
	}
}

// Identity returns v. It is the usual key function for Unique and Bucket.
func Identity[T any](v T) T { return v }

// DictAdd merges beta into alpha. Keys present in both are combined with
// add, keys only in beta are copied.
func DictAdd[K comparable, V any](alpha, beta map[K]V, add func(a, b V) V) {
	for k, b := range beta {
		if a, ok := alpha[k]; ok {
			alpha[k] = add(a, b)
		} else {
			alpha[k] = b
		}
	}
}

// Sum is an adder for DictAdd over numbers.
func Sum[V cmp.Ordered](a, b V) V { return a + b }
