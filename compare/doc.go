// Package compare implements lenient structural equality for nested data.
//
// Numbers compare equal within a tolerance, slices and arrays compare
// element by element, sets (maps with struct{} values) and map keys compare
// after sorting, and everything else falls back to native equality. The
// rule is chosen from the shape of the first operand, so a slice never
// equals an array even when their elements match.
//
// When two values differ, CompoundDiff returns the path of indices and keys
// leading from the outermost container to the first divergence:
//
//	compare.CompoundDiff(
//		[]any{map[string]any{"first": []any{map[string]any{"second": 0}}}},
//		[]any{map[string]any{"first": []any{map[string]any{"second": 1}}}},
//	) // [0 first 0 second]
//
// If the values differ without any container in common, the path is the
// pair of values themselves.
package compare
