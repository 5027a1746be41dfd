// Package itertools provides sequence helpers over iter.Seq in the spirit
// of LINQ-style query operators, tree walkers, and path-based access into
// nested map[string]any and []any documents.
package itertools
