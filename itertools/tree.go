package itertools

import "iter"

// TreeDepthFirst yields the descendants of root in depth first pre-order.
// root itself is yielded first when includeRoot is set.
func TreeDepthFirst[T any](root T, children func(T) []T, includeRoot bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		if includeRoot && !yield(root) {
			return
		}
		walkDepth(root, children, yield)
	}
}

func walkDepth[T any](node T, children func(T) []T, yield func(T) bool) bool {
	for _, child := range children(node) {
		if !yield(child) || !walkDepth(child, children, yield) {
			return false
		}
	}
	return true
}

// TreeBreadthFirst yields the descendants of root level by level.
// root itself is yielded first when includeRoot is set.
func TreeBreadthFirst[T any](root T, children func(T) []T, includeRoot bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		if includeRoot && !yield(root) {
			return
		}
		queue := children(root)
		for len(queue) > 0 {
			node := queue[0]
			queue = queue[1:]
			if !yield(node) {
				return
			}
			queue = append(queue, children(node)...)
		}
	}
}
