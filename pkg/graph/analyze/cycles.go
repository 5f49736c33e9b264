// Package analyze implements the traversal passes of the task graph
// engine: cycle detection, level assignment, and blocked-set computation.
//
// All passes are pure functions of a [graph.View]. Malformed input is
// data, not an error: dangling references are skipped, cycles are
// reported, and empty views produce empty results.
package analyze

import "github.com/afenda/taskgraph/pkg/graph"

// dfsFrame is one node on the explicit traversal stack.
// next indexes the dependent edge to explore on the following step.
type dfsFrame struct {
	id   string
	next int
}

// FindCircular returns the ids of every task that participates in a
// directed dependency cycle.
//
// The search follows dependents edges depth-first from every task in the
// view, carrying the current path. When it reaches a task already on the
// path, the whole path segment from that task onward is marked circular.
// A global visited set keeps the search O(V+E) across all roots without
// letting it terminate before disconnected cycles are found.
//
// The traversal uses an explicit frame stack, so depth is bounded by
// memory rather than the call stack. Dangling dependent ids are skipped.
func FindCircular(v *graph.View) map[string]bool {
	circular := make(map[string]bool)
	visited := make(map[string]bool, v.Len())
	onPath := make(map[string]int) // id -> index into path

	var path []string
	var stack []dfsFrame

	for _, root := range v.IDs() {
		if visited[root] {
			continue
		}
		stack = append(stack[:0], dfsFrame{id: root})

		for len(stack) > 0 {
			f := &stack[len(stack)-1]

			if f.next == 0 {
				visited[f.id] = true
				onPath[f.id] = len(path)
				path = append(path, f.id)
			}

			deps := v.Dependents(f.id)
			descended := false
			for f.next < len(deps) {
				child := deps[f.next]
				f.next++

				if start, ok := onPath[child]; ok {
					// Back edge: everything from the revisited task
					// onward lies on the cycle.
					for _, id := range path[start:] {
						circular[id] = true
					}
					circular[child] = true
					continue
				}
				if visited[child] || !v.Contains(child) {
					continue
				}
				stack = append(stack, dfsFrame{id: child})
				descended = true
				break
			}

			if !descended && stack[len(stack)-1].next >= len(deps) {
				delete(onPath, f.id)
				path = path[:len(path)-1]
				stack = stack[:len(stack)-1]
			}
		}
	}

	return circular
}
