package analyze

import "github.com/afenda/taskgraph/pkg/graph"

// AssignLevels computes a layer for every task in the view.
//
// A task's level is the length of the longest directed path from any
// root (a task with no dependencies) to the task. Tasks unreachable from
// a root - isolated tasks and members of pure cycles - get level 0.
//
// Levels are computed by worklist relaxation: every root starts at 0,
// and visiting a task at level L offers L+1 to each of its dependents.
// An offer is only accepted when it increases the target's level, and
// only an accepted offer re-queues the target. Relaxation never pushes a
// level past the task count: a simple path has fewer than n hops, so the
// bound is inert on acyclic subgraphs (where the result is the exact
// longest path) and merely saturates tasks on root-reachable cycles,
// which would otherwise relax forever.
func AssignLevels(v *graph.View) map[string]int {
	levels := make(map[string]int, v.Len())
	maxLevel := v.Len()

	queue := v.Roots()
	for _, id := range queue {
		levels[id] = 0
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		next := levels[id] + 1
		if next > maxLevel {
			continue
		}
		for _, dep := range v.Dependents(id) {
			if !v.Contains(dep) {
				continue
			}
			if cur, ok := levels[dep]; ok && cur >= next {
				continue
			}
			levels[dep] = next
			queue = append(queue, dep)
		}
	}

	// Anything relaxation never reached sits at the base layer.
	for _, id := range v.IDs() {
		if _, ok := levels[id]; !ok {
			levels[id] = 0
		}
	}

	return levels
}
