package analyze

import "github.com/afenda/taskgraph/pkg/graph"

// ComputeBlocked returns the ids of tasks that cannot currently be
// completed: the task itself is not completed and at least one of its
// direct dependencies resolves to a task that is not completed.
//
// The rule is deliberately direct-only. A chain A <- B <- C still flags
// C while B is incomplete, because B's own status is "not completed" -
// incompleteness propagates one hop at a time as long as the
// intermediate tasks are present in the input. Dangling dependency ids
// never block anything.
func ComputeBlocked(v *graph.View) map[string]bool {
	blocked := make(map[string]bool)

	for _, id := range v.IDs() {
		t, _ := v.Task(id)
		if t.Status.Completed() {
			continue
		}
		for _, dep := range t.Dependencies {
			d, ok := v.Task(dep)
			if !ok {
				continue
			}
			if !d.Status.Completed() {
				blocked[id] = true
				break
			}
		}
	}

	return blocked
}
