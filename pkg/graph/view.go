// Package graph builds the in-memory view of a task list that the
// analysis passes traverse.
//
// A View is constructed once per analysis call from the caller's flat
// task list and is never mutated afterwards. It indexes tasks by id and
// derives the dependents relation (the inverse of each task's dependency
// list) during construction, so the forward and reverse edge sets cannot
// drift apart.
package graph

import "github.com/afenda/taskgraph/pkg/task"

// View is an immutable adjacency index over one task list.
//
// The view preserves the caller's task order: all iteration helpers walk
// ids in first-seen input order, which is what makes downstream layouts
// deterministic for a given input. Callers wanting reproducible layouts
// must supply tasks in a stable order.
//
// A View is safe for concurrent reads; it is never written after Build
// returns.
type View struct {
	tasks      map[string]task.Task
	ids        []string            // first-seen input order
	dependents map[string][]string // id -> ids that depend on it, input order
	duplicates []string
}

// Build indexes a task list into a View in O(n + e).
//
// Duplicate ids are tolerated: the last-seen task wins, the id keeps its
// first position in the iteration order, and the id is recorded in
// [View.DuplicateIDs] so callers can surface the condition. An empty or
// nil input yields an empty view.
func Build(tasks []task.Task) *View {
	v := &View{
		tasks:      make(map[string]task.Task, len(tasks)),
		dependents: make(map[string][]string),
	}

	for _, t := range tasks {
		if _, seen := v.tasks[t.ID]; seen {
			v.duplicates = append(v.duplicates, t.ID)
		} else {
			v.ids = append(v.ids, t.ID)
		}
		v.tasks[t.ID] = t
	}

	// Derive dependents after deduplication so a replaced task's edges
	// don't linger in the index.
	for _, id := range v.ids {
		t := v.tasks[id]
		for _, dep := range t.Dependencies {
			v.dependents[dep] = append(v.dependents[dep], id)
		}
	}

	return v
}

// Task returns the task with the given id and true, or the zero task and
// false if the id is not in the view.
func (v *View) Task(id string) (task.Task, bool) {
	t, ok := v.tasks[id]
	return t, ok
}

// Contains reports whether id resolves to a task in the view.
func (v *View) Contains(id string) bool {
	_, ok := v.tasks[id]
	return ok
}

// IDs returns all task ids in first-seen input order.
// The returned slice is owned by the view and must not be modified.
func (v *View) IDs() []string { return v.ids }

// Len returns the number of distinct tasks in the view.
func (v *View) Len() int { return len(v.tasks) }

// Dependencies returns the dependency ids of the task, in declaration
// order. Ids that don't resolve to a task are included - traversals skip
// them at the point of use.
func (v *View) Dependencies(id string) []string {
	t, ok := v.tasks[id]
	if !ok {
		return nil
	}
	return t.Dependencies
}

// Dependents returns the ids of tasks that list id as a dependency,
// in input order. Returns nil for unknown ids or ids nothing depends on.
func (v *View) Dependents(id string) []string { return v.dependents[id] }

// Roots returns the ids of tasks with no dependencies, in input order.
// Tasks whose every dependency is dangling are not roots: a declared
// dependency counts even when it doesn't resolve.
func (v *View) Roots() []string {
	var roots []string
	for _, id := range v.ids {
		if len(v.tasks[id].Dependencies) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

// DuplicateIDs returns the ids that appeared more than once in the input,
// in the order the duplicates were encountered. An id occurring n times
// appears n-1 times in the result.
func (v *View) DuplicateIDs() []string { return v.duplicates }
