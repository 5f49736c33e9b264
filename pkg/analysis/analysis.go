// Package analysis is the single functional boundary of the task graph
// engine.
//
// [Analyze] takes the flat task list owned by the storage collaborator
// and returns everything the rendering and business-rule collaborators
// need: a layered layout, the set of tasks on dependency cycles, and the
// set of tasks currently blocked from completion.
//
// Every call builds its own graph view and discards it, so concurrent
// analyses of different task lists need no coordination. Two calls with
// the same input (same tasks, same order) produce identical results.
package analysis

import (
	"slices"

	"github.com/afenda/taskgraph/pkg/graph"
	"github.com/afenda/taskgraph/pkg/graph/analyze"
	"github.com/afenda/taskgraph/pkg/layout"
	"github.com/afenda/taskgraph/pkg/task"
)

// Options configures a single analysis call.
type Options struct {
	// Layout is the grid geometry. The zero value is replaced with
	// [layout.DefaultConfig].
	Layout layout.Config
}

// Result is the immutable outcome of one analysis.
//
// Id sets are sorted slices so the JSON form is stable and callers can
// binary-search them. DuplicateIDs reports ids that appeared more than
// once in the input; the computation itself keeps the last-seen task,
// but duplicate input usually indicates a caller bug worth surfacing.
type Result struct {
	Layout       layout.Result `json:"layout"`
	CircularIDs  []string      `json:"circular_ids,omitempty"`
	BlockedIDs   []string      `json:"blocked_ids,omitempty"`
	DuplicateIDs []string      `json:"duplicate_ids,omitempty"`
}

// Circular reports whether id is part of a dependency cycle.
func (r *Result) Circular(id string) bool {
	_, ok := slices.BinarySearch(r.CircularIDs, id)
	return ok
}

// Blocked reports whether id is blocked by an incomplete dependency.
// The business-rule collaborator uses this to refuse marking a task
// completed.
func (r *Result) Blocked(id string) bool {
	_, ok := slices.BinarySearch(r.BlockedIDs, id)
	return ok
}

// Analyze runs the full engine over one task list.
//
// Malformed input never fails: cycles, dangling references, duplicate
// ids, and empty lists are all representable in the Result. There is no
// error return because the engine has no fatal conditions.
func Analyze(tasks []task.Task, opts Options) *Result {
	if opts.Layout == (layout.Config{}) {
		opts.Layout = layout.DefaultConfig()
	}

	v := graph.Build(tasks)

	circular := analyze.FindCircular(v)
	levels := analyze.AssignLevels(v)
	blocked := analyze.ComputeBlocked(v)

	return &Result{
		Layout:       layout.Compute(v, levels, opts.Layout),
		CircularIDs:  sortedIDs(circular),
		BlockedIDs:   sortedIDs(blocked),
		DuplicateIDs: sortedUnique(v.DuplicateIDs()),
	}
}

func sortedIDs(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func sortedUnique(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
