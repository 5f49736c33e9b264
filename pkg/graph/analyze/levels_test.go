package analyze

import (
	"reflect"
	"testing"

	"github.com/afenda/taskgraph/pkg/graph"
	"github.com/afenda/taskgraph/pkg/task"
)

func assignLevels(t *testing.T, tasks []task.Task) map[string]int {
	t.Helper()
	return AssignLevels(graph.Build(tasks))
}

func TestAssignLevels_Empty(t *testing.T) {
	if got := assignLevels(t, nil); len(got) != 0 {
		t.Errorf("AssignLevels() = %v, want empty", got)
	}
}

func TestAssignLevels_Chain(t *testing.T) {
	got := assignLevels(t, []task.Task{
		{ID: "a"},
		{ID: "b", Dependencies: []string{"a"}},
		{ID: "c", Dependencies: []string{"b"}},
	})
	want := map[string]int{"a": 0, "b": 1, "c": 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AssignLevels() = %v, want %v", got, want)
	}
}

func TestAssignLevels_DiamondTakesLongestPath(t *testing.T) {
	//   a
	//  / \
	// b   c      plus a direct a->d shortcut: d still lands on
	//  \ /       level 2 because the longest path wins.
	//   d
	got := assignLevels(t, []task.Task{
		{ID: "a"},
		{ID: "b", Dependencies: []string{"a"}},
		{ID: "c", Dependencies: []string{"a"}},
		{ID: "d", Dependencies: []string{"b", "c", "a"}},
	})
	want := map[string]int{"a": 0, "b": 1, "c": 1, "d": 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AssignLevels() = %v, want %v", got, want)
	}
}

func TestAssignLevels_LongestPathWinsOverShortcut(t *testing.T) {
	// d depends on both c (3 hops from the root) and b (2 hops); the
	// longer chain decides its level.
	got := assignLevels(t, []task.Task{
		{ID: "a"},
		{ID: "b", Dependencies: []string{"a"}},
		{ID: "c", Dependencies: []string{"b"}},
		{ID: "d", Dependencies: []string{"c", "b"}},
	})
	want := map[string]int{"a": 0, "b": 1, "c": 2, "d": 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AssignLevels() = %v, want %v", got, want)
	}
}

func TestAssignLevels_IsolatedTasksAtZero(t *testing.T) {
	got := assignLevels(t, []task.Task{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	for id, lvl := range got {
		if lvl != 0 {
			t.Errorf("level[%q] = %d, want 0", id, lvl)
		}
	}
}

func TestAssignLevels_PureCycleAtZero(t *testing.T) {
	// No root reaches the cycle, so its members stay on the base layer.
	got := assignLevels(t, []task.Task{
		{ID: "a", Dependencies: []string{"b"}},
		{ID: "b", Dependencies: []string{"a"}},
	})
	want := map[string]int{"a": 0, "b": 0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AssignLevels() = %v, want %v", got, want)
	}
}

func TestAssignLevels_RootReachableCycleSaturates(t *testing.T) {
	got := assignLevels(t, []task.Task{
		{ID: "r"},
		{ID: "a", Dependencies: []string{"r", "b"}},
		{ID: "b", Dependencies: []string{"a"}},
	})
	if got["r"] != 0 {
		t.Errorf(`level["r"] = %d, want 0`, got["r"])
	}
	// Relaxation through the cycle must terminate and leave the cycle
	// members somewhere between the root offer and the task count.
	for _, id := range []string{"a", "b"} {
		if got[id] < 1 || got[id] > 3 {
			t.Errorf("level[%q] = %d, want in [1,3]", id, got[id])
		}
	}
}

func TestAssignLevels_DanglingDependency(t *testing.T) {
	// b's only resolvable path starts at a; the ghost reference neither
	// blocks level assignment nor creates a phantom root.
	got := assignLevels(t, []task.Task{
		{ID: "a"},
		{ID: "b", Dependencies: []string{"a", "ghost"}},
	})
	want := map[string]int{"a": 0, "b": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AssignLevels() = %v, want %v", got, want)
	}
}

func TestAssignLevels_CoversEveryTask(t *testing.T) {
	tasks := []task.Task{
		{ID: "a"},
		{ID: "b", Dependencies: []string{"a"}},
		{ID: "c", Dependencies: []string{"x"}},
		{ID: "d", Dependencies: []string{"e"}},
		{ID: "e", Dependencies: []string{"d"}},
	}
	got := assignLevels(t, tasks)
	for _, tk := range tasks {
		if _, ok := got[tk.ID]; !ok {
			t.Errorf("AssignLevels() missing %q", tk.ID)
		}
	}
}
