package analyze

import (
	"strconv"
	"testing"

	"github.com/afenda/taskgraph/pkg/graph"
	"github.com/afenda/taskgraph/pkg/task"
)

func circularIDs(t *testing.T, tasks []task.Task) map[string]bool {
	t.Helper()
	return FindCircular(graph.Build(tasks))
}

func TestFindCircular_Empty(t *testing.T) {
	if got := circularIDs(t, nil); len(got) != 0 {
		t.Errorf("FindCircular() = %v, want empty", got)
	}
}

func TestFindCircular_Chain(t *testing.T) {
	got := circularIDs(t, []task.Task{
		{ID: "a"},
		{ID: "b", Dependencies: []string{"a"}},
		{ID: "c", Dependencies: []string{"b"}},
	})
	if len(got) != 0 {
		t.Errorf("FindCircular() = %v, want empty", got)
	}
}

func TestFindCircular_SelfLoop(t *testing.T) {
	got := circularIDs(t, []task.Task{{ID: "a", Dependencies: []string{"a"}}})
	if !got["a"] || len(got) != 1 {
		t.Errorf("FindCircular() = %v, want {a}", got)
	}
}

func TestFindCircular_TwoNodeCycle(t *testing.T) {
	got := circularIDs(t, []task.Task{
		{ID: "a", Dependencies: []string{"b"}},
		{ID: "b", Dependencies: []string{"a"}},
	})
	if !got["a"] || !got["b"] || len(got) != 2 {
		t.Errorf("FindCircular() = %v, want {a b}", got)
	}
}

func TestFindCircular_TriangleWithTail(t *testing.T) {
	// d hangs off the cycle a -> b -> c -> a and must stay clean.
	got := circularIDs(t, []task.Task{
		{ID: "a", Dependencies: []string{"c"}},
		{ID: "b", Dependencies: []string{"a"}},
		{ID: "c", Dependencies: []string{"b"}},
		{ID: "d", Dependencies: []string{"c"}},
	})
	for _, id := range []string{"a", "b", "c"} {
		if !got[id] {
			t.Errorf("FindCircular() missing %q: %v", id, got)
		}
	}
	if got["d"] {
		t.Errorf("FindCircular() flagged %q, want clean", "d")
	}
}

func TestFindCircular_DiamondIsNotACycle(t *testing.T) {
	got := circularIDs(t, []task.Task{
		{ID: "a"},
		{ID: "b", Dependencies: []string{"a"}},
		{ID: "c", Dependencies: []string{"a"}},
		{ID: "d", Dependencies: []string{"b", "c"}},
	})
	if len(got) != 0 {
		t.Errorf("FindCircular() = %v, want empty", got)
	}
}

func TestFindCircular_DisconnectedCycles(t *testing.T) {
	// Two cycles in separate components, plus a clean chain.
	got := circularIDs(t, []task.Task{
		{ID: "a", Dependencies: []string{"b"}},
		{ID: "b", Dependencies: []string{"a"}},
		{ID: "x"},
		{ID: "y", Dependencies: []string{"x"}},
		{ID: "p", Dependencies: []string{"q"}},
		{ID: "q", Dependencies: []string{"p"}},
	})
	for _, id := range []string{"a", "b", "p", "q"} {
		if !got[id] {
			t.Errorf("FindCircular() missing %q: %v", id, got)
		}
	}
	for _, id := range []string{"x", "y"} {
		if got[id] {
			t.Errorf("FindCircular() flagged %q, want clean", id)
		}
	}
}

func TestFindCircular_CycleReachableFromRoot(t *testing.T) {
	// r feeds the a<->b cycle but is not itself on it.
	got := circularIDs(t, []task.Task{
		{ID: "r"},
		{ID: "a", Dependencies: []string{"r", "b"}},
		{ID: "b", Dependencies: []string{"a"}},
	})
	if got["r"] {
		t.Errorf("FindCircular() flagged %q, want clean", "r")
	}
	if !got["a"] || !got["b"] {
		t.Errorf("FindCircular() = %v, want {a b}", got)
	}
}

func TestFindCircular_DanglingDependency(t *testing.T) {
	got := circularIDs(t, []task.Task{
		{ID: "a", Dependencies: []string{"ghost"}},
		{ID: "b", Dependencies: []string{"a"}},
	})
	if len(got) != 0 {
		t.Errorf("FindCircular() = %v, want empty", got)
	}
}

func TestFindCircular_DeepChain(t *testing.T) {
	// A long linear chain exercises the explicit stack well past any
	// depth a recursive traversal could be trusted with.
	const n = 20000
	tasks := make([]task.Task, n)
	for i := range tasks {
		tasks[i] = task.Task{ID: "t" + strconv.Itoa(i)}
		if i > 0 {
			tasks[i].Dependencies = []string{"t" + strconv.Itoa(i-1)}
		}
	}

	if got := circularIDs(t, tasks); len(got) != 0 {
		t.Errorf("FindCircular() flagged %d tasks on an acyclic chain", len(got))
	}
}
