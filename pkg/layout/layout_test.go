package layout

import (
	"reflect"
	"testing"

	"github.com/afenda/taskgraph/pkg/graph"
	"github.com/afenda/taskgraph/pkg/task"
)

func TestCompute_Empty(t *testing.T) {
	res := Compute(graph.Build(nil), nil, DefaultConfig())
	if len(res.Positions) != 0 || len(res.Edges) != 0 {
		t.Errorf("Compute() = %+v, want empty result", res)
	}
	if res.LevelCount != 0 {
		t.Errorf("LevelCount = %d, want 0", res.LevelCount)
	}
}

func TestCompute_SingleTask(t *testing.T) {
	v := graph.Build([]task.Task{{ID: "a"}})
	res := Compute(v, map[string]int{"a": 0}, DefaultConfig())

	want := Position{X: 0, Y: 0, Level: 0, Column: 0}
	if got := res.Positions["a"]; got != want {
		t.Errorf(`Positions["a"] = %+v, want %+v`, got, want)
	}
	if res.LevelCount != 1 {
		t.Errorf("LevelCount = %d, want 1", res.LevelCount)
	}
	if res.MaxLevelWidth != 180 {
		t.Errorf("MaxLevelWidth = %v, want 180", res.MaxLevelWidth)
	}
}

func TestCompute_DiamondGeometry(t *testing.T) {
	v := graph.Build([]task.Task{
		{ID: "a"},
		{ID: "b", Dependencies: []string{"a"}},
		{ID: "c", Dependencies: []string{"a"}},
		{ID: "d", Dependencies: []string{"b", "c"}},
	})
	levels := map[string]int{"a": 0, "b": 1, "c": 1, "d": 2}
	res := Compute(v, levels, DefaultConfig())

	// Widest level holds b and c: 2*180 + 40 = 400. The single-task
	// levels are 180 wide and shift right by (400-180)/2 = 110.
	if res.MaxLevelWidth != 400 {
		t.Fatalf("MaxLevelWidth = %v, want 400", res.MaxLevelWidth)
	}
	if res.LevelCount != 3 {
		t.Errorf("LevelCount = %d, want 3", res.LevelCount)
	}

	wantPos := map[string]Position{
		"a": {X: 110, Y: 0, Level: 0, Column: 0},
		"b": {X: 0, Y: 140, Level: 1, Column: 0},
		"c": {X: 220, Y: 140, Level: 1, Column: 1},
		"d": {X: 110, Y: 280, Level: 2, Column: 0},
	}
	for id, want := range wantPos {
		if got := res.Positions[id]; got != want {
			t.Errorf("Positions[%q] = %+v, want %+v", id, got, want)
		}
	}

	wantEdges := []Edge{
		{From: "a", To: "b"},
		{From: "a", To: "c"},
		{From: "b", To: "d"},
		{From: "c", To: "d"},
	}
	if !reflect.DeepEqual(res.Edges, wantEdges) {
		t.Errorf("Edges = %v, want %v", res.Edges, wantEdges)
	}
}

func TestCompute_CentersNarrowLevels(t *testing.T) {
	// One root over three dependents: the root must sit over the
	// horizontal center of the wider level.
	v := graph.Build([]task.Task{
		{ID: "root"},
		{ID: "x", Dependencies: []string{"root"}},
		{ID: "y", Dependencies: []string{"root"}},
		{ID: "z", Dependencies: []string{"root"}},
	})
	levels := map[string]int{"root": 0, "x": 1, "y": 1, "z": 1}
	res := Compute(v, levels, DefaultConfig())

	// Level 1 is 3*180 + 2*40 = 620 wide; its center is 310. The root
	// shifts by (620-180)/2 = 220, putting its own center at 310 too.
	if res.MaxLevelWidth != 620 {
		t.Fatalf("MaxLevelWidth = %v, want 620", res.MaxLevelWidth)
	}
	root := res.Positions["root"]
	if root.X != 220 {
		t.Errorf(`Positions["root"].X = %v, want 220`, root.X)
	}
	rootCenter := root.X + DefaultConfig().NodeWidth/2
	if rootCenter != res.MaxLevelWidth/2 {
		t.Errorf("root center = %v, want %v", rootCenter, res.MaxLevelWidth/2)
	}
}

func TestCompute_CustomGeometry(t *testing.T) {
	v := graph.Build([]task.Task{
		{ID: "a"},
		{ID: "b", Dependencies: []string{"a"}},
	})
	cfg := Config{NodeWidth: 100, NodeHeight: 50, HGap: 10, VGap: 20}
	res := Compute(v, map[string]int{"a": 0, "b": 1}, cfg)

	if got := res.Positions["b"].Y; got != 70 {
		t.Errorf(`Positions["b"].Y = %v, want 70`, got)
	}
}

func TestCompute_EdgeDeduplication(t *testing.T) {
	v := graph.Build([]task.Task{
		{ID: "a"},
		{ID: "b", Dependencies: []string{"a", "a", "a"}},
	})
	res := Compute(v, map[string]int{"a": 0, "b": 1}, DefaultConfig())

	want := []Edge{{From: "a", To: "b"}}
	if !reflect.DeepEqual(res.Edges, want) {
		t.Errorf("Edges = %v, want %v", res.Edges, want)
	}
}

func TestCompute_DanglingEdgesDropped(t *testing.T) {
	v := graph.Build([]task.Task{
		{ID: "a", Dependencies: []string{"ghost"}},
	})
	res := Compute(v, map[string]int{"a": 0}, DefaultConfig())

	if len(res.Edges) != 0 {
		t.Errorf("Edges = %v, want empty", res.Edges)
	}
	if _, ok := res.Positions["ghost"]; ok {
		t.Error("Positions contains a dangling id")
	}
	if _, ok := res.Positions["a"]; !ok {
		t.Error(`Positions missing "a"`)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	tasks := []task.Task{
		{ID: "e"},
		{ID: "a"},
		{ID: "c", Dependencies: []string{"e", "a"}},
		{ID: "b", Dependencies: []string{"a"}},
		{ID: "d", Dependencies: []string{"c", "b"}},
	}
	levels := map[string]int{"e": 0, "a": 0, "c": 1, "b": 1, "d": 2}

	first := Compute(graph.Build(tasks), levels, DefaultConfig())
	for i := 0; i < 10; i++ {
		next := Compute(graph.Build(tasks), levels, DefaultConfig())
		if !reflect.DeepEqual(first, next) {
			t.Fatalf("Compute() run %d differs from first run", i+1)
		}
	}

	// Same-level column order follows input order.
	if first.Positions["e"].Column != 0 || first.Positions["a"].Column != 1 {
		t.Errorf("level 0 columns = e:%d a:%d, want e:0 a:1",
			first.Positions["e"].Column, first.Positions["a"].Column)
	}
}
