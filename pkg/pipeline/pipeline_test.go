package pipeline

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/afenda/taskgraph/pkg/cache"
	"github.com/afenda/taskgraph/pkg/errors"
	"github.com/afenda/taskgraph/pkg/layout"
	"github.com/afenda/taskgraph/pkg/task"
)

// stubSource serves a fixed task list, counting loads.
type stubSource struct {
	tasks []task.Task
	err   error
	loads int
}

func (s *stubSource) Load(ctx context.Context) ([]task.Task, error) {
	s.loads++
	return s.tasks, s.err
}

func (s *stubSource) Close(ctx context.Context) error { return nil }

func diamondTasks() []task.Task {
	return []task.Task{
		{ID: "a", Status: task.StatusCompleted},
		{ID: "b", Status: task.StatusTodo, Dependencies: []string{"a"}},
		{ID: "c", Status: task.StatusTodo, Dependencies: []string{"a"}},
		{ID: "d", Status: task.StatusTodo, Dependencies: []string{"b", "c"}},
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults error: %v", err)
	}
	if !reflect.DeepEqual(opts.Formats, []string{FormatJSON}) {
		t.Errorf("Formats = %v, want [json]", opts.Formats)
	}
	if opts.Layout != layout.DefaultConfig() {
		t.Errorf("Layout = %+v, want defaults", opts.Layout)
	}

	bad := Options{Formats: []string{"pdf"}}
	err := bad.ValidateAndSetDefaults()
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want %v", err, errors.ErrCodeInvalidFormat)
	}
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(cache.NewMemoryCache(), nil)
	src := &stubSource{tasks: diamondTasks()}

	result, err := runner.Execute(ctx, src, Options{Formats: []string{FormatJSON, FormatDOT}})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if src.loads != 1 {
		t.Errorf("source loaded %d times, want 1", src.loads)
	}
	if result.Stats.TaskCount != 4 {
		t.Errorf("TaskCount = %d, want 4", result.Stats.TaskCount)
	}
	if result.Stats.EdgeCount != 4 {
		t.Errorf("EdgeCount = %d, want 4", result.Stats.EdgeCount)
	}
	if result.CacheHit {
		t.Error("first run should not hit the cache")
	}
	if result.TasksHash == "" {
		t.Error("TasksHash is empty")
	}

	jsonOut, ok := result.Artifacts[FormatJSON]
	if !ok || !strings.Contains(string(jsonOut), `"positions"`) {
		t.Errorf("json artifact = %q, want serialized layout", jsonOut)
	}
	dotOut, ok := result.Artifacts[FormatDOT]
	if !ok || !strings.Contains(string(dotOut), "digraph") {
		t.Errorf("dot artifact = %q, want a digraph", dotOut)
	}
}

func TestRunnerExecute_LoadError(t *testing.T) {
	runner := NewRunner(nil, nil)
	src := &stubSource{err: errors.New(errors.ErrCodeStore, "backend down")}

	_, err := runner.Execute(context.Background(), src, Options{})
	if !errors.Is(err, errors.ErrCodeStore) {
		t.Errorf("Execute error = %v, want %v", err, errors.ErrCodeStore)
	}
}

func TestRunnerAnalyze_CacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(cache.NewMemoryCache(), nil)
	tasks := diamondTasks()

	first, hash1, hit, err := runner.AnalyzeWithCacheInfo(ctx, tasks, Options{})
	if err != nil {
		t.Fatalf("AnalyzeWithCacheInfo error: %v", err)
	}
	if hit {
		t.Error("first analysis should miss the cache")
	}

	second, hash2, hit, err := runner.AnalyzeWithCacheInfo(ctx, tasks, Options{})
	if err != nil {
		t.Fatalf("AnalyzeWithCacheInfo error: %v", err)
	}
	if !hit {
		t.Error("second analysis should hit the cache")
	}
	if hash1 != hash2 {
		t.Errorf("hashes differ across runs: %q vs %q", hash1, hash2)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("cached result differs from computed result")
	}
}

func TestRunnerAnalyze_RefreshBypassesCache(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(cache.NewMemoryCache(), nil)
	tasks := diamondTasks()

	if _, _, _, err := runner.AnalyzeWithCacheInfo(ctx, tasks, Options{}); err != nil {
		t.Fatalf("AnalyzeWithCacheInfo error: %v", err)
	}
	_, _, hit, err := runner.AnalyzeWithCacheInfo(ctx, tasks, Options{Refresh: true})
	if err != nil {
		t.Fatalf("AnalyzeWithCacheInfo error: %v", err)
	}
	if hit {
		t.Error("Refresh should bypass the cache")
	}
}

func TestRunnerAnalyze_GeometryChangesKey(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(cache.NewMemoryCache(), nil)
	tasks := diamondTasks()

	if _, _, _, err := runner.AnalyzeWithCacheInfo(ctx, tasks, Options{}); err != nil {
		t.Fatalf("AnalyzeWithCacheInfo error: %v", err)
	}

	wide := Options{Layout: layout.Config{NodeWidth: 300, NodeHeight: 80, HGap: 40, VGap: 60}}
	_, _, hit, err := runner.AnalyzeWithCacheInfo(ctx, tasks, wide)
	if err != nil {
		t.Fatalf("AnalyzeWithCacheInfo error: %v", err)
	}
	if hit {
		t.Error("different geometry must not hit the cached entry")
	}
}

func TestRunnerAnalyze_NilCache(t *testing.T) {
	runner := NewRunner(nil, nil)
	res, err := runner.Analyze(context.Background(), diamondTasks(), Options{})
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if len(res.Layout.Positions) != 4 {
		t.Errorf("len(Positions) = %d, want 4", len(res.Layout.Positions))
	}
}
