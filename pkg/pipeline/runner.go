package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/afenda/taskgraph/pkg/analysis"
	"github.com/afenda/taskgraph/pkg/cache"
	"github.com/afenda/taskgraph/pkg/render"
	"github.com/afenda/taskgraph/pkg/store"
	"github.com/afenda/taskgraph/pkg/task"
)

// Runner executes the pipeline with caching.
//
// The Runner is stateless except for its cache and logger; it stores no
// results between runs, so one Runner can serve concurrent requests for
// different task lists without coordination.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil
// logger falls back to the default logger.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Stats records per-stage timing for one run.
type Stats struct {
	LoadTime    time.Duration `json:"load_time"`
	AnalyzeTime time.Duration `json:"analyze_time"`
	RenderTime  time.Duration `json:"render_time"`
	TaskCount   int           `json:"task_count"`
	EdgeCount   int           `json:"edge_count"`
}

// Result is the outcome of one pipeline run.
type Result struct {
	Tasks     []task.Task
	Analysis  *analysis.Result
	Artifacts map[string][]byte // format -> bytes
	TasksHash string            // content hash of the loaded task list
	CacheHit  bool              // analysis served from cache
	Stats     Stats
}

// Execute runs load → analyze → render.
func (r *Runner) Execute(ctx context.Context, src store.Source, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	loadStart := time.Now()
	tasks, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Tasks = tasks
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.TaskCount = len(tasks)

	r.Logger.Info("loaded tasks",
		"tasks", len(tasks),
		"duration", result.Stats.LoadTime)

	analyzeStart := time.Now()
	res, hash, hit, err := r.AnalyzeWithCacheInfo(ctx, tasks, opts)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	result.Analysis = res
	result.TasksHash = hash
	result.CacheHit = hit
	result.Stats.AnalyzeTime = time.Since(analyzeStart)
	result.Stats.EdgeCount = len(res.Layout.Edges)

	r.Logger.Info("analyzed graph",
		"levels", res.Layout.LevelCount,
		"edges", len(res.Layout.Edges),
		"circular", len(res.CircularIDs),
		"blocked", len(res.BlockedIDs),
		"cached", hit,
		"duration", result.Stats.AnalyzeTime)

	renderStart := time.Now()
	artifacts, err := r.Render(ctx, tasks, res, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// AnalyzeWithCacheInfo runs the engine over tasks, serving from cache
// when an identical task list was analyzed with identical geometry.
// It returns the result, the task-list content hash, and whether the
// cache was hit.
//
// Caching is an optimization only: on any cache error or corrupt entry
// the analysis is recomputed, never failed.
func (r *Runner) AnalyzeWithCacheInfo(ctx context.Context, tasks []task.Task, opts Options) (*analysis.Result, string, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, "", false, err
	}

	tasksJSON, err := json.Marshal(tasks)
	if err != nil {
		return nil, "", false, fmt.Errorf("marshal tasks: %w", err)
	}
	hash := cache.Hash(tasksJSON)
	key := cache.AnalysisKey(hash, opts.Layout)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached analysis.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, hash, true, nil
			}
			// Corrupt entry: fall through and recompute.
		}
	}

	res := analysis.Analyze(tasks, analysis.Options{Layout: opts.Layout})

	if data, err := json.Marshal(res); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLAnalysis)
	}

	return res, hash, false, nil
}

// Analyze is a convenience wrapper that discards the cache info.
func (r *Runner) Analyze(ctx context.Context, tasks []task.Task, opts Options) (*analysis.Result, error) {
	res, _, _, err := r.AnalyzeWithCacheInfo(ctx, tasks, opts)
	return res, err
}

// Render produces the requested artifacts from an analysis result.
func (r *Runner) Render(ctx context.Context, tasks []task.Task, res *analysis.Result, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	renderOpts := render.Options{Detailed: opts.Detailed}

	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			data, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("marshal result: %w", err)
			}
			artifacts[format] = data
		case FormatDOT:
			artifacts[format] = []byte(render.ToDOT(tasks, res, renderOpts))
		case FormatSVG:
			svg, err := render.RenderSVG(ctx, render.ToDOT(tasks, res, renderOpts))
			if err != nil {
				return nil, fmt.Errorf("render svg: %w", err)
			}
			artifacts[format] = svg
		case FormatPNG:
			png, err := render.RenderPNG(ctx, render.ToDOT(tasks, res, renderOpts))
			if err != nil {
				return nil, fmt.Errorf("render png: %w", err)
			}
			artifacts[format] = png
		}
	}

	return artifacts, nil
}
