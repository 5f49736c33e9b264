// Package layout turns level assignments into a 2-D layered grid for
// rendering.
//
// Tasks are grouped into horizontal bands by level, placed on a fixed
// grid, and each band is re-centered against the widest one so the
// result reads as a balanced pyramid rather than a left-aligned
// staircase. Geometry is supplied per call through [Config]; there are
// no package-level knobs.
package layout

import "github.com/afenda/taskgraph/pkg/graph"

// Config holds the grid geometry, in pixel-equivalent units.
// The zero value is not usable - start from [DefaultConfig].
type Config struct {
	NodeWidth  float64 `json:"node_width"`
	NodeHeight float64 `json:"node_height"`
	HGap       float64 `json:"h_gap"` // horizontal gap between columns
	VGap       float64 `json:"v_gap"` // vertical gap between levels
}

// DefaultConfig returns the standard geometry used by the task board.
func DefaultConfig() Config {
	return Config{
		NodeWidth:  180,
		NodeHeight: 80,
		HGap:       40,
		VGap:       60,
	}
}

// Position is the placement of one task in the grid.
type Position struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Level  int     `json:"level"`
	Column int     `json:"column"`
}

// Edge is one deduplicated directed dependency: From blocks To.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Result is the computed layout. Every id in Edges also has an entry in
// Positions; ids that exist only as dangling references appear in
// neither.
type Result struct {
	Positions     map[string]Position `json:"positions"`
	Edges         []Edge              `json:"edges"`
	LevelCount    int                 `json:"level_count"`
	MaxLevelWidth float64             `json:"max_level_width"`
}

// Compute places every task in the view on the grid.
//
// Within a level, column order is the order tasks are grouped, which is
// the view's input order - determinism is inherited from the caller's
// task ordering. Raw positions are column*(W+HGap) by level*(H+VGap);
// afterwards each level is shifted right by half the width difference to
// the widest level. Edges are emitted as (dependency, task) pairs in
// input order with exact duplicates suppressed; pairs touching a
// dangling id are dropped.
func Compute(v *graph.View, levels map[string]int, cfg Config) Result {
	res := Result{Positions: make(map[string]Position, v.Len())}
	if v.Len() == 0 {
		return res
	}

	byLevel := make(map[int][]string)
	maxLevel := 0
	for _, id := range v.IDs() {
		lvl := levels[id]
		byLevel[lvl] = append(byLevel[lvl], id)
		if lvl > maxLevel {
			maxLevel = lvl
		}
	}
	res.LevelCount = maxLevel + 1

	levelWidth := func(count int) float64 {
		if count == 0 {
			return 0
		}
		return float64(count)*cfg.NodeWidth + float64(count-1)*cfg.HGap
	}

	for _, ids := range byLevel {
		if w := levelWidth(len(ids)); w > res.MaxLevelWidth {
			res.MaxLevelWidth = w
		}
	}

	for lvl, ids := range byLevel {
		offset := (res.MaxLevelWidth - levelWidth(len(ids))) / 2
		for col, id := range ids {
			res.Positions[id] = Position{
				X:      offset + float64(col)*(cfg.NodeWidth+cfg.HGap),
				Y:      float64(lvl) * (cfg.NodeHeight + cfg.VGap),
				Level:  lvl,
				Column: col,
			}
		}
	}

	seen := make(map[Edge]bool)
	for _, id := range v.IDs() {
		for _, dep := range v.Dependencies(id) {
			if !v.Contains(dep) {
				continue
			}
			e := Edge{From: dep, To: id}
			if seen[e] {
				continue
			}
			seen[e] = true
			res.Edges = append(res.Edges, e)
		}
	}

	return res
}
