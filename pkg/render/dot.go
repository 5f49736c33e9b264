// Package render draws analysis results.
//
// The canonical output is Graphviz DOT, with the engine's two highlight
// sets mapped to styling: tasks on a dependency cycle get a dashed red
// outline, blocked tasks an amber fill. SVG and PNG rendering go through
// the Graphviz library.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/afenda/taskgraph/pkg/analysis"
	"github.com/afenda/taskgraph/pkg/task"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes status, priority, and level in node labels.
	// When false, only the task title is shown.
	Detailed bool
}

// ToDOT converts an analysis result to Graphviz DOT.
//
// Nodes are emitted in task-list order (restricted to tasks the layout
// placed), edges in the layout's deduplicated edge order, so the output
// is deterministic for a given input. The computed levels drive rank
// grouping via each node's position.
func ToDOT(tasks []task.Task, res *analysis.Result, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph tasks {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	emitted := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		pos, ok := res.Layout.Positions[t.ID]
		if !ok || emitted[t.ID] {
			continue
		}
		emitted[t.ID] = true
		attrs := nodeAttrs(t, pos.Level, res, opts)
		fmt.Fprintf(&buf, "  %q [%s];\n", t.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range res.Layout.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(t task.Task, level int, res *analysis.Result, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", nodeLabel(t, level, opts))}

	switch {
	case res.Circular(t.ID):
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "color=\"#c0392b\"", "fontcolor=\"#c0392b\"")
	case res.Blocked(t.ID):
		attrs = append(attrs, "fillcolor=\"#f9e79f\"")
	}
	return attrs
}

func nodeLabel(t task.Task, level int, opts Options) string {
	if !opts.Detailed {
		return t.DisplayTitle()
	}

	parts := []string{string(t.Status), fmt.Sprintf("level: %d", level)}
	if t.Priority != "" {
		parts = append(parts, string(t.Priority))
	}
	return t.DisplayTitle() + "\n" + strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
