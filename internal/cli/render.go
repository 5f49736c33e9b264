package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/afenda/taskgraph/pkg/pipeline"
	"github.com/afenda/taskgraph/pkg/store"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string
	formats  []string
	detailed bool
	noCache  bool
}

// renderCommand creates the render command for generating visualizations.
//
// It is `analyze` restricted to graphical output: circular tasks get a
// dashed red outline, blocked tasks an amber fill. SVG is the default
// format.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [tasks.json]",
		Short: "Render a task dependency graph to SVG, PNG, or DOT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr, pipeline.FormatSVG)
			for _, f := range opts.formats {
				if f == pipeline.FormatJSON {
					return fmt.Errorf("use `taskgraph analyze` for json output")
				}
			}
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include status, priority, and level in node labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the analysis cache")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts *renderOpts) error {
	ctx := cmd.Context()

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	runner := c.newRunner(opts.noCache)
	pipeOpts := pipeline.Options{
		Layout:   cfg.Layout.Geometry(),
		Formats:  opts.formats,
		Detailed: opts.detailed,
	}

	spin := newSpinner(ctx, "Rendering task graph...")
	result, err := runner.Execute(ctx, store.NewFileSource(path), pipeOpts)
	if err != nil {
		spin.stopWithError("Render failed")
		return err
	}
	spin.stopWithSuccess(fmt.Sprintf("Rendered %d tasks", result.Stats.TaskCount))

	if opts.output == "" {
		opts.output = "taskgraph." + opts.formats[0]
	}
	return writeArtifacts(opts.output, result.Artifacts)
}
