package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/afenda/taskgraph/pkg/pipeline"
	"github.com/afenda/taskgraph/pkg/store"
)

// analyzeOpts holds the command-line flags for the analyze command.
type analyzeOpts struct {
	output   string // output file path (or base path for multiple formats)
	formats  []string
	detailed bool
	noCache  bool
	refresh  bool
	mongoURI string // when set, load tasks from MongoDB instead of a file
}

// analyzeCommand creates the analyze command.
//
// It loads a task list (JSON file argument or --mongo-uri), runs the
// full engine, prints a summary, and writes the requested artifacts.
func (c *CLI) analyzeCommand() *cobra.Command {
	var formatsStr string
	var opts analyzeOpts

	cmd := &cobra.Command{
		Use:   "analyze [tasks.json]",
		Short: "Analyze a task list: cycles, levels, layout, blocked set",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr, pipeline.FormatJSON)
			if len(args) == 0 && opts.mongoURI == "" {
				return fmt.Errorf("either a task file argument or --mongo-uri is required")
			}

			src, err := c.newSource(cmd.Context(), args, opts.mongoURI)
			if err != nil {
				return err
			}
			defer src.Close(cmd.Context())

			return c.runAnalyze(cmd.Context(), src, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), dot, svg, png (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include status, priority, and level in rendered labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the analysis cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when a cached result exists")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "load tasks from this MongoDB instance instead of a file")

	return cmd
}

// newSource builds the task source for a command invocation.
func (c *CLI) newSource(ctx context.Context, args []string, mongoURI string) (store.Source, error) {
	if mongoURI != "" {
		cfg, err := c.loadConfig()
		if err != nil {
			return nil, err
		}
		return store.NewMongoSource(ctx, store.MongoOptions{
			URI:        mongoURI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	}
	return store.NewFileSource(args[0]), nil
}

func (c *CLI) runAnalyze(ctx context.Context, src store.Source, opts *analyzeOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	runner := c.newRunner(opts.noCache)
	pipeOpts := pipeline.Options{
		Layout:   cfg.Layout.Geometry(),
		Formats:  opts.formats,
		Detailed: opts.detailed,
		Refresh:  opts.refresh,
	}

	spin := newSpinner(ctx, "Analyzing task graph...")
	result, err := runner.Execute(ctx, src, pipeOpts)
	if err != nil {
		spin.stopWithError("Analysis failed")
		return err
	}
	spin.stopWithSuccess(fmt.Sprintf("Analyzed %d tasks", result.Stats.TaskCount))

	printStats(result.Stats.TaskCount, result.Stats.EdgeCount, result.Analysis.Layout.LevelCount, result.CacheHit)
	c.printFindings(result)

	return writeArtifacts(opts.output, result.Artifacts)
}

// printFindings surfaces the engine's warning-level output: circular
// dependencies, blocked tasks, and duplicate ids.
func (c *CLI) printFindings(result *pipeline.Result) {
	res := result.Analysis
	if len(res.CircularIDs) > 0 {
		printWarning("Circular dependencies: %s", strings.Join(res.CircularIDs, ", "))
	}
	if len(res.BlockedIDs) > 0 {
		printDetail("Blocked: %s", strings.Join(res.BlockedIDs, ", "))
	}
	if len(res.DuplicateIDs) > 0 {
		printWarning("Duplicate task ids in input: %s", strings.Join(res.DuplicateIDs, ", "))
	}
}

// writeArtifacts writes each artifact, deriving filenames from the base
// path when multiple formats were requested. An empty output path sends
// a single artifact to stdout.
func writeArtifacts(output string, artifacts map[string][]byte) error {
	if output == "" {
		if len(artifacts) == 1 {
			for _, data := range artifacts {
				_, err := os.Stdout.Write(data)
				return err
			}
		}
		return fmt.Errorf("multiple formats require --output")
	}

	base := strings.TrimSuffix(output, filepath.Ext(output))
	for format, data := range artifacts {
		path := output
		if len(artifacts) > 1 {
			path = base + "." + format
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}
