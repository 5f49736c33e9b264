// Package pipeline provides the load → analyze → render pipeline shared
// by the CLI and the HTTP API.
//
// Centralizing the staging here keeps caching and logging behavior
// identical across entry points: the CLI's `taskgraph analyze` and the
// API's POST /api/v1/analyze run exactly the same code.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{Formats: []string{pipeline.FormatJSON}}
//	result, err := runner.Execute(ctx, store.NewFileSource("tasks.json"), opts)
//	if err != nil {
//	    return err
//	}
//	out := result.Artifacts[pipeline.FormatJSON]
package pipeline

import (
	"github.com/afenda/taskgraph/pkg/errors"
	"github.com/afenda/taskgraph/pkg/layout"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// Options configures a pipeline run.
type Options struct {
	// Layout is the grid geometry; the zero value uses engine defaults.
	Layout layout.Config

	// Formats selects the artifacts to produce. Empty means FormatJSON.
	Formats []string

	// Detailed includes status/priority/level in rendered node labels.
	Detailed bool

	// Refresh bypasses the cache and recomputes.
	Refresh bool
}

// ValidateAndSetDefaults normalizes the options in place.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q", f)
		}
	}
	if o.Layout == (layout.Config{}) {
		o.Layout = layout.DefaultConfig()
	}
	return nil
}
