package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/afenda/taskgraph/internal/server"
	"github.com/afenda/taskgraph/pkg/cache"
	"github.com/afenda/taskgraph/pkg/config"
	"github.com/afenda/taskgraph/pkg/pipeline"
)

// serveCommand creates the serve command exposing the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis API over HTTP",
		Long: `Serve starts the taskgraph HTTP API.

POST /api/v1/analyze takes {"tasks": [...]} and returns the layered
layout plus the circular and blocked id sets. The cache backend comes
from the config file: "file" (default), "redis" for multi-instance
deployments, or "none".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config, default :8080)")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg config.Config) error {
	serverCache, err := newServerCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer serverCache.Close()

	runner := pipeline.NewRunner(serverCache, c.Logger)
	srv := server.New(runner, c.Logger, cfg.Server.Addr)
	return srv.ListenAndServe(ctx)
}

// newServerCache builds the configured cache backend.
func newServerCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	case "none":
		return cache.NewNullCache(), nil
	default:
		dir := cfg.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return cache.NewNullCache(), nil
			}
		}
		return cache.NewFileCache(dir)
	}
}
