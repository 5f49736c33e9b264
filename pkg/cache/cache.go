// Package cache provides pluggable result caching for taskgraph.
//
// Analyses are pure functions of the task list and layout geometry, so a
// cached result keyed on a hash of both is always safe to serve. Four
// backends cover the deployment spectrum:
//   - FileCache: on-disk cache for CLI usage
//   - MemoryCache: process-local cache for tests and embedding
//   - RedisCache: shared cache for multi-instance API deployments
//   - NullCache: caching disabled
package cache

import (
	"context"
	"time"
)

// TTLs for cached artifacts.
const (
	// TTLAnalysis is how long a cached analysis result stays valid.
	// Results are content-addressed, so this mostly bounds disk usage.
	TTLAnalysis = 7 * 24 * time.Hour

	// TTLRender is how long rendered SVG/PNG artifacts stay valid.
	TTLRender = 24 * time.Hour
)

// Cache is the interface all backends implement.
//
// Get returns (data, true, nil) on a hit and (nil, false, nil) on a
// miss; errors are reserved for backend failures. A ttl of zero on Set
// means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// AnalysisKey builds the cache key for an analysis result from the
// hashed task list and the layout geometry.
func AnalysisKey(tasksHash string, geometry any) string {
	return hashKey("analysis", tasksHash, geometry)
}

// RenderKey builds the cache key for a rendered artifact.
func RenderKey(analysisHash, format string) string {
	return hashKey("render", analysisHash, format)
}
