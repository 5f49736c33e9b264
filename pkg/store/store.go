// Package store loads task lists for the graph engine.
//
// The engine consumes an already-materialized, ordered task list; this
// package is the boundary collaborator that materializes it. Two
// sources are provided:
//   - FileSource: a JSON task list on disk (CLI usage, fixtures)
//   - MongoSource: the task manager's MongoDB tasks collection
//
// Sources only read. They never write engine output anywhere - analysis
// results are not persisted.
package store

import (
	"context"

	"github.com/afenda/taskgraph/pkg/task"
)

// Source yields one ordered task list per Load call.
//
// The returned order is the source's stable order (file order, or a
// sorted query), which downstream layout determinism relies on.
type Source interface {
	Load(ctx context.Context) ([]task.Task, error)
	Close(ctx context.Context) error
}
