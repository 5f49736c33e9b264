// Package task defines the task records the graph engine consumes.
//
// Tasks are externally owned: the task-storage collaborator materializes
// them (from a file, an API response, or a database) and hands the engine
// a flat, ordered list. The engine never mutates tasks and never stores
// them beyond a single analysis call.
//
// A task lists only the ids it depends on. The inverse relation (which
// tasks depend on it) is derived by [github.com/afenda/taskgraph/pkg/graph]
// so the two directions can never disagree.
package task

import "time"

// Status is the lifecycle state of a task.
type Status string

// Task statuses.
const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusBlocked    Status = "blocked"
)

// Completed reports whether the status counts as done for blocking purposes.
// Only StatusCompleted does - a task marked "blocked" is still incomplete.
func (s Status) Completed() bool { return s == StatusCompleted }

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted, StatusBlocked:
		return true
	}
	return false
}

// Priority is the optional urgency ranking of a task.
type Priority string

// Task priorities.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Valid reports whether p is one of the known priorities.
// The empty priority is valid (priority is optional).
func (p Priority) Valid() bool {
	switch p {
	case "", PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Task is a single task record as supplied by the storage collaborator.
//
// Dependencies lists the ids this task depends on ("is blocked by").
// Ids that do not resolve to a task in the same list are tolerated and
// skipped during analysis, so a stale reference never fails a whole
// computation.
type Task struct {
	ID           string     `json:"id" bson:"id"`
	Title        string     `json:"title,omitempty" bson:"title,omitempty"`
	Status       Status     `json:"status" bson:"status"`
	Priority     Priority   `json:"priority,omitempty" bson:"priority,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty" bson:"due_date,omitempty"`
	Dependencies []string   `json:"dependencies,omitempty" bson:"dependencies,omitempty"`
}

// DisplayTitle returns the title if set, otherwise the id.
func (t Task) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	return t.ID
}
