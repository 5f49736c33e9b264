package errors

import (
	"unicode"

	"github.com/afenda/taskgraph/pkg/task"
)

// ValidateTaskID validates a task id for safety and correctness.
//
// The engine itself tolerates any id; validation happens at the product
// boundary (file import, HTTP API) so bad records are rejected before
// they are persisted or cached under a garbage key:
//   - No empty ids
//   - No control characters
//   - Maximum length of 256 characters
func ValidateTaskID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidTask, "task id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidTask, "task id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTask, "task id contains control characters")
		}
	}

	return nil
}

// ValidateTask validates a single task record at the ingest boundary.
// It checks the id and the status/priority enums; dependency ids are
// only checked for shape, not for resolvability (dangling references
// are a tolerated condition, not an input error).
func ValidateTask(t task.Task) error {
	if err := ValidateTaskID(t.ID); err != nil {
		return err
	}

	if !t.Status.Valid() {
		return New(ErrCodeInvalidTask, "task %q: unknown status %q", t.ID, t.Status)
	}
	if !t.Priority.Valid() {
		return New(ErrCodeInvalidTask, "task %q: unknown priority %q", t.ID, t.Priority)
	}

	for _, dep := range t.Dependencies {
		if err := ValidateTaskID(dep); err != nil {
			return Wrap(ErrCodeInvalidTask, err, "task %q: bad dependency id", t.ID)
		}
	}

	return nil
}

// ValidateTasks validates a whole task list. It stops at the first
// invalid record so the caller gets one actionable message rather than
// a wall of them.
func ValidateTasks(tasks []task.Task) error {
	for _, t := range tasks {
		if err := ValidateTask(t); err != nil {
			return err
		}
	}
	return nil
}
