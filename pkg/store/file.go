package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/afenda/taskgraph/pkg/errors"
	"github.com/afenda/taskgraph/pkg/task"
)

// FileSource reads a JSON task list from disk.
//
// The file must contain either a bare array of tasks or an object with
// a "tasks" array:
//
//	[{"id": "a", "status": "todo"}, ...]
//	{"tasks": [{"id": "a", "status": "todo", "dependencies": ["b"]}]}
//
// Task order in the file is preserved.
type FileSource struct {
	path string
}

// NewFileSource creates a source reading from path.
// The file is opened on each Load, not at construction.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load reads and validates the task list.
func (s *FileSource) Load(ctx context.Context) ([]task.Task, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "task file %s not found", s.path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "open %s", s.path)
	}
	defer f.Close()

	tasks, err := DecodeTasks(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", s.path)
	}
	if err := errors.ValidateTasks(tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Close does nothing for a file source.
func (s *FileSource) Close(ctx context.Context) error { return nil }

// taskDocument is the object form of a task list file.
type taskDocument struct {
	Tasks []task.Task `json:"tasks"`
}

// DecodeTasks decodes a JSON task list from r, accepting both the bare
// array and the {"tasks": [...]} object forms.
func DecodeTasks(r io.Reader) ([]task.Task, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err == nil {
		return tasks, nil
	}

	var doc taskDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return doc.Tasks, nil
}

var _ Source = (*FileSource)(nil)
