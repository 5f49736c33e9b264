package server

import (
	"encoding/json"
	"net/http"

	"github.com/afenda/taskgraph/pkg/analysis"
	"github.com/afenda/taskgraph/pkg/buildinfo"
	"github.com/afenda/taskgraph/pkg/errors"
	"github.com/afenda/taskgraph/pkg/layout"
	"github.com/afenda/taskgraph/pkg/pipeline"
	"github.com/afenda/taskgraph/pkg/task"
)

// maxRequestBody bounds analyze request bodies (16 MiB is far beyond
// any realistic task list).
const maxRequestBody = 16 << 20

// analyzeRequest is the POST /api/v1/analyze body.
type analyzeRequest struct {
	Tasks []task.Task `json:"tasks"`

	// Geometry optionally overrides the layout grid; zero fields keep
	// the engine defaults.
	Geometry *layout.Config `json:"geometry,omitempty"`

	// Refresh bypasses the analysis cache.
	Refresh bool `json:"refresh,omitempty"`
}

// analyzeResponse is the POST /api/v1/analyze reply.
type analyzeResponse struct {
	RequestID string           `json:"request_id"`
	TasksHash string           `json:"tasks_hash"`
	Cached    bool             `json:"cached"`
	Result    *analysis.Result `json:"result"`
}

// errorResponse is the shape of all error replies.
type errorResponse struct {
	RequestID string      `json:"request_id"`
	Code      errors.Code `json:"code"`
	Error     string      `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req analyzeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	if err := errors.ValidateTasks(req.Tasks); err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := pipeline.Options{Refresh: req.Refresh}
	if req.Geometry != nil {
		opts.Layout = *req.Geometry
	}

	res, hash, hit, err := s.runner.AnalyzeWithCacheInfo(ctx, req.Tasks, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		RequestID: reqID(ctx),
		TasksHash: hash,
		Cached:    hit,
		Result:    res,
	})
}

// writeError maps error codes to HTTP statuses and logs server faults.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidTask,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidConfig:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeUnsupported:
		status = http.StatusUnprocessableEntity
	}

	if status >= 500 {
		s.logger.Error("request failed",
			"path", r.URL.Path,
			"error", err,
			"request_id", reqID(r.Context()))
	}

	writeJSON(w, status, errorResponse{
		RequestID: reqID(r.Context()),
		Code:      errors.GetCode(err),
		Error:     errors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
