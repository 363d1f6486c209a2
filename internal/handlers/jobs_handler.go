// File: internal/handlers/jobs_handler.go
package handlers

import (
    "context"
    "net/http"

    "github.com/iyunix/go-supportchat/internal/dtos"
    "github.com/iyunix/go-supportchat/internal/services/jobfilter"
)

type JobFilter interface {
    Filter(ctx context.Context, query string, jobs []jobfilter.Job) ([]string, error)
}

type JobsHandler struct {
    filter JobFilter
    logger Logger
}

func NewJobsHandler(filter JobFilter, logger Logger) *JobsHandler {
    return &JobsHandler{filter: filter, logger: logger}
}

// Filter answers which of the posted jobs match a natural-language query.
func (h *JobsHandler) Filter(w http.ResponseWriter, r *http.Request) {
    var req dtos.JobFilterRequestDTO
    if err := decodeJSON(w, r, &req); err != nil {
        writeError(w, "Invalid request body", http.StatusBadRequest)
        return
    }

    ids, err := h.filter.Filter(r.Context(), req.Query, req.Jobs)
    if err != nil {
        if jobfilter.TypeOf(err) != jobfilter.ErrTypeValidation {
            h.logger.Error("job filter failed", "error", err)
        }
        writeServiceError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, dtos.JobFilterResponseDTO{JobIDs: ids})
}
