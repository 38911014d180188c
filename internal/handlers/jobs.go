package handlers

import (
	"context"
	"net/http"

	"github.com/careerhub/frontdesk/internal/apperror"
	"github.com/careerhub/frontdesk/internal/filter"
	"github.com/careerhub/frontdesk/internal/selection"
	"github.com/careerhub/frontdesk/types"
	"github.com/go-chi/chi/v5"
)

// JobListResponse is the filtered job list. Fetched counts the rows the
// server returned before client-side refinement.
type JobListResponse struct {
	Items   []types.Job      `json:"items"`
	Total   int              `json:"total"`
	Fetched int              `json:"fetched"`
	Filter  filter.JobFilter `json:"filter"`
}

// BulkDeleteRequest lists the ids to delete.
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// BulkDeleteResponse reports a fail-fast bulk delete. Error is set when a
// delete failed; rows in Deleted stay deleted.
type BulkDeleteResponse struct {
	Deleted []string `json:"deleted"`
	Failed  string   `json:"failed,omitempty"`
	Error   string   `json:"error,omitempty"`
	Items   any      `json:"items,omitempty"`
}

// ListJobs fetches jobs with the server-side filters from the query string
// and applies the range/status refinement locally.
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	f := filter.FromQuery(r.URL.Query())
	resp, err := h.listJobs(r.Context(), r, f)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) listJobs(ctx context.Context, r *http.Request, f filter.JobFilter) (JobListResponse, error) {
	jobs, err := h.services(r).Jobs.List(ctx, f)
	if err != nil {
		return JobListResponse{}, err
	}
	items := f.Refine(jobs, h.now())
	return JobListResponse{Items: items, Total: len(items), Fetched: len(jobs), Filter: f}, nil
}

func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.services(r).Jobs.Get(r.Context(), chi.URLParam(r, "jobID"))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req types.JobUpsertRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, err)
		return
	}
	user, _ := userFromContext(r.Context())
	job, err := h.services(r).Jobs.Create(r.Context(), user.Role, req)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	var req types.JobUpsertRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, err)
		return
	}
	user, _ := userFromContext(r.Context())
	job, err := h.services(r).Jobs.Update(r.Context(), user.Role, chi.URLParam(r, "jobID"), req)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// DeleteJobs deletes the given jobs one by one, stopping at the first
// failure, then re-fetches the list with the query-string filters.
func (h *Handler) DeleteJobs(w http.ResponseWriter, r *http.Request) {
	var req BulkDeleteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, err)
		return
	}
	if len(req.IDs) == 0 {
		writeError(w, http.StatusBadRequest, "no jobs selected")
		return
	}

	user, _ := userFromContext(r.Context())
	jobs := h.services(r).Jobs
	result := selection.BulkDelete(r.Context(), req.IDs, func(ctx context.Context, id string) error {
		return jobs.Delete(ctx, user.Role, id)
	})

	resp := BulkDeleteResponse{Deleted: result.Deleted, Failed: result.Failed}
	status := http.StatusOK
	if result.Err != nil {
		h.log.Warn("bulk job delete stopped", "failed", result.Failed, "deleted", len(result.Deleted), "err", result.Err)
		resp.Error = apperror.Message(result.Err)
		status = apperror.StatusCode(result.Err)
	}

	list, err := h.listJobs(r.Context(), r, filter.FromQuery(r.URL.Query()))
	if err == nil {
		resp.Items = list.Items
	}
	writeJSON(w, status, resp)
}
