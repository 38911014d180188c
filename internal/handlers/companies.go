package handlers

import (
	"net/http"

	"github.com/careerhub/frontdesk/internal/apperror"
	"github.com/careerhub/frontdesk/internal/selection"
)

func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.services(r).Companies.List(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, companies)
}

// DeleteCompanies bulk-deletes companies and answers with the re-fetched
// list.
func (h *Handler) DeleteCompanies(w http.ResponseWriter, r *http.Request) {
	var req BulkDeleteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, err)
		return
	}
	if len(req.IDs) == 0 {
		writeError(w, http.StatusBadRequest, "no companies selected")
		return
	}

	companies := h.services(r).Companies
	result := selection.BulkDelete(r.Context(), req.IDs, companies.Delete)

	resp := BulkDeleteResponse{Deleted: result.Deleted, Failed: result.Failed}
	status := http.StatusOK
	if result.Err != nil {
		resp.Error = apperror.Message(result.Err)
		status = apperror.StatusCode(result.Err)
	}
	if items, err := companies.List(r.Context()); err == nil {
		resp.Items = items
	}
	writeJSON(w, status, resp)
}
