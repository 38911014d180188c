package handlers

import (
	"net/http"

	"github.com/careerhub/frontdesk/internal/timeline"
	"github.com/careerhub/frontdesk/types"
	"github.com/go-chi/chi/v5"
)

// ApplicationView is an application with its projected timeline.
type ApplicationView struct {
	types.Application
	Current  types.Stage       `json:"current,omitempty"`
	Timeline timeline.Timeline `json:"timeline"`
}

// StatusChangeBody is the payload of a status change.
type StatusChangeBody struct {
	Stage   string `json:"stage"`
	Remarks string `json:"remarks"`
}

func viewOf(app types.Application) ApplicationView {
	tl := timeline.Reduce(app.Status)
	return ApplicationView{Application: app, Current: tl.Frontier, Timeline: tl}
}

// viewsOf projects apps and keeps only those whose current stage equals
// stage; an empty or "all" stage keeps every row.
func viewsOf(apps []types.Application, stage string) []ApplicationView {
	want, filtered := types.ParseStage(stage)
	views := make([]ApplicationView, 0, len(apps))
	for _, app := range apps {
		view := viewOf(app)
		if filtered && view.Current != want {
			continue
		}
		views = append(views, view)
	}
	return views
}

// ListApplicants lists the applicants of a job, optionally narrowed by
// their current stage (?status=shortlisted).
func (h *Handler) ListApplicants(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	apps, err := h.services(r).Applications.ListApplicants(r.Context(), user.Role, chi.URLParam(r, "jobID"))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewsOf(apps, r.URL.Query().Get("status")))
}

// ListMyApplications lists the candidate's applications.
func (h *Handler) ListMyApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.services(r).Applications.ListMine(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewsOf(apps, r.URL.Query().Get("status")))
}

func (h *Handler) GetApplication(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	app, err := h.services(r).Applications.Get(r.Context(), user.Role, chi.URLParam(r, "applicationID"))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(app))
}

func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	var req types.ApplyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, err)
		return
	}
	if err := h.services(r).Applications.Apply(r.Context(), chi.URLParam(r, "jobID"), req); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "application submitted"})
}

// ChangeStatus posts the new stage and answers with the re-fetched
// application.
func (h *Handler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	var body StatusChangeBody
	if err := decodeJSON(r, &body); err != nil {
		writeAppError(w, err)
		return
	}
	stage, ok := types.ParseStage(body.Stage)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid stage")
		return
	}

	user, _ := userFromContext(r.Context())
	svc := h.services(r).Applications
	id := chi.URLParam(r, "applicationID")
	req := types.StatusChangeRequest{ApplicationID: id, Stage: stage, Remarks: body.Remarks}
	if err := svc.ChangeStatus(r.Context(), user.Role, req); err != nil {
		writeAppError(w, err)
		return
	}

	app, err := svc.Get(r.Context(), user.Role, id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(app))
}
