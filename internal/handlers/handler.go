package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/careerhub/frontdesk/internal/apiclient"
	"github.com/careerhub/frontdesk/internal/apperror"
	"github.com/careerhub/frontdesk/internal/logging"
	"github.com/careerhub/frontdesk/internal/services"
	"github.com/careerhub/frontdesk/internal/session"
	"github.com/careerhub/frontdesk/types"
	"github.com/go-chi/chi/v5"
)

// Handler serves the portal views over HTTP. Every request talks to the
// portal API with the caller's own credentials.
type Handler struct {
	client *apiclient.Client
	log    *logging.Logger
	now    func() time.Time
}

// NewHandler constructs a Handler. Requests without credentials fall back
// to whatever token client was configured with.
func NewHandler(client *apiclient.Client, log *logging.Logger) *Handler {
	if log == nil {
		log = logging.Nop()
	}
	return &Handler{client: client, log: log, now: time.Now}
}

// Router registers every view route on r.
func (h *Handler) Router(r chi.Router) {
	r.Get("/healthz", Healthz)
	r.Get("/stages", h.Stages)

	r.Get("/jobs", h.ListJobs)
	r.Get("/jobs/{jobID}", h.GetJob)
	r.Get("/courses", h.ListCourses)

	r.Group(func(r chi.Router) {
		r.Use(h.RequireSession)

		r.Get("/me", h.Me)
		r.Post("/logout", h.Logout)

		r.With(requireJobManager).Post("/jobs", h.CreateJob)
		r.With(requireJobManager).Put("/jobs/{jobID}", h.UpdateJob)
		r.With(requireJobManager).Delete("/jobs", h.DeleteJobs)
		r.With(requireJobManager).Get("/jobs/{jobID}/applicants", h.ListApplicants)
		r.With(requireRole(types.RoleCandidate)).Post("/jobs/{jobID}/apply", h.Apply)

		r.With(requireRole(types.RoleCandidate)).Get("/applications", h.ListMyApplications)
		r.Get("/applications/{applicationID}", h.GetApplication)
		r.With(requireJobManager).Post("/applications/{applicationID}/status", h.ChangeStatus)

		r.Get("/courses/{courseID}", h.GetCourse)
		r.With(requireRole(types.RoleCandidate)).Post("/courses/{courseID}/enroll", h.Enroll)
		r.With(requireRole(types.RoleCandidate)).Delete("/courses/{courseID}/enroll", h.Unenroll)
		r.With(requireRole(types.RoleCandidate)).Post("/courses/{courseID}/lessons/complete", h.CompleteLesson)
		r.With(requireRole(types.RoleCandidate)).Post("/courses/{courseID}/complete", h.CompleteCourse)

		r.With(requireRole(types.RoleSuperAdmin)).Get("/companies", h.ListCompanies)
		r.With(requireRole(types.RoleSuperAdmin)).Delete("/companies", h.DeleteCompanies)
	})
}

// Healthz reports liveness.
func Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Stages returns the shared stage table in canonical order.
func (h *Handler) Stages(w http.ResponseWriter, r *http.Request) {
	type stageRow struct {
		Stage types.Stage `json:"stage"`
		types.StageMeta
	}
	rows := make([]stageRow, 0, len(types.Stages))
	for _, stage := range types.Stages {
		meta, _ := stage.Meta()
		rows = append(rows, stageRow{Stage: stage, StageMeta: meta})
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *Handler) services(r *http.Request) *services.Services {
	client := h.client
	if token := requestToken(r); token != "" {
		client = client.WithToken(token)
	}
	return services.New(client)
}

// RequireSession resolves the current user and injects it into the
// request context. Any failure answers 401.
func (h *Handler) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		provider := session.NewProvider(h.services(r).Users)
		res := provider.Refresh(r.Context())
		if res.Status != session.Authenticated {
			if res.Err != nil && apperror.KindOf(res.Err) != apperror.KindAuth {
				h.log.Warn("session refresh failed", "err", res.Err)
			}
			writeError(w, http.StatusUnauthorized, apperror.ErrUnauthenticated.Message)
			return
		}
		ctx := context.WithValue(r.Context(), contextUserKey, res.User)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requireRole(roles ...types.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := userFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, apperror.ErrUnauthenticated.Message)
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, http.StatusForbidden, "access denied for role "+string(user.Role))
		})
	}
}

func requireJobManager(next http.Handler) http.Handler {
	return requireRole(types.RoleCompany, types.RoleEmployee, types.RoleSuperAdmin)(next)
}

// Me returns the current user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	writeJSON(w, http.StatusOK, user)
}

// Logout ends the portal session and expires the token cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.services(r).Users.Logout(r.Context()); err != nil {
		writeAppError(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: apiclient.TokenCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	w.WriteHeader(http.StatusNoContent)
}
