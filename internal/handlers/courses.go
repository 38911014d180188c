package handlers

import (
	"errors"
	"net/http"

	"github.com/careerhub/frontdesk/internal/apperror"
	"github.com/careerhub/frontdesk/internal/course"
	"github.com/careerhub/frontdesk/types"
	"github.com/go-chi/chi/v5"
)

// CourseView is a course as seen by the current user.
type CourseView struct {
	Course      types.Course      `json:"course"`
	Enrolled    bool              `json:"enrolled"`
	Enrollment  *types.Enrollment `json:"enrollment,omitempty"`
	CanComplete bool              `json:"canComplete"`
	Remaining   []types.Lesson    `json:"remaining,omitempty"`
}

func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.services(r).Courses.List(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	level := r.URL.Query().Get("level")
	price := r.URL.Query().Get("price")
	items := make([]types.Course, 0, len(courses))
	for _, c := range courses {
		if level != "" && c.Level != level {
			continue
		}
		if price != "" && c.Price != price {
			continue
		}
		items = append(items, c)
	}
	writeJSON(w, http.StatusOK, items)
}

// GetCourse returns the course plus, for candidates, the enrollment and
// whether the course can be marked complete.
func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "courseID")
	courses := h.services(r).Courses
	c, err := courses.Get(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}

	view := CourseView{Course: c}
	user, _ := userFromContext(r.Context())
	if user.Role == types.RoleCandidate {
		enrollment, err := courses.Enrollment(r.Context(), id)
		switch {
		case err == nil:
			view.Enrolled = true
			view.Enrollment = &enrollment
			view.CanComplete = course.CanComplete(c, enrollment)
			view.Remaining = course.Remaining(c, enrollment)
		case errors.Is(err, apperror.ErrNotFound):
		default:
			writeAppError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) Enroll(w http.ResponseWriter, r *http.Request) {
	if err := h.services(r).Courses.Enroll(r.Context(), chi.URLParam(r, "courseID")); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Unenroll(w http.ResponseWriter, r *http.Request) {
	if err := h.services(r).Courses.Unenroll(r.Context(), chi.URLParam(r, "courseID")); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	var req types.LessonCompleteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, err)
		return
	}
	if err := h.services(r).Courses.CompleteLesson(r.Context(), chi.URLParam(r, "courseID"), req); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CompleteCourse answers 409 while lessons remain.
func (h *Handler) CompleteCourse(w http.ResponseWriter, r *http.Request) {
	if err := h.services(r).Courses.CompleteCourse(r.Context(), chi.URLParam(r, "courseID")); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
