package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/careerhub/frontdesk/internal/apiclient"
	"github.com/careerhub/frontdesk/internal/portaltest"
	"github.com/careerhub/frontdesk/types"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	backend *portaltest.Backend
	router  *chi.Mux
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	backend := portaltest.New(t)
	backend.Now = func() time.Time { return fixedNow }
	backend.Users["cand"] = types.User{ID: "u-cand", Role: types.RoleCandidate, Name: "Ayesha"}
	backend.Users["comp"] = types.User{ID: "u-comp", Role: types.RoleCompany, Name: "Acme"}
	backend.Users["root"] = types.User{ID: "u-root", Role: types.RoleSuperAdmin, Name: "Root"}

	h := NewHandler(apiclient.New(apiclient.Config{BaseURL: backend.URL()}), nil)
	h.now = func() time.Time { return fixedNow }

	router := chi.NewRouter()
	h.Router(router)
	return &fixture{backend: backend, router: router}
}

func (f *fixture) do(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealthzAndStages(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/stages", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rows := decode[[]map[string]any](t, rec)
	require.Len(t, rows, 5)
	assert.Equal(t, "applied", rows[0]["stage"])
	assert.Equal(t, "reject", rows[4]["action"])
}

func TestMeRequiresSession(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodGet, "/me", "comp", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Acme", decode[types.User](t, rec).Name)
}

func TestSessionFromCookie(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: apiclient.TokenCookie, Value: "cand"})
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, types.RoleCandidate, decode[types.User](t, rec).Role)
}

func TestListJobsAppliesServerAndClientFilters(t *testing.T) {
	f := newFixture(t)
	f.backend.Jobs["fresh"] = types.Job{ID: "fresh", Title: "Go Dev", PostedAt: fixedNow.Add(-2 * time.Minute), IsActive: true}
	f.backend.Jobs["older"] = types.Job{ID: "older", Title: "Go Lead", PostedAt: fixedNow.Add(-10 * time.Minute), IsActive: true}
	f.backend.Jobs["closed"] = types.Job{ID: "closed", Title: "Go Ops", PostedAt: fixedNow.Add(-time.Minute), IsActive: false}
	f.backend.Jobs["other"] = types.Job{ID: "other", Title: "Designer", PostedAt: fixedNow, IsActive: true}

	rec := f.do(t, http.MethodGet, "/jobs?title=go&range=5min&status=active", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[JobListResponse](t, rec)

	assert.Equal(t, 3, resp.Fetched)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "fresh", resp.Items[0].ID)
	assert.Equal(t, "postedAt", resp.Filter.SortBy)
	assert.Contains(t, f.backend.CallLog(), "GET /common/job/all")
}

func TestDeleteJobsFailsFastAndRefetches(t *testing.T) {
	f := newFixture(t)
	for _, id := range []string{"j1", "j2", "j3"} {
		f.backend.Jobs[id] = types.Job{ID: id, PostedAt: fixedNow}
	}
	f.backend.FailDelete["j2"] = "Job has active applications"

	rec := f.do(t, http.MethodDelete, "/jobs", "comp", BulkDeleteRequest{IDs: []string{"j1", "j2", "j3"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[map[string]any](t, rec)
	assert.Equal(t, []any{"j1"}, resp["deleted"])
	assert.Equal(t, "j2", resp["failed"])
	assert.Equal(t, "Job has active applications", resp["error"])
	assert.Len(t, resp["items"], 2)
	assert.NotContains(t, f.backend.CallLog(), "DELETE /company/job/j3")
}

func TestDeleteJobsForbiddenForCandidate(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodDelete, "/jobs", "cand", BulkDeleteRequest{IDs: []string{"j1"}})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestApplyAndStatusFlow(t *testing.T) {
	f := newFixture(t)
	f.backend.Jobs["j1"] = types.Job{ID: "j1", Title: "Go Dev", PostedAt: fixedNow}

	rec := f.do(t, http.MethodPost, "/jobs/j1/apply", "cand", types.ApplyRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "please select a resume before applying", decode[ErrorResponse](t, rec).Error)

	rec = f.do(t, http.MethodPost, "/jobs/j1/apply", "cand", types.ApplyRequest{ResumeURL: "https://cdn/cv.pdf"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodPost, "/jobs/j1/apply", "cand", types.ApplyRequest{ResumeURL: "https://cdn/cv.pdf"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You have already applied for this job", decode[ErrorResponse](t, rec).Error)

	rec = f.do(t, http.MethodGet, "/jobs/j1/applicants", "comp", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	applicants := decode[[]ApplicationView](t, rec)
	require.Len(t, applicants, 1)
	assert.Equal(t, types.StageApplied, applicants[0].Current)
	appID := applicants[0].ID

	f.backend.Lock()
	f.backend.Now = func() time.Time { return fixedNow.Add(time.Hour) }
	f.backend.Unlock()

	rec = f.do(t, http.MethodPost, "/applications/"+appID+"/status", "comp", StatusChangeBody{Stage: "offered", Remarks: "welcome aboard"})
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[ApplicationView](t, rec)
	assert.Equal(t, types.StageOffered, view.Current)
	require.Len(t, view.Timeline.Entries, 4)
	assert.Equal(t, "welcome aboard", view.Timeline.Entries[3].Record.Remarks)

	rec = f.do(t, http.MethodGet, "/jobs/j1/applicants?status=shortlisted", "comp", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]ApplicationView](t, rec))

	rec = f.do(t, http.MethodGet, "/applications", "cand", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	mine := decode[[]ApplicationView](t, rec)
	require.Len(t, mine, 1)
	assert.Equal(t, types.StageOffered, mine[0].Current)
}

func TestChangeStatusRejectsUnknownStage(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/applications/a1/status", "comp", StatusChangeBody{Stage: "hired"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCourseCompletionGate(t *testing.T) {
	f := newFixture(t)
	f.backend.Courses["c1"] = types.Course{
		ID:    "c1",
		Title: "Go Basics",
		Level: types.LevelBeginner,
		Price: types.PriceFree,
		Curriculum: []types.Section{
			{Title: "Intro", Lessons: []types.Lesson{{Title: "Welcome"}, {Title: "Setup"}}},
		},
	}

	rec := f.do(t, http.MethodGet, "/courses/c1", "cand", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[CourseView](t, rec).Enrolled)

	rec = f.do(t, http.MethodPost, "/courses/c1/enroll", "cand", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodPost, "/courses/c1/lessons/complete", "cand", types.LessonCompleteRequest{LessonTitle: "welcome"})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodGet, "/courses/c1", "cand", nil)
	view := decode[CourseView](t, rec)
	assert.True(t, view.Enrolled)
	assert.False(t, view.CanComplete)
	assert.Equal(t, []types.Lesson{{Title: "Setup"}}, view.Remaining)

	rec = f.do(t, http.MethodPost, "/courses/c1/complete", "cand", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodPost, "/courses/c1/lessons/complete", "cand", types.LessonCompleteRequest{LessonTitle: "SETUP"})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodGet, "/courses/c1", "cand", nil)
	assert.True(t, decode[CourseView](t, rec).CanComplete)

	rec = f.do(t, http.MethodPost, "/courses/c1/complete", "cand", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestListCoursesFiltersByLevelAndPrice(t *testing.T) {
	f := newFixture(t)
	f.backend.Courses["c1"] = types.Course{ID: "c1", Level: types.LevelBeginner, Price: types.PriceFree}
	f.backend.Courses["c2"] = types.Course{ID: "c2", Level: types.LevelAdvanced, Price: types.PricePaid}

	rec := f.do(t, http.MethodGet, "/courses?price=paid", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	courses := decode[[]types.Course](t, rec)
	require.Len(t, courses, 1)
	assert.Equal(t, "c2", courses[0].ID)
}

func TestCompaniesBulkDelete(t *testing.T) {
	f := newFixture(t)
	f.backend.Companies["co1"] = types.Company{ID: "co1", Name: "Acme"}
	f.backend.Companies["co2"] = types.Company{ID: "co2", Name: "Globex"}

	rec := f.do(t, http.MethodGet, "/companies", "comp", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodDelete, "/companies", "root", BulkDeleteRequest{IDs: []string{"co1", "co2"}})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[map[string]any](t, rec)
	assert.Equal(t, []any{"co1", "co2"}, resp["deleted"])
	assert.Empty(t, resp["error"])
}
