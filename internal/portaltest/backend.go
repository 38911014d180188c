// Package portaltest provides an in-memory portal API for tests.
package portaltest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/careerhub/frontdesk/types"
	"github.com/go-chi/chi/v5"
)

// Backend is a fake portal API. Fields may be seeded before the first
// request; use Lock/Unlock when touching them afterwards.
type Backend struct {
	mu sync.Mutex

	Users        map[string]types.User // by token
	Jobs         map[string]types.Job
	Applications map[string]types.Application
	Courses      map[string]types.Course
	Enrollments  map[string]types.Enrollment // by course id
	Companies    map[string]types.Company

	// FailDelete makes DELETE of the given id answer 400 with the message.
	FailDelete map[string]string

	Now   func() time.Time
	Calls []string

	srv *httptest.Server
	seq int
}

// New starts a fake backend that is closed with the test.
func New(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{
		Users:        map[string]types.User{},
		Jobs:         map[string]types.Job{},
		Applications: map[string]types.Application{},
		Courses:      map[string]types.Course{},
		Enrollments:  map[string]types.Enrollment{},
		Companies:    map[string]types.Company{},
		FailDelete:   map[string]string{},
		Now:          time.Now,
	}
	b.srv = httptest.NewServer(b.router())
	t.Cleanup(b.srv.Close)
	return b
}

// URL is the API base URL (including the /api prefix).
func (b *Backend) URL() string {
	return b.srv.URL + "/api"
}

func (b *Backend) Lock()   { b.mu.Lock() }
func (b *Backend) Unlock() { b.mu.Unlock() }

// CallLog returns a copy of the recorded "METHOD /path" calls.
func (b *Backend) CallLog() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.Calls...)
}

func (b *Backend) router() http.Handler {
	r := chi.NewRouter()
	r.Use(b.record)
	r.Route("/api/{role}", func(r chi.Router) {
		r.Get("/auth/me", b.me)
		r.Post("/auth/logout", b.ok)

		r.Get("/job/all", b.listJobs)
		r.Get("/job/applied", b.withUser(b.listMine))
		r.Get("/job/{jobID}", b.getJob)
		r.Post("/job", b.withUser(b.createJob))
		r.Put("/job/{jobID}", b.withUser(b.updateJob))
		r.Delete("/job/{jobID}", b.withUser(b.deleteJob))
		r.Get("/job/{jobID}/applicants", b.withUser(b.listApplicants))
		r.Post("/job/{jobID}/apply", b.withUser(b.apply))
		r.Get("/job/application/{applicationID}", b.withUser(b.getApplication))
		r.Post("/job/applicant/{action}", b.withUser(b.changeStatus))

		r.Get("/course/all", b.listCourses)
		r.Get("/course/{courseID}", b.getCourse)
		r.Post("/course", b.withUser(b.createCourse))
		r.Delete("/course/{courseID}", b.withUser(b.deleteCourse))
		r.Get("/course/{courseID}/enrollment", b.withUser(b.getEnrollment))
		r.Post("/course/{courseID}/enroll", b.withUser(b.enroll))
		r.Delete("/course/{courseID}/enroll", b.withUser(b.unenroll))
		r.Post("/course/{courseID}/lesson/complete", b.withUser(b.completeLesson))
		r.Post("/course/{courseID}/complete", b.withUser(b.completeCourse))

		r.Get("/company/all", b.withUser(b.listCompanies))
		r.Delete("/company/{companyID}", b.withUser(b.deleteCompany))
	})
	return r
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.Calls = append(b.Calls, r.Method+" "+strings.TrimPrefix(r.URL.Path, "/api"))
		b.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

type userHandler func(w http.ResponseWriter, r *http.Request, user types.User)

func (b *Backend) withUser(next userHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := b.userFor(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r, user)
	}
}

func (b *Backend) userFor(r *http.Request) (types.User, bool) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if token == "" {
		if c, err := r.Cookie("token"); err == nil {
			token = c.Value
		}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	user, ok := b.Users[token]
	return user, ok
}

func (b *Backend) nextID(prefix string) string {
	b.seq++
	return fmt.Sprintf("%s%d", prefix, b.seq)
}

func (b *Backend) ok(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}

func (b *Backend) me(w http.ResponseWriter, r *http.Request) {
	user, ok := b.userFor(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (b *Backend) listJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	b.mu.Lock()
	jobs := make([]types.Job, 0, len(b.Jobs))
	for _, job := range b.Jobs {
		if !containsFold(job.Title, q.Get("title")) ||
			!containsFold(job.Location, q.Get("location")) ||
			!equalOrEmpty(job.JobType, q.Get("jobType")) ||
			!equalOrEmpty(job.City, q.Get("city")) ||
			!equalOrEmpty(job.Industry, q.Get("industry")) {
			continue
		}
		jobs = append(jobs, job)
	}
	b.mu.Unlock()

	asc := q.Get("sortOrder") == "asc"
	sort.Slice(jobs, func(i, j int) bool {
		if asc {
			return jobs[i].PostedAt.Before(jobs[j].PostedAt)
		}
		return jobs[i].PostedAt.After(jobs[j].PostedAt)
	})
	writeJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}

func (b *Backend) getJob(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	job, ok := b.Jobs[chi.URLParam(r, "jobID")]
	b.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "Job not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"job": job})
}

func (b *Backend) createJob(w http.ResponseWriter, r *http.Request, user types.User) {
	var req types.JobUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	b.mu.Lock()
	job := types.Job{
		ID:                  b.nextID("job"),
		Title:               req.Title,
		Location:            req.Location,
		JobType:             req.JobType,
		Salary:              req.Salary,
		City:                req.City,
		Industry:            req.Industry,
		ApplicationDeadline: req.ApplicationDeadline,
		IsActive:            req.IsActive,
		PostedAt:            b.Now(),
		CompanyID:           user.ID,
		PostedBy:            user.ID,
	}
	b.Jobs[job.ID] = job
	b.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]any{"job": job})
}

func (b *Backend) updateJob(w http.ResponseWriter, r *http.Request, user types.User) {
	var req types.JobUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	job, ok := b.Jobs[chi.URLParam(r, "jobID")]
	if !ok {
		writeError(w, http.StatusNotFound, "Job not found")
		return
	}
	job.Title = req.Title
	job.Location = req.Location
	job.JobType = req.JobType
	job.IsActive = req.IsActive
	b.Jobs[job.ID] = job
	writeJSON(w, http.StatusOK, map[string]any{"job": job})
}

func (b *Backend) deleteJob(w http.ResponseWriter, r *http.Request, user types.User) {
	id := chi.URLParam(r, "jobID")
	b.mu.Lock()
	defer b.mu.Unlock()
	if msg, fail := b.FailDelete[id]; fail {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if _, ok := b.Jobs[id]; !ok {
		writeError(w, http.StatusNotFound, "Job not found")
		return
	}
	delete(b.Jobs, id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Job deleted"})
}

func (b *Backend) listMine(w http.ResponseWriter, r *http.Request, user types.User) {
	b.mu.Lock()
	var apps []types.Application
	for _, app := range b.Applications {
		if app.CandidateID == user.ID {
			if job, ok := b.Jobs[app.JobID]; ok {
				app.Job = &job
			}
			apps = append(apps, app)
		}
	}
	b.mu.Unlock()
	sortApplications(apps)
	writeJSON(w, http.StatusOK, map[string]any{"applications": apps})
}

func (b *Backend) listApplicants(w http.ResponseWriter, r *http.Request, user types.User) {
	jobID := chi.URLParam(r, "jobID")
	b.mu.Lock()
	var apps []types.Application
	for _, app := range b.Applications {
		if app.JobID == jobID {
			apps = append(apps, app)
		}
	}
	b.mu.Unlock()
	sortApplications(apps)
	writeJSON(w, http.StatusOK, map[string]any{"applicants": apps})
}

func (b *Backend) getApplication(w http.ResponseWriter, r *http.Request, user types.User) {
	b.mu.Lock()
	app, ok := b.Applications[chi.URLParam(r, "applicationID")]
	b.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "Application not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"application": app})
}

func (b *Backend) apply(w http.ResponseWriter, r *http.Request, user types.User) {
	jobID := chi.URLParam(r, "jobID")
	var req types.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.Jobs[jobID]; !ok {
		writeError(w, http.StatusNotFound, "Job not found")
		return
	}
	for _, app := range b.Applications {
		if app.JobID == jobID && app.CandidateID == user.ID {
			writeError(w, http.StatusBadRequest, "You have already applied for this job")
			return
		}
	}
	app := types.Application{
		ID:            b.nextID("app"),
		JobID:         jobID,
		CandidateID:   user.ID,
		CandidateName: user.Name,
		ResumeURL:     req.ResumeURL,
		Status:        []types.StatusRecord{{Stage: types.StageApplied, CreatedAt: b.Now()}},
	}
	b.Applications[app.ID] = app
	writeJSON(w, http.StatusCreated, map[string]any{"application": app})
}

var actionStages = map[string]types.Stage{
	"shortlist": types.StageShortlisted,
	"interview": types.StageInterviewed,
	"offer":     types.StageOffered,
	"reject":    types.StageRejected,
}

func (b *Backend) changeStatus(w http.ResponseWriter, r *http.Request, user types.User) {
	stage, ok := actionStages[chi.URLParam(r, "action")]
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown action")
		return
	}
	var body struct {
		ApplicationID string `json:"applicationId"`
		Remarks       string `json:"remarks"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	app, ok := b.Applications[body.ApplicationID]
	if !ok {
		writeError(w, http.StatusNotFound, "Application not found")
		return
	}
	app.Status = append(app.Status, types.StatusRecord{Stage: stage, Remarks: body.Remarks, CreatedAt: b.Now()})
	b.Applications[app.ID] = app
	writeJSON(w, http.StatusOK, map[string]any{"application": app})
}

func (b *Backend) listCourses(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	courses := make([]types.Course, 0, len(b.Courses))
	for _, c := range b.Courses {
		courses = append(courses, c)
	}
	b.mu.Unlock()
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	writeJSON(w, http.StatusOK, map[string]any{"courses": courses})
}

func (b *Backend) getCourse(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	c, ok := b.Courses[chi.URLParam(r, "courseID")]
	b.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "Course not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"course": c})
}

func (b *Backend) createCourse(w http.ResponseWriter, r *http.Request, user types.User) {
	var req types.CourseUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	b.mu.Lock()
	c := types.Course{ID: b.nextID("course"), Title: req.Title, Level: req.Level, Price: req.Price, Curriculum: req.Curriculum}
	b.Courses[c.ID] = c
	b.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]any{"course": c})
}

func (b *Backend) deleteCourse(w http.ResponseWriter, r *http.Request, user types.User) {
	id := chi.URLParam(r, "courseID")
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.Courses[id]; !ok {
		writeError(w, http.StatusNotFound, "Course not found")
		return
	}
	delete(b.Courses, id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Course deleted"})
}

func (b *Backend) getEnrollment(w http.ResponseWriter, r *http.Request, user types.User) {
	b.mu.Lock()
	e, ok := b.Enrollments[chi.URLParam(r, "courseID")]
	b.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "Not enrolled")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"enrollment": e})
}

func (b *Backend) enroll(w http.ResponseWriter, r *http.Request, user types.User) {
	id := chi.URLParam(r, "courseID")
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.Courses[id]; !ok {
		writeError(w, http.StatusNotFound, "Course not found")
		return
	}
	if _, ok := b.Enrollments[id]; ok {
		writeError(w, http.StatusBadRequest, "Already enrolled")
		return
	}
	b.Enrollments[id] = types.Enrollment{CourseID: id, CandidateID: user.ID, CompletedLessons: []string{}}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Enrolled"})
}

func (b *Backend) unenroll(w http.ResponseWriter, r *http.Request, user types.User) {
	id := chi.URLParam(r, "courseID")
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.Enrollments[id]; !ok {
		writeError(w, http.StatusNotFound, "Not enrolled")
		return
	}
	delete(b.Enrollments, id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Unenrolled"})
}

func (b *Backend) completeLesson(w http.ResponseWriter, r *http.Request, user types.User) {
	id := chi.URLParam(r, "courseID")
	var req types.LessonCompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.Enrollments[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Not enrolled")
		return
	}
	for _, done := range e.CompletedLessons {
		if strings.EqualFold(done, req.LessonTitle) {
			writeJSON(w, http.StatusOK, map[string]any{"enrollment": e})
			return
		}
	}
	e.CompletedLessons = append(e.CompletedLessons, req.LessonTitle)
	b.Enrollments[id] = e
	writeJSON(w, http.StatusOK, map[string]any{"enrollment": e})
}

func (b *Backend) completeCourse(w http.ResponseWriter, r *http.Request, user types.User) {
	id := chi.URLParam(r, "courseID")
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.Enrollments[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Not enrolled")
		return
	}
	e.Completed = true
	b.Enrollments[id] = e
	writeJSON(w, http.StatusOK, map[string]any{"enrollment": e})
}

func (b *Backend) listCompanies(w http.ResponseWriter, r *http.Request, user types.User) {
	if user.Role != types.RoleSuperAdmin {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}
	b.mu.Lock()
	companies := make([]types.Company, 0, len(b.Companies))
	for _, c := range b.Companies {
		companies = append(companies, c)
	}
	b.mu.Unlock()
	sort.Slice(companies, func(i, j int) bool { return companies[i].ID < companies[j].ID })
	writeJSON(w, http.StatusOK, map[string]any{"companies": companies})
}

func (b *Backend) deleteCompany(w http.ResponseWriter, r *http.Request, user types.User) {
	id := chi.URLParam(r, "companyID")
	b.mu.Lock()
	defer b.mu.Unlock()
	if msg, fail := b.FailDelete[id]; fail {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if _, ok := b.Companies[id]; !ok {
		writeError(w, http.StatusNotFound, "Company not found")
		return
	}
	delete(b.Companies, id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Company deleted"})
}

func sortApplications(apps []types.Application) {
	sort.Slice(apps, func(i, j int) bool { return apps[i].ID < apps[j].ID })
}

func containsFold(value, needle string) bool {
	return needle == "" || strings.Contains(strings.ToLower(value), strings.ToLower(needle))
}

func equalOrEmpty(value, want string) bool {
	return want == "" || strings.EqualFold(value, want)
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
