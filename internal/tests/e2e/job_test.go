//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/careerhub/frontdesk/config"
	"github.com/careerhub/frontdesk/internal/server"
)

// The suite drives the frontdesk server against a running portal API.
// E2E_API_BASE_URL points at the portal; E2E_COMPANY_TOKEN and
// E2E_CANDIDATE_TOKEN are session tokens of existing accounts.

const (
	serverPort = 18081
)

var (
	baseURL        = fmt.Sprintf("http://localhost:%d", serverPort)
	companyToken   string
	candidateToken string
)

func TestMain(m *testing.M) {
	apiURL := os.Getenv("E2E_API_BASE_URL")
	companyToken = os.Getenv("E2E_COMPANY_TOKEN")
	candidateToken = os.Getenv("E2E_CANDIDATE_TOKEN")
	if apiURL == "" || companyToken == "" || candidateToken == "" {
		fmt.Fprintln(os.Stderr, "E2E_API_BASE_URL, E2E_COMPANY_TOKEN and E2E_CANDIDATE_TOKEN are required; skipping e2e")
		os.Exit(0)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	srv, err := startServer(apiURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start server: %v\n", err)
		os.Exit(1)
	}

	if err := waitForHealth(ctx, baseURL+"/healthz"); err != nil {
		fmt.Fprintf(os.Stderr, "server not healthy: %v\n", err)
		_ = srv.Shutdown(context.Background())
		os.Exit(1)
	}

	code := m.Run()

	_ = srv.Shutdown(context.Background())
	os.Exit(code)
}

func TestJobLifecycle(t *testing.T) {
	title := fmt.Sprintf("E2E Go Engineer %d", time.Now().UnixNano())

	job, err := createJob(t, title)
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	if job.ID == "" {
		t.Fatalf("expected job id to be set")
	}

	listed, err := listJobs(t, "title="+strings.ReplaceAll(title, " ", "+")+"&range=5min&status=active")
	if err != nil {
		t.Fatalf("list jobs: %v", err)
	}
	if listed.Total != 1 || listed.Items[0].ID != job.ID {
		t.Fatalf("expected only the new job, got %+v", listed.Items)
	}

	if err := apply(t, job.ID); err != nil {
		t.Fatalf("apply: %v", err)
	}

	applicants, err := listApplicants(t, job.ID)
	if err != nil {
		t.Fatalf("list applicants: %v", err)
	}
	if len(applicants) != 1 || applicants[0].Current != "applied" {
		t.Fatalf("unexpected applicants: %+v", applicants)
	}

	moved, err := changeStatus(t, applicants[0].ID, "shortlisted", "e2e shortlist")
	if err != nil {
		t.Fatalf("change status: %v", err)
	}
	if moved.Current != "shortlisted" || len(moved.Timeline.Entries) != 2 {
		t.Fatalf("unexpected timeline after shortlist: %+v", moved)
	}

	if err := deleteJobs(t, job.ID); err != nil {
		t.Fatalf("delete job: %v", err)
	}

	if err := expectJobNotFound(t, job.ID); err != nil {
		t.Fatalf("expected deleted job to be missing: %v", err)
	}
}

type jobResponse struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
}

type jobListResponse struct {
	Items []jobResponse `json:"items"`
	Total int           `json:"total"`
}

type applicationResponse struct {
	ID       string `json:"_id"`
	Current  string `json:"current"`
	Timeline struct {
		Entries []json.RawMessage `json:"entries"`
	} `json:"timeline"`
}

func do(t *testing.T, method, path, token string, body any, wantStatus int, out any) error {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func createJob(t *testing.T, title string) (jobResponse, error) {
	t.Helper()

	payload := map[string]any{
		"title":               title,
		"location":            "Remote",
		"jobType":             "Full Time",
		"applicationDeadline": time.Now().Add(30 * 24 * time.Hour),
		"isActive":            true,
	}
	var job jobResponse
	err := do(t, http.MethodPost, "/jobs", companyToken, payload, http.StatusCreated, &job)
	return job, err
}

func listJobs(t *testing.T, query string) (jobListResponse, error) {
	t.Helper()

	var list jobListResponse
	err := do(t, http.MethodGet, "/jobs?"+query, "", nil, http.StatusOK, &list)
	return list, err
}

func apply(t *testing.T, jobID string) error {
	t.Helper()

	payload := map[string]string{"resumeUrl": "https://example.com/e2e-resume.pdf"}
	return do(t, http.MethodPost, "/jobs/"+jobID+"/apply", candidateToken, payload, http.StatusCreated, nil)
}

func listApplicants(t *testing.T, jobID string) ([]applicationResponse, error) {
	t.Helper()

	var apps []applicationResponse
	err := do(t, http.MethodGet, "/jobs/"+jobID+"/applicants", companyToken, nil, http.StatusOK, &apps)
	return apps, err
}

func changeStatus(t *testing.T, applicationID, stage, remarks string) (applicationResponse, error) {
	t.Helper()

	payload := map[string]string{"stage": stage, "remarks": remarks}
	var app applicationResponse
	err := do(t, http.MethodPost, "/applications/"+applicationID+"/status", companyToken, payload, http.StatusOK, &app)
	return app, err
}

func deleteJobs(t *testing.T, ids ...string) error {
	t.Helper()

	return do(t, http.MethodDelete, "/jobs", companyToken, map[string][]string{"ids": ids}, http.StatusOK, nil)
}

func expectJobNotFound(t *testing.T, id string) error {
	t.Helper()

	return do(t, http.MethodGet, "/jobs/"+id, "", nil, http.StatusNotFound, nil)
}

func waitForHealth(ctx context.Context, url string) error {
	client := &http.Client{Timeout: 2 * time.Second}
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			return fmt.Errorf("health check failed with status")
		case <-ticker.C:
		}
	}
}

func startServer(apiURL string) (*server.Server, error) {
	_ = os.Setenv("API_BASE_URL", apiURL)
	_ = os.Setenv("SERVER_PORT", fmt.Sprintf("%d", serverPort))
	_ = os.Setenv("LOG_LEVEL", "warn")

	cfg := config.LoadConfig()
	srv, err := server.New(cfg, nil)
	if err != nil {
		return nil, err
	}

	go func() {
		_ = srv.Start()
	}()

	return srv, nil
}
