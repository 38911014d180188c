package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/careerhub/frontdesk/config"
	"github.com/careerhub/frontdesk/internal/portaltest"
	"github.com/careerhub/frontdesk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) config.Config {
	return config.Config{
		ServerPort: 0,
		API:        config.APIConfig{BaseURL: baseURL, Timeout: 5 * time.Second},
		CORS:       config.CORSConfig{AllowedOrigins: []string{"https://portal.example"}},
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New(config.Config{}, nil)
	assert.Error(t, err)
}

func TestServerRoutesThroughMiddleware(t *testing.T) {
	backend := portaltest.New(t)
	backend.Jobs["j1"] = types.Job{ID: "j1", Title: "Go Dev", IsActive: true, PostedAt: time.Now()}

	srv, err := New(testConfig(backend.URL()), nil)
	require.NoError(t, err)
	assert.Equal(t, ":8081", srv.Addr())

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/jobs")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Total)
}

func TestServerAnswersCORSPreflight(t *testing.T) {
	backend := portaltest.New(t)
	srv, err := New(testConfig(backend.URL()), nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodOptions, "/jobs", nil)
	req.Header.Set("Origin", "https://portal.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, "https://portal.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestWildcardOriginsDropCredentials(t *testing.T) {
	backend := portaltest.New(t)
	cfg := testConfig(backend.URL())
	cfg.CORS.AllowedOrigins = []string{"*"}
	srv, err := New(cfg, nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodOptions, "/jobs", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestAllowCredentials(t *testing.T) {
	tests := []struct {
		name    string
		origins []string
		want    bool
	}{
		{name: "explicit origins", origins: []string{"https://a.example", "https://b.example"}, want: true},
		{name: "wildcard", origins: []string{"*"}, want: false},
		{name: "wildcard among explicit", origins: []string{"https://a.example", "*"}, want: false},
		{name: "none", origins: nil, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, allowCredentials(tt.origins))
		})
	}
}

func TestShutdownBeforeStart(t *testing.T) {
	backend := portaltest.New(t)
	srv, err := New(testConfig(backend.URL()), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, srv.Shutdown(ctx))
}
