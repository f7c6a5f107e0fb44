package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/photosphere/connect-admin-console/internal/adapter/cache/flat"
	"github.com/photosphere/connect-admin-console/internal/adapter/storage/csvfile"
	"github.com/photosphere/connect-admin-console/internal/config"
	"github.com/photosphere/connect-admin-console/internal/domain/instance"
	"github.com/photosphere/connect-admin-console/internal/domain/region"
	"github.com/photosphere/connect-admin-console/internal/selection"
	"github.com/photosphere/connect-admin-console/internal/usecase/console"
	"github.com/photosphere/connect-admin-console/internal/usecase/management"
	"github.com/photosphere/connect-admin-console/internal/usecase/resolver"
	"github.com/photosphere/connect-admin-console/pkg/snowflake"
	"github.com/photosphere/connect-admin-console/pkg/testhelper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	router *Router
	dir    *testhelper.MockDirectory
	store  *selection.Store
	static string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dataDir := t.TempDir()
	staticDir := t.TempDir()
	flatStore := csvfile.NewStore(dataDir)

	dir := testhelper.NewMockDirectory()
	dir.Instances["us-east-1"] = []instance.Summary{{ID: "instance-123", Alias: "Primary"}}
	dir.FailFor["eu-west-2"] = true

	logger := zap.NewNop()
	store := selection.NewStore(flatStore, region.DefaultCode, logger)
	res := resolver.NewResolver(dir, flat.NewCache(flatStore), resolver.Options{MockFallback: true}, nil, logger)
	consoleSvc := console.NewService(region.NewCatalog(), store, res, logger)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	mgmt := management.NewService(node, logger)

	cfg := &config.Config{Port: "0", AppVersion: "test", StaticDir: staticDir}
	return &testEnv{
		router: NewRouter(cfg, consoleSvc, mgmt, logger),
		dir:    dir,
		store:  store,
		static: staticDir,
	}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.do(httptest.NewRequest(http.MethodGet, "/health", nil))

	w := env.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "console_http_requests_total")
}

func TestListRegions(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(httptest.NewRequest(http.MethodGet, "/api/regions", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Default string          `json:"default"`
		Regions []region.Region `json:"regions"`
	}
	decode(t, w, &body)
	assert.Equal(t, "us-east-1", body.Default)
	assert.Len(t, body.Regions, 10)
}

func TestGetSelection_Defaults(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(httptest.NewRequest(http.MethodGet, "/api/selection", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Regions   []string `json:"regions"`
		Instances []struct {
			ID          string `json:"id"`
			Region      string `json:"region"`
			Alias       string `json:"alias"`
			DisplayName string `json:"display_name"`
		} `json:"instances"`
		SelectedInstanceIDs []string `json:"selected_instance_ids"`
		Warnings            []string `json:"warnings"`
	}
	decode(t, w, &body)

	assert.Equal(t, []string{"us-east-1"}, body.Regions)
	require.Len(t, body.Instances, 1)
	assert.Equal(t, "instance-123,Primary, us-east-1 (N. Virginia)", body.Instances[0].DisplayName)
	assert.Empty(t, body.SelectedInstanceIDs)
	assert.Empty(t, body.Warnings)
}

func TestUpdateSelection(t *testing.T) {
	env := newTestEnv(t)

	payload := `{"regions":["us-east-1","eu-west-2"],"instance_ids":["instance-123","stale"]}`
	req := httptest.NewRequest(http.MethodPut, "/api/selection", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := env.do(req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Regions             []string         `json:"regions"`
		Instances           []map[string]any `json:"instances"`
		SelectedInstanceIDs []string         `json:"selected_instance_ids"`
		Warnings            []string         `json:"warnings"`
	}
	decode(t, w, &body)

	assert.Equal(t, []string{"us-east-1", "eu-west-2"}, body.Regions)
	assert.Len(t, body.Instances, 1+instance.MockRecordsPerRegion)
	assert.Equal(t, []string{"instance-123"}, body.SelectedInstanceIDs)
	require.Len(t, body.Warnings, 1)
	assert.Contains(t, body.Warnings[0], "eu-west-2")

	assert.Equal(t, []string{"us-east-1", "eu-west-2"}, env.store.LoadRegions(req.Context()))
}

func TestUpdateSelection_BadInput(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		payload string
		code    string
	}{
		{"unknown region", `{"regions":["mars-north-1"]}`, "unknown_region"},
		{"malformed", `{"regions":`, "invalid_request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/api/selection", strings.NewReader(tt.payload))
			req.Header.Set("Content-Type", "application/json")
			w := env.do(req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.code)
		})
	}
	assert.Equal(t, 0, env.dir.CallCount())
}

func TestListInstances(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(httptest.NewRequest(http.MethodGet, "/api/instances?region=us-east-1&region=eu-west-2", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body instancesResponse
	decode(t, w, &body)
	assert.Len(t, body.Instances, 4)
	assert.Len(t, body.Warnings, 1)

	w = env.do(httptest.NewRequest(http.MethodGet, "/api/instances", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "region_required")
}

func TestManagementAPI(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/accounts", "/api/routing-profiles", "/api/quick-connects"} {
		w := env.do(httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		want   string
	}{
		{"account", "/api/accounts", `{"username":"agent2","role":"Agent","password":"a","confirm_password":"a"}`, http.StatusCreated, "Account agent2 saved successfully!"},
		{"account mismatch", "/api/accounts", `{"username":"agent2","role":"Agent","password":"a","confirm_password":"b"}`, http.StatusUnprocessableEntity, "password_mismatch"},
		{"routing", "/api/routing-profiles", `{"name":"Night","queues":[{"queue":"BasicQueue","priority":3}]}`, http.StatusCreated, "Routing profile Night saved successfully!"},
		{"routing bad priority", "/api/routing-profiles", `{"name":"Night","queues":[{"queue":"BasicQueue","priority":30}]}`, http.StatusUnprocessableEntity, "invalid_form"},
		{"quick connect", "/api/quick-connects", `{"name":"Help","type":"Queue","destination":"SupportQueue"}`, http.StatusCreated, "reference"},
		{"quick connect bad type", "/api/quick-connects", `{"name":"Help","type":"Fax","destination":"1"}`, http.StatusUnprocessableEntity, "invalid_form"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := env.do(req)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
		})
	}
}

func TestConsolePage(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Amazon Connect Management Portal")
	assert.Contains(t, body, "instance-123,Primary, us-east-1 (N. Virginia)")
	assert.Contains(t, body, "agent1@example.com")
	assert.NotContains(t, body, "Save Account")

	w = env.do(httptest.NewRequest(http.MethodGet, "/?form=routing", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Save Routing Profile")
	assert.Contains(t, w.Body.String(), "Default Profile")
}

func TestConsoleSelectionForm(t *testing.T) {
	env := newTestEnv(t)

	form := url.Values{"region": {"eu-west-2"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := env.do(req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "MockInstance-1, eu-west-2 (London)")
	assert.Contains(t, w.Body.String(), "alert-warning")
}

func TestConsoleAccountForm(t *testing.T) {
	env := newTestEnv(t)

	post := func(values url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/forms/account", strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return env.do(req)
	}

	w := post(url.Values{"username": {"agent2"}, "role": {"Agent"}, "password": {"x"}, "confirm_password": {"y"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Passwords do not match")
	assert.Contains(t, w.Body.String(), "Save Account")

	w = post(url.Values{"username": {"agent2"}, "role": {"Agent"}, "password": {"x"}, "confirm_password": {"x"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Account agent2 saved successfully!")
	assert.NotContains(t, w.Body.String(), "Save Account")
}

func TestFallback(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(env.static, "console.css"), []byte("body{}"), 0o644))

	w := env.do(httptest.NewRequest(http.MethodGet, "/console.css", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "body{}", w.Body.String())

	w = env.do(httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(httptest.NewRequest(http.MethodGet, "/somewhere", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}
