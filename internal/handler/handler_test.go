package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard/internal/model"
	"dashboard/internal/service"
	"dashboard/internal/session"
	"dashboard/internal/table"
)

type staticSource struct {
	raw []byte
	err error
}

func (s staticSource) Name() string { return "static" }

func (s staticSource) Fetch(context.Context) ([]byte, error) { return s.raw, s.err }

type testServer struct {
	t   *testing.T
	srv *httptest.Server
}

func newTestServer(t *testing.T, src service.Source) *testServer {
	t.Helper()

	loader := service.NewDataLoader(src, service.LoaderOptions{})
	sessions := service.NewSessionService(session.NewMemoryStore(time.Hour), service.NewTokens("test-secret", time.Hour))
	router := NewRouter(Deps{
		Auth:     service.NewSimulatedAuthenticator(0),
		Sessions: sessions,
		Spaces:   service.NewWorkspaceService(loader, table.DefaultPageSize),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testServer{t: t, srv: srv}
}

func fileSource(t *testing.T) service.Source {
	t.Helper()
	raw, err := os.ReadFile("testdata/dashboard.json")
	require.NoError(t, err)
	return staticSource{raw: raw}
}

func (s *testServer) do(method, path, token string, body any) *http.Response {
	s.t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, s.srv.URL+path, r)
	require.NoError(s.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.srv.Client().Do(req)
	require.NoError(s.t, err)
	s.t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func (s *testServer) register(email string) string {
	s.t.Helper()
	resp := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":            "Sara",
		"lastName":        "Ahmadi",
		"email":           email,
		"password":        "secret1",
		"confirmPassword": "secret1",
	})
	require.Equal(s.t, http.StatusOK, resp.StatusCode)
	out := decode[authResponse](s.t, resp)
	require.NotEmpty(s.t, out.Token)
	assert.Equal(s.t, "Bearer "+out.Token, resp.Header.Get("Authorization"))
	return out.Token
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t, fileSource(t))

	resp := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":            "Sara",
		"email":           "not-an-email",
		"password":        "abc",
		"confirmPassword": "abcd",
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	out := decode[errorResponse](t, resp)
	assert.Equal(t, "this field is required", out.Fields["lastName"])
	assert.Equal(t, "invalid email address", out.Fields["email"])
	assert.Equal(t, "must be at least 6 characters", out.Fields["password"])
	assert.Equal(t, "passwords do not match", out.Fields["confirmPassword"])
	assert.NotContains(t, out.Fields, "name")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s := newTestServer(t, fileSource(t))
	s.register("sara@example.com")

	resp := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Sara", "lastName": "A", "email": "SARA@example.com",
		"password": "secret1", "confirmPassword": "secret1",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLoginAndLogout(t *testing.T) {
	s := newTestServer(t, fileSource(t))
	s.register("sara@example.com")

	resp := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "sara@example.com", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "sara@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := decode[authResponse](t, resp).Token

	resp = s.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, model.User{FullName: "Sara Ahmadi", Email: "sara@example.com"}, decode[model.User](t, resp))

	resp = s.do(http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = s.do(http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t, fileSource(t))

	for _, path := range []string{"/api/auth/me", "/api/dashboard", "/api/tables/orders/"} {
		resp := s.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestPreferences(t *testing.T) {
	s := newTestServer(t, fileSource(t))
	token := s.register("sara@example.com")

	resp := s.do(http.MethodGet, "/api/preferences", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, preferences{Theme: session.ThemeLight}, decode[preferences](t, resp))

	resp = s.do(http.MethodPost, "/api/preferences/theme/toggle", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, session.ThemeDark, decode[preferences](t, resp).Theme)

	resp = s.do(http.MethodPost, "/api/preferences/sidebar/toggle", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[preferences](t, resp).SidebarOpen)

	// the state survives into the next request
	resp = s.do(http.MethodGet, "/api/preferences", token, nil)
	assert.Equal(t, preferences{Theme: session.ThemeDark, SidebarOpen: true}, decode[preferences](t, resp))

	resp = s.do(http.MethodPut, "/api/preferences", token, map[string]any{"theme": "blue", "sidebarOpen": false})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = s.do(http.MethodPut, "/api/preferences", token, map[string]any{"theme": "light", "sidebarOpen": false})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, preferences{Theme: session.ThemeLight}, decode[preferences](t, resp))
}

func TestSidebarIsPublicAndNormalised(t *testing.T) {
	s := newTestServer(t, fileSource(t))

	resp := s.do(http.MethodGet, "/api/sidebar", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	items := decode[[]model.SidebarItem](t, resp)
	require.Len(t, items, 2)
	assert.Equal(t, model.IconHouse, items[0].Icon)
	assert.Equal(t, model.IconDefault, items[1].Icon)
}

func TestOverviewStats(t *testing.T) {
	s := newTestServer(t, fileSource(t))
	token := s.register("sara@example.com")

	resp := s.do(http.MethodGet, "/api/overview/stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	stats := decode[[]model.OrderStat](t, resp)
	require.Len(t, stats, 2)
	assert.Equal(t, model.IconShoppingBag, stats[0].Icon)
	assert.Equal(t, model.IconDefault, stats[1].Icon)
}

func TestCharts(t *testing.T) {
	s := newTestServer(t, fileSource(t))
	token := s.register("sara@example.com")

	resp := s.do(http.MethodGet, "/api/charts/profit-loss", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[
		{"date":"2024-01-01","profit":30,"loss":20},
		{"date":"2024-01-02","profit":10,"loss":0}
	]`, readBody(t, resp))

	resp = s.do(http.MethodGet, "/api/charts/yearly", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	yearly := decode[yearlyResponse](t, resp)
	assert.True(t, yearly.Available)
	require.NotNil(t, yearly.RevenueGrowth)
	assert.InDelta(t, 50.0, *yearly.RevenueGrowth, 1e-9)

	resp = s.do(http.MethodGet, "/api/charts/radar", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFetchFailureIsBadGateway(t *testing.T) {
	s := newTestServer(t, staticSource{err: errors.New("connection refused")})
	token := s.register("sara@example.com")

	resp := s.do(http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "failed to fetch dashboard data", decode[errorResponse](t, resp).Error)

	resp = s.do(http.MethodPost, "/api/tables/orders/mount", token, nil)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, fileSource(t))

	resp := s.do(http.MethodGet, "/api/nowhere", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not found", decode[errorResponse](t, resp).Error)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}
