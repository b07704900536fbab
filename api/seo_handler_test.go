package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemap(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/sitemap.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/xml; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "<loc>https://westbourneadvisory.com</loc>")
	assert.Contains(t, body, "<loc>https://westbourneadvisory.com/blog/parental-orders</loc>")
	assert.Contains(t, body, "<lastmod>2024-02-01T09:00:00Z</lastmod>")
	assert.Contains(t, body, "<loc>https://westbourneadvisory.com/blog/timeline</loc>")
	assert.True(t, env.cms.sawQuery(map[string]string{"pagination[pageSize]": "100"}))
}

func TestSitemapCMSDown(t *testing.T) {
	env := newTestEnv(t)
	env.cms.setFail(true)

	rec := env.get(t, "/sitemap.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 6, strings.Count(rec.Body.String(), "<url>"))
	assert.NotContains(t, rec.Body.String(), "/blog/")
}

func TestRobots(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/robots.txt")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Disallow: /api/\n")
	assert.True(t, strings.HasSuffix(rec.Body.String(), "Sitemap: https://westbourneadvisory.com/sitemap.xml\n"))
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	var res HealthResponse
	decodeJSON(t, rec, &res)
	assert.Equal(t, HealthResponse{Status: "ok", Uptime: "1h0m0s", Database: "disabled"}, res)

	env = newTestEnv(t, withMockDB())
	rec = env.get(t, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &res)
	assert.Equal(t, "ok", res.Database)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusOK, env.get(t, "/blog/parental-orders").Code)
	require.Equal(t, http.StatusNotFound, env.get(t, "/blog/missing").Code)

	rec := env.get(t, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `http_requests_total{method="GET",route="/blog/{slug}",status="200"} 1`)
	assert.Contains(t, body, `http_requests_total{method="GET",route="/blog/{slug}",status="404"} 1`)
	assert.Contains(t, body, `http_request_duration_seconds_count{method="GET",route="/blog/{slug}"} 2`)
	assert.Contains(t, body, "cms_")
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/blog-posts", nil)
	req.Header.Set("Origin", "https://admin.westbourneadvisory.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := env.do(t, req)
	assert.Less(t, rec.Code, 300)
	assert.Equal(t, "https://admin.westbourneadvisory.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/blog-posts", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec = env.do(t, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	var res ErrorResponse
	decodeJSON(t, rec, &res)
	assert.Contains(t, res.Details, "https://elsewhere.example")
}

func TestCORSSimpleRequest(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/video-sections", nil)
	req.Header.Set("Origin", "https://westbourneadvisory.com")
	rec := env.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://westbourneadvisory.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLogInternalServerErrorsRecoversPanic(t *testing.T) {
	handler := LogInternalServerErrors(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	handler := requestLogging(zerolog.New(&buf))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/brew", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "/brew", line["path"])
	assert.Equal(t, float64(http.StatusTeapot), line["status"])
}

func TestContentSecurityPolicyWithoutCMS(t *testing.T) {
	csp := contentSecurityPolicy("")
	assert.Contains(t, csp, "connect-src 'self';")
	assert.NotContains(t, csp, "  ")
}

func TestOrigin(t *testing.T) {
	assert.Equal(t, "https://cms.example.com", origin("https://cms.example.com/api/"))
	assert.Empty(t, origin("not a url"))
}
