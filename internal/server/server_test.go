package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-composer/internal/config"
	"github.com/jonathan/resume-composer/internal/export"
	"github.com/jonathan/resume-composer/internal/flow"
	"github.com/jonathan/resume-composer/internal/pagination"
	"github.com/jonathan/resume-composer/internal/rendering"
	"github.com/jonathan/resume-composer/internal/server/ratelimit"
	"github.com/jonathan/resume-composer/internal/templates"
)

// brokenExporter stands in for a raster exporter without a browser
type brokenExporter struct{}

func (brokenExporter) Export(context.Context, templates.Layout, []pagination.Page) ([]byte, error) {
	return nil, errors.New("browser unavailable")
}

func newTestServer(t *testing.T, limits *ratelimit.Config) *Server {
	t.Helper()
	if limits == nil {
		limits = &ratelimit.Config{Enabled: false}
	}
	s, err := New(Config{
		Settings:  config.Config{},
		RateLimit: limits,
		Exports: export.NewServiceWithExporters(nil, map[export.Mode]rendering.Exporter{
			export.ModeVector: rendering.NewPDFExporter(),
			export.ModeRaster: brokenExporter{},
		}),
	})
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	return s
}

func readResume(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("../../testdata/resumes/" + name)
	require.NoError(t, err)
	return data
}

func do(t *testing.T, s *Server, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "ok", resp["status"])
	assert.EqualValues(t, 0, resp["exportsInFlight"])
}

func TestTemplatesEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodGet, "/templates", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.EqualValues(t, 6, resp["count"])
	assert.Equal(t, templates.DefaultTemplateID, resp["default"])

	w = do(t, s, http.MethodGet, "/templates?category=modern", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode(t, w)
	assert.EqualValues(t, 2, resp["count"])
	for _, item := range resp["templates"].([]any) {
		assert.Equal(t, "modern", item.(map[string]any)["category"])
	}
}

func TestComposeEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodPost, "/compose?template=modern-professional", readResume(t, "valid/full.json"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp ComposeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "modern-professional", resp.TemplateID)
	assert.GreaterOrEqual(t, resp.PageCount, 1)
	assert.Len(t, resp.Pages, resp.PageCount)
	header := resp.Pages[0].Placements[0].Block
	assert.Equal(t, flow.KindNameHeader, header.Kind)
	assert.Equal(t, templates.RegionFull, header.Region)
	assert.Empty(t, resp.Warnings)
	require.NotNil(t, resp.Violations)
	assert.False(t, resp.Violations.HasErrors())
}

func TestComposeEndpoint_UnknownTemplateFallsBack(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodPost, "/compose?template=does-not-exist", readResume(t, "valid/minimal.json"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp ComposeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, templates.DefaultTemplateID, resp.TemplateID)
	assert.Equal(t, 1, resp.PageCount)
	require.NotEmpty(t, resp.Warnings)
	assert.Contains(t, resp.Warnings[0], "does-not-exist")
}

func TestComposeEndpoint_BadRequests(t *testing.T) {
	s := newTestServer(t, nil)
	valid := readResume(t, "valid/minimal.json")

	tests := []struct {
		name   string
		target string
		body   []byte
		status int
	}{
		{"malformed JSON", "/compose", []byte(`{"personalDetails":`), http.StatusBadRequest},
		{"schema violation", "/compose", readResume(t, "invalid/wrong_type.json"), http.StatusBadRequest},
		{"duplicate ids", "/compose", readResume(t, "invalid/duplicate_ids.json"), http.StatusBadRequest},
		{"unknown page size", "/compose?page_size=tabloid", valid, http.StatusBadRequest},
		{"bad ats flag", "/compose?ats_safe=maybe", valid, http.StatusBadRequest},
		{"body too large", "/compose", bytes.Repeat([]byte(" "), maxBodyBytes+1), http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, tt.target, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.NotEmpty(t, decode(t, w)["error"])
		})
	}
}

func TestPreviewEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodPost, "/preview?page_size=a4", readResume(t, "valid/full.json"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	assert.Equal(t, w.Header().Get("X-Page-Count"), strconv.Itoa(doc.Find(".page").Length()))
	assert.Equal(t, 1, doc.Find("#page-1").Length())
	assert.Contains(t, doc.Find("h1").First().Text(), "Jane Q. Doe")
}

func TestExportEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodPost, "/export?key=jane", readResume(t, "valid/full.json"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, rendering.ContentTypePDF, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Jane_Q._Doe_Resume.pdf"`, w.Header().Get("Content-Disposition"))
	assert.NotEmpty(t, w.Header().Get("X-Page-Count"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
	assert.Zero(t, s.exports.InFlight())
}

func TestExportEndpoint_EmptyResume(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodPost, "/export", readResume(t, "valid/minimal.json"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "1", w.Header().Get("X-Page-Count"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Resume_Resume.pdf")
}

func TestExportEndpoint_Failure(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodPost, "/export?mode=raster", readResume(t, "valid/full.json"))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decode(t, w)
	assert.Equal(t, true, resp["retryable"])
	assert.Contains(t, resp["error"], "browser unavailable")
}

func TestExportEndpoint_UnknownMode(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodPost, "/export?mode=bitmap", readResume(t, "valid/full.json"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "mode")
}

func TestExportEndpoint_CanceledRequest(t *testing.T) {
	s := newTestServer(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/export", bytes.NewReader(readResume(t, "valid/full.json"))).WithContext(ctx)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, true, decode(t, w)["retryable"])
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{},
		EndpointConfigs: []ratelimit.EndpointConfig{
			{Path: "/templates", Method: http.MethodGet, Limit: 1, Window: time.Hour},
		},
	})

	w := do(t, s, http.MethodGet, "/templates", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = do(t, s, http.MethodGet, "/templates", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limit_exceeded", decode(t, w)["error"])

	w = do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodOptions, "/export", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	do(t, s, http.MethodPost, "/compose", readResume(t, "valid/minimal.json"))

	w := do(t, s, http.MethodGet, "/metrics", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "resume_composer_compose_compositions_total")
}

func TestNew_InvalidSettings(t *testing.T) {
	_, err := New(Config{Settings: config.Config{PageSize: "tabloid"}})
	assert.Error(t, err)
}
