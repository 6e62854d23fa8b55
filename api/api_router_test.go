package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/cpbotha/dbwriter/api/middleware"
	"github.com/cpbotha/dbwriter/internal/config"
	"github.com/cpbotha/dbwriter/internal/monitoring"
	"github.com/cpbotha/dbwriter/internal/repository/memory"
	"github.com/cpbotha/dbwriter/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func newTestRouter(t *testing.T, health pinger) (*Router, *monitoring.Service) {
	t.Helper()
	mon := monitoring.NewService(prometheus.NewRegistry())
	svc := service.New(memory.NewSampleRepository())
	return NewRouter(svc, health, mon, config.MonitoringConfig{MetricsEnabled: true, MetricsPath: "/metrics"}), mon
}

func do(t *testing.T, h http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRoot(t *testing.T) {
	r, _ := newTestRouter(t, pinger{})
	rec := do(t, r, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":"Hello, World!"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestSampleLifecycle(t *testing.T) {
	r, _ := newTestRouter(t, pinger{})

	rec := do(t, r, http.MethodGet, "/samples", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, r, http.MethodPost, "/samples", "application/json",
		`{"name":"sensor-A","timestamp":"2024-06-01T12:00:00Z","v0":3.5}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":1,"name":"sensor-A","timestamp":"2024-06-01T12:00:00Z","v0":3.5,"v1":null}`, rec.Body.String())

	rec = do(t, r, http.MethodGet, "/samples/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"sensor-A","timestamp":"2024-06-01T12:00:00Z","v0":3.5,"v1":null}`, rec.Body.String())

	rec = do(t, r, http.MethodGet, "/samples", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":1,"name":"sensor-A","timestamp":"2024-06-01T12:00:00Z","v0":3.5,"v1":null}]`, rec.Body.String())

	rec = do(t, r, http.MethodGet, "/samples/999", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"sample with id 999 not found"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestCreateIgnoresClientID(t *testing.T) {
	r, _ := newTestRouter(t, pinger{})

	rec := do(t, r, http.MethodPost, "/samples", "application/json",
		`{"id":42,"name":"x","timestamp":"2024-06-01T12:00:00Z"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":1`)
	assert.Contains(t, rec.Body.String(), `"v0":null`)
}

func TestCreatePreservesOffset(t *testing.T) {
	r, _ := newTestRouter(t, pinger{})

	rec := do(t, r, http.MethodPost, "/samples", "application/json",
		`{"name":"tz","timestamp":"2024-01-01T10:00:00+02:00"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, r, http.MethodGet, "/samples/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"timestamp":"2024-01-01T10:00:00+02:00"`)
}

func TestCreateFromForm(t *testing.T) {
	r, _ := newTestRouter(t, pinger{})

	form := url.Values{}
	form.Set("name", "form-sensor")
	form.Set("timestamp", "2024-06-01T12:00:00Z")
	form.Set("v1", "-2.5")
	form.Set("v0", "")
	form.Set("id", "7")

	rec := do(t, r, http.MethodPost, "/samples", "application/x-www-form-urlencoded", form.Encode())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"id":1,"name":"form-sensor","timestamp":"2024-06-01T12:00:00Z","v0":null,"v1":-2.5}`, rec.Body.String())
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		detail string
	}{
		{"malformed json", `{"name":`, "invalid request body"},
		{"missing name", `{"timestamp":"2024-06-01T12:00:00Z"}`, "name is required"},
		{"blank name", `{"name":"  ","timestamp":"2024-06-01T12:00:00Z"}`, "name is required"},
		{"missing timestamp", `{"name":"x"}`, "timestamp is required"},
		{"naive timestamp", `{"name":"x","timestamp":"2024-06-01T12:00:00"}`, "invalid request body"},
		{"string reading", `{"name":"x","timestamp":"2024-06-01T12:00:00Z","v0":"high"}`, "invalid request body"},
		{"trailing garbage", `{"name":"n","timestamp":"2024-01-01T10:00:00Z"} trailing`, "invalid request body"},
		{"second object", `{"name":"n","timestamp":"2024-01-01T10:00:00Z"}{"name":"m"}`, "unexpected data after JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRouter(t, pinger{})
			rec := do(t, r, http.MethodPost, "/samples", "application/json", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.detail)

			list := do(t, r, http.MethodGet, "/samples", "", "")
			assert.JSONEq(t, `[]`, list.Body.String())
		})
	}
}

func TestGetSampleInvalidID(t *testing.T) {
	r, _ := newTestRouter(t, pinger{})
	rec := do(t, r, http.MethodGet, "/samples/abc", "", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "id must be an integer")
}

func TestCreateAcceptsTrailingWhitespace(t *testing.T) {
	r, _ := newTestRouter(t, pinger{})
	rec := do(t, r, http.MethodPost, "/samples", "application/json",
		"{\"name\":\"n\",\"timestamp\":\"2024-01-01T10:00:00Z\"}\n\n")
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestGetSampleIDOutOfRange(t *testing.T) {
	r, _ := newTestRouter(t, pinger{})

	rec := do(t, r, http.MethodGet, "/samples/9223372036854775808", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"sample with id 9223372036854775808 not found"}`, rec.Body.String())

	rec = do(t, r, http.MethodGet, "/samples/-9223372036854775809", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, r, http.MethodGet, "/samples/12x", "", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t, pinger{})
	rec := do(t, r, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	r, _ = newTestRouter(t, pinger{err: errors.New("connection refused")})
	rec = do(t, r, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"detail":"storage backend unavailable"}`, rec.Body.String())
}

func TestRequestIDIsEchoed(t *testing.T) {
	r, _ := newTestRouter(t, pinger{})
	req := httptest.NewRequest(http.MethodGet, "/samples/5", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-from-client")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "req-from-client", rec.Header().Get(middleware.RequestIDHeader))
}

func TestUnknownRouteAndMethod(t *testing.T) {
	r, _ := newTestRouter(t, pinger{})

	rec := do(t, r, http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Not Found"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	rec = do(t, r, http.MethodDelete, "/samples/1", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"detail":"Method Not Allowed"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	metrics := do(t, r, http.MethodGet, "/metrics", "", "")
	assert.Contains(t, metrics.Body.String(), `dbwriter_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, pinger{})
	do(t, r, http.MethodGet, "/samples/1", "", "")

	rec := do(t, r, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `dbwriter_http_requests_total{method="GET",route="/samples/{id}",status="404"} 1`)
}

func TestDocs(t *testing.T) {
	r, _ := newTestRouter(t, pinger{})
	rec := do(t, r, http.MethodGet, "/docs/doc.json", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "v0 is the first optional sensor value")
}
