package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/triage/pkg/domain"
	"github.com/aretw0/triage/pkg/router"
)

func newTestHandler(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	rt, err := router.New()
	require.NoError(t, err)
	h, err := NewHandler(rt, opts...)
	require.NoError(t, err)
	return h
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestLoadSpec(t *testing.T) {
	doc, err := LoadSpec()
	require.NoError(t, err)
	assert.Equal(t, "Triage API", doc.Info.Title)
}

func TestAsk_FDAQuestion(t *testing.T) {
	h := newTestHandler(t)
	w := post(t, h, "/ask", `{"question":"What are the FDA requirements for AI/ML medical devices?"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp domain.AgentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.DomainRegulatory, resp.Category)
	assert.Equal(t, "FDA AI/ML Action Plan", resp.Subcategory)
	assert.GreaterOrEqual(t, resp.Confidence, 0.9)
}

func TestAsk_EmptyQuestionIsAnswered(t *testing.T) {
	h := newTestHandler(t)
	w := post(t, h, "/ask", `{"question":"","context":{"preferences":{"expertise_level":"beginner"}}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp domain.AgentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.DomainGeneral, resp.Category)
	assert.NotEmpty(t, resp.Answer)
}

func TestAsk_RejectsInvalidBody(t *testing.T) {
	h := newTestHandler(t)

	w := post(t, h, "/ask", `{"context":{}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "question is required")

	w = post(t, h, "/ask", `{"question":"hi","context":{"history":[{"role":"robot","content":"x"}]}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "role must be user or assistant")

	w = post(t, h, "/ask", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCapabilities(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/capabilities", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var caps []domain.DomainCapability
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &caps))
	assert.Len(t, caps, 4)

	req = httptest.NewRequest(http.MethodGet, "/capabilities?keyword=FDA", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &caps))
	require.Len(t, caps, 1)
	assert.Equal(t, domain.DomainRegulatory, caps[0].Domain)
}

func TestGetCapability(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/capabilities/assessment", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var c domain.DomainCapability
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
	assert.Equal(t, domain.DomainAssessment, c.Domain)

	req = httptest.NewRequest(http.MethodGet, "/capabilities/legal", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/capabilities/Bad-Name", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	healthy := newTestHandler(t)
	w := httptest.NewRecorder()
	healthy.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	degraded := newTestHandler(t, WithHealthCheck(func(context.Context) error {
		return errors.New("redis down")
	}))
	w = httptest.NewRecorder()
	degraded.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "redis down")
}

func TestMetricsAndSpecEndpoints(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "triage_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	h := newTestHandler(t, WithMetrics(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "triage_test_total 1")

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("openapi: 3.0.3")))
}

func TestCORSPreflight(t *testing.T) {
	h := newTestHandler(t)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/ask", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
