package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"cvscore-api/internal/analyses"
	"cvscore-api/internal/cvscore"
	"cvscore-api/internal/services/health"
	"cvscore-api/internal/shared/config"
)

func testRouter(t *testing.T, rps float64, burst int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := cvscore.Default()
	svc := analyses.NewService(engine, analyses.NewMemoryRepo(), 0)
	return NewRouter(RouterDeps{
		Config: config.Config{
			Env:             "dev",
			CORSAllowOrigin: []string{"http://localhost:5173"},
			RateLimitRPS:    rps,
			RateLimitBurst:  burst,
		},
		AnalysisHandler: analyses.NewHandler(svc, 1<<20),
		Health:          health.NewService(nil, engine.Catalog().Version),
	})
}

func TestRouterServesHealthAndMetrics(t *testing.T) {
	r := testRouter(t, 0, 0)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var status health.Status
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !status.OK || status.CatalogVersion != "za-2024.1" {
		t.Fatalf("unexpected health %+v", status)
	}

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "cv_analysis_total") {
		t.Fatalf("unexpected metrics response %d", resp.Code)
	}
}

func TestRouterAnalyzeEndToEnd(t *testing.T) {
	r := testRouter(t, 0, 0)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(`{"text":"Experience\n- Led a team\nSkills\nPython"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if resp.Header().Get("X-Request-Id") == "" || resp.Header().Get("X-Analysis-Id") == "" {
		t.Fatal("expected request and analysis id headers")
	}
}

func TestRouterRateLimitsAnalyze(t *testing.T) {
	r := testRouter(t, 1, 1)

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(`{"text":"Skills"}`))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		codes = append(codes, resp.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("expected 200 then 429, got %v", codes)
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	r := testRouter(t, 0, 0)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestAddr(t *testing.T) {
	for in, want := range map[string]string{"": ":8080", "9000": ":9000", ":7000": ":7000"} {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
