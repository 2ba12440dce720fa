package metrics

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{1, 10, 100})
	for _, v := range []float64{0.5, 5, 5, 50, 500} {
		h.Observe(v)
	}
	snap := h.Snapshot()
	if snap.count != 5 || snap.sum != 560.5 {
		t.Fatalf("unexpected snapshot count=%d sum=%v", snap.count, snap.sum)
	}
	var buf bytes.Buffer
	writeHistogram(&buf, "x", "help", snap)
	out := buf.String()
	for _, want := range []string{
		`x_bucket{le="1"} 1`,
		`x_bucket{le="10"} 3`,
		`x_bucket{le="100"} 4`,
		`x_bucket{le="+Inf"} 5`,
		`x_sum 560.5`,
		`x_count 5`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestHandlerServesCounters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	before := CacheHits()
	IncCacheHit()
	if CacheHits() != before+1 {
		t.Fatalf("cache hit counter did not move")
	}

	r := gin.New()
	r.GET("/metrics", Handler())
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	for _, name := range []string{"cv_analysis_total", "cv_analysis_cache_hits_total", "cv_analysis_duration_ms_bucket", "cv_analysis_overall_score_count"} {
		if !strings.Contains(body, name) {
			t.Fatalf("missing metric %s", name)
		}
	}
}
