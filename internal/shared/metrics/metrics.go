package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	analysisTotal            atomic.Uint64
	analysisValidationFailed atomic.Uint64
	analysisFailedTotal      atomic.Uint64
	analysisCacheHitsTotal   atomic.Uint64
	recordFailedTotal        atomic.Uint64
	extractionFailedTotal    atomic.Uint64

	analysisDuration = newHistogram([]float64{1, 5, 10, 25, 50, 100, 250, 500, 1000})
	overallScore     = newHistogram([]float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100})
)

// IncAnalysis counts a completed analysis.
func IncAnalysis() {
	analysisTotal.Add(1)
}

// IncValidationFailed counts an analysis rejected for bad input.
func IncValidationFailed() {
	analysisValidationFailed.Add(1)
}

// IncAnalysisFailed counts an analysis that failed for any other reason.
func IncAnalysisFailed() {
	analysisFailedTotal.Add(1)
}

// IncCacheHit counts an analysis served from the result cache.
func IncCacheHit() {
	analysisCacheHitsTotal.Add(1)
}

// IncRecordFailed counts an analysis whose history record could not be stored.
func IncRecordFailed() {
	recordFailedTotal.Add(1)
}

// IncExtractionFailed counts an upload whose text could not be extracted.
func IncExtractionFailed() {
	extractionFailedTotal.Add(1)
}

// CacheHits returns the cache hit counter.
func CacheHits() uint64 {
	return analysisCacheHitsTotal.Load()
}

// ObserveAnalysisDurationMs records an analysis duration in milliseconds.
func ObserveAnalysisDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	analysisDuration.Observe(value)
}

// ObserveOverallScore records the overall score of a completed analysis.
func ObserveOverallScore(score int) {
	overallScore.Observe(float64(score))
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "cv_analysis_total", "Total CV analyses completed", analysisTotal.Load())
	writeCounter(&buf, "cv_analysis_validation_failed_total", "Total analyses rejected for invalid input", analysisValidationFailed.Load())
	writeCounter(&buf, "cv_analysis_failed_total", "Total analyses failed", analysisFailedTotal.Load())
	writeCounter(&buf, "cv_analysis_cache_hits_total", "Total analyses served from cache", analysisCacheHitsTotal.Load())
	writeCounter(&buf, "cv_analysis_record_failed_total", "Total analysis records that could not be stored", recordFailedTotal.Load())
	writeCounter(&buf, "cv_extraction_failed_total", "Total uploads whose text could not be extracted", extractionFailedTotal.Load())
	writeHistogram(&buf, "cv_analysis_duration_ms", "Analysis duration in milliseconds", analysisDuration.Snapshot())
	writeHistogram(&buf, "cv_analysis_overall_score", "Overall score distribution", overallScore.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe adds value to the first bucket whose bound covers it.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
