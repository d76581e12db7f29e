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
	ingestionStartedTotal              atomic.Uint64
	ingestionCompletedTotal            atomic.Uint64
	ingestionFailedTotal               atomic.Uint64
	ingestionCompensationFailuresTotal atomic.Uint64

	aiExtractionDuration = newHistogram([]float64{250, 500, 1000, 2000, 5000, 10000, 30000, 60000, 120000})
)

// IncIngestionStarted increments the started counter.
func IncIngestionStarted() {
	ingestionStartedTotal.Add(1)
}

// IncIngestionCompleted increments the completed counter.
func IncIngestionCompleted() {
	ingestionCompletedTotal.Add(1)
}

// IncIngestionFailed increments the failed counter.
func IncIngestionFailed() {
	ingestionFailedTotal.Add(1)
}

// IncCompensationFailure counts a compensating action that returned an error.
func IncCompensationFailure() {
	ingestionCompensationFailuresTotal.Add(1)
}

// ObserveAIExtractionMs records one provider call in milliseconds.
func ObserveAIExtractionMs(value float64) {
	if value < 0 {
		value = 0
	}
	aiExtractionDuration.Observe(value)
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
	writeCounter(&buf, "ingestion_started_total", "Total résumé ingestions started", ingestionStartedTotal.Load())
	writeCounter(&buf, "ingestion_completed_total", "Total résumé ingestions completed", ingestionCompletedTotal.Load())
	writeCounter(&buf, "ingestion_failed_total", "Total résumé ingestions failed", ingestionFailedTotal.Load())
	writeCounter(&buf, "ingestion_compensation_failures_total", "Compensating actions that failed", ingestionCompensationFailuresTotal.Load())
	writeHistogram(&buf, "ai_extraction_duration_ms", "AI extraction duration in milliseconds", aiExtractionDuration.Snapshot())
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

// Observe counts value in the first bucket whose bound it does not exceed.
// Render accumulates the per-bucket counts.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
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
