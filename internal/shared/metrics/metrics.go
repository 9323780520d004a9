// Package metrics exposes process counters in Prometheus text format
// without pulling in a client library.
package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	chatRequestsTotal     atomic.Uint64
	titlesGeneratedTotal  atomic.Uint64
	reasoningCallsTotal   atomic.Uint64
	reasoningFailureTotal atomic.Uint64

	reasoningDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncChatRequest increments the chat request counter.
func IncChatRequest() {
	chatRequestsTotal.Add(1)
}

// IncTitlesGenerated increments the generated-recommendation counter.
func IncTitlesGenerated() {
	titlesGeneratedTotal.Add(1)
}

// IncReasoningCall increments the reasoning-call counter.
func IncReasoningCall() {
	reasoningCallsTotal.Add(1)
}

// IncReasoningFailure increments the reasoning-failure counter.
func IncReasoningFailure() {
	reasoningFailureTotal.Add(1)
}

// ObserveReasoningDurationMs records a reasoning call duration in milliseconds.
func ObserveReasoningDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	reasoningDuration.Observe(value)
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
	writeCounter(&buf, "chat_requests_total", "Total chat requests handled", chatRequestsTotal.Load())
	writeCounter(&buf, "titles_generated_total", "Total title recommendations produced", titlesGeneratedTotal.Load())
	writeCounter(&buf, "reasoning_calls_total", "Total external reasoning calls", reasoningCallsTotal.Load())
	writeCounter(&buf, "reasoning_failures_total", "Total external reasoning failures", reasoningFailureTotal.Load())
	writeHistogram(&buf, "reasoning_call_duration_ms", "Reasoning call duration in milliseconds", reasoningDuration.Snapshot())
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

// Observe records value into the first bucket whose bound contains it.
// Buckets store per-bucket counts; the renderer accumulates them into the
// cumulative form the exposition format requires.
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

// NowMillis returns the current time in milliseconds.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
