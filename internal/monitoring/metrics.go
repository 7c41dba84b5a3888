package monitoring

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/spacesedan/aspectflow/internal/models"
	"github.com/spacesedan/aspectflow/internal/sentiment"
)

const namespace = "aspectflow"

// RunMetrics collects the numbers of one batch run on its own registry.
type RunMetrics struct {
	registry *prometheus.Registry

	reviewsProcessed prometheus.Counter
	modelCalls       *prometheus.CounterVec
	modelLatency     prometheus.Histogram
	aspectAverage    *prometheus.GaugeVec
	suggestions      prometheus.Gauge
	runDuration      prometheus.Gauge
	lastSuccess      prometheus.Gauge
}

func NewRunMetrics() *RunMetrics {
	m := &RunMetrics{
		registry: prometheus.NewRegistry(),
		reviewsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "reviews_processed_total", Help: "Reviews annotated in this run.",
		}),
		modelCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "model_calls_total", Help: "Sentiment model calls by outcome.",
		}, []string{"status"}),
		modelLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "model_call_duration_seconds", Help: "Sentiment model call duration seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		aspectAverage: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "aspect_average_rating", Help: "Mean rating per aspect.",
		}, []string{"aspect"}),
		suggestions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "suggestions", Help: "Aspects flagged for improvement.",
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "run_duration_seconds", Help: "Wall time of the last run.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "last_success_timestamp_seconds", Help: "Unix time of the last successful run.",
		}),
	}
	m.registry.MustRegister(m.reviewsProcessed, m.modelCalls, m.modelLatency,
		m.aspectAverage, m.suggestions, m.runDuration, m.lastSuccess)
	return m
}

func (m *RunMetrics) Registry() *prometheus.Registry { return m.registry }

func (m *RunMetrics) ReviewsProcessed(n int) { m.reviewsProcessed.Add(float64(n)) }

// InstrumentScorer counts and times every call made through s.
func (m *RunMetrics) InstrumentScorer(s sentiment.Scorer) sentiment.Scorer {
	return sentiment.ScorerFunc(func(ctx context.Context, text string) (int, error) {
		start := time.Now()
		class, err := s.Score(ctx, text)
		m.modelLatency.Observe(time.Since(start).Seconds())
		if err != nil {
			m.modelCalls.WithLabelValues("error").Inc()
		} else {
			m.modelCalls.WithLabelValues("ok").Inc()
		}
		return class, err
	})
}

func (m *RunMetrics) RecordResult(averages models.AspectAverages, suggestions models.Suggestions, took time.Duration) {
	for aspect, avg := range averages {
		m.aspectAverage.WithLabelValues(string(aspect)).Set(avg)
	}
	m.suggestions.Set(float64(len(suggestions)))
	m.runDuration.Set(took.Seconds())
	m.lastSuccess.SetToCurrentTime()
}

// WriteTextfile dumps the registry in the node-exporter textfile format.
func (m *RunMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	slog.Info("[Metrics] Wrote textfile", slog.String("path", path))
	return nil
}
