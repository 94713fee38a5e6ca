package usage

import (
	"context"
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/triage/pkg/domain"
	"github.com/aretw0/triage/pkg/ports"
)

// LogSink writes records as structured log lines.
type LogSink struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLogSink creates a LogSink logging at level.
func NewLogSink(logger *slog.Logger, level slog.Level) *LogSink {
	return &LogSink{logger: logger, level: level}
}

// Write implements ports.UsageSink.
func (s *LogSink) Write(ctx context.Context, rec domain.UsageRecord) error {
	s.logger.Log(ctx, s.level, "question routed",
		"id", rec.ID,
		"domain", rec.Domain,
		"specialist", rec.Specialist,
		"persona", rec.Persona,
		"elapsed_ms", rec.ElapsedMillis(),
		"fallback", rec.Fallback,
		"question", rec.QuestionPrefix,
	)
	return nil
}

// MultiSink writes to every sink and joins their errors.
type MultiSink []ports.UsageSink

// Write implements ports.UsageSink.
func (m MultiSink) Write(ctx context.Context, rec domain.UsageRecord) error {
	var errs []error
	for _, s := range m {
		if err := s.Write(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// PrometheusSink counts routed questions and observes their latency.
type PrometheusSink struct {
	questions *prometheus.CounterVec
	fallbacks *prometheus.CounterVec
	latency   *prometheus.HistogramVec
}

// NewPrometheusSink creates the collectors and registers them with reg.
func NewPrometheusSink(reg prometheus.Registerer) (*PrometheusSink, error) {
	s := &PrometheusSink{
		questions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "triage_questions_total",
				Help: "Total number of routed questions",
			},
			[]string{"domain", "specialist"},
		),
		fallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "triage_fallbacks_total",
				Help: "Total number of questions answered through the fault fallback",
			},
			[]string{"domain"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "triage_route_duration_seconds",
				Help:    "Duration of question routing",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"domain"},
		),
	}
	for _, c := range []prometheus.Collector{s.questions, s.fallbacks, s.latency} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Write implements ports.UsageSink.
func (s *PrometheusSink) Write(_ context.Context, rec domain.UsageRecord) error {
	s.questions.WithLabelValues(rec.Domain, rec.Specialist).Inc()
	if rec.Fallback {
		s.fallbacks.WithLabelValues(rec.Domain).Inc()
	}
	s.latency.WithLabelValues(rec.Domain).Observe(rec.Elapsed.Seconds())
	return nil
}
