// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package observability provides Prometheus metrics for the screening
// service.
//
// # Description
//
// Metrics cover the interview lifecycle:
//   - Session counters (started, completed by risk level, evicted)
//   - Answer counters by outcome (accepted, rejected, forced)
//   - Retry enqueue counter by rejection reason
//   - Turn latency histogram
//   - Active session gauge
//
// # Integration
//
// Metrics are exposed via the /metrics endpoint. Use with Prometheus +
// Grafana for dashboards and alerting.
//
// # Thread Safety
//
// All metric operations are thread-safe via Prometheus's internal locking.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const metricsNamespace = "pulmoscreen"

// Subsystem for interview metrics
const interviewSubsystem = "interview"

// ScreeningMetrics holds all Prometheus metrics for interview operations.
// Initialize once at startup via InitMetrics().
type ScreeningMetrics struct {
	// SessionsStartedTotal counts interview sessions created.
	// Labels: mode (sequential, adaptive)
	SessionsStartedTotal *prometheus.CounterVec

	// SessionsCompletedTotal counts finished interviews.
	// Labels: risk_level (low, medium, high)
	SessionsCompletedTotal *prometheus.CounterVec

	// SessionsEvictedTotal counts idle sessions reclaimed by the cleaner.
	SessionsEvictedTotal prometheus.Counter

	// AnswersTotal counts submitted answers by outcome.
	// Labels: outcome (accepted, accepted_after_retry, forced, rejected)
	AnswersTotal *prometheus.CounterVec

	// RetriesTotal counts retry enqueues by rejection reason.
	// Labels: reason (empty, not_an_option, out_of_range, ...)
	RetriesTotal *prometheus.CounterVec

	// TurnDurationSeconds measures answer-to-next-question latency,
	// including any rephrase round trip.
	TurnDurationSeconds prometheus.Histogram

	// ActiveSessions tracks interviews currently in flight.
	ActiveSessions prometheus.Gauge
}

// DefaultMetrics is the singleton instance of ScreeningMetrics.
// Initialized by InitMetrics().
var DefaultMetrics *ScreeningMetrics

// InitMetrics creates and registers all metrics on the default registry.
// Call once at startup; duplicate registration panics.
func InitMetrics() *ScreeningMetrics {
	DefaultMetrics = newMetrics(prometheus.DefaultRegisterer)
	return DefaultMetrics
}

// NewMetricsWithRegistry registers the metrics on a caller-supplied
// registry. Tests use this to avoid cross-test duplicate registration.
func NewMetricsWithRegistry(reg prometheus.Registerer) *ScreeningMetrics {
	return newMetrics(reg)
}

func newMetrics(reg prometheus.Registerer) *ScreeningMetrics {
	factory := promauto.With(reg)
	return &ScreeningMetrics{
		SessionsStartedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: interviewSubsystem,
				Name:      "sessions_started_total",
				Help:      "Total interview sessions created by selection mode",
			},
			[]string{"mode"},
		),

		SessionsCompletedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: interviewSubsystem,
				Name:      "sessions_completed_total",
				Help:      "Total interviews completed by assessed risk level",
			},
			[]string{"risk_level"},
		),

		SessionsEvictedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: interviewSubsystem,
				Name:      "sessions_evicted_total",
				Help:      "Total idle sessions reclaimed by the background cleaner",
			},
		),

		AnswersTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: interviewSubsystem,
				Name:      "answers_total",
				Help:      "Total submitted answers by validation outcome",
			},
			[]string{"outcome"},
		),

		RetriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: interviewSubsystem,
				Name:      "retries_total",
				Help:      "Total retry enqueues by rejection reason",
			},
			[]string{"reason"},
		),

		TurnDurationSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: interviewSubsystem,
				Name:      "turn_duration_seconds",
				Help:      "Latency from answer submission to next question",
				Buckets:   []float64{0.001, 0.005, 0.025, 0.1, 0.5, 1.0, 2.5, 10.0},
			},
		),

		ActiveSessions: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: interviewSubsystem,
				Name:      "active_sessions",
				Help:      "Number of interviews currently in flight",
			},
		),
	}
}

// OutcomeRejected labels an answer that failed structural validation.
// Accepted outcomes use the engine's recorded outcome strings directly.
const OutcomeRejected = "rejected"
