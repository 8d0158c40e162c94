package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// JudgeRequestLatency records external judge call latency by model and outcome.
	JudgeRequestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_judge_request_latency_seconds",
		Help:    "External judge call latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	// EvaluationsTotal counts comment evaluations by result class.
	EvaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_evaluations_total",
		Help: "Total comment evaluations by result (scored, prefiltered, degraded)",
	}, []string{"result"})

	// PointsMutationsTotal counts ledger mutations by reason.
	PointsMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_points_mutations_total",
		Help: "Total points-ledger mutations by reason",
	}, []string{"reason"})

	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)

// ObserveJudgeLatency records one judge call.
func ObserveJudgeLatency(outcome string, elapsed time.Duration) {
	JudgeRequestLatency.WithLabelValues(outcome).Observe(elapsed.Seconds())
}
