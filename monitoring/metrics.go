package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	plansCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "meetlock_plans_created_total",
			Help: "Total plans created",
		},
	)

	plansConfirmed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "meetlock_plans_confirmed_total",
			Help: "Total successful plan confirmations (re-confirms included)",
		},
	)

	responsesIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meetlock_responses_ingested_total",
			Help: "Total responses accepted by the ingestion policy",
		},
		[]string{"outcome"}, // created | merged
	)

	responsesRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meetlock_responses_rejected_total",
			Help: "Total responses rejected before ingestion",
		},
		[]string{"reason"}, // not_found | closed | error
	)
)

// RecordPlanCreated increments the plan creation counter.
func RecordPlanCreated() {
	plansCreated.Inc()
}

// RecordPlanConfirmed increments the confirmation counter.
func RecordPlanConfirmed() {
	plansConfirmed.Inc()
}

// RecordResponseIngested records an accepted vote; merged marks whether it
// collapsed into a recent prior response instead of creating a new row.
func RecordResponseIngested(merged bool) {
	outcome := "created"
	if merged {
		outcome = "merged"
	}
	responsesIngested.WithLabelValues(outcome).Inc()
}

// RecordResponseRejected records a vote refused before ingestion.
func RecordResponseRejected(reason string) {
	responsesRejected.WithLabelValues(reason).Inc()
}
