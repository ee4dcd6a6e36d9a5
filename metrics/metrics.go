// Package metrics exposes Prometheus counters for the score ledger and the
// assignment coordinator.
package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// EventsLogged counts committed activity events.
	EventsLogged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stridehub_events_logged_total",
		Help: "Number of activity events committed to the ledger.",
	})

	// ScoreIncrements counts per-challenge score applications; one event can
	// raise scores in several challenges.
	ScoreIncrements = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stridehub_score_increments_total",
		Help: "Number of per-challenge score increments applied.",
	})

	// ReassignmentRuns counts completed assignment reconciliations.
	ReassignmentRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stridehub_reassignment_runs_total",
		Help: "Number of completed user/challenge reassignment runs.",
	})
)

// Handler adapts the Prometheus HTTP handler to gin.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
