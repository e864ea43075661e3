package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ActionsEvaluated counts every action that passed through the duel
	// engine, labeled by challenge type and outcome.
	ActionsEvaluated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shieldspear",
			Subsystem: "duel",
			Name:      "actions_total",
			Help:      "Total number of evaluated duel actions",
		},
		[]string{"challenge_type", "outcome"},
	)

	BotActions = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shieldspear",
			Subsystem: "duel",
			Name:      "bot_actions_total",
			Help:      "Total number of actions submitted by bot opponents",
		},
	)

	ActiveDuels = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "shieldspear",
			Subsystem: "duel",
			Name:      "active_sessions",
			Help:      "Number of duel sessions currently in progress",
		},
	)
)

func Handler() http.Handler {
	return promhttp.Handler()
}
