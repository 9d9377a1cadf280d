package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "core_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	SwipesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "core_swipes_recorded_total",
			Help: "Total number of recorded swipes.",
		},
		[]string{"action"},
	)
	MatchesCreatedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "core_matches_created_total",
			Help: "Total number of created matches.",
		},
	)
	ApplicationEventsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "core_application_events_total",
			Help: "Total number of application lifecycle events.",
		},
		[]string{"event"},
	)
	NotificationsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "core_notifications_delivered_total",
			Help: "Total number of delivered in-app notifications.",
		},
	)
	ContractSweepDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "core_contract_sweep_duration_seconds",
			Help:    "Duration of each contract expiry sweep in seconds.",
			Buckets: []float64{0.1, 0.5, 1, 5, 30, 120},
		},
	)
)

func StartMetricsServer(port int) {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(SwipesCounter)
	prometheus.MustRegister(MatchesCreatedCounter)
	prometheus.MustRegister(ApplicationEventsCounter)
	prometheus.MustRegister(NotificationsCounter)
	prometheus.MustRegister(ContractSweepDuration)

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", port), nil))
	}()
}
