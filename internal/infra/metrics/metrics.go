// Package metrics holds the Prometheus instrumentation for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the address service.
type Metrics struct {
	RegistrationsTotal *prometheus.CounterVec
	LookupsTotal       *prometheus.CounterVec
	VerificationsTotal *prometheus.CounterVec
	KeysIssuedTotal    prometheus.Counter
}

// New initializes and registers the Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		RegistrationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wasul",
			Subsystem: "registry",
			Name:      "registrations_total",
			Help:      "Total number of address registrations by status.",
		}, []string{"status"}), // status: created, rejected, error
		LookupsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wasul",
			Subsystem: "resolver",
			Name:      "lookups_total",
			Help:      "Total number of address lookups by result.",
		}, []string{"result"}), // result: hit, miss, unauthorized
		VerificationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wasul",
			Subsystem: "verification",
			Name:      "reports_total",
			Help:      "Total number of delivery outcome reports by outcome.",
		}, []string{"outcome"}), // outcome: success, failure
		KeysIssuedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "wasul",
			Subsystem: "partner",
			Name:      "keys_issued_total",
			Help:      "Total number of partner API keys issued.",
		}),
	}
}
