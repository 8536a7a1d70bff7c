package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reserva_praia",
			Name:      "booking_mutations_total",
			Help:      "Booking mutations by operation (create, update, delete).",
		},
		[]string{"operation"},
	)

	rejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reserva_praia",
			Name:      "rejections_total",
			Help:      "User-recoverable rejections by reason.",
		},
		[]string{"reason"},
	)

	exports = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "reserva_praia",
			Name:      "exports_total",
			Help:      "Workbook exports written.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingMutations, rejections, exports)
	})
}

// IncMutation increments the counter for a booking operation label.
func IncMutation(operation string) {
	bookingMutations.WithLabelValues(operation).Inc()
}

// IncRejection increments the counter for a rejection reason label.
func IncRejection(reason string) {
	rejections.WithLabelValues(reason).Inc()
}

// IncExport counts a finished workbook export.
func IncExport() {
	exports.Inc()
}
