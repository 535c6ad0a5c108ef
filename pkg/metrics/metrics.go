package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	OrdersPlaced = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "aarovi",
		Subsystem: "orders",
		Name:      "placed_total",
		Help:      "Orders created at checkout, by payment method.",
	}, []string{"method"})

	PaymentsVerified = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "aarovi",
		Subsystem: "payments",
		Name:      "verified_total",
		Help:      "Gateway payments settled exactly once.",
	})

	PaymentReplays = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "aarovi",
		Subsystem: "payments",
		Name:      "replays_total",
		Help:      "Duplicate verification callbacks answered idempotently.",
	})

	PaymentSignatureFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "aarovi",
		Subsystem: "payments",
		Name:      "signature_failures_total",
		Help:      "Verification callbacks rejected for a bad signature.",
	})
)

func init() {
	prometheus.MustRegister(OrdersPlaced, PaymentsVerified, PaymentReplays, PaymentSignatureFailures)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
