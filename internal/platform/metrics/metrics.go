package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	OrdersCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Gateway orders requested, by result",
		},
		[]string{"result"},
	)

	TicketsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_issued_total",
			Help: "Tickets persisted and mailed after a verified payment",
		},
	)

	SignatureFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "signature_failures_total",
			Help: "Payment callbacks rejected because the signature did not match",
		},
	)

	NotificationsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notifications_failed_total",
			Help: "Tickets persisted whose QR or confirmation mail failed",
		},
	)

	Redemptions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redemptions_total",
			Help: "Redemption attempts, by result",
		},
		[]string{"result"},
	)

	IssuanceDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "issuance_duration_seconds",
			Help:    "Time from verified signature to mailed ticket",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)
)

func Handler() http.Handler {
	return promhttp.Handler()
}
