package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "meetsched",
			Name:      "booking_created_total",
			Help:      "Count of bookings accepted and stored.",
		},
	)

	bookingRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "meetsched",
			Name:      "booking_rejected_total",
			Help:      "Count of booking requests rejected, by error code.",
		},
		[]string{"code"},
	)

	notificationSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "meetsched",
			Name:      "notification_sent_total",
			Help:      "Count of notification attempts, by recipient kind and outcome.",
		},
		[]string{"recipient", "outcome"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "meetsched",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by path and status.",
			Buckets:   []float64{.005, .01, .05, .1, .5, 1, 2, 5},
		},
		[]string{"path", "status"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingCreated, bookingRejected, notificationSent, httpDuration)
	})
}

func IncBookingCreated() {
	bookingCreated.Inc()
}

func IncBookingRejected(code string) {
	bookingRejected.WithLabelValues(code).Inc()
}

func IncNotificationSent(recipient string, ok bool) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	notificationSent.WithLabelValues(recipient, outcome).Inc()
}

func ObserveHTTPRequest(path, status string, seconds float64) {
	httpDuration.WithLabelValues(path, status).Observe(seconds)
}
