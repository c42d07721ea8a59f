// Package metrics exposes Prometheus collectors for the notification pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultSkipped = "skipped"
)

var (
	eventsEmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifier_events_emitted_total",
			Help: "Events handed to the realtime and durable fan-out",
		},
		[]string{"type"},
	)
	realtimePublishes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifier_realtime_publishes_total",
			Help: "Topic publishes on the realtime broker",
		},
		[]string{"result"},
	)
	durableWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifier_durable_writes_total",
			Help: "Notification record inserts",
		},
		[]string{"result"},
	)
	deliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifier_channel_deliveries_total",
			Help: "External channel delivery attempts",
		},
		[]string{"channel", "result"},
	)
	deliveryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notifier_channel_delivery_duration_seconds",
			Help:    "Duration of external channel delivery attempts",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"channel"},
	)
	bulkRecipients = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifier_bulk_recipients_total",
			Help: "Recipients processed by bulk dispatch",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		eventsEmitted,
		realtimePublishes,
		durableWrites,
		deliveries,
		deliveryDuration,
		bulkRecipients,
	)
}

// IncEventEmitted counts one emitted event of the given type.
func IncEventEmitted(eventType string) {
	eventsEmitted.WithLabelValues(eventType).Inc()
}

// IncRealtimePublish counts one topic publish.
func IncRealtimePublish(result string) {
	realtimePublishes.WithLabelValues(result).Inc()
}

// IncDurableWrite counts one record insert attempt.
func IncDurableWrite(result string) {
	durableWrites.WithLabelValues(result).Inc()
}

// ObserveDelivery records one channel attempt and how long it took.
func ObserveDelivery(channel string, success bool, took time.Duration) {
	result := ResultFailure
	if success {
		result = ResultSuccess
	}
	deliveries.WithLabelValues(channel, result).Inc()
	deliveryDuration.WithLabelValues(channel).Observe(took.Seconds())
}

// IncBulkRecipient counts one recipient processed by the throttler.
func IncBulkRecipient(success bool) {
	if success {
		bulkRecipients.WithLabelValues(ResultSuccess).Inc()
		return
	}
	bulkRecipients.WithLabelValues(ResultFailure).Inc()
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler { return promhttp.Handler() }
