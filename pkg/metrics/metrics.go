package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ListingMetrics records counters for the feed, alert and dispatch pipelines.
type ListingMetrics struct {
	feedRequests     prometheus.Counter
	scoredProperties prometheus.Counter
	alertMatches     prometheus.Counter
	dispatched       *prometheus.CounterVec
	wsConnections    prometheus.Gauge
}

// NewListingMetrics registers the listing metrics on the provided registerer.
func NewListingMetrics(reg prometheus.Registerer) *ListingMetrics {
	if reg == nil {
		return &ListingMetrics{}
	}
	feedRequests := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "feed_requests_total",
		Help: "Personalized feed computations served.",
	})
	scoredProperties := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "feed_scored_properties_total",
		Help: "Properties run through the relevance scorer.",
	})
	alertMatches := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "alert_matches_total",
		Help: "Alert subscriptions matched by new listings.",
	})
	dispatched := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_dispatched_total",
		Help: "Notifications fanned out, labeled by channel.",
	}, []string{"channel"})
	wsConnections := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "realtime_connections",
		Help: "Currently registered websocket connections.",
	})
	reg.MustRegister(feedRequests, scoredProperties, alertMatches, dispatched, wsConnections)
	return &ListingMetrics{
		feedRequests:     feedRequests,
		scoredProperties: scoredProperties,
		alertMatches:     alertMatches,
		dispatched:       dispatched,
		wsConnections:    wsConnections,
	}
}

// IncFeedRequest counts one served feed computation.
func (m *ListingMetrics) IncFeedRequest() {
	if m == nil || m.feedRequests == nil {
		return
	}
	m.feedRequests.Inc()
}

// AddScoredProperties counts properties evaluated by the scorer.
func (m *ListingMetrics) AddScoredProperties(n int) {
	if m == nil || m.scoredProperties == nil || n <= 0 {
		return
	}
	m.scoredProperties.Add(float64(n))
}

// IncAlertMatch counts one matched alert subscription.
func (m *ListingMetrics) IncAlertMatch() {
	if m == nil || m.alertMatches == nil {
		return
	}
	m.alertMatches.Inc()
}

// IncDispatched counts one notification delivered on the named channel.
func (m *ListingMetrics) IncDispatched(channel string) {
	if m == nil || m.dispatched == nil {
		return
	}
	if channel == "" {
		channel = "unknown"
	}
	m.dispatched.WithLabelValues(channel).Inc()
}

// ConnectionOpened bumps the websocket connection gauge.
func (m *ListingMetrics) ConnectionOpened() {
	if m == nil || m.wsConnections == nil {
		return
	}
	m.wsConnections.Inc()
}

// ConnectionClosed lowers the websocket connection gauge.
func (m *ListingMetrics) ConnectionClosed() {
	if m == nil || m.wsConnections == nil {
		return
	}
	m.wsConnections.Dec()
}
