package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestListingMetricsExportsCountersAndGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewListingMetrics(reg)

	metrics.IncFeedRequest()
	metrics.AddScoredProperties(12)
	metrics.IncAlertMatch()
	metrics.IncDispatched("in_app")
	metrics.IncDispatched("email")
	metrics.IncDispatched("")
	metrics.ConnectionOpened()
	metrics.ConnectionOpened()
	metrics.ConnectionClosed()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "feed_requests_total", "", ""); err != nil {
		t.Fatalf("fetch feed requests: %v", err)
	} else if got != 1 {
		t.Fatalf("expected feed_requests_total=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "feed_scored_properties_total", "", ""); err != nil {
		t.Fatalf("fetch scored properties: %v", err)
	} else if got != 12 {
		t.Fatalf("expected feed_scored_properties_total=12, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "notifications_dispatched_total", "channel", "in_app"); err != nil {
		t.Fatalf("fetch dispatched: %v", err)
	} else if got != 1 {
		t.Fatalf("expected in_app dispatches=1, got %f", got)
	}

	// blank channels collapse into "unknown" instead of an empty label
	if got, err := fetchCounterValue(mfs, "notifications_dispatched_total", "channel", "unknown"); err != nil {
		t.Fatalf("fetch unknown dispatched: %v", err)
	} else if got != 1 {
		t.Fatalf("expected unknown dispatches=1, got %f", got)
	}

	if got, err := fetchGaugeValue(mfs, "realtime_connections"); err != nil {
		t.Fatalf("fetch connections: %v", err)
	} else if got != 1 {
		t.Fatalf("expected realtime_connections=1, got %f", got)
	}
}

func TestListingMetricsNilRegistererIsInert(t *testing.T) {
	metrics := NewListingMetrics(nil)
	metrics.IncFeedRequest()
	metrics.AddScoredProperties(5)
	metrics.IncAlertMatch()
	metrics.IncDispatched("realtime")
	metrics.ConnectionOpened()
	metrics.ConnectionClosed()
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if label == "" || matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchGaugeValue(mfs []*dto.MetricFamily, name string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		return metric.GetGauge().GetValue(), nil
	}
	return 0, fmt.Errorf("metric %q has no samples", name)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
