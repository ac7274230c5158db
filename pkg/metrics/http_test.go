package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestHTTPMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewHTTPMetrics(reg)
	metrics.ObserveRequest("GET", "/products", 200, 120*time.Millisecond)
	metrics.ObserveRequest("GET", "/products", 200, 80*time.Millisecond)
	metrics.ObserveRequest("POST", "/auth/login", 401, 40*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "http_requests_total", "route", "/products"); err != nil {
		t.Fatalf("fetch requests: %v", err)
	} else if got != 2 {
		t.Fatalf("expected requests=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "http_requests_total", "status", "401"); err != nil {
		t.Fatalf("fetch requests: %v", err)
	} else if got != 1 {
		t.Fatalf("expected requests=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "http_request_duration_seconds", "route", "/products"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestHTTPMetricsNilSafe(t *testing.T) {
	var metrics *HTTPMetrics
	metrics.ObserveRequest("GET", "/", 200, time.Millisecond)

	empty := NewHTTPMetrics(nil)
	empty.ObserveRequest("GET", "/", 200, time.Millisecond)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	var total float64
	var found bool
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			total += metric.GetCounter().GetValue()
			found = true
		}
	}
	if !found {
		return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
	}
	return total, nil
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
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
