package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestObserveRecordsRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("GET", "/api/v1/products", 200, 25*time.Millisecond)
	m.Observe("GET", "/api/v1/products", 200, 30*time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	var counter *dto.MetricFamily
	for _, fam := range families {
		if fam.GetName() == "http_requests_total" {
			counter = fam
		}
	}
	if counter == nil {
		t.Fatal("expected http_requests_total family")
	}
	if got := counter.GetMetric()[0].GetCounter().GetValue(); got != 2 {
		t.Fatalf("expected 2 requests recorded, got %v", got)
	}
}

func TestObserveNilReceiverIsNoop(t *testing.T) {
	var m *HTTPMetrics
	m.Observe("GET", "/x", 200, time.Millisecond)

	empty := NewHTTPMetrics(nil)
	empty.Observe("GET", "", 500, time.Millisecond)
}
