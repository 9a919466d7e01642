package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/v1/tasks/:id", "404"))
	ObserveRequest("GET", "/v1/tasks/:id", 404, 20*time.Millisecond)
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/v1/tasks/:id", "404"))

	if after-before != 1 {
		t.Fatalf("expected counter to grow by 1, got %v", after-before)
	}
}

func TestLoginsTotal(t *testing.T) {
	before := testutil.ToFloat64(LoginsTotal.WithLabelValues("ok"))
	LoginsTotal.WithLabelValues("ok").Inc()
	if got := testutil.ToFloat64(LoginsTotal.WithLabelValues("ok")); got != before+1 {
		t.Fatalf("expected %v, got %v", before+1, got)
	}
}
