package observability

import (
	"testing"
	"time"

	"github.com/danmuck/stellartoml/internal/testutil/testlog"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	testlog.Start(t)
	RegisterMetrics()
	RegisterMetrics()

	RecordHTTPRequest("tomlctl", "GET", "/health", 200, 12*time.Millisecond)

	before := testutil.ToFloat64(resolveTotal.WithLabelValues("client_response"))
	RecordResolve("client_response", 24*time.Millisecond)
	RecordResolve("client_response", 30*time.Millisecond)
	after := testutil.ToFloat64(resolveTotal.WithLabelValues("client_response"))
	if after-before != 2 {
		t.Fatalf("unexpected resolve counter delta: %v", after-before)
	}
}
