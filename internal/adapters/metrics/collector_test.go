package metrics

import (
	"BankAccounts/internal/core/ports"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_ObserveRemoteCheck(t *testing.T) {
	c := NewCollector("accounts")

	c.ObserveRemoteCheck(ports.CheckBankExists, ports.OutcomeFound, 10*time.Millisecond)
	c.ObserveRemoteCheck(ports.CheckBankExists, ports.OutcomeFailure, time.Second)
	c.ObserveRemoteCheck(ports.CheckBankExists, ports.OutcomeFailure, time.Second)

	if got := testutil.ToFloat64(c.remoteChecks.WithLabelValues(ports.CheckBankExists, ports.OutcomeFailure)); got != 2 {
		t.Errorf("Expected 2 failures, got %v", got)
	}
	if got := testutil.ToFloat64(c.remoteChecks.WithLabelValues(ports.CheckBankExists, ports.OutcomeFound)); got != 1 {
		t.Errorf("Expected 1 found, got %v", got)
	}
	if got := testutil.ToFloat64(c.remoteChecks.WithLabelValues(ports.CheckBankExists, ports.OutcomeNotFound)); got != 0 {
		t.Errorf("Expected 0 not_found, got %v", got)
	}
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector("banks")
	c.ObserveRequest("GET", "/api/banks/{id}", 404, time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	out := string(body)
	if !strings.Contains(out, `http_requests_total{method="GET",route="/api/banks/{id}",service="banks",status="404"} 1`) {
		t.Errorf("Request counter missing from output:\n%s", out)
	}
	if strings.Contains(out, "go_goroutines") {
		t.Error("Private registry should not carry the default collectors")
	}
}
