package hyperbolic

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCostReportWithBilling(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/billing/history", r.URL.Path)
		io.WriteString(w, `{"purchase_history": [
			{"amount": 12.00, "description": "gpu rental", "timestamp": "2024-03-18T00:00:00Z"},
			{"amount": 6.50, "description": "gpu rental", "timestamp": "2024-03-19T00:00:00Z"}
		]}`)
	}))
	defer srv.Close()

	c := NewClient("sekrit")
	c.Host = srv.URL

	report, err := c.CostReport(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 12.00, report.Usage.DailyCost, 0.001)
	assert.Len(t, report.Recommendations, 3)
	assert.Len(t, report.Billing, 2)
	assert.InDelta(t, 18.50, report.TotalSpend, 0.001)

	ts, err := report.Billing[0].Time()
	require.NoError(t, err)
	assert.Equal(t, 18, ts.Day())
}

func TestCostReportBillingUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient("sekrit")
	c.Host = srv.URL
	// keep the degraded-path test quick
	c.Client = c.getWriteClient()

	report, err := c.CostReport(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Billing)
	assert.Len(t, report.Recommendations, 3)
	assert.InDelta(t, 12.00, report.Usage.DailyCost, 0.001)
}

func TestCostReportRenderTree(t *testing.T) {
	r := &CostReport{
		Usage:           UsageSummary{GPUHoursPerDay: 24, CostPerHour: 0.50, DailyCost: 12.00},
		Recommendations: defaultRecommendations(),
		Billing:         []BillingEntry{{Amount: 3.25, Description: "gpu rental"}},
		TotalSpend:      3.25,
	}

	out := r.RenderTree()
	assert.Contains(t, out, "current usage")
	assert.Contains(t, out, "daily cost: $12.00")
	assert.Contains(t, out, "schedule_optimization")
	assert.Contains(t, out, "potential savings: 30%")
	assert.Contains(t, out, "$3.25 gpu rental")
}
