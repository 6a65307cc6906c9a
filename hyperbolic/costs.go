package hyperbolic

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xlab/treeprint"
)

// UsageSummary models the agent's steady-state inference footprint. The
// figures assume an always-on instance; the recommendations below describe
// how to shrink them.
type UsageSummary struct {
	GPUHoursPerDay float64 `json:"gpu_hours_per_day"`
	CostPerHour    float64 `json:"cost_per_hour"`
	DailyCost      float64 `json:"daily_cost"`
}

type Recommendation struct {
	Type             string `json:"type"`
	Description      string `json:"description"`
	PotentialSavings string `json:"potential_savings"`
}

// CostReport is the read-only payload behind the optimize-costs command: no
// control action is ever taken from it.
type CostReport struct {
	Usage           UsageSummary     `json:"current_usage"`
	Recommendations []Recommendation `json:"recommendations"`
	Billing         []BillingEntry   `json:"billing,omitempty"`
	TotalSpend      float64          `json:"total_spend"`
	GeneratedAt     time.Time        `json:"generated_at"`
}

func defaultRecommendations() []Recommendation {
	return []Recommendation{
		{
			Type:             "schedule_optimization",
			Description:      "Run inference only during active posting hours (16h/day)",
			PotentialSavings: "20%",
		},
		{
			Type:             "model_optimization",
			Description:      "Serve routine replies from a smaller model",
			PotentialSavings: "30%",
		},
		{
			Type:             "batch_processing",
			Description:      "Batch generation requests to cut idle GPU time",
			PotentialSavings: "15%",
		},
	}
}

// CostReport assembles usage figures and the standing recommendation set,
// enriched with recent billing history when the API is reachable. Billing
// is best effort: a fetch failure degrades the report rather than failing
// it.
func (c *Client) CostReport(ctx context.Context) (*CostReport, error) {
	report := &CostReport{
		Usage: UsageSummary{
			GPUHoursPerDay: 24,
			CostPerHour:    0.50,
			DailyCost:      12.00,
		},
		Recommendations: defaultRecommendations(),
		GeneratedAt:     time.Now().UTC(),
	}

	entries, err := c.BillingHistory(ctx)
	if err != nil {
		slog.Warn("billing history unavailable, reporting usage model only", "err", err)
		return report, nil
	}
	report.Billing = entries
	for _, e := range entries {
		report.TotalSpend += e.Amount
	}
	return report, nil
}

// RenderTree formats the report for terminals.
func (r *CostReport) RenderTree() string {
	tree := treeprint.NewWithRoot("compute cost report")

	usage := tree.AddBranch("current usage")
	usage.AddNode(fmt.Sprintf("gpu hours/day: %.0f", r.Usage.GPUHoursPerDay))
	usage.AddNode(fmt.Sprintf("cost/hour: $%.2f", r.Usage.CostPerHour))
	usage.AddNode(fmt.Sprintf("daily cost: $%.2f", r.Usage.DailyCost))

	recs := tree.AddBranch("recommendations")
	for _, rec := range r.Recommendations {
		b := recs.AddBranch(rec.Type)
		b.AddNode(rec.Description)
		b.AddNode("potential savings: " + rec.PotentialSavings)
	}

	if len(r.Billing) > 0 {
		bill := tree.AddBranch(fmt.Sprintf("recent billing ($%.2f total)", r.TotalSpend))
		for _, e := range r.Billing {
			if e.Description != "" {
				bill.AddNode(fmt.Sprintf("$%.2f %s", e.Amount, e.Description))
			} else {
				bill.AddNode(fmt.Sprintf("$%.2f %s", e.Amount, e.Timestamp))
			}
		}
	}

	return tree.String()
}
