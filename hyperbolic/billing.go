package hyperbolic

import (
	"context"
	"net/http"
	"time"

	"github.com/hyperfeather/magpie/util"
)

// BillingEntry is one purchase-history line. Amount is in USD.
type BillingEntry struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
	Timestamp   string  `json:"timestamp,omitempty"`
}

// Time parses the entry timestamp leniently, in UTC.
func (e *BillingEntry) Time() (time.Time, error) {
	return util.ParseRemoteTimestamp(e.Timestamp)
}

type billingHistoryResponse struct {
	PurchaseHistory []BillingEntry `json:"purchase_history"`
}

// BillingHistory returns the account's purchase history, most recent first.
func (c *Client) BillingHistory(ctx context.Context) ([]BillingEntry, error) {
	var out billingHistoryResponse
	if err := c.do(ctx, http.MethodGet, "/v1/billing/history", nil, &out); err != nil {
		return nil, err
	}
	return out.PurchaseHistory, nil
}
