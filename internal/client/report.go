package client

import (
	"context"
	"net/url"
	"time"

	"github.com/xenking/eats-storefront/internal/domain/report"
)

// SalesReportQuery scopes a sales report request. Zero time bounds are
// omitted and the backend applies its defaults.
type SalesReportQuery struct {
	RestaurantID string
	StartDate    time.Time
	EndDate      time.Time
	Period       report.Period
}

// GetSalesReport fetches the owner's sales performance report. Authenticated.
func (c *Client) GetSalesReport(ctx context.Context, q SalesReportQuery) (*report.SalesReport, error) {
	params := url.Values{}
	if !q.StartDate.IsZero() {
		params.Set("startDate", q.StartDate.Format(time.RFC3339))
	}
	if !q.EndDate.IsZero() {
		params.Set("endDate", q.EndDate.Format(time.RFC3339))
	}
	if q.Period != "" {
		params.Set("period", string(q.Period))
	}

	path := "/api/my/restaurant/" + url.PathEscape(q.RestaurantID) + "/reports/sales"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var r report.SalesReport
	if err := c.getJSON(ctx, path, true, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
