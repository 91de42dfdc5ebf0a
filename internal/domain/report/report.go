// Package report defines the restaurant sales report as served by the
// backend's reporting endpoint. Revenue values are fractional currency, so
// they are carried as decimals rather than minor units.
package report

import "github.com/shopspring/decimal"

// Period selects the revenue aggregation granularity.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// Summary aggregates the report window.
type Summary struct {
	TotalOrders       int             `json:"totalOrders"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
}

// RevenuePoint is one bucket of revenue over the selected period.
type RevenuePoint struct {
	Date    string          `json:"date,omitempty"`
	Week    string          `json:"week,omitempty"`
	Month   string          `json:"month,omitempty"`
	Revenue decimal.Decimal `json:"revenue"`
}

// RevenueByPeriod groups revenue buckets by granularity.
type RevenueByPeriod struct {
	Daily   []RevenuePoint `json:"daily"`
	Weekly  []RevenuePoint `json:"weekly"`
	Monthly []RevenuePoint `json:"monthly"`
}

// MenuItemSales ranks a menu item by order count and revenue.
type MenuItemSales struct {
	MenuItemID string          `json:"menuItemId"`
	Name       string          `json:"name"`
	Count      int             `json:"count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// TimeDistribution buckets orders by hour of day.
type TimeDistribution struct {
	Hour    int             `json:"hour"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DayDistribution buckets orders by day of week.
type DayDistribution struct {
	Day     string          `json:"day"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// PeakTimes holds the busiest-hours and busiest-days distributions.
type PeakTimes struct {
	ByHour []TimeDistribution `json:"byHour"`
	ByDay  []DayDistribution  `json:"byDay"`
}

// SalesReport is the full reporting payload.
type SalesReport struct {
	Summary         Summary         `json:"summary"`
	RevenueByPeriod RevenueByPeriod `json:"revenueByPeriod"`
	PopularItems    []MenuItemSales `json:"popularItems"`
	PeakTimes       PeakTimes       `json:"peakTimes"`
}

// Summarize recomputes a Summary from revenue points and an order count.
// Used to cross-check the backend's summary before display; decimal
// arithmetic keeps cents exact through the division.
func Summarize(points []RevenuePoint, totalOrders int) Summary {
	total := decimal.Zero
	for _, p := range points {
		total = total.Add(p.Revenue)
	}

	avg := decimal.Zero
	if totalOrders > 0 {
		avg = total.DivRound(decimal.NewFromInt(int64(totalOrders)), 2)
	}

	return Summary{
		TotalOrders:       totalOrders,
		TotalRevenue:      total,
		AverageOrderValue: avg,
	}
}
