package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	points := []RevenuePoint{
		{Date: "2025-03-01", Revenue: decimal.RequireFromString("120.50")},
		{Date: "2025-03-02", Revenue: decimal.RequireFromString("79.49")},
		{Date: "2025-03-03", Revenue: decimal.RequireFromString("0.01")},
	}

	s := Summarize(points, 8)

	assert.Equal(t, 8, s.TotalOrders)
	assert.True(t, decimal.RequireFromString("200.00").Equal(s.TotalRevenue))
	assert.True(t, decimal.RequireFromString("25.00").Equal(s.AverageOrderValue))
}

func TestSummarize_NoOrders(t *testing.T) {
	s := Summarize(nil, 0)

	assert.True(t, decimal.Zero.Equal(s.TotalRevenue))
	assert.True(t, decimal.Zero.Equal(s.AverageOrderValue))
}
