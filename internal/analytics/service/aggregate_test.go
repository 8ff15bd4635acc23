package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallbiznis/mercato/internal/analytics/domain"
	catalogdomain "github.com/smallbiznis/mercato/internal/catalog/domain"
)

func TestComputeKPIs(t *testing.T) {
	// Three lines at 10.00 with cost 6.00 across two orders: revenue 60,
	// six items, margin 24, margin pct 40.
	lines := []domain.EnrichedLine{
		{OrderID: id(1), Quantity: 1, Revenue: 10, CostTotal: 6, Margin: 4},
		{OrderID: id(1), Quantity: 2, Revenue: 20, CostTotal: 12, Margin: 8},
		{OrderID: id(2), Quantity: 3, Revenue: 30, CostTotal: 18, Margin: 12},
	}

	kpi := ComputeKPIs(lines)
	assert.InDelta(t, 60.0, kpi.TotalRevenue, 1e-9)
	assert.Equal(t, int64(6), kpi.ItemsSold)
	assert.Equal(t, int64(2), kpi.OrderCount)
	assert.InDelta(t, 24.0, kpi.GrossMargin, 1e-9)
	assert.InDelta(t, 40.0, kpi.MarginPct, 1e-9)
	assert.True(t, kpi.HasData)
}

func TestComputeKPIsEmpty(t *testing.T) {
	kpi := ComputeKPIs(nil)
	assert.Zero(t, kpi.TotalRevenue)
	assert.Zero(t, kpi.ItemsSold)
	assert.Zero(t, kpi.OrderCount)
	assert.Zero(t, kpi.GrossMargin)
	assert.Zero(t, kpi.MarginPct)
	assert.False(t, kpi.HasData)
}

func TestComputeKPIsZeroRevenueGuard(t *testing.T) {
	lines := []domain.EnrichedLine{
		{OrderID: id(1), Quantity: 1, Revenue: 0, Margin: 0},
	}
	kpi := ComputeKPIs(lines)
	assert.Zero(t, kpi.MarginPct)
	assert.True(t, kpi.HasData)
}

func TestDailySalesAscending(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 5, d, 0, 0, 0, 0, time.UTC) }
	lines := []domain.EnrichedLine{
		{Date: day(20), Revenue: 30},
		{Date: day(18), Revenue: 10},
		{Date: day(20), Revenue: 5},
		{Date: day(19), Revenue: 20},
	}

	points := DailySales(lines)
	require.Len(t, points, 3)
	assert.Equal(t, domain.DailySalesPoint{Date: "2026-05-18", Revenue: 10}, points[0])
	assert.Equal(t, domain.DailySalesPoint{Date: "2026-05-19", Revenue: 20}, points[1])
	assert.Equal(t, domain.DailySalesPoint{Date: "2026-05-20", Revenue: 35}, points[2])
}

func TestTopProductsCapAndOrder(t *testing.T) {
	// Eleven products with revenues 100..1100: only the top ten survive and
	// the 100-revenue product is the one cut.
	var lines []domain.EnrichedLine
	for i := 1; i <= 11; i++ {
		lines = append(lines, domain.EnrichedLine{
			ProductID:   id(int64(i)),
			ProductName: fmt.Sprintf("Product %02d", i),
			Quantity:    1,
			Revenue:     float64(i) * 100,
		})
	}

	top := TopProducts(lines, 10)
	require.Len(t, top, 10)
	assert.Equal(t, "Product 11", top[0].ProductName)
	assert.InDelta(t, 1100.0, top[0].Revenue, 1e-9)
	assert.Equal(t, "Product 02", top[9].ProductName)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Revenue, top[i].Revenue)
	}
}

func TestTopProductsStableTies(t *testing.T) {
	lines := []domain.EnrichedLine{
		{ProductID: id(1), ProductName: "First Seen", Quantity: 1, Revenue: 50},
		{ProductID: id(2), ProductName: "Second Seen", Quantity: 1, Revenue: 50},
		{ProductID: id(3), ProductName: "Winner", Quantity: 1, Revenue: 90},
	}

	top := TopProducts(lines, 10)
	require.Len(t, top, 3)
	assert.Equal(t, "Winner", top[0].ProductName)
	assert.Equal(t, "First Seen", top[1].ProductName)
	assert.Equal(t, "Second Seen", top[2].ProductName)
}

func TestTopProductsAccumulatesAcrossLines(t *testing.T) {
	lines := []domain.EnrichedLine{
		{ProductID: id(1), ProductName: "Beans", Quantity: 2, Revenue: 25},
		{ProductID: id(1), ProductName: "Beans", Quantity: 1, Revenue: 12.5},
	}

	top := TopProducts(lines, 10)
	require.Len(t, top, 1)
	assert.InDelta(t, 37.5, top[0].Revenue, 1e-9)
	assert.Equal(t, int64(3), top[0].Quantity)
}

func TestCategorySharesSumToHundred(t *testing.T) {
	lines := []domain.EnrichedLine{
		{Category: "Coffee", Revenue: 60},
		{Category: "Merch", Revenue: 30},
		{Category: "Accessories", Revenue: 10},
	}

	shares := CategoryShares(lines)
	require.Len(t, shares, 3)
	assert.Equal(t, "Coffee", shares[0].Category)
	assert.InDelta(t, 60.0, shares[0].Share, 1e-9)
	assert.InDelta(t, 30.0, shares[1].Share, 1e-9)
	assert.InDelta(t, 10.0, shares[2].Share, 1e-9)

	var total float64
	for _, s := range shares {
		total += s.Share
	}
	assert.InDelta(t, 100.0, total, 1e-9)
}

func TestStoreComparisonDistinctOrders(t *testing.T) {
	lines := []domain.EnrichedLine{
		{OrderID: id(1), StoreID: id(1), StoreName: "Downtown", Quantity: 1, Revenue: 10},
		{OrderID: id(1), StoreID: id(1), StoreName: "Downtown", Quantity: 2, Revenue: 20},
		{OrderID: id(2), StoreID: id(2), StoreName: "Harbor", Quantity: 5, Revenue: 100},
	}

	stores := StoreComparison(lines)
	require.Len(t, stores, 2)
	assert.Equal(t, "Harbor", stores[0].StoreName)
	assert.Equal(t, int64(1), stores[0].OrderCount)
	assert.Equal(t, "Downtown", stores[1].StoreName)
	assert.InDelta(t, 30.0, stores[1].Revenue, 1e-9)
	assert.Equal(t, int64(3), stores[1].Quantity)
	assert.Equal(t, int64(1), stores[1].OrderCount)
}

func TestHourlyProfileAscendingPresentHoursOnly(t *testing.T) {
	lines := []domain.EnrichedLine{
		{Hour: 18, Revenue: 30},
		{Hour: 8, Revenue: 10},
		{Hour: 18, Revenue: 5},
		{Hour: 12, Revenue: 20},
	}

	hours := HourlyProfile(lines)
	require.Len(t, hours, 3)
	assert.Equal(t, domain.HourlyRevenue{Hour: 8, Revenue: 10}, hours[0])
	assert.Equal(t, domain.HourlyRevenue{Hour: 12, Revenue: 20}, hours[1])
	assert.Equal(t, domain.HourlyRevenue{Hour: 18, Revenue: 35}, hours[2])
}

func TestLowStockThresholdSortAndCap(t *testing.T) {
	var products []catalogdomain.Product
	for i := 1; i <= 12; i++ {
		products = append(products, fixtureProduct(int64(i), fmt.Sprintf("Product %02d", i), "Coffee", 10, ptrFloat(6), i))
	}
	// Comfortably stocked products never appear.
	products = append(products, fixtureProduct(99, "Well Stocked", "Coffee", 10, ptrFloat(6), 200))
	products = append(products, fixtureProduct(98, "At Threshold", "Coffee", 10, ptrFloat(6), 50))

	low := LowStock(products, 50, 10)
	require.Len(t, low, 10)
	assert.Equal(t, 1, low[0].Stock)
	assert.Equal(t, 10, low[9].Stock)
	for _, p := range low {
		assert.Less(t, p.Stock, 50)
	}
}

func TestLowStockEmptyCatalog(t *testing.T) {
	assert.Empty(t, LowStock(nil, 50, 10))
}
