package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/smallbiznis/mercato/internal/analytics/domain"
	catalogdomain "github.com/smallbiznis/mercato/internal/catalog/domain"
	"github.com/smallbiznis/mercato/internal/config"
	ordersdomain "github.com/smallbiznis/mercato/internal/orders/domain"
	"github.com/smallbiznis/mercato/internal/snapshot"
)

type staticProvider struct {
	snap *snapshot.Snapshot
}

func (p *staticProvider) Current() *snapshot.Snapshot { return p.snap }

func newTestService(snap *snapshot.Snapshot) domain.Service {
	return New(Params{
		Log:       zap.NewNop(),
		Snapshots: &staticProvider{snap: snap},
		Dashboard: config.NewStaticDashboardConfigHolder(config.DefaultDashboardConfig()),
	})
}

func populatedSnapshot() *snapshot.Snapshot {
	at := func(daysAgo, hour int) time.Time {
		return time.Date(2026, 5, 20, hour, 0, 0, 0, time.UTC).AddDate(0, 0, -daysAgo)
	}
	return fixtureSnapshot(
		[]catalogdomain.Store{
			fixtureStore(1, "Downtown", "Springfield"),
			fixtureStore(2, "Harbor", "Shelbyville"),
		},
		[]catalogdomain.Product{
			fixtureProduct(10, "Espresso Beans", "Coffee", 12.50, ptrFloat(7.00), 8),
			fixtureProduct(11, "Filter Papers", "Accessories", 4.00, ptrFloat(2.00), 120),
			fixtureProduct(12, "Branded Mug", "Merch", 9.00, nil, 30),
		},
		[]ordersdomain.Order{
			fixtureOrder(100, 1, at(1, 9)),
			fixtureOrder(101, 1, at(2, 14)),
			fixtureOrder(102, 2, at(3, 18)),
		},
		[]ordersdomain.OrderItem{
			fixtureItem(1000, 100, 10, 2, 12.50),
			fixtureItem(1001, 100, 11, 1, 4.00),
			fixtureItem(1002, 101, 12, 3, 9.00),
			fixtureItem(1003, 102, 10, 1, 12.50),
		},
	)
}

func TestServiceSnapshotUnavailable(t *testing.T) {
	svc := newTestService(nil)
	req := domain.QueryRequest{WindowDays: 30}

	_, err := svc.KPIs(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrSnapshotUnavailable)
	_, err = svc.LowStock(context.Background())
	assert.ErrorIs(t, err, domain.ErrSnapshotUnavailable)
	_, err = svc.FilterOptions(context.Background())
	assert.ErrorIs(t, err, domain.ErrSnapshotUnavailable)
	_, err = svc.Overview(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrSnapshotUnavailable)
}

func TestServiceInvalidWindow(t *testing.T) {
	svc := newTestService(populatedSnapshot())

	for _, days := range []int{0, -1, -30} {
		_, err := svc.KPIs(context.Background(), domain.QueryRequest{WindowDays: days})
		assert.ErrorIs(t, err, domain.ErrInvalidWindow)
		_, err = svc.Overview(context.Background(), domain.QueryRequest{WindowDays: days})
		assert.ErrorIs(t, err, domain.ErrInvalidWindow)
	}
}

func TestServiceKPIs(t *testing.T) {
	svc := newTestService(populatedSnapshot())

	kpi, err := svc.KPIs(context.Background(), domain.QueryRequest{WindowDays: 30})
	require.NoError(t, err)
	// 2*12.50 + 1*4.00 + 3*9.00 + 1*12.50 = 68.50
	assert.InDelta(t, 68.50, kpi.TotalRevenue, 1e-9)
	assert.Equal(t, int64(7), kpi.ItemsSold)
	assert.Equal(t, int64(3), kpi.OrderCount)
	assert.True(t, kpi.HasData)
}

func TestServiceLowStockIgnoresFilters(t *testing.T) {
	svc := newTestService(populatedSnapshot())

	// Low stock reads the whole catalog regardless of any dashboard filter,
	// so the accessories product never hides the coffee one.
	low, err := svc.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, low.Products, 2)
	assert.Equal(t, "Espresso Beans", low.Products[0].Name)
	assert.Equal(t, 8, low.Products[0].Stock)
	assert.Equal(t, "Branded Mug", low.Products[1].Name)
	assert.Equal(t, 50, low.Threshold)
	assert.True(t, low.HasData)
}

func TestServiceFilteredByStore(t *testing.T) {
	svc := newTestService(populatedSnapshot())
	store := id(2)

	kpi, err := svc.KPIs(context.Background(), domain.QueryRequest{StoreID: &store, WindowDays: 30})
	require.NoError(t, err)
	assert.InDelta(t, 12.50, kpi.TotalRevenue, 1e-9)
	assert.Equal(t, int64(1), kpi.OrderCount)
}

func TestServiceEmptySnapshot(t *testing.T) {
	svc := newTestService(fixtureSnapshot(nil, nil, nil, nil))
	req := domain.QueryRequest{WindowDays: 30}

	kpi, err := svc.KPIs(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, kpi.HasData)
	assert.Zero(t, kpi.TotalRevenue)

	daily, err := svc.DailySales(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, daily.HasData)
	assert.Empty(t, daily.Points)

	overview, err := svc.Overview(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, overview.HasData)
	assert.Empty(t, overview.TopProducts)
	assert.Empty(t, overview.LowStock)
}

func TestServiceOverviewMatchesIndividualEndpoints(t *testing.T) {
	svc := newTestService(populatedSnapshot())
	req := domain.QueryRequest{WindowDays: 30}
	ctx := context.Background()

	overview, err := svc.Overview(ctx, req)
	require.NoError(t, err)

	kpi, err := svc.KPIs(ctx, req)
	require.NoError(t, err)
	daily, err := svc.DailySales(ctx, req)
	require.NoError(t, err)
	top, err := svc.TopProducts(ctx, req)
	require.NoError(t, err)
	shares, err := svc.CategoryShares(ctx, req)
	require.NoError(t, err)
	stores, err := svc.StoreComparison(ctx, req)
	require.NoError(t, err)
	hours, err := svc.HourlyProfile(ctx, req)
	require.NoError(t, err)
	low, err := svc.LowStock(ctx)
	require.NoError(t, err)

	assert.Equal(t, kpi, overview.KPIs)
	assert.Equal(t, daily.Points, overview.DailySales)
	assert.Equal(t, top.Products, overview.TopProducts)
	assert.Equal(t, shares.Categories, overview.CategoryShares)
	assert.Equal(t, stores.Stores, overview.StoreComparison)
	assert.Equal(t, hours.Hours, overview.HourlyProfile)
	assert.Equal(t, low.Products, overview.LowStock)
	assert.True(t, overview.HasData)
}

func TestServiceFilterOptions(t *testing.T) {
	svc := newTestService(populatedSnapshot())

	opts, err := svc.FilterOptions(context.Background())
	require.NoError(t, err)
	require.Len(t, opts.Stores, 2)
	assert.Equal(t, "Downtown (Springfield)", opts.Stores[0].Label)
	assert.Equal(t, []string{"Accessories", "Coffee", "Merch"}, opts.Categories)
	assert.Equal(t, 30, opts.DefaultWindowDays)
}
