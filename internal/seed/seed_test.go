package seed

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	catalogdomain "github.com/smallbiznis/mercato/internal/catalog/domain"
	"github.com/smallbiznis/mercato/internal/clock"
	ordersdomain "github.com/smallbiznis/mercato/internal/orders/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalogdomain.Store{},
		&catalogdomain.Product{},
		&ordersdomain.Order{},
		&ordersdomain.OrderItem{},
	))
	return db
}

func TestEnsureDemoDataPopulates(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	require.NoError(t, EnsureDemoData(db, clock.NewFakeClock(now)))

	var stores []catalogdomain.Store
	require.NoError(t, db.Find(&stores).Error)
	require.Len(t, stores, 3)

	var products []catalogdomain.Product
	require.NoError(t, db.Find(&products).Error)
	require.Len(t, products, productCount)
	skus := make(map[string]struct{})
	for _, p := range products {
		assert.Regexp(t, `^SKU\d{4}$`, p.SKU)
		assert.GreaterOrEqual(t, p.Price, minProductPrice)
		assert.LessOrEqual(t, p.Price, maxProductPrice)
		require.NotNil(t, p.Cost)
		assert.Less(t, *p.Cost, p.Price)
		assert.GreaterOrEqual(t, p.Stock, 0)
		skus[p.SKU] = struct{}{}
	}
	assert.Len(t, skus, productCount)

	var orders []ordersdomain.Order
	require.NoError(t, db.Find(&orders).Error)
	assert.GreaterOrEqual(t, len(orders), historyDays*minOrdersPerDay)
	assert.LessOrEqual(t, len(orders), historyDays*maxOrdersPerDay)

	windowStart := now.AddDate(0, 0, -historyDays)
	earliest := time.Date(windowStart.Year(), windowStart.Month(), windowStart.Day(), 0, 0, 0, 0, time.UTC)
	for _, o := range orders {
		at := o.CreatedAt.UTC()
		assert.False(t, at.Before(earliest))
		assert.True(t, at.Before(now))
		assert.GreaterOrEqual(t, at.Hour(), firstOrderHour)
		assert.LessOrEqual(t, at.Hour(), lastOrderHour)
	}

	var itemCount int64
	require.NoError(t, db.Model(&ordersdomain.OrderItem{}).Count(&itemCount).Error)
	assert.GreaterOrEqual(t, itemCount, int64(len(orders)))
	assert.LessOrEqual(t, itemCount, int64(len(orders)*maxItemsPerOrder))
}

func TestEnsureDemoDataToleratesRacingSeeder(t *testing.T) {
	db := newTestDB(t)

	// Another seeder already wrote a product but not yet its stores: the
	// store-count check passes, then the product batch trips the unique SKU
	// index. That must read as "already seeded", not as a failure.
	cost := 5.0
	require.NoError(t, db.Create(&catalogdomain.Product{
		ID:       1,
		SKU:      "SKU0001",
		Name:     "Produto 1",
		Category: "Mercearia",
		Price:    10,
		Cost:     &cost,
		Stock:    50,
	}).Error)

	clk := clock.NewFakeClock(time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC))
	require.NoError(t, EnsureDemoData(db, clk))

	var stores int64
	require.NoError(t, db.Model(&catalogdomain.Store{}).Count(&stores).Error)
	assert.Zero(t, stores)

	var products int64
	require.NoError(t, db.Model(&catalogdomain.Product{}).Count(&products).Error)
	assert.Equal(t, int64(1), products)
}

func TestEnsureDemoDataIdempotent(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC))

	require.NoError(t, EnsureDemoData(db, clk))

	var before int64
	require.NoError(t, db.Model(&ordersdomain.Order{}).Count(&before).Error)

	require.NoError(t, EnsureDemoData(db, clk))

	var after int64
	require.NoError(t, db.Model(&ordersdomain.Order{}).Count(&after).Error)
	assert.Equal(t, before, after)
}
