package seed

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/mercato/internal/catalog/domain"
	"github.com/smallbiznis/mercato/internal/clock"
	ordersdomain "github.com/smallbiznis/mercato/internal/orders/domain"
	pkgdb "github.com/smallbiznis/mercato/pkg/db"
	"gorm.io/gorm"
)

const (
	productCount     = 60
	historyDays      = 60
	minOrdersPerDay  = 8
	maxOrdersPerDay  = 40
	maxItemsPerOrder = 6
	maxItemQuantity  = 5
	firstOrderHour   = 8
	lastOrderHour    = 21

	minProductPrice = 3.0
	maxProductPrice = 50.0
	minCostRatio    = 0.5
	maxCostRatio    = 0.8
	minInitialStock = 20
	maxInitialStock = 300

	rngSeed = 42
)

var demoStoreSpecs = []struct {
	Name string
	City string
}{
	{Name: "Loja Centro", City: "Araraquara"},
	{Name: "Loja Norte", City: "Araraquara"},
	{Name: "Loja Sul", City: "São Carlos"},
}

var demoCategories = []string{"Mercearia", "Hortifruti", "Limpeza", "Bebidas", "Padaria"}

// EnsureDemoData populates an empty database with the synthetic demo
// dataset: three stores, sixty products and sixty days of order history
// ending at the current day. The generator is seeded, so repeated fresh
// seeds produce the same dataset. A database that already holds stores is
// left untouched.
func EnsureDemoData(db *gorm.DB, clk clock.Clock) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(rngSeed))

	ctx := context.Background()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.WithContext(ctx).Model(&catalogdomain.Store{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := clk.Now()
		stores := seedStores(node, now)
		if err := tx.WithContext(ctx).Create(&stores).Error; err != nil {
			return err
		}

		products := seedProducts(node, rng, now)
		orders, items := seedOrders(node, rng, now, stores, products)

		if err := tx.WithContext(ctx).CreateInBatches(&products, 100).Error; err != nil {
			return err
		}
		if err := tx.WithContext(ctx).CreateInBatches(&orders, 500).Error; err != nil {
			return err
		}
		if err := tx.WithContext(ctx).CreateInBatches(&items, 500).Error; err != nil {
			return err
		}
		return nil
	})
	if pkgdb.IsDuplicateKeyErr(err) {
		// A concurrent seeder won the race; its dataset stands.
		return nil
	}
	return err
}

func seedStores(node *snowflake.Node, now time.Time) []catalogdomain.Store {
	stores := make([]catalogdomain.Store, 0, len(demoStoreSpecs))
	for _, spec := range demoStoreSpecs {
		stores = append(stores, catalogdomain.Store{
			ID:        node.Generate(),
			Name:      spec.Name,
			City:      spec.City,
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return stores
}

func seedProducts(node *snowflake.Node, rng *rand.Rand, now time.Time) []catalogdomain.Product {
	products := make([]catalogdomain.Product, 0, productCount)
	for i := 1; i <= productCount; i++ {
		price := round2(minProductPrice + rng.Float64()*(maxProductPrice-minProductPrice))
		cost := round2(price * (minCostRatio + rng.Float64()*(maxCostRatio-minCostRatio)))
		products = append(products, catalogdomain.Product{
			ID:        node.Generate(),
			SKU:       fmt.Sprintf("SKU%04d", i),
			Name:      fmt.Sprintf("Produto %d", i),
			Category:  demoCategories[rng.Intn(len(demoCategories))],
			Price:     price,
			Cost:      &cost,
			Stock:     minInitialStock + rng.Intn(maxInitialStock-minInitialStock+1),
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return products
}

// seedOrders generates the order history and decrements product stock as it
// sells, never below zero.
func seedOrders(
	node *snowflake.Node,
	rng *rand.Rand,
	now time.Time,
	stores []catalogdomain.Store,
	products []catalogdomain.Product,
) ([]ordersdomain.Order, []ordersdomain.OrderItem) {
	start := now.UTC().AddDate(0, 0, -historyDays)
	orders := make([]ordersdomain.Order, 0)
	items := make([]ordersdomain.OrderItem, 0)

	for d := 0; d < historyDays; d++ {
		day := start.AddDate(0, 0, d)
		perDay := minOrdersPerDay + rng.Intn(maxOrdersPerDay-minOrdersPerDay+1)
		for o := 0; o < perDay; o++ {
			store := stores[rng.Intn(len(stores))]
			hour := firstOrderHour + rng.Intn(lastOrderHour-firstOrderHour+1)
			order := ordersdomain.Order{
				ID:        node.Generate(),
				StoreID:   store.ID,
				CreatedAt: time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC),
			}
			orders = append(orders, order)

			lineCount := 1 + rng.Intn(maxItemsPerOrder)
			for l := 0; l < lineCount; l++ {
				product := &products[rng.Intn(len(products))]
				qty := 1 + rng.Intn(maxItemQuantity)
				items = append(items, ordersdomain.OrderItem{
					ID:        node.Generate(),
					OrderID:   order.ID,
					ProductID: product.ID,
					Quantity:  qty,
					UnitPrice: product.Price,
				})
				if product.Stock-qty > 0 {
					product.Stock -= qty
				} else {
					product.Stock = 0
				}
			}
		}
	}
	return orders, items
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
