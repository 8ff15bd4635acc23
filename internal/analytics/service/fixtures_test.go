package service

import (
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/mercato/internal/catalog/domain"
	ordersdomain "github.com/smallbiznis/mercato/internal/orders/domain"
	"github.com/smallbiznis/mercato/internal/snapshot"
)

var fixtureBase = time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)

func id(n int64) snowflake.ID { return snowflake.ID(n) }

func ptrFloat(v float64) *float64 { return &v }

func fixtureStore(n int64, name, city string) catalogdomain.Store {
	return catalogdomain.Store{ID: id(n), Name: name, City: city, Active: true}
}

func fixtureProduct(n int64, name, category string, price float64, cost *float64, stock int) catalogdomain.Product {
	return catalogdomain.Product{
		ID:       id(n),
		SKU:      "SKU-" + snowflake.ID(n).String(),
		Name:     name,
		Category: category,
		Price:    price,
		Cost:     cost,
		Stock:    stock,
	}
}

func fixtureOrder(n, storeID int64, at time.Time) ordersdomain.Order {
	return ordersdomain.Order{ID: id(n), StoreID: id(storeID), CreatedAt: at}
}

func fixtureItem(n, orderID, productID int64, qty int, unitPrice float64) ordersdomain.OrderItem {
	return ordersdomain.OrderItem{
		ID:        id(n),
		OrderID:   id(orderID),
		ProductID: id(productID),
		Quantity:  qty,
		UnitPrice: unitPrice,
	}
}

func fixtureSnapshot(
	stores []catalogdomain.Store,
	products []catalogdomain.Product,
	orders []ordersdomain.Order,
	items []ordersdomain.OrderItem,
) *snapshot.Snapshot {
	return snapshot.New(stores, products, orders, items, fixtureBase)
}
