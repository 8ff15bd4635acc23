package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Order is a checkout at a store. CreatedAt carries both the calendar date
// and the time of day; the dashboard derives its buckets from it.
type Order struct {
	ID         snowflake.ID `json:"id" gorm:"primaryKey"`
	StoreID    snowflake.ID `json:"store_id" gorm:"not null;index"`
	CustomerID *string      `json:"customer_id,omitempty" gorm:"type:text"`
	CreatedAt  time.Time    `json:"created_at" gorm:"not null;index"`
}

func (Order) TableName() string { return "orders" }

// OrderItem is one sold line. UnitPrice is the price at the time of sale, a
// historical snapshot that may differ from the product's current price.
type OrderItem struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	OrderID   snowflake.ID `json:"order_id" gorm:"not null;index"`
	ProductID snowflake.ID `json:"product_id" gorm:"not null;index"`
	Quantity  int          `json:"quantity" gorm:"not null"`
	UnitPrice float64      `json:"unit_price" gorm:"not null"`
}

func (OrderItem) TableName() string { return "order_items" }
