package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Store is a physical retail location. Orders reference it by id.
type Store struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	Name      string       `json:"name" gorm:"type:text;not null"`
	City      string       `json:"city" gorm:"type:text"`
	Active    bool         `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null"`
}

func (Store) TableName() string { return "stores" }

// Product is a catalog entry. Cost is optional; lines for a product without a
// cost contribute zero cost and full margin.
type Product struct {
	ID        snowflake.ID      `json:"id" gorm:"primaryKey"`
	SKU       string            `json:"sku" gorm:"column:sku;type:text;uniqueIndex"`
	Name      string            `json:"name" gorm:"type:text;not null"`
	Category  string            `json:"category" gorm:"type:text;index"`
	Price     float64           `json:"price" gorm:"not null"`
	Cost      *float64          `json:"cost,omitempty"`
	Stock     int               `json:"stock" gorm:"not null;default:0"`
	Metadata  datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt time.Time         `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time         `json:"updated_at" gorm:"not null"`
}

func (Product) TableName() string { return "products" }
