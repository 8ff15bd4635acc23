package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindAllStores(ctx context.Context, db *gorm.DB) ([]Store, error)
	FindAllProducts(ctx context.Context, db *gorm.DB) ([]Product, error)
}
