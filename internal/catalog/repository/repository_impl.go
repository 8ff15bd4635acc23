package repository

import (
	"context"

	"github.com/smallbiznis/mercato/internal/catalog/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindAllStores(ctx context.Context, db *gorm.DB) ([]domain.Store, error) {
	var items []domain.Store
	err := db.WithContext(ctx).Order("id ASC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindAllProducts(ctx context.Context, db *gorm.DB) ([]domain.Product, error) {
	var items []domain.Product
	err := db.WithContext(ctx).Order("id ASC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
