package repository

import (
	"context"

	"github.com/smallbiznis/mercato/internal/orders/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindAllOrders(ctx context.Context, db *gorm.DB) ([]domain.Order, error) {
	var items []domain.Order
	err := db.WithContext(ctx).Order("id ASC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindAllItems(ctx context.Context, db *gorm.DB) ([]domain.OrderItem, error) {
	var items []domain.OrderItem
	err := db.WithContext(ctx).Order("id ASC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
