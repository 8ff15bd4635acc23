package domain

import (
	"context"
	"errors"
)

// Service recomputes dashboard outputs from the in-memory snapshot on every
// call. All methods are read-only; the low-stock list ignores the query
// filters on purpose.
type Service interface {
	Overview(ctx context.Context, req QueryRequest) (OverviewResponse, error)
	KPIs(ctx context.Context, req QueryRequest) (KPIResponse, error)
	DailySales(ctx context.Context, req QueryRequest) (DailySalesResponse, error)
	TopProducts(ctx context.Context, req QueryRequest) (TopProductsResponse, error)
	CategoryShares(ctx context.Context, req QueryRequest) (CategorySharesResponse, error)
	StoreComparison(ctx context.Context, req QueryRequest) (StoreComparisonResponse, error)
	HourlyProfile(ctx context.Context, req QueryRequest) (HourlyProfileResponse, error)
	LowStock(ctx context.Context) (LowStockResponse, error)
	FilterOptions(ctx context.Context) (FilterOptionsResponse, error)
}

var (
	ErrInvalidWindow       = errors.New("invalid_window_days")
	ErrSnapshotUnavailable = errors.New("snapshot_unavailable")
)
