package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// EnrichedLine is one sold line item joined with its order, store and
// product, plus the derived fields every aggregation reads. Rows whose order,
// store or product is missing never become lines.
type EnrichedLine struct {
	OrderID     snowflake.ID
	StoreID     snowflake.ID
	StoreName   string
	City        string
	ProductID   snowflake.ID
	ProductName string
	Category    string
	Quantity    int
	UnitPrice   float64
	Revenue     float64
	CostTotal   float64
	Margin      float64
	OrderedAt   time.Time
	Date        time.Time
	Hour        int
}

// QueryRequest selects the slice of the snapshot a recomputation covers.
// The window is anchored at the latest timestamp in the data, not at the
// wall clock, so a stale demo dataset still renders.
type QueryRequest struct {
	// StoreID narrows to one store; nil means all stores.
	StoreID *snowflake.ID
	// Category narrows to one category label; empty means all categories.
	Category string
	// WindowDays is the trailing window length. Any positive value is
	// accepted; the UI slider offers 7-60.
	WindowDays int
}

type KPIResponse struct {
	TotalRevenue float64 `json:"total_revenue"`
	ItemsSold    int64   `json:"items_sold"`
	OrderCount   int64   `json:"order_count"`
	GrossMargin  float64 `json:"gross_margin"`
	MarginPct    float64 `json:"margin_pct"`
	HasData      bool    `json:"has_data"`
}

type DailySalesPoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

type DailySalesResponse struct {
	Points  []DailySalesPoint `json:"points"`
	HasData bool              `json:"has_data"`
}

type ProductSales struct {
	ProductName string  `json:"product_name"`
	Revenue     float64 `json:"revenue"`
	Quantity    int64   `json:"quantity"`
}

type TopProductsResponse struct {
	Products []ProductSales `json:"products"`
	HasData  bool           `json:"has_data"`
}

type CategoryShare struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
	Share    float64 `json:"share"`
}

type CategorySharesResponse struct {
	Categories []CategoryShare `json:"categories"`
	HasData    bool            `json:"has_data"`
}

type StoreSummary struct {
	StoreName  string  `json:"store_name"`
	Revenue    float64 `json:"revenue"`
	Quantity   int64   `json:"quantity"`
	OrderCount int64   `json:"order_count"`
}

type StoreComparisonResponse struct {
	Stores  []StoreSummary `json:"stores"`
	HasData bool           `json:"has_data"`
}

type HourlyRevenue struct {
	Hour    int     `json:"hour"`
	Revenue float64 `json:"revenue"`
}

type HourlyProfileResponse struct {
	Hours   []HourlyRevenue `json:"hours"`
	HasData bool            `json:"has_data"`
}

type LowStockProduct struct {
	ID       string `json:"id"`
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Stock    int    `json:"stock"`
}

type LowStockResponse struct {
	Products  []LowStockProduct `json:"products"`
	Threshold int               `json:"threshold"`
	HasData   bool              `json:"has_data"`
}

type StoreOption struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	City  string `json:"city"`
	Label string `json:"label"`
}

type FilterOptionsResponse struct {
	Stores            []StoreOption `json:"stores"`
	Categories        []string      `json:"categories"`
	DefaultWindowDays int           `json:"default_window_days"`
}

// OverviewResponse is one full recomputation: everything the dashboard
// renders from a single filter change.
type OverviewResponse struct {
	KPIs            KPIResponse       `json:"kpis"`
	DailySales      []DailySalesPoint `json:"daily_sales"`
	TopProducts     []ProductSales    `json:"top_products"`
	CategoryShares  []CategoryShare   `json:"category_shares"`
	StoreComparison []StoreSummary    `json:"store_comparison"`
	HourlyProfile   []HourlyRevenue   `json:"hourly_profile"`
	LowStock        []LowStockProduct `json:"low_stock"`
	HasData         bool              `json:"has_data"`
}
