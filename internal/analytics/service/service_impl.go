package service

import (
	"context"
	"sort"
	"sync"

	"github.com/smallbiznis/mercato/internal/analytics/domain"
	"github.com/smallbiznis/mercato/internal/config"
	obsmetrics "github.com/smallbiznis/mercato/internal/observability/metrics"
	"github.com/smallbiznis/mercato/internal/snapshot"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log       *zap.Logger
	Snapshots snapshot.Provider
	Dashboard *config.DashboardConfigHolder
	Metrics   *obsmetrics.Metrics `optional:"true"`
}

// Service computes dashboard responses from the current snapshot. Enrichment
// runs once per snapshot instance and is reused across requests; filtering
// and aggregation run per call.
type Service struct {
	log       *zap.Logger
	snapshots snapshot.Provider
	dashboard *config.DashboardConfigHolder
	metrics   *obsmetrics.Metrics

	mu          sync.Mutex
	enrichedFor *snapshot.Snapshot
	enriched    []domain.EnrichedLine
}

func New(p Params) domain.Service {
	return &Service{
		log:       p.Log.Named("analytics.service"),
		snapshots: p.Snapshots,
		dashboard: p.Dashboard,
		metrics:   p.Metrics,
	}
}

// lines returns the enriched view of the current snapshot, building it on
// first use per snapshot instance.
func (s *Service) lines() (*snapshot.Snapshot, []domain.EnrichedLine, error) {
	snap := s.snapshots.Current()
	if snap == nil {
		return nil, nil, domain.ErrSnapshotUnavailable
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enrichedFor != snap {
		s.enriched = Enrich(snap)
		s.enrichedFor = snap
		s.log.Debug("snapshot enriched", zap.Int("lines", len(s.enriched)))
	}
	return snap, s.enriched, nil
}

func (s *Service) filtered(req domain.QueryRequest) (*snapshot.Snapshot, []domain.EnrichedLine, error) {
	if req.WindowDays <= 0 {
		return nil, nil, domain.ErrInvalidWindow
	}
	snap, lines, err := s.lines()
	if err != nil {
		return nil, nil, err
	}
	return snap, ApplyFilters(lines, req), nil
}

func (s *Service) KPIs(ctx context.Context, req domain.QueryRequest) (domain.KPIResponse, error) {
	s.metrics.RecordDashboardQuery(ctx, "kpis")
	_, lines, err := s.filtered(req)
	if err != nil {
		return domain.KPIResponse{}, err
	}
	return ComputeKPIs(lines), nil
}

func (s *Service) DailySales(ctx context.Context, req domain.QueryRequest) (domain.DailySalesResponse, error) {
	s.metrics.RecordDashboardQuery(ctx, "daily_sales")
	_, lines, err := s.filtered(req)
	if err != nil {
		return domain.DailySalesResponse{}, err
	}
	points := DailySales(lines)
	return domain.DailySalesResponse{Points: points, HasData: len(points) > 0}, nil
}

func (s *Service) TopProducts(ctx context.Context, req domain.QueryRequest) (domain.TopProductsResponse, error) {
	s.metrics.RecordDashboardQuery(ctx, "top_products")
	_, lines, err := s.filtered(req)
	if err != nil {
		return domain.TopProductsResponse{}, err
	}
	products := TopProducts(lines, s.dashboard.Current().TopProductsLimit)
	return domain.TopProductsResponse{Products: products, HasData: len(products) > 0}, nil
}

func (s *Service) CategoryShares(ctx context.Context, req domain.QueryRequest) (domain.CategorySharesResponse, error) {
	s.metrics.RecordDashboardQuery(ctx, "category_shares")
	_, lines, err := s.filtered(req)
	if err != nil {
		return domain.CategorySharesResponse{}, err
	}
	shares := CategoryShares(lines)
	return domain.CategorySharesResponse{Categories: shares, HasData: len(shares) > 0}, nil
}

func (s *Service) StoreComparison(ctx context.Context, req domain.QueryRequest) (domain.StoreComparisonResponse, error) {
	s.metrics.RecordDashboardQuery(ctx, "store_comparison")
	_, lines, err := s.filtered(req)
	if err != nil {
		return domain.StoreComparisonResponse{}, err
	}
	stores := StoreComparison(lines)
	return domain.StoreComparisonResponse{Stores: stores, HasData: len(stores) > 0}, nil
}

func (s *Service) HourlyProfile(ctx context.Context, req domain.QueryRequest) (domain.HourlyProfileResponse, error) {
	s.metrics.RecordDashboardQuery(ctx, "hourly_profile")
	_, lines, err := s.filtered(req)
	if err != nil {
		return domain.HourlyProfileResponse{}, err
	}
	hours := HourlyProfile(lines)
	return domain.HourlyProfileResponse{Hours: hours, HasData: len(hours) > 0}, nil
}

func (s *Service) LowStock(ctx context.Context) (domain.LowStockResponse, error) {
	s.metrics.RecordDashboardQuery(ctx, "low_stock")
	snap := s.snapshots.Current()
	if snap == nil {
		return domain.LowStockResponse{}, domain.ErrSnapshotUnavailable
	}
	cfg := s.dashboard.Current()
	products := LowStock(snap.Products, cfg.LowStockThreshold, cfg.LowStockLimit)
	return domain.LowStockResponse{
		Products:  products,
		Threshold: cfg.LowStockThreshold,
		HasData:   len(products) > 0,
	}, nil
}

func (s *Service) FilterOptions(ctx context.Context) (domain.FilterOptionsResponse, error) {
	s.metrics.RecordDashboardQuery(ctx, "filters")
	snap := s.snapshots.Current()
	if snap == nil {
		return domain.FilterOptionsResponse{}, domain.ErrSnapshotUnavailable
	}

	stores := make([]domain.StoreOption, 0, len(snap.Stores))
	for i := range snap.Stores {
		st := &snap.Stores[i]
		stores = append(stores, domain.StoreOption{
			ID:    st.ID.String(),
			Name:  st.Name,
			City:  st.City,
			Label: st.Name + " (" + st.City + ")",
		})
	}

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for i := range snap.Products {
		c := snap.Products[i].Category
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		categories = append(categories, c)
	}
	sort.Strings(categories)

	return domain.FilterOptionsResponse{
		Stores:            stores,
		Categories:        categories,
		DefaultWindowDays: s.dashboard.Current().DefaultWindowDays,
	}, nil
}

func (s *Service) Overview(ctx context.Context, req domain.QueryRequest) (domain.OverviewResponse, error) {
	s.metrics.RecordDashboardQuery(ctx, "overview")
	if req.WindowDays <= 0 {
		return domain.OverviewResponse{}, domain.ErrInvalidWindow
	}
	snap, lines, err := s.lines()
	if err != nil {
		return domain.OverviewResponse{}, err
	}
	filtered := ApplyFilters(lines, req)
	cfg := s.dashboard.Current()

	return domain.OverviewResponse{
		KPIs:            ComputeKPIs(filtered),
		DailySales:      DailySales(filtered),
		TopProducts:     TopProducts(filtered, cfg.TopProductsLimit),
		CategoryShares:  CategoryShares(filtered),
		StoreComparison: StoreComparison(filtered),
		HourlyProfile:   HourlyProfile(filtered),
		LowStock:        LowStock(snap.Products, cfg.LowStockThreshold, cfg.LowStockLimit),
		HasData:         len(filtered) > 0,
	}, nil
}

var _ domain.Service = (*Service)(nil)
