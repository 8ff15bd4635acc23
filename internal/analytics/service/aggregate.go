package service

import (
	"sort"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/mercato/internal/analytics/domain"
	catalogdomain "github.com/smallbiznis/mercato/internal/catalog/domain"
)

const dateLayout = "2006-01-02"

// ComputeKPIs totals the headline figures over the filtered lines. Orders
// are counted distinct: a three-line order is one order. MarginPct stays
// zero when revenue is zero.
func ComputeKPIs(lines []domain.EnrichedLine) domain.KPIResponse {
	if len(lines) == 0 {
		return domain.KPIResponse{}
	}

	var (
		revenue float64
		margin  float64
		items   int64
		orders  = make(map[snowflake.ID]struct{})
	)
	for i := range lines {
		revenue += lines[i].Revenue
		margin += lines[i].Margin
		items += int64(lines[i].Quantity)
		orders[lines[i].OrderID] = struct{}{}
	}

	kpi := domain.KPIResponse{
		TotalRevenue: revenue,
		ItemsSold:    items,
		OrderCount:   int64(len(orders)),
		GrossMargin:  margin,
		HasData:      true,
	}
	if revenue > 0 {
		kpi.MarginPct = margin / revenue * 100
	}
	return kpi
}

// DailySales sums revenue per calendar day, ascending.
func DailySales(lines []domain.EnrichedLine) []domain.DailySalesPoint {
	if len(lines) == 0 {
		return nil
	}
	byDay := make(map[string]float64)
	for i := range lines {
		byDay[lines[i].Date.Format(dateLayout)] += lines[i].Revenue
	}
	points := make([]domain.DailySalesPoint, 0, len(byDay))
	for day, revenue := range byDay {
		points = append(points, domain.DailySalesPoint{Date: day, Revenue: revenue})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// TopProducts ranks products by revenue descending and keeps the first
// limit rows. Groups are collected in first-seen order and sorted stably,
// so equal revenues keep a deterministic relative order.
func TopProducts(lines []domain.EnrichedLine, limit int) []domain.ProductSales {
	if len(lines) == 0 {
		return nil
	}
	index := make(map[snowflake.ID]int)
	groups := make([]domain.ProductSales, 0)
	for i := range lines {
		line := &lines[i]
		at, ok := index[line.ProductID]
		if !ok {
			at = len(groups)
			index[line.ProductID] = at
			groups = append(groups, domain.ProductSales{ProductName: line.ProductName})
		}
		groups[at].Revenue += line.Revenue
		groups[at].Quantity += int64(line.Quantity)
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Revenue > groups[j].Revenue })
	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}
	return groups
}

// CategoryShares sums revenue per category and expresses each as a percent
// of the filtered total, descending by revenue.
func CategoryShares(lines []domain.EnrichedLine) []domain.CategoryShare {
	if len(lines) == 0 {
		return nil
	}
	index := make(map[string]int)
	groups := make([]domain.CategoryShare, 0)
	var total float64
	for i := range lines {
		line := &lines[i]
		at, ok := index[line.Category]
		if !ok {
			at = len(groups)
			index[line.Category] = at
			groups = append(groups, domain.CategoryShare{Category: line.Category})
		}
		groups[at].Revenue += line.Revenue
		total += line.Revenue
	}
	if total > 0 {
		for i := range groups {
			groups[i].Share = groups[i].Revenue / total * 100
		}
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Revenue > groups[j].Revenue })
	return groups
}

// StoreComparison totals revenue, quantity and distinct orders per store,
// descending by revenue.
func StoreComparison(lines []domain.EnrichedLine) []domain.StoreSummary {
	if len(lines) == 0 {
		return nil
	}
	type group struct {
		summary domain.StoreSummary
		orders  map[snowflake.ID]struct{}
	}
	index := make(map[snowflake.ID]int)
	groups := make([]*group, 0)
	for i := range lines {
		line := &lines[i]
		at, ok := index[line.StoreID]
		if !ok {
			at = len(groups)
			index[line.StoreID] = at
			groups = append(groups, &group{
				summary: domain.StoreSummary{StoreName: line.StoreName},
				orders:  make(map[snowflake.ID]struct{}),
			})
		}
		groups[at].summary.Revenue += line.Revenue
		groups[at].summary.Quantity += int64(line.Quantity)
		groups[at].orders[line.OrderID] = struct{}{}
	}
	out := make([]domain.StoreSummary, len(groups))
	for i, g := range groups {
		g.summary.OrderCount = int64(len(g.orders))
		out[i] = g.summary
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	return out
}

// HourlyProfile sums revenue per hour of day, ascending. Only hours that
// actually saw sales appear.
func HourlyProfile(lines []domain.EnrichedLine) []domain.HourlyRevenue {
	if len(lines) == 0 {
		return nil
	}
	byHour := make(map[int]float64)
	for i := range lines {
		byHour[lines[i].Hour] += lines[i].Revenue
	}
	hours := make([]domain.HourlyRevenue, 0, len(byHour))
	for hour, revenue := range byHour {
		hours = append(hours, domain.HourlyRevenue{Hour: hour, Revenue: revenue})
	}
	sort.Slice(hours, func(i, j int) bool { return hours[i].Hour < hours[j].Hour })
	return hours
}

// LowStock lists products below the threshold, lowest stock first, capped at
// limit. It reads the whole catalog: the dashboard filters never apply here.
func LowStock(products []catalogdomain.Product, threshold, limit int) []domain.LowStockProduct {
	low := make([]domain.LowStockProduct, 0)
	for i := range products {
		p := &products[i]
		if p.Stock >= threshold {
			continue
		}
		low = append(low, domain.LowStockProduct{
			ID:       p.ID.String(),
			SKU:      p.SKU,
			Name:     p.Name,
			Category: p.Category,
			Stock:    p.Stock,
		})
	}
	sort.SliceStable(low, func(i, j int) bool { return low[i].Stock < low[j].Stock })
	if limit > 0 && len(low) > limit {
		low = low[:limit]
	}
	return low
}
