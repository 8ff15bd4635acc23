package service

import (
	"time"

	"github.com/smallbiznis/mercato/internal/analytics/domain"
	"github.com/smallbiznis/mercato/internal/snapshot"
)

// Enrich joins every line item with its order, store and product and derives
// the per-line fields. Join semantics are strict: an item whose order, store
// or product cannot be resolved is dropped, never padded with defaults.
// Output order follows snapshot item order, so the result is deterministic
// for a given snapshot.
func Enrich(snap *snapshot.Snapshot) []domain.EnrichedLine {
	if snap == nil {
		return nil
	}
	lines := make([]domain.EnrichedLine, 0, len(snap.Items))
	for i := range snap.Items {
		item := &snap.Items[i]
		order, ok := snap.OrderByID(item.OrderID)
		if !ok {
			continue
		}
		store, ok := snap.StoreByID(order.StoreID)
		if !ok {
			continue
		}
		product, ok := snap.ProductByID(item.ProductID)
		if !ok {
			continue
		}

		cost := 0.0
		if product.Cost != nil {
			cost = *product.Cost
		}
		qty := float64(item.Quantity)
		revenue := qty * item.UnitPrice
		costTotal := qty * cost

		ts := order.CreatedAt.UTC()
		lines = append(lines, domain.EnrichedLine{
			OrderID:     order.ID,
			StoreID:     store.ID,
			StoreName:   store.Name,
			City:        store.City,
			ProductID:   product.ID,
			ProductName: product.Name,
			Category:    product.Category,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Revenue:     revenue,
			CostTotal:   costTotal,
			Margin:      revenue - costTotal,
			OrderedAt:   ts,
			Date:        time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC),
			Hour:        ts.Hour(),
		})
	}
	return lines
}
