package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallbiznis/mercato/internal/analytics/domain"
)

func lineAt(order, store int64, category string, at time.Time, revenue float64) domain.EnrichedLine {
	return domain.EnrichedLine{
		OrderID:   id(order),
		StoreID:   id(store),
		Category:  category,
		Quantity:  1,
		UnitPrice: revenue,
		Revenue:   revenue,
		Margin:    revenue,
		OrderedAt: at,
		Date:      time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC),
		Hour:      at.Hour(),
	}
}

func TestApplyFiltersWindowAnchoredAtLatestRow(t *testing.T) {
	latest := time.Date(2026, 5, 20, 18, 0, 0, 0, time.UTC)
	lines := []domain.EnrichedLine{
		lineAt(1, 1, "Coffee", latest.AddDate(0, 0, -10), 10),
		lineAt(2, 1, "Coffee", latest.AddDate(0, 0, -3), 20),
		lineAt(3, 1, "Coffee", latest, 30),
	}

	got := ApplyFilters(lines, domain.QueryRequest{WindowDays: 7})
	require.Len(t, got, 2)
	assert.Equal(t, id(2), got[0].OrderID)
	assert.Equal(t, id(3), got[1].OrderID)
}

func TestApplyFiltersWindowBoundsInclusive(t *testing.T) {
	latest := time.Date(2026, 5, 20, 18, 0, 0, 0, time.UTC)
	start := latest.AddDate(0, 0, -7)
	lines := []domain.EnrichedLine{
		lineAt(1, 1, "Coffee", start.Add(-time.Second), 10),
		lineAt(2, 1, "Coffee", start, 20),
		lineAt(3, 1, "Coffee", latest, 30),
	}

	got := ApplyFilters(lines, domain.QueryRequest{WindowDays: 7})
	require.Len(t, got, 2)
	assert.Equal(t, id(2), got[0].OrderID)
	assert.Equal(t, id(3), got[1].OrderID)
}

func TestApplyFiltersStoreAndCategoryComposeWithAnd(t *testing.T) {
	lines := []domain.EnrichedLine{
		lineAt(1, 1, "Coffee", fixtureBase, 10),
		lineAt(2, 1, "Merch", fixtureBase, 20),
		lineAt(3, 2, "Coffee", fixtureBase, 30),
		lineAt(4, 2, "Merch", fixtureBase, 40),
	}
	store := id(1)

	got := ApplyFilters(lines, domain.QueryRequest{StoreID: &store, Category: "Coffee", WindowDays: 30})
	require.Len(t, got, 1)
	assert.Equal(t, id(1), got[0].OrderID)
}

func TestApplyFiltersPredicateOrderIrrelevant(t *testing.T) {
	lines := []domain.EnrichedLine{
		lineAt(1, 1, "Coffee", fixtureBase, 10),
		lineAt(2, 1, "Merch", fixtureBase, 20),
		lineAt(3, 2, "Coffee", fixtureBase, 30),
	}
	store := id(1)
	combined := ApplyFilters(lines, domain.QueryRequest{StoreID: &store, Category: "Coffee", WindowDays: 30})

	// Applying the predicates by hand in either order yields the same rows.
	var storeFirst []domain.EnrichedLine
	for _, l := range lines {
		if l.StoreID == store {
			storeFirst = append(storeFirst, l)
		}
	}
	var storeThenCategory []domain.EnrichedLine
	for _, l := range storeFirst {
		if l.Category == "Coffee" {
			storeThenCategory = append(storeThenCategory, l)
		}
	}

	var categoryFirst []domain.EnrichedLine
	for _, l := range lines {
		if l.Category == "Coffee" {
			categoryFirst = append(categoryFirst, l)
		}
	}
	var categoryThenStore []domain.EnrichedLine
	for _, l := range categoryFirst {
		if l.StoreID == store {
			categoryThenStore = append(categoryThenStore, l)
		}
	}

	assert.Equal(t, storeThenCategory, categoryThenStore)
	assert.Equal(t, storeThenCategory, combined)
}

func TestApplyFiltersEmptyInput(t *testing.T) {
	assert.Nil(t, ApplyFilters(nil, domain.QueryRequest{WindowDays: 30}))
	assert.Nil(t, ApplyFilters([]domain.EnrichedLine{}, domain.QueryRequest{WindowDays: 30}))
}

func TestApplyFiltersNoRowsInWindow(t *testing.T) {
	// A single row is always its own anchor, so exclusion needs two rows far
	// apart plus a narrow store filter.
	latest := time.Date(2026, 5, 20, 18, 0, 0, 0, time.UTC)
	store := id(2)
	lines := []domain.EnrichedLine{
		lineAt(1, 2, "Coffee", latest.AddDate(0, 0, -40), 10),
		lineAt(2, 1, "Coffee", latest, 30),
	}

	got := ApplyFilters(lines, domain.QueryRequest{StoreID: &store, WindowDays: 7})
	assert.Empty(t, got)
}
