package service

import (
	"time"

	"github.com/smallbiznis/mercato/internal/analytics/domain"
)

// window returns the inclusive [start, end] range for the request, anchored
// at the latest timestamp across all lines. Anchoring at the data rather
// than the wall clock keeps an old dataset fully visible.
func window(lines []domain.EnrichedLine, days int) (time.Time, time.Time) {
	var end time.Time
	for i := range lines {
		if lines[i].OrderedAt.After(end) {
			end = lines[i].OrderedAt
		}
	}
	return end.AddDate(0, 0, -days), end
}

// ApplyFilters narrows lines to the requested store, category and trailing
// window. The window is computed once from the full line set; the three
// predicates are then combined with AND in a single pass, so their relative
// order never changes the result.
func ApplyFilters(lines []domain.EnrichedLine, req domain.QueryRequest) []domain.EnrichedLine {
	if len(lines) == 0 {
		return nil
	}
	start, end := window(lines, req.WindowDays)

	out := make([]domain.EnrichedLine, 0, len(lines))
	for i := range lines {
		line := &lines[i]
		if line.OrderedAt.Before(start) || line.OrderedAt.After(end) {
			continue
		}
		if req.StoreID != nil && line.StoreID != *req.StoreID {
			continue
		}
		if req.Category != "" && line.Category != req.Category {
			continue
		}
		out = append(out, *line)
	}
	return out
}
