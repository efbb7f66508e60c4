package stats

import (
	"slices"

	"github.com/shopspring/decimal"
)

// CategoryBreakdown sums amounts per category in first-seen order.
func CategoryBreakdown(records []Record) []CategoryAmount {
	breakdown := make([]CategoryAmount, 0)
	index := make(map[string]int)
	for _, r := range records {
		category := normalizeCategory(r.Category)
		i, ok := index[category]
		if !ok {
			i = len(breakdown)
			index[category] = i
			breakdown = append(breakdown, CategoryAmount{Category: category, Amount: decimal.Zero})
		}
		breakdown[i].Amount = breakdown[i].Amount.Add(r.Amount)
	}
	return breakdown
}

// TopCategories returns the n largest categories. Equal amounts keep their
// breakdown order.
func TopCategories(breakdown []CategoryAmount, n int) []CategoryAmount {
	sorted := slices.Clone(breakdown)
	slices.SortStableFunc(sorted, func(a, b CategoryAmount) int {
		return b.Amount.Cmp(a.Amount)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
