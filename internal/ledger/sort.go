package ledger

import (
	"slices"

	"expensetracker/internal/models"
)

// SortKey names the field and direction of an expense ordering.
type SortKey string

const (
	SortDateAsc    SortKey = "date_asc"
	SortDateDesc   SortKey = "date_desc"
	SortAmountAsc  SortKey = "amount_asc"
	SortAmountDesc SortKey = "amount_desc"
)

// DefaultSortKey lists the newest expenses first.
const DefaultSortKey = SortDateDesc

// ParseSortKey reports whether s names a known sort key.
func ParseSortKey(s string) (SortKey, bool) {
	switch k := SortKey(s); k {
	case SortDateAsc, SortDateDesc, SortAmountAsc, SortAmountDesc:
		return k, true
	}
	return "", false
}

// Sort returns a new slice ordered by key. Equal elements keep their input
// order. An unknown key returns a copy in input order.
func Sort(expenses []models.Expense, key SortKey) []models.Expense {
	out := slices.Clone(expenses)
	if cmp := comparator(key); cmp != nil {
		slices.SortStableFunc(out, cmp)
	}
	return out
}

func comparator(key SortKey) func(a, b models.Expense) int {
	switch key {
	case SortDateAsc:
		return func(a, b models.Expense) int { return a.Date.Compare(b.Date) }
	case SortDateDesc:
		return func(a, b models.Expense) int { return b.Date.Compare(a.Date) }
	case SortAmountAsc:
		return func(a, b models.Expense) int { return a.Value.Cmp(b.Value) }
	case SortAmountDesc:
		return func(a, b models.Expense) int { return b.Value.Cmp(a.Value) }
	}
	return nil
}
