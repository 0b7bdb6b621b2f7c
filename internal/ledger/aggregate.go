package ledger

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/models"
)

// CategoryTotal is the summed value of one category.
type CategoryTotal struct {
	Category models.Category `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// DayTotal is the summed value of one calendar day.
type DayTotal struct {
	Day   time.Time       `json:"day"`
	Total decimal.Decimal `json:"total"`
}

// Total sums the values of expenses.
func Total(expenses []models.Expense) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range expenses {
		sum = sum.Add(e.Value)
	}
	return sum
}

// ByCategory sums values per category, largest total first. Categories
// with equal totals keep the order in which they were first seen.
func ByCategory(expenses []models.Expense) []CategoryTotal {
	index := make(map[models.Category]int)
	var out []CategoryTotal
	for _, e := range expenses {
		c := e.Category.Normalize()
		i, ok := index[c]
		if !ok {
			i = len(out)
			index[c] = i
			out = append(out, CategoryTotal{Category: c, Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(e.Value)
	}

	slices.SortStableFunc(out, func(a, b CategoryTotal) int {
		return b.Total.Cmp(a.Total)
	})
	if out == nil {
		out = []CategoryTotal{}
	}
	return out
}

// ByDay sums values per calendar day in loc, earliest day first.
func ByDay(expenses []models.Expense, loc *time.Location) []DayTotal {
	index := make(map[time.Time]int)
	out := []DayTotal{}
	for _, e := range expenses {
		day := StartOfDay(e.Date, loc)
		i, ok := index[day]
		if !ok {
			i = len(out)
			index[day] = i
			out = append(out, DayTotal{Day: day, Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(e.Value)
	}

	slices.SortFunc(out, func(a, b DayTotal) int {
		return a.Day.Compare(b.Day)
	})
	return out
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = t.Location()
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Summary is the dashboard view of an expense set.
type Summary struct {
	Range      TimeRange       `json:"range"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
	ByCategory []CategoryTotal `json:"by_category"`
	ByDay      []DayTotal      `json:"by_day"`
}

// Summarize aggregates expenses for the dashboard.
func Summarize(r TimeRange, expenses []models.Expense, loc *time.Location) Summary {
	return Summary{
		Range:      r,
		Total:      Total(expenses),
		Count:      len(expenses),
		ByCategory: ByCategory(expenses),
		ByDay:      ByDay(expenses, loc),
	}
}
