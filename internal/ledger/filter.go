// Package ledger holds the pure computations over loaded expense and budget
// records: filtering, sorting, budget period evaluation and aggregation.
// Nothing here touches storage; callers pass a snapshot in and get derived
// values back.
package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"expensetracker/internal/models"
)

// CategorySet is the set of categories a filter admits.
type CategorySet map[models.Category]struct{}

// NewCategorySet builds a set from the given categories, normalizing each.
func NewCategorySet(categories ...models.Category) CategorySet {
	s := make(CategorySet, len(categories))
	for _, c := range categories {
		s[c.Normalize()] = struct{}{}
	}
	return s
}

// AllCategorySet admits every category.
func AllCategorySet() CategorySet {
	return NewCategorySet(models.AllCategories()...)
}

// Contains reports whether c is in the set.
func (s CategorySet) Contains(c models.Category) bool {
	_, ok := s[c]
	return ok
}

// IsAll reports whether every category is in the set.
func (s CategorySet) IsAll() bool {
	for _, c := range models.AllCategories() {
		if !s.Contains(c) {
			return false
		}
	}
	return true
}

// Slice returns the members in display order.
func (s CategorySet) Slice() []models.Category {
	out := make([]models.Category, 0, len(s))
	for _, c := range models.AllCategories() {
		if s.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}

// DateRange restricts expense dates to [Start, End], both inclusive.
// A zero bound is open on that side. An inactive range admits everything
// regardless of its bounds.
type DateRange struct {
	Active bool
	Start  time.Time
	End    time.Time
}

// Contains reports whether t satisfies the range.
func (r DateRange) Contains(t time.Time) bool {
	if !r.Active {
		return true
	}
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

// AmountRange restricts expense values to [Min, Max], both inclusive.
// A nil bound is unbounded on that side. An inactive range admits
// everything regardless of its bounds.
type AmountRange struct {
	Active bool
	Min    *decimal.Decimal
	Max    *decimal.Decimal
}

// Contains reports whether v satisfies the range.
func (r AmountRange) Contains(v decimal.Decimal) bool {
	if !r.Active {
		return true
	}
	if r.Min != nil && v.LessThan(*r.Min) {
		return false
	}
	if r.Max != nil && v.GreaterThan(*r.Max) {
		return false
	}
	return true
}

// FilterSpec is the combination of constraints applied to an expense list.
type FilterSpec struct {
	Search     string
	Date       DateRange
	Amount     AmountRange
	Categories CategorySet
}

// NewFilterSpec returns a spec that admits every expense.
func NewFilterSpec() FilterSpec {
	return FilterSpec{Categories: AllCategorySet()}
}

// ClearDate deactivates the date range and drops its bounds.
func (f *FilterSpec) ClearDate() {
	f.Date = DateRange{}
}

// ClearAmount deactivates the amount range and drops its bounds.
func (f *FilterSpec) ClearAmount() {
	f.Amount = AmountRange{}
}

// Reset restores the admit-everything spec.
func (f *FilterSpec) Reset() {
	*f = NewFilterSpec()
}

// IsAnyActive reports whether the spec excludes anything at all.
func (f FilterSpec) IsAnyActive() bool {
	return f.Search != "" || f.Date.Active || f.Amount.Active || !f.Categories.IsAll()
}

// Matches reports whether e satisfies every constraint of the spec.
func (f FilterSpec) Matches(e models.Expense) bool {
	return newMatcher(f).matches(e)
}

// Apply returns the expenses matching spec, in input order. The input slice
// is not modified.
func Apply(expenses []models.Expense, spec FilterSpec) []models.Expense {
	m := newMatcher(spec)
	out := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if m.matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// matcher caches the folded search needle for one Apply call.
type matcher struct {
	spec   FilterSpec
	fold   cases.Caser
	needle string
}

func newMatcher(spec FilterSpec) *matcher {
	m := &matcher{spec: spec, fold: cases.Fold()}
	if spec.Search != "" {
		m.needle = m.fold.String(spec.Search)
	}
	return m
}

func (m *matcher) matches(e models.Expense) bool {
	if m.needle != "" && !strings.Contains(m.fold.String(e.Name), m.needle) {
		return false
	}
	if !m.spec.Date.Contains(e.Date) {
		return false
	}
	if !m.spec.Amount.Contains(e.Value) {
		return false
	}
	return m.spec.Categories.Contains(e.Category.Normalize())
}
