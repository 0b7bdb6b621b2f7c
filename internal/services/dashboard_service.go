package services

import (
	"context"
	"time"

	"expensetracker/internal/ledger"
)

// dashboardService builds spending summaries.
type dashboardService struct {
	expenses ExpenseServicer
	loc      *time.Location
	now      func() time.Time
}

// NewDashboardService creates a new DashboardServicer. Days are bucketed in
// loc.
func NewDashboardService(expenses ExpenseServicer, loc *time.Location) DashboardServicer {
	return &dashboardService{expenses: expenses, loc: orLocal(loc), now: time.Now}
}

// GetDashboard summarizes the expenses inside r that match filter.
func (s *dashboardService) GetDashboard(ctx context.Context, r ledger.TimeRange, filter ledger.FilterSpec) (*ledger.Summary, error) {
	if r == "" {
		r = ledger.DefaultTimeRange
	}

	all, err := s.expenses.SearchExpenses(ctx, filter, ledger.SortDateAsc)
	if err != nil {
		return nil, err
	}

	summary := ledger.Summarize(r, ledger.InRange(all, r, s.now().In(s.loc)), s.loc)
	return &summary, nil
}
