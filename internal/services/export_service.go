package services

import (
	"context"
	"time"

	"expensetracker/internal/export"
	"expensetracker/internal/ledger"
	"expensetracker/internal/models"
)

// exportService renders expense lists as documents.
type exportService struct {
	expenses ExpenseServicer
	loc      *time.Location
	now      func() time.Time
}

// NewExportService creates a new ExportServicer. Dates are rendered in loc.
func NewExportService(expenses ExpenseServicer, loc *time.Location) ExportServicer {
	return &exportService{expenses: expenses, loc: orLocal(loc), now: time.Now}
}

// Export returns the matching expenses formatted as kind.
func (s *exportService) Export(ctx context.Context, filter ledger.FilterSpec, sort ledger.SortKey, kind export.Kind) ([]byte, error) {
	expenses, err := s.load(ctx, filter, sort)
	if err != nil {
		return nil, err
	}
	return export.Format(expenses, kind, s.loc)
}

// ExportToDir writes the matching expenses to a file in dir and returns its
// path.
func (s *exportService) ExportToDir(ctx context.Context, dir string, filter ledger.FilterSpec, sort ledger.SortKey, kind export.Kind) (string, error) {
	expenses, err := s.load(ctx, filter, sort)
	if err != nil {
		return "", err
	}
	return export.WriteFile(dir, expenses, kind, s.loc, s.now())
}

func (s *exportService) load(ctx context.Context, filter ledger.FilterSpec, sort ledger.SortKey) ([]models.Expense, error) {
	return s.expenses.SearchExpenses(ctx, filter, sort)
}
