package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/events"
	"expensetracker/internal/ledger"
	"expensetracker/internal/models"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db     *gorm.DB
	events events.Publisher
	now    func() time.Time
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, publisher events.Publisher) BudgetServicer {
	return &budgetService{db: db, events: orNop(publisher), now: time.Now}
}

// CreateBudget creates a new budget for a category.
func (s *budgetService) CreateBudget(ctx context.Context, in BudgetInput) (*models.Budget, error) {
	start := in.StartDate
	if start.IsZero() {
		start = s.now()
	}

	budget := &models.Budget{
		Category:  in.Category.Normalize(),
		Amount:    in.Amount,
		Period:    in.Period,
		StartDate: start,
	}
	if err := validateBudget(budget); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	publish(ctx, s.events, events.New(events.BudgetCreated, budget.ID, map[string]any{
		"category": budget.Category,
		"amount":   budget.Amount.String(),
		"period":   budget.Period,
	}))
	return budget, nil
}

// GetBudgetByID returns a budget by ID.
func (s *budgetService) GetBudgetByID(ctx context.Context, id string) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget updates an existing budget's fields.
func (s *budgetService) UpdateBudget(ctx context.Context, id string, in BudgetUpdate) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Category != nil {
		budget.Category = in.Category.Normalize()
	}
	if in.Amount != nil {
		budget.Amount = *in.Amount
	}
	if in.Period != nil {
		budget.Period = *in.Period
	}
	if in.StartDate != nil && !in.StartDate.IsZero() {
		budget.StartDate = *in.StartDate
	}
	if err := validateBudget(budget); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Save(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	publish(ctx, s.events, events.New(events.BudgetUpdated, budget.ID, map[string]any{
		"category": budget.Category,
		"amount":   budget.Amount.String(),
		"period":   budget.Period,
	}))
	return budget, nil
}

// DeleteBudget soft-deletes a budget.
func (s *budgetService) DeleteBudget(ctx context.Context, id string) error {
	budget, err := s.GetBudgetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	publish(ctx, s.events, events.New(events.BudgetDeleted, budget.ID, nil))
	return nil
}

// ListBudgets returns every budget in creation order.
func (s *budgetService) ListBudgets(ctx context.Context) ([]models.Budget, error) {
	budgets := []models.Budget{}
	if err := s.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// GetBudgetStatus evaluates one budget against the current expenses. The
// budget and the expenses are read in the same transaction.
func (s *budgetService) GetBudgetStatus(ctx context.Context, id string) (*ledger.BudgetStatus, error) {
	var budget models.Budget
	var expenses []models.Expense
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&budget).Error; err != nil {
			return err
		}
		return tx.Order("date ASC, id ASC").Find(&expenses).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	status := ledger.Evaluate(budget, expenses, s.now())
	return &status, nil
}

// GetBudgetStatuses evaluates every budget against one snapshot. A non-nil
// active keeps only budgets whose window does, or does not, contain now.
func (s *budgetService) GetBudgetStatuses(ctx context.Context, active *bool) ([]ledger.BudgetStatus, error) {
	snap, err := loadSnapshot(ctx, s.db, true)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	all := ledger.EvaluateAll(snap.Budgets, snap.Expenses, s.now())
	if active == nil {
		return all, nil
	}

	out := make([]ledger.BudgetStatus, 0, len(all))
	for _, status := range all {
		if status.IsActive == *active {
			out = append(out, status)
		}
	}
	return out, nil
}

func validateBudget(b *models.Budget) error {
	if !b.Amount.IsPositive() {
		return apperrors.ErrInvalidBudgetAmount
	}
	if !models.HasAmountPlaces(b.Amount) {
		return apperrors.WithMessage(apperrors.ErrInvalidBudgetAmount, "Budget amount may have at most two decimal places")
	}
	if _, ok := models.ParseBudgetPeriod(string(b.Period)); !ok {
		return apperrors.ErrInvalidBudgetPeriod
	}
	return nil
}
