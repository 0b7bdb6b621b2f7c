package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/events"
	"expensetracker/internal/ledger"
	"expensetracker/internal/logger"
	"expensetracker/internal/models"
)

// expenseService handles expense records.
type expenseService struct {
	db     *gorm.DB
	events events.Publisher
	now    func() time.Time
}

// NewExpenseService creates a new ExpenseServicer. Changes are announced on
// publisher, which may be nil.
func NewExpenseService(db *gorm.DB, publisher events.Publisher) ExpenseServicer {
	return &expenseService{db: db, events: orNop(publisher), now: time.Now}
}

// CreateExpense stores a new expense. Unknown categories are stored as
// Other.
func (s *expenseService) CreateExpense(ctx context.Context, in ExpenseInput) (*models.Expense, error) {
	expense := &models.Expense{
		Name:     strings.TrimSpace(in.Name),
		Date:     in.Date,
		Value:    in.Value,
		Category: in.Category.Normalize(),
	}
	if err := validateExpense(expense); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	publish(ctx, s.events, events.New(events.ExpenseCreated, expense.ID, map[string]any{
		"category": expense.Category,
		"value":    expense.Value.String(),
	}))
	s.checkBudgets(ctx, expense.Category)

	return expense, nil
}

// GetExpenseByID returns a single expense.
func (s *expenseService) GetExpenseByID(ctx context.Context, id string) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateExpense changes the given fields of an expense in place.
func (s *expenseService) UpdateExpense(ctx context.Context, id string, in ExpenseUpdate) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		expense.Name = strings.TrimSpace(*in.Name)
	}
	if in.Date != nil {
		expense.Date = *in.Date
	}
	if in.Value != nil {
		expense.Value = *in.Value
	}
	if in.Category != nil {
		expense.Category = in.Category.Normalize()
	}
	if err := validateExpense(expense); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Save(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	publish(ctx, s.events, events.New(events.ExpenseUpdated, expense.ID, map[string]any{
		"category": expense.Category,
		"value":    expense.Value.String(),
	}))
	s.checkBudgets(ctx, expense.Category)

	return expense, nil
}

// DeleteExpense soft-deletes an expense.
func (s *expenseService) DeleteExpense(ctx context.Context, id string) error {
	expense, err := s.GetExpenseByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	publish(ctx, s.events, events.New(events.ExpenseDeleted, expense.ID, nil))
	return nil
}

// ListExpenses returns every expense ordered by sort. An empty key uses
// ledger.DefaultSortKey.
func (s *expenseService) ListExpenses(ctx context.Context, sort ledger.SortKey) ([]models.Expense, error) {
	return s.SearchExpenses(ctx, ledger.NewFilterSpec(), sort)
}

// SearchExpenses returns the expenses matching filter, ordered by sort.
func (s *expenseService) SearchExpenses(ctx context.Context, filter ledger.FilterSpec, sort ledger.SortKey) ([]models.Expense, error) {
	key, err := resolveSortKey(sort)
	if err != nil {
		return nil, err
	}

	snap, err := loadSnapshot(ctx, s.db, false)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return ledger.Sort(ledger.Apply(snap.Expenses, filter), key), nil
}

// checkBudgets announces every active budget of category whose spending has
// passed its amount.
func (s *expenseService) checkBudgets(ctx context.Context, category models.Category) {
	snap, err := loadSnapshot(ctx, s.db, true)
	if err != nil {
		logger.Get().Warnw("failed to load budgets for limit check", "error", err, "category", category)
		return
	}

	now := s.now()
	for _, b := range snap.Budgets {
		if b.Category.Normalize() != category {
			continue
		}
		status := ledger.Evaluate(b, snap.Expenses, now)
		if !status.IsActive || !status.Exceeded {
			continue
		}
		publish(ctx, s.events, events.New(events.BudgetExceeded, b.ID, map[string]any{
			"category":  b.Category,
			"amount":    b.Amount.String(),
			"spent":     status.Spent.String(),
			"remaining": status.Remaining.String(),
		}))
	}
}

func validateExpense(e *models.Expense) error {
	if e.Name == "" {
		return apperrors.ErrEmptyName
	}
	if e.Date.IsZero() {
		return apperrors.ErrMissingDate
	}
	if !models.HasAmountPlaces(e.Value) {
		return apperrors.ErrInvalidValue
	}
	return nil
}

func resolveSortKey(key ledger.SortKey) (ledger.SortKey, error) {
	if key == "" {
		return ledger.DefaultSortKey, nil
	}
	if _, ok := ledger.ParseSortKey(string(key)); !ok {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown sort key "+string(key))
	}
	return key, nil
}
