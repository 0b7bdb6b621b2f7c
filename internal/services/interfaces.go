package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/export"
	"expensetracker/internal/ledger"
	"expensetracker/internal/models"
)

// ExpenseInput holds the fields of a new expense.
type ExpenseInput struct {
	Name     string
	Date     time.Time
	Value    decimal.Decimal
	Category models.Category
}

// ExpenseUpdate holds the fields to change on an expense. Nil fields are
// left as they are.
type ExpenseUpdate struct {
	Name     *string
	Date     *time.Time
	Value    *decimal.Decimal
	Category *models.Category
}

// ExpenseServicer defines the contract for expense records.
type ExpenseServicer interface {
	CreateExpense(ctx context.Context, in ExpenseInput) (*models.Expense, error)
	GetExpenseByID(ctx context.Context, id string) (*models.Expense, error)
	UpdateExpense(ctx context.Context, id string, in ExpenseUpdate) (*models.Expense, error)
	DeleteExpense(ctx context.Context, id string) error
	ListExpenses(ctx context.Context, sort ledger.SortKey) ([]models.Expense, error)
	SearchExpenses(ctx context.Context, filter ledger.FilterSpec, sort ledger.SortKey) ([]models.Expense, error)
}

// BudgetInput holds the fields of a new budget. A zero StartDate means now.
type BudgetInput struct {
	Category  models.Category
	Amount    decimal.Decimal
	Period    models.BudgetPeriod
	StartDate time.Time
}

// BudgetUpdate holds the fields to change on a budget. Nil fields are left
// as they are.
type BudgetUpdate struct {
	Category  *models.Category
	Amount    *decimal.Decimal
	Period    *models.BudgetPeriod
	StartDate *time.Time
}

// BudgetServicer defines the contract for budgets and their progress.
type BudgetServicer interface {
	CreateBudget(ctx context.Context, in BudgetInput) (*models.Budget, error)
	GetBudgetByID(ctx context.Context, id string) (*models.Budget, error)
	UpdateBudget(ctx context.Context, id string, in BudgetUpdate) (*models.Budget, error)
	DeleteBudget(ctx context.Context, id string) error
	ListBudgets(ctx context.Context) ([]models.Budget, error)
	GetBudgetStatus(ctx context.Context, id string) (*ledger.BudgetStatus, error)
	GetBudgetStatuses(ctx context.Context, active *bool) ([]ledger.BudgetStatus, error)
}

// DashboardServicer defines the contract for spending summaries.
type DashboardServicer interface {
	GetDashboard(ctx context.Context, r ledger.TimeRange, filter ledger.FilterSpec) (*ledger.Summary, error)
}

// ExportServicer defines the contract for exporting expenses.
type ExportServicer interface {
	Export(ctx context.Context, filter ledger.FilterSpec, sort ledger.SortKey, kind export.Kind) ([]byte, error)
	ExportToDir(ctx context.Context, dir string, filter ledger.FilterSpec, sort ledger.SortKey, kind export.Kind) (string, error)
}

// Settings are the user's app preferences.
type Settings struct {
	Theme    models.Theme `json:"theme"`
	Currency string       `json:"currency"`
}

// SettingsUpdate holds the preferences to change. Nil fields are left as
// they are.
type SettingsUpdate struct {
	Theme    *models.Theme
	Currency *string
}

// SettingsServicer defines the contract for preferences and data reset.
type SettingsServicer interface {
	GetSettings(ctx context.Context) (*Settings, error)
	UpdateSettings(ctx context.Context, in SettingsUpdate) (*Settings, error)
	ResetAllData(ctx context.Context) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
