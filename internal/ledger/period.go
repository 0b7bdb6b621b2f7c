package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/models"
)

var one = decimal.NewFromInt(1)

// EndDate is the budget's start date advanced by one period.
func EndDate(b models.Budget) time.Time {
	return b.EndDate()
}

// IsActive reports whether now falls within the budget's window.
func IsActive(b models.Budget, now time.Time) bool {
	return b.IsActive(now)
}

// PeriodExpenses returns the expenses of the budget's category dated within
// [StartDate, EndDate], in input order.
func PeriodExpenses(b models.Budget, expenses []models.Expense) []models.Expense {
	category := b.Category.Normalize()
	window := DateRange{Active: true, Start: b.StartDate, End: b.EndDate()}

	out := make([]models.Expense, 0)
	for _, e := range expenses {
		if e.Category.Normalize() == category && window.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}

// Spent sums the values of the budget's period expenses.
func Spent(b models.Budget, expenses []models.Expense) decimal.Decimal {
	return Total(PeriodExpenses(b, expenses))
}

// Remaining is the budget amount minus what was spent. Negative values
// signal overspend.
func Remaining(b models.Budget, expenses []models.Expense) decimal.Decimal {
	return b.Amount.Sub(Spent(b, expenses))
}

// Progress is spent/amount clamped to [0, 1].
// A budget whose amount is zero or negative has nothing left to spend, so
// its progress is 1.
func Progress(b models.Budget, expenses []models.Expense) float64 {
	return progress(Spent(b, expenses), b.Amount)
}

func progress(spent, amount decimal.Decimal) float64 {
	if !amount.IsPositive() {
		return 1
	}
	ratio := spent.Div(amount)
	switch {
	case ratio.GreaterThanOrEqual(one):
		return 1
	case ratio.IsNegative():
		return 0
	}
	return ratio.InexactFloat64()
}

// BudgetStatus is a budget together with the values derived for its window.
type BudgetStatus struct {
	Budget    models.Budget   `json:"budget"`
	EndDate   time.Time       `json:"end_date"`
	IsActive  bool            `json:"is_active"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
	Progress  float64         `json:"progress"`
	Exceeded  bool            `json:"exceeded"`
}

// Evaluate derives the full status of b at now from expenses.
func Evaluate(b models.Budget, expenses []models.Expense, now time.Time) BudgetStatus {
	spent := Spent(b, expenses)
	return BudgetStatus{
		Budget:    b,
		EndDate:   b.EndDate(),
		IsActive:  b.IsActive(now),
		Spent:     spent,
		Remaining: b.Amount.Sub(spent),
		Progress:  progress(spent, b.Amount),
		Exceeded:  spent.GreaterThan(b.Amount),
	}
}

// EvaluateAll evaluates every budget against the same expense snapshot.
func EvaluateAll(budgets []models.Budget, expenses []models.Expense, now time.Time) []BudgetStatus {
	out := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, Evaluate(b, expenses, now))
	}
	return out
}
