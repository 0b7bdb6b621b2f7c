package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"expensetracker/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestExpense creates a Food expense worth value, dated now.
func CreateTestExpense(t *testing.T, db *gorm.DB, value string) *models.Expense {
	t.Helper()
	return CreateTestExpenseWith(t, db, fmt.Sprintf("Expense %d", nextID()), value, models.CategoryFood, time.Now())
}

// CreateTestExpenseWith creates an expense with every field given.
func CreateTestExpenseWith(t *testing.T, db *gorm.DB, name, value string, category models.Category, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		Name:     name,
		Date:     date,
		Value:    decimal.RequireFromString(value),
		Category: category,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestBudget creates a monthly Food budget of 100 starting today.
func CreateTestBudget(t *testing.T, db *gorm.DB) *models.Budget {
	t.Helper()
	return CreateTestBudgetWith(t, db, models.CategoryFood, "100", models.BudgetPeriodMonthly, time.Now())
}

// CreateTestBudgetWith creates a budget with every field given.
func CreateTestBudgetWith(t *testing.T, db *gorm.DB, category models.Category, amount string, period models.BudgetPeriod, start time.Time) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		Category:  category,
		Amount:    decimal.RequireFromString(amount),
		Period:    period,
		StartDate: start,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}
