package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/events"
	"expensetracker/internal/ledger"
	"expensetracker/internal/models"
	"expensetracker/internal/testutil"
)

func TestCreateExpense(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC)

	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		pub := &recordingPublisher{}
		svc := NewExpenseService(db, pub)

		expense, err := svc.CreateExpense(ctx, ExpenseInput{
			Name:     "  Lunch  ",
			Date:     date,
			Value:    decimal.RequireFromString("12.40"),
			Category: models.Category("food"),
		})
		testutil.AssertNoError(t, err)

		if expense.ID == "" {
			t.Fatal("expected expense ID")
		}
		if expense.Name != "Lunch" {
			t.Errorf("expected trimmed name, got %q", expense.Name)
		}
		if expense.Category != models.CategoryFood {
			t.Errorf("expected Food, got %s", expense.Category)
		}
		if pub.count(events.ExpenseCreated) != 1 {
			t.Error("expected expense.created event")
		}
	})

	t.Run("unknown_category_becomes_other", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, nil)

		expense, err := svc.CreateExpense(ctx, ExpenseInput{Name: "Gift", Date: date, Value: decimal.NewFromInt(5), Category: "Presents"})
		testutil.AssertNoError(t, err)
		if expense.Category != models.CategoryOther {
			t.Errorf("expected Other, got %s", expense.Category)
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, nil)

		_, err := svc.CreateExpense(ctx, ExpenseInput{Name: "   ", Date: date, Value: decimal.NewFromInt(1)})
		testutil.AssertAppError(t, err, "EMPTY_NAME")
	})

	t.Run("missing_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, nil)

		_, err := svc.CreateExpense(ctx, ExpenseInput{Name: "Taxi", Value: decimal.NewFromInt(1)})
		testutil.AssertAppError(t, err, "MISSING_DATE")
	})

	t.Run("too_many_decimal_places", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, nil)

		_, err := svc.CreateExpense(ctx, ExpenseInput{Name: "Taxi", Date: date, Value: decimal.RequireFromString("3.005")})
		testutil.AssertAppError(t, err, "INVALID_VALUE")
	})
}

func TestCreateExpense_BudgetExceeded(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	testutil.CreateTestBudgetWith(t, db, models.CategoryFood, "100", models.BudgetPeriodMonthly, now.AddDate(0, 0, -5))
	testutil.CreateTestBudgetWith(t, db, models.CategoryTravel, "10", models.BudgetPeriodMonthly, now.AddDate(0, 0, -5))

	pub := &recordingPublisher{}
	svc := NewExpenseService(db, pub)
	svc.(*expenseService).now = fixedClock(now)

	_, err := svc.CreateExpense(ctx, ExpenseInput{Name: "Groceries", Date: now, Value: decimal.NewFromInt(60), Category: models.CategoryFood})
	testutil.AssertNoError(t, err)
	if pub.count(events.BudgetExceeded) != 0 {
		t.Fatal("did not expect budget.exceeded under the limit")
	}

	_, err = svc.CreateExpense(ctx, ExpenseInput{Name: "Dinner", Date: now, Value: decimal.NewFromInt(50), Category: models.CategoryFood})
	testutil.AssertNoError(t, err)
	if pub.count(events.BudgetExceeded) != 1 {
		t.Errorf("expected one budget.exceeded event, got %d", pub.count(events.BudgetExceeded))
	}
}

func TestGetExpenseByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, nil)
		created := testutil.CreateTestExpense(t, db, "9.99")

		expense, err := svc.GetExpenseByID(ctx, created.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, expense.Value, "9.99")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, nil)

		_, err := svc.GetExpenseByID(ctx, "0190a1b2-0000-7000-8000-000000000000")
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
	})
}

func TestUpdateExpense(t *testing.T) {
	ctx := context.Background()

	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		pub := &recordingPublisher{}
		svc := NewExpenseService(db, pub)
		created := testutil.CreateTestExpense(t, db, "10")

		updated, err := svc.UpdateExpense(ctx, created.ID, ExpenseUpdate{
			Value:    ptr(decimal.RequireFromString("25.50")),
			Category: ptr(models.CategoryTravel),
		})
		testutil.AssertNoError(t, err)

		if updated.Name != created.Name {
			t.Errorf("expected name unchanged, got %q", updated.Name)
		}
		testutil.AssertDecimal(t, updated.Value, "25.5")
		if updated.Category != models.CategoryTravel {
			t.Errorf("expected Travel, got %s", updated.Category)
		}

		reloaded, err := svc.GetExpenseByID(ctx, created.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, reloaded.Value, "25.5")
		if pub.count(events.ExpenseUpdated) != 1 {
			t.Error("expected expense.updated event")
		}
	})

	t.Run("blank_name_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, nil)
		created := testutil.CreateTestExpense(t, db, "10")

		_, err := svc.UpdateExpense(ctx, created.ID, ExpenseUpdate{Name: ptr("")})
		testutil.AssertAppError(t, err, "EMPTY_NAME")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, nil)

		_, err := svc.UpdateExpense(ctx, "missing", ExpenseUpdate{Name: ptr("x")})
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
	})
}

func TestDeleteExpense(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	pub := &recordingPublisher{}
	svc := NewExpenseService(db, pub)
	created := testutil.CreateTestExpense(t, db, "10")

	testutil.AssertNoError(t, svc.DeleteExpense(ctx, created.ID))
	if pub.count(events.ExpenseDeleted) != 1 {
		t.Error("expected expense.deleted event")
	}

	_, err := svc.GetExpenseByID(ctx, created.ID)
	testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")

	err = svc.DeleteExpense(ctx, created.ID)
	testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")

	list, err := svc.ListExpenses(ctx, "")
	testutil.AssertNoError(t, err)
	if len(list) != 0 {
		t.Errorf("expected deleted expense to be hidden, got %d", len(list))
	}
}

func TestListExpenses(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewExpenseService(db, nil)

	base := time.Date(2025, time.April, 1, 9, 0, 0, 0, time.UTC)
	oldest := testutil.CreateTestExpenseWith(t, db, "Rent", "900", models.CategoryHousing, base)
	middle := testutil.CreateTestExpenseWith(t, db, "Coffee", "3", models.CategoryFood, base.AddDate(0, 0, 1))
	newest := testutil.CreateTestExpenseWith(t, db, "Movie", "15", models.CategoryEntertainment, base.AddDate(0, 0, 2))

	t.Run("default_newest_first", func(t *testing.T) {
		list, err := svc.ListExpenses(ctx, "")
		testutil.AssertNoError(t, err)
		if len(list) != 3 || list[0].ID != newest.ID || list[2].ID != oldest.ID {
			t.Errorf("unexpected order %v", []string{list[0].Name, list[1].Name, list[2].Name})
		}
	})

	t.Run("amount_asc", func(t *testing.T) {
		list, err := svc.ListExpenses(ctx, ledger.SortAmountAsc)
		testutil.AssertNoError(t, err)
		if list[0].ID != middle.ID || list[2].ID != oldest.ID {
			t.Errorf("unexpected order %v", []string{list[0].Name, list[1].Name, list[2].Name})
		}
	})

	t.Run("unknown_sort_key", func(t *testing.T) {
		_, err := svc.ListExpenses(ctx, ledger.SortKey("name"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestSearchExpenses(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewExpenseService(db, nil)

	base := time.Date(2025, time.April, 1, 9, 0, 0, 0, time.UTC)
	testutil.CreateTestExpenseWith(t, db, "Coffee beans", "18", models.CategoryShopping, base)
	latte := testutil.CreateTestExpenseWith(t, db, "Latte", "4", models.CategoryFood, base.AddDate(0, 0, 1))
	testutil.CreateTestExpenseWith(t, db, "Iced coffee", "5", models.CategoryFood, base.AddDate(0, 0, 2))

	spec := ledger.NewFilterSpec()
	spec.Search = "COFFEE"
	list, err := svc.SearchExpenses(ctx, spec, ledger.SortDateAsc)
	testutil.AssertNoError(t, err)
	if len(list) != 2 || list[0].Name != "Coffee beans" || list[1].Name != "Iced coffee" {
		t.Errorf("unexpected search result %+v", list)
	}

	spec = ledger.NewFilterSpec()
	spec.Categories = ledger.NewCategorySet(models.CategoryFood)
	ceiling := decimal.NewFromInt(4)
	spec.Amount = ledger.AmountRange{Active: true, Max: &ceiling}
	list, err = svc.SearchExpenses(ctx, spec, "")
	testutil.AssertNoError(t, err)
	if len(list) != 1 || list[0].ID != latte.ID {
		t.Errorf("expected only the latte, got %+v", list)
	}
}

func TestListExpenses_NormalizesStoredCategory(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewExpenseService(db, nil)

	err := db.Exec("INSERT INTO expenses (id, name, date, value, category) VALUES (?, ?, ?, ?, ?)",
		"0190a1b2-0000-7000-8000-00000000abcd", "Legacy", time.Now(), "7", "Crypto").Error
	testutil.AssertNoError(t, err)

	list, err := svc.ListExpenses(ctx, "")
	testutil.AssertNoError(t, err)
	if len(list) != 1 || list[0].Category != models.CategoryOther {
		t.Errorf("expected one Other expense, got %+v", list)
	}
}
