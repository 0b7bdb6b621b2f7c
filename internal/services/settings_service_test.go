package services

import (
	"context"
	"testing"

	"expensetracker/internal/events"
	"expensetracker/internal/models"
	"expensetracker/internal/preferences"
	"expensetracker/internal/testutil"
)

func TestGetSettings_Defaults(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSettingsService(db, preferences.NewGormStore(db), nil)

	settings, err := svc.GetSettings(ctx)
	testutil.AssertNoError(t, err)
	if settings.Theme != models.ThemeSystem || settings.Currency != "INR" {
		t.Errorf("unexpected defaults %+v", settings)
	}
}

func TestGetSettings_CorruptValuesFallBack(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	store := preferences.NewGormStore(db)
	svc := NewSettingsService(db, store, nil)

	testutil.AssertNoError(t, store.Set(ctx, preferences.KeyTheme, "neon"))
	testutil.AssertNoError(t, store.Set(ctx, preferences.KeyCurrency, "???"))

	settings, err := svc.GetSettings(ctx)
	testutil.AssertNoError(t, err)
	if settings.Theme != models.ThemeSystem || settings.Currency != "INR" {
		t.Errorf("expected fallback values, got %+v", settings)
	}
}

func TestUpdateSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db, preferences.NewGormStore(db), nil)

		settings, err := svc.UpdateSettings(ctx, SettingsUpdate{Theme: ptr(models.ThemeDark), Currency: ptr(" eur ")})
		testutil.AssertNoError(t, err)
		if settings.Theme != models.ThemeDark || settings.Currency != "EUR" {
			t.Errorf("unexpected settings %+v", settings)
		}

		settings, err = svc.UpdateSettings(ctx, SettingsUpdate{Theme: ptr(models.ThemeLight)})
		testutil.AssertNoError(t, err)
		if settings.Theme != models.ThemeLight || settings.Currency != "EUR" {
			t.Errorf("expected currency kept, got %+v", settings)
		}
	})

	t.Run("invalid_theme", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db, preferences.NewGormStore(db), nil)

		_, err := svc.UpdateSettings(ctx, SettingsUpdate{Theme: ptr(models.Theme("sepia"))})
		testutil.AssertAppError(t, err, "INVALID_THEME")
	})

	t.Run("invalid_currency_changes_nothing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db, preferences.NewGormStore(db), nil)

		_, err := svc.UpdateSettings(ctx, SettingsUpdate{Theme: ptr(models.ThemeDark), Currency: ptr("DOGE")})
		testutil.AssertAppError(t, err, "INVALID_CURRENCY")

		settings, err := svc.GetSettings(ctx)
		testutil.AssertNoError(t, err)
		if settings.Theme != models.ThemeSystem {
			t.Errorf("expected theme untouched, got %s", settings.Theme)
		}
	})
}

func TestResetAllData(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	store := preferences.NewGormStore(db)
	pub := &recordingPublisher{}
	svc := NewSettingsService(db, store, pub)

	testutil.CreateTestExpense(t, db, "1")
	deleted := testutil.CreateTestExpense(t, db, "2")
	db.Delete(deleted)
	testutil.CreateTestBudget(t, db)
	testutil.AssertNoError(t, store.Set(ctx, preferences.KeyCurrency, "USD"))

	testutil.AssertNoError(t, svc.ResetAllData(ctx))

	var expenses, budgets int64
	db.Unscoped().Model(&models.Expense{}).Count(&expenses)
	db.Unscoped().Model(&models.Budget{}).Count(&budgets)
	if expenses != 0 || budgets != 0 {
		t.Errorf("expected everything removed, got %d expenses and %d budgets", expenses, budgets)
	}
	if pub.count(events.DataReset) != 1 {
		t.Error("expected data.reset event")
	}

	settings, err := svc.GetSettings(ctx)
	testutil.AssertNoError(t, err)
	if settings.Currency != "USD" {
		t.Errorf("expected preferences kept, got %+v", settings)
	}
}
