package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/events"
	"expensetracker/internal/logger"
	"expensetracker/internal/models"
	"expensetracker/internal/preferences"
	"expensetracker/internal/validator"
)

// DefaultCurrency is reported until the user picks one.
const DefaultCurrency = "INR"

// settingsService handles preferences and bulk data reset.
type settingsService struct {
	db     *gorm.DB
	prefs  preferences.Store
	events events.Publisher
}

// NewSettingsService creates a new SettingsServicer.
func NewSettingsService(db *gorm.DB, prefs preferences.Store, publisher events.Publisher) SettingsServicer {
	return &settingsService{db: db, prefs: prefs, events: orNop(publisher)}
}

// GetSettings returns the stored preferences. Missing or unreadable values
// fall back to the system theme and DefaultCurrency.
func (s *settingsService) GetSettings(ctx context.Context) (*Settings, error) {
	settings := &Settings{Theme: models.ThemeSystem, Currency: DefaultCurrency}

	theme, ok, err := s.prefs.Get(ctx, preferences.KeyTheme)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if ok {
		// ParseTheme falls back to ThemeSystem on its own.
		settings.Theme, _ = models.ParseTheme(theme)
	}

	currency, ok, err := s.prefs.Get(ctx, preferences.KeyCurrency)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if ok && validator.IsCurrencyCode(currency) {
		settings.Currency = currency
	}

	return settings, nil
}

// UpdateSettings stores the given preferences and returns the result.
func (s *settingsService) UpdateSettings(ctx context.Context, in SettingsUpdate) (*Settings, error) {
	var theme, currency string
	if in.Theme != nil {
		t, ok := models.ParseTheme(string(*in.Theme))
		if !ok {
			return nil, apperrors.ErrInvalidTheme
		}
		theme = string(t)
	}
	if in.Currency != nil {
		currency = strings.ToUpper(strings.TrimSpace(*in.Currency))
		if !validator.IsCurrencyCode(currency) {
			return nil, apperrors.ErrInvalidCurrency
		}
	}

	if theme != "" {
		if err := s.prefs.Set(ctx, preferences.KeyTheme, theme); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	if currency != "" {
		if err := s.prefs.Set(ctx, preferences.KeyCurrency, currency); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetSettings(ctx)
}

// ResetAllData permanently deletes every expense and budget. Preferences
// are kept.
func (s *settingsService) ResetAllData(ctx context.Context) error {
	var expenses, budgets int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Unscoped().Where("1 = 1").Delete(&models.Expense{})
		if res.Error != nil {
			return res.Error
		}
		expenses = res.RowsAffected

		res = tx.Unscoped().Where("1 = 1").Delete(&models.Budget{})
		if res.Error != nil {
			return res.Error
		}
		budgets = res.RowsAffected
		return nil
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("All data reset", "expenses", expenses, "budgets", budgets)
	publish(ctx, s.events, events.New(events.DataReset, "", map[string]any{
		"expenses": expenses,
		"budgets":  budgets,
	}))
	return nil
}
