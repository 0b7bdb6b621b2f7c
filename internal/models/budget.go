package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod represents the length of a budget's window.
type BudgetPeriod string

const (
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// ParseBudgetPeriod reports whether s names a known period.
func ParseBudgetPeriod(s string) (BudgetPeriod, bool) {
	switch p := BudgetPeriod(s); p {
	case BudgetPeriodWeekly, BudgetPeriodMonthly, BudgetPeriodYearly:
		return p, true
	}
	return "", false
}

// AddTo advances t by exactly one unit of the period using calendar
// arithmetic in t's location. Month and year steps clamp the day of month
// to the last day of the target month, so Jan 31 + 1 month is the last day
// of February and Feb 29 + 1 year is Feb 28.
func (p BudgetPeriod) AddTo(t time.Time) time.Time {
	switch p {
	case BudgetPeriodWeekly:
		return t.AddDate(0, 0, 7)
	case BudgetPeriodMonthly:
		return addMonthsClamped(t, 1)
	case BudgetPeriodYearly:
		return addMonthsClamped(t, 12)
	}
	return t
}

func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()

	// Day 1 never overflows, so time.Date only has to carry the month.
	target := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(target.Year(), target.Month()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, hour, minute, sec, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Budget is a spending ceiling for one category over a recurring window.
// Expenses are matched to it at read time by category and date; there is no
// stored relation.
type Budget struct {
	Base
	Category  Category        `gorm:"type:varchar(32);not null;index" json:"category"`
	Amount    decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Period    BudgetPeriod    `gorm:"type:varchar(16);not null" json:"period"`
	StartDate time.Time       `gorm:"not null" json:"start_date"`
}

// EndDate is StartDate advanced by one period.
func (b Budget) EndDate() time.Time {
	return b.Period.AddTo(b.StartDate)
}

// IsActive reports whether now falls within [StartDate, EndDate], both ends
// inclusive.
func (b Budget) IsActive(now time.Time) bool {
	return !now.Before(b.StartDate) && !now.After(b.EndDate())
}
