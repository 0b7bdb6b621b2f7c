package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AmountPlaces is the number of decimal places stored for money columns.
const AmountPlaces = 2

// HasAmountPlaces reports whether d fits the money columns without rounding.
func HasAmountPlaces(d decimal.Decimal) bool {
	return d.Truncate(AmountPlaces).Equal(d)
}

// Expense is a single recorded spend.
type Expense struct {
	Base
	Name     string          `gorm:"not null" json:"name"`
	Date     time.Time       `gorm:"not null;index" json:"date"`
	Value    decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"value"`
	Category Category        `gorm:"type:varchar(32);not null;index" json:"category"`
}
