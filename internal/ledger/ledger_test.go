package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func exp(id, name string, date time.Time, value string, cat models.Category) models.Expense {
	e := models.Expense{
		Name:     name,
		Date:     date,
		Value:    decimal.RequireFromString(value),
		Category: cat,
	}
	e.ID = id
	return e
}

func ids(expenses []models.Expense) []string {
	out := make([]string, len(expenses))
	for i, e := range expenses {
		out[i] = e.ID
	}
	return out
}

func assertIDs(t *testing.T, got []models.Expense, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("expected ids %v, got %v", want, g)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("expected ids %v, got %v", want, g)
		}
	}
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func sample() []models.Expense {
	return []models.Expense{
		exp("a", "Morning Coffee", day(2025, time.January, 3), "4.50", models.CategoryFood),
		exp("b", "Train ticket", day(2025, time.January, 10), "32.00", models.CategoryTransportation),
		exp("c", "Groceries", day(2025, time.January, 15), "80.25", models.CategoryFood),
		exp("d", "coffee beans", day(2025, time.February, 1), "18.00", models.CategoryShopping),
		exp("e", "Mystery", day(2025, time.February, 5), "10.00", models.Category("Crypto")),
	}
}
