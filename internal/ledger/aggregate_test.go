package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/models"
)

func TestByCategory(t *testing.T) {
	d := day(2025, time.January, 1)

	t.Run("sorted_by_total_desc", func(t *testing.T) {
		got := ByCategory([]models.Expense{
			exp("1", "x", d, "10", models.CategoryFood),
			exp("2", "x", d, "5", models.CategoryFood),
			exp("3", "x", d, "20", models.CategoryTravel),
		})
		if len(got) != 2 {
			t.Fatalf("expected 2 groups, got %d", len(got))
		}
		if got[0].Category != models.CategoryTravel || !got[0].Total.Equal(decimal.NewFromInt(20)) {
			t.Errorf("expected (Travel,20), got (%s,%s)", got[0].Category, got[0].Total)
		}
		if got[1].Category != models.CategoryFood || !got[1].Total.Equal(decimal.NewFromInt(15)) {
			t.Errorf("expected (Food,15), got (%s,%s)", got[1].Category, got[1].Total)
		}
	})

	t.Run("ties_keep_first_seen_order", func(t *testing.T) {
		got := ByCategory([]models.Expense{
			exp("1", "x", d, "5", models.CategoryHealth),
			exp("2", "x", d, "5", models.CategoryFood),
			exp("3", "x", d, "5", models.CategoryEducation),
		})
		want := []models.Category{models.CategoryHealth, models.CategoryFood, models.CategoryEducation}
		for i, c := range want {
			if got[i].Category != c {
				t.Errorf("index %d: expected %s, got %s", i, c, got[i].Category)
			}
		}
	})

	t.Run("unknown_labels_grouped_as_other", func(t *testing.T) {
		got := ByCategory([]models.Expense{
			exp("1", "x", d, "1", models.Category("Pets")),
			exp("2", "x", d, "2", models.CategoryOther),
		})
		if len(got) != 1 || got[0].Category != models.CategoryOther || !got[0].Total.Equal(decimal.NewFromInt(3)) {
			t.Errorf("expected single Other group of 3, got %+v", got)
		}
	})

	t.Run("empty", func(t *testing.T) {
		got := ByCategory(nil)
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", got)
		}
	})
}

func TestByDay(t *testing.T) {
	got := ByDay([]models.Expense{
		exp("1", "x", time.Date(2025, time.March, 2, 23, 0, 0, 0, time.UTC), "3", models.CategoryFood),
		exp("2", "x", time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC), "1", models.CategoryFood),
		exp("3", "x", time.Date(2025, time.March, 2, 1, 0, 0, 0, time.UTC), "2", models.CategoryTravel),
	}, time.UTC)

	if len(got) != 2 {
		t.Fatalf("expected 2 days, got %d", len(got))
	}
	if !got[0].Day.Equal(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)) || !got[0].Total.Equal(decimal.NewFromInt(1)) {
		t.Errorf("unexpected first day %+v", got[0])
	}
	if !got[1].Day.Equal(time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC)) || !got[1].Total.Equal(decimal.NewFromInt(5)) {
		t.Errorf("unexpected second day %+v", got[1])
	}
}

func TestByDay_UsesReportingLocation(t *testing.T) {
	kolkata := time.FixedZone("IST", 5*60*60+30*60)
	// 20:00 UTC on Mar 1 is already Mar 2 in IST.
	got := ByDay([]models.Expense{
		exp("1", "x", time.Date(2025, time.March, 1, 20, 0, 0, 0, time.UTC), "4", models.CategoryFood),
		exp("2", "x", time.Date(2025, time.March, 2, 10, 0, 0, 0, time.UTC), "6", models.CategoryFood),
	}, kolkata)

	if len(got) != 1 {
		t.Fatalf("expected both expenses on one IST day, got %+v", got)
	}
	if y, m, d := got[0].Day.Date(); y != 2025 || m != time.March || d != 2 {
		t.Errorf("expected 2025-03-02, got %v", got[0].Day)
	}
	if !got[0].Total.Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected total 10, got %s", got[0].Total)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(RangeAll, sample(), time.UTC)
	if s.Count != 5 {
		t.Errorf("expected count 5, got %d", s.Count)
	}
	if !s.Total.Equal(decimal.RequireFromString("144.75")) {
		t.Errorf("expected total 144.75, got %s", s.Total)
	}
	if s.ByCategory[0].Category != models.CategoryFood {
		t.Errorf("expected Food first, got %s", s.ByCategory[0].Category)
	}
	if len(s.ByDay) != 5 {
		t.Errorf("expected 5 days, got %d", len(s.ByDay))
	}
}
