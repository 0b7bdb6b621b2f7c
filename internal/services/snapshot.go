package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"expensetracker/internal/events"
	"expensetracker/internal/logger"
	"expensetracker/internal/models"
)

// snapshot is one coherent read of the record store.
type snapshot struct {
	Expenses []models.Expense
	Budgets  []models.Budget
}

// loadSnapshot reads every live expense and budget inside one transaction,
// so derived values never mix rows from before and after a concurrent write.
func loadSnapshot(ctx context.Context, db *gorm.DB, withBudgets bool) (*snapshot, error) {
	snap := &snapshot{}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("date ASC, id ASC").Find(&snap.Expenses).Error; err != nil {
			return err
		}
		if withBudgets {
			if err := tx.Order("created_at ASC, id ASC").Find(&snap.Budgets).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// publish hands e to p and logs delivery failures. Notifications never fail
// the write that caused them.
func publish(ctx context.Context, p events.Publisher, e events.Event) {
	if err := p.Publish(ctx, e); err != nil {
		logger.Get().Warnw("failed to publish event",
			"error", err,
			"kind", e.Kind,
			"resource_id", e.ResourceID,
		)
	}
}

func orNop(p events.Publisher) events.Publisher {
	if p == nil {
		return events.Nop{}
	}
	return p
}

func orLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
