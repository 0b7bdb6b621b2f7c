// Package events notifies interested parties about record store changes.
package events

import (
	"context"
	"errors"
	"time"
)

// Kind identifies what happened.
type Kind string

const (
	ExpenseCreated Kind = "expense.created"
	ExpenseUpdated Kind = "expense.updated"
	ExpenseDeleted Kind = "expense.deleted"
	BudgetCreated  Kind = "budget.created"
	BudgetUpdated  Kind = "budget.updated"
	BudgetDeleted  Kind = "budget.deleted"
	BudgetExceeded Kind = "budget.exceeded"
	DataReset      Kind = "data.reset"
)

// Event is a single change notification.
type Event struct {
	Kind       Kind           `json:"kind"`
	ResourceID string         `json:"resource_id,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data,omitempty"`
}

// New returns an event stamped with the current time.
func New(kind Kind, resourceID string, data map[string]any) Event {
	return Event{Kind: kind, ResourceID: resourceID, OccurredAt: time.Now().UTC(), Data: data}
}

// Publisher delivers events.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop discards every event.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, Event) error { return nil }

// Fanout delivers each event to every publisher and joins their errors.
type Fanout []Publisher

// Publish implements Publisher.
func (f Fanout) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
