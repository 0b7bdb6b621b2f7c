// Package preferences is the key-value store behind app settings.
package preferences

import "context"

// Well-known keys.
const (
	KeyTheme    = "theme"
	KeyCurrency = "currency"
)

// Store gets and sets string values by key.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
