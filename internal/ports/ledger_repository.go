package ports

import (
	"context"

	"triagem/internal/domain/triage"
)

// LedgerRepository persists the append-only triage history. There is no
// update and no delete: event ids are strictly increasing and define the
// canonical history order.
type LedgerRepository interface {
	// Append stores the event and returns it with its assigned id.
	Append(ctx context.Context, event triage.Event) (triage.Event, error)

	// Recent returns up to limit events of the category, newest first.
	Recent(ctx context.Context, categoryID uint64, limit int) ([]triage.Event, error)

	// All returns every event of the category, newest first.
	All(ctx context.Context, categoryID uint64) ([]triage.Event, error)

	// Get returns triage.ErrEventNotFound when the id does not resolve.
	// Events stay retrievable even after their category was deleted.
	Get(ctx context.Context, eventID uint64) (triage.Event, error)
}
