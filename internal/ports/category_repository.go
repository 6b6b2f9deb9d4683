package ports

import (
	"context"

	"triagem/internal/domain/triage"
)

// CategoryRepository persists the category registry. Ordering of List is
// creation order (ascending id) and is stable across processes.
type CategoryRepository interface {
	List(ctx context.Context) ([]triage.Category, error)

	// Get returns triage.ErrCategoryNotFound when the id does not resolve.
	Get(ctx context.Context, categoryID uint64) (triage.Category, error)

	// Create stores name and icon verbatim; normalization happens in the
	// usecase layer.
	Create(ctx context.Context, name string, icon string) (triage.Category, error)

	// Update returns triage.ErrCategoryNotFound when the id does not resolve.
	Update(ctx context.Context, categoryID uint64, name string, icon string) error

	// Delete removes the category row only. Cascading the vocabulary is the
	// usecase's job inside one unit of work; ledger rows are never touched.
	Delete(ctx context.Context, categoryID uint64) error

	Count(ctx context.Context) (int64, error)
}
