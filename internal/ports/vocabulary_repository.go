package ports

import "context"

// VocabularyRepository persists per-category defect labels. A label is a
// pure membership record: no identity beyond (category, label).
type VocabularyRepository interface {
	// List returns labels in insertion order.
	List(ctx context.Context, categoryID uint64) ([]string, error)

	// Add inserts the label unless it is already present in the category.
	// Duplicates are ignored silently.
	Add(ctx context.Context, categoryID uint64, label string) error

	// Remove deletes the (category, label) pair; no-op when absent.
	Remove(ctx context.Context, categoryID uint64, label string) error

	// RemoveAll drops the whole vocabulary of a category.
	RemoveAll(ctx context.Context, categoryID uint64) error
}
