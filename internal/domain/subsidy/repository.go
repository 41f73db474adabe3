package subsidy

import "context"

// Repository defines the persistence contract for subsidy records.
// The in-memory store in internal/infrastructure/store/memory implements it.
type Repository interface {
	// List returns a snapshot copy of all subsidies in insertion order.
	List(ctx context.Context) []Subsidy

	// Get returns the subsidy with the given id, or a CodeSubsidyNotFound
	// error.
	Get(ctx context.Context, id int) (Subsidy, error)

	// Replace swaps the stored record whose ID matches s.ID for s.
	// Returns a CodeSubsidyNotFound error when no such record exists;
	// replacement never creates records.
	Replace(ctx context.Context, s Subsidy) error

	// Delete removes the subsidy and cascades to its relations.
	// Deleting an absent id is a no-op.
	Delete(ctx context.Context, id int) error
}
