package customer

import "context"

// Repository defines the persistence contract for customer records.
// The in-memory store in internal/infrastructure/store/memory implements it.
type Repository interface {
	// List returns a snapshot copy of all customers in insertion order.
	List(ctx context.Context) []Customer

	// Get returns the customer with the given id, or a
	// CodeCustomerNotFound error.
	Get(ctx context.Context, id int) (Customer, error)

	// Replace swaps the stored record whose ID matches c.ID for c.
	// Returns a CodeCustomerNotFound error when no such record exists;
	// replacement never creates records.
	Replace(ctx context.Context, c Customer) error

	// Delete removes the customer and cascades to its relations.
	// Deleting an absent id is a no-op.
	Delete(ctx context.Context, id int) error
}
