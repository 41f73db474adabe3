package relation

import "context"

// Repository defines the persistence contract for customer-subsidy relations.
type Repository interface {
	// List returns a snapshot copy of all relations in insertion order.
	List(ctx context.Context) []Relation

	// ListByCustomer returns the relations whose CustomerID matches.
	ListByCustomer(ctx context.Context, customerID int) []Relation

	// ListBySubsidy returns the relations whose SubsidyID matches.
	ListBySubsidy(ctx context.Context, subsidyID int) []Relation

	// Upsert stores r keyed by (CustomerID, SubsidyID), replacing any
	// existing relation for the pair.
	Upsert(ctx context.Context, r Relation) error

	// Delete removes the relation for the pair.  Deleting an absent pair
	// is a no-op.
	Delete(ctx context.Context, customerID, subsidyID int) error
}
