// Package memory provides the in-memory record store backing the demo
// deployment.  A single Store holds the customer, subsidy, and relation
// tables behind one RWMutex and exposes them through the per-domain
// repository contracts.  All data lives in process; Reset restores the
// embedded seed dataset.
package memory

import (
	"context"
	"sync"

	"github.com/hiroba-develop/GrantsDB-Demo/internal/domain/customer"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/domain/relation"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/domain/subsidy"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/monitoring/logging"
	prom "github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/monitoring/prometheus"
	"github.com/hiroba-develop/GrantsDB-Demo/pkg/errors"
)

// Store is the shared in-memory database.  Zero value is not usable; use
// New or NewSeeded.
type Store struct {
	mu        sync.RWMutex
	customers []customer.Customer
	subsidies []subsidy.Subsidy
	relations []relation.Relation

	log     logging.Logger
	metrics *prom.AppMetrics
}

// Option configures a Store.
type Option func(*Store)

// WithLogger attaches a logger; without it the store logs nowhere.
func WithLogger(log logging.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithMetrics attaches record-count gauges and mutation counters.
func WithMetrics(m *prom.AppMetrics) Option {
	return func(s *Store) { s.metrics = m }
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{log: logging.NewNopLogger()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSeeded returns a store loaded with the embedded demo dataset.
func NewSeeded(opts ...Option) *Store {
	s := New(opts...)
	s.Reset(context.Background())
	return s
}

// Reset discards all current data and reloads the seed dataset.  The demo
// session reset endpoint calls this.
func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	s.customers = seedCustomers()
	s.subsidies = seedSubsidies()
	s.relations = seedRelations()
	nc, ns, nr := len(s.customers), len(s.subsidies), len(s.relations)
	s.mu.Unlock()

	s.updateRecordGauges()
	s.log.Info("store reset to seed dataset",
		logging.Int("customers", nc),
		logging.Int("subsidies", ns),
		logging.Int("relations", nr))
}

// Customers exposes the customer table behind its repository contract.
func (s *Store) Customers() customer.Repository { return customerRepo{s} }

// Subsidies exposes the subsidy table behind its repository contract.
func (s *Store) Subsidies() subsidy.Repository { return subsidyRepo{s} }

// Relations exposes the relation table behind its repository contract.
func (s *Store) Relations() relation.Repository { return relationRepo{s} }

// ─────────────────────────────────────────────────────────────────────────────
// Customers
// ─────────────────────────────────────────────────────────────────────────────

type customerRepo struct{ s *Store }

func (r customerRepo) List(ctx context.Context) []customer.Customer {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]customer.Customer(nil), r.s.customers...)
}

func (r customerRepo) Get(ctx context.Context, id int) (customer.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return customer.Customer{}, errors.Newf(errors.CodeCustomerNotFound, "customer %d not found", id)
}

func (r customerRepo) Replace(ctx context.Context, c customer.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.customers {
		if r.s.customers[i].ID == c.ID {
			r.s.customers[i] = c
			r.s.recordMutationLocked("customer", "replace")
			return nil
		}
	}
	return errors.Newf(errors.CodeCustomerNotFound, "customer %d not found", c.ID)
}

// Delete removes the customer and every relation that references it, so no
// dangling joins survive.  Subsidies the customer was matched to are kept.
func (r customerRepo) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	kept := r.s.customers[:0]
	removed := false
	for _, c := range r.s.customers {
		if c.ID == id {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	r.s.customers = kept
	cascaded := 0
	if removed {
		cascaded = r.s.dropRelationsLocked(func(rel relation.Relation) bool {
			return rel.CustomerID == id
		})
		r.s.recordMutationLocked("customer", "delete")
	}
	r.s.mu.Unlock()

	if removed {
		r.s.updateRecordGauges()
		r.s.log.Info("customer deleted",
			logging.Int("customer_id", id),
			logging.Int("relations_removed", cascaded))
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Subsidies
// ─────────────────────────────────────────────────────────────────────────────

type subsidyRepo struct{ s *Store }

func (r subsidyRepo) List(ctx context.Context) []subsidy.Subsidy {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]subsidy.Subsidy, 0, len(r.s.subsidies))
	for _, sub := range r.s.subsidies {
		out = append(out, sub.Clone())
	}
	return out
}

func (r subsidyRepo) Get(ctx context.Context, id int) (subsidy.Subsidy, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, sub := range r.s.subsidies {
		if sub.ID == id {
			return sub.Clone(), nil
		}
	}
	return subsidy.Subsidy{}, errors.Newf(errors.CodeSubsidyNotFound, "subsidy %d not found", id)
}

func (r subsidyRepo) Replace(ctx context.Context, sub subsidy.Subsidy) error {
	if err := sub.Validate(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.subsidies {
		if r.s.subsidies[i].ID == sub.ID {
			r.s.subsidies[i] = sub.Clone()
			r.s.recordMutationLocked("subsidy", "replace")
			return nil
		}
	}
	return errors.Newf(errors.CodeSubsidyNotFound, "subsidy %d not found", sub.ID)
}

// Delete removes the subsidy and every relation that references it,
// mirroring the customer-side cascade.
func (r subsidyRepo) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	kept := r.s.subsidies[:0]
	removed := false
	for _, sub := range r.s.subsidies {
		if sub.ID == id {
			removed = true
			continue
		}
		kept = append(kept, sub)
	}
	r.s.subsidies = kept
	cascaded := 0
	if removed {
		cascaded = r.s.dropRelationsLocked(func(rel relation.Relation) bool {
			return rel.SubsidyID == id
		})
		r.s.recordMutationLocked("subsidy", "delete")
	}
	r.s.mu.Unlock()

	if removed {
		r.s.updateRecordGauges()
		r.s.log.Info("subsidy deleted",
			logging.Int("subsidy_id", id),
			logging.Int("relations_removed", cascaded))
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Relations
// ─────────────────────────────────────────────────────────────────────────────

type relationRepo struct{ s *Store }

func (r relationRepo) List(ctx context.Context) []relation.Relation {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]relation.Relation(nil), r.s.relations...)
}

func (r relationRepo) ListByCustomer(ctx context.Context, customerID int) []relation.Relation {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []relation.Relation
	for _, rel := range r.s.relations {
		if rel.CustomerID == customerID {
			out = append(out, rel)
		}
	}
	return out
}

func (r relationRepo) ListBySubsidy(ctx context.Context, subsidyID int) []relation.Relation {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []relation.Relation
	for _, rel := range r.s.relations {
		if rel.SubsidyID == subsidyID {
			out = append(out, rel)
		}
	}
	return out
}

// Upsert keeps at most one relation per (customer, subsidy) pair: an
// existing record for the pair is overwritten in place, otherwise the
// relation is appended.
func (r relationRepo) Upsert(ctx context.Context, rel relation.Relation) error {
	if err := rel.Validate(); err != nil {
		return err
	}

	r.s.mu.Lock()
	op := "create"
	for i := range r.s.relations {
		if r.s.relations[i].CustomerID == rel.CustomerID && r.s.relations[i].SubsidyID == rel.SubsidyID {
			r.s.relations[i] = rel
			op = "update"
			break
		}
	}
	if op == "create" {
		r.s.relations = append(r.s.relations, rel)
	}
	r.s.recordMutationLocked("relation", op)
	r.s.mu.Unlock()

	r.s.updateRecordGauges()
	return nil
}

func (r relationRepo) Delete(ctx context.Context, customerID, subsidyID int) error {
	r.s.mu.Lock()
	removed := r.s.dropRelationsLocked(func(rel relation.Relation) bool {
		return rel.CustomerID == customerID && rel.SubsidyID == subsidyID
	})
	if removed > 0 {
		r.s.recordMutationLocked("relation", "delete")
	}
	r.s.mu.Unlock()

	if removed > 0 {
		r.s.updateRecordGauges()
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Internals
// ─────────────────────────────────────────────────────────────────────────────

// dropRelationsLocked removes every relation matching the predicate and
// returns the count.  Caller must hold the write lock.
func (s *Store) dropRelationsLocked(match func(relation.Relation) bool) int {
	kept := s.relations[:0]
	removed := 0
	for _, rel := range s.relations {
		if match(rel) {
			removed++
			continue
		}
		kept = append(kept, rel)
	}
	s.relations = kept
	return removed
}

func (s *Store) recordMutationLocked(kind, op string) {
	if s.metrics == nil {
		return
	}
	s.metrics.StoreMutationsTotal.WithLabelValues(kind, op).Inc()
}

func (s *Store) updateRecordGauges() {
	if s.metrics == nil {
		return
	}
	s.mu.RLock()
	nc, ns, nr := len(s.customers), len(s.subsidies), len(s.relations)
	s.mu.RUnlock()

	s.metrics.StoreRecordsTotal.WithLabelValues("customer").Set(float64(nc))
	s.metrics.StoreRecordsTotal.WithLabelValues("subsidy").Set(float64(ns))
	s.metrics.StoreRecordsTotal.WithLabelValues("relation").Set(float64(nr))
}
