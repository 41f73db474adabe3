package matching_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiroba-develop/GrantsDB-Demo/internal/application/matching"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/domain/relation"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/cache"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/store/memory"
	"github.com/hiroba-develop/GrantsDB-Demo/pkg/errors"
	"github.com/hiroba-develop/GrantsDB-Demo/pkg/types/common"
)

var referenceDate = time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) (*memory.Store, *matching.Service) {
	t.Helper()
	store := memory.NewSeeded()
	svc := matching.NewService(
		store.Customers(), store.Subsidies(), store.Relations(),
		cache.NewMemoryCache(),
		matching.Config{
			MatchThreshold:  70,
			ClosingSoonDays: 30,
			UpcomingDays:    90,
			NewCount:        2,
			TallyTTL:        time.Minute,
		},
		matching.WithClock(func() time.Time { return referenceDate }),
	)
	return store, svc
}

func TestSubsidiesForCustomer(t *testing.T) {
	t.Parallel()

	_, svc := newFixture(t)
	matches, err := svc.SubsidiesForCustomer(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, 2, matches[0].Subsidy.ID)
	assert.Equal(t, relation.StatusProposed, matches[0].Status)
	assert.Equal(t, "提案済", matches[0].StatusLabel)
	assert.Equal(t, 85, matches[0].MatchRate)

	assert.Equal(t, 3, matches[1].Subsidy.ID)
	assert.Equal(t, "未提案", matches[1].StatusLabel)
}

func TestSubsidiesForCustomerUnknownCustomer(t *testing.T) {
	t.Parallel()

	_, svc := newFixture(t)
	_, err := svc.SubsidiesForCustomer(context.Background(), 999)
	require.Error(t, err)
	assert.Equal(t, errors.CodeCustomerNotFound, errors.GetCode(err))
}

func TestSubsidiesForCustomerDropsDanglingRelations(t *testing.T) {
	t.Parallel()

	store, svc := newFixture(t)
	ctx := context.Background()

	// Plant a relation to a subsidy that is then deleted out from under it
	// by bypassing the cascade: simulate by upserting a reference to an id
	// that never existed.
	require.NoError(t, store.Relations().Upsert(ctx, relation.Relation{
		CustomerID: 1, SubsidyID: 9999, Status: relation.StatusProposed, MatchRate: 80,
	}))

	matches, err := svc.SubsidiesForCustomer(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestCustomersForSubsidy(t *testing.T) {
	t.Parallel()

	_, svc := newFixture(t)
	matches, err := svc.CustomersForSubsidy(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "株式会社A", matches[0].Customer.Name)
	assert.Equal(t, 85, matches[0].MatchRate)

	_, err = svc.CustomersForSubsidy(context.Background(), 999)
	require.Error(t, err)
	assert.Equal(t, errors.CodeSubsidyNotFound, errors.GetCode(err))
}

func TestCategoryTally(t *testing.T) {
	t.Parallel()

	_, svc := newFixture(t)
	tally, err := svc.CategoryTally(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, tally)

	byCategory := map[string]matching.CategoryCount{}
	for _, row := range tally {
		byCategory[row.Category] = row
	}

	// Qualifying relations (rate strictly above 70): (1,2,85), (2,5,95),
	// (3,9,90), (4,1,90).  Subsidy 2, 5, 9, 1 tags contribute once each.
	assert.Equal(t, 2, byCategory["全業種"].Count)
	assert.Equal(t, "industry", byCategory["全業種"].Type)
	assert.Equal(t, 1, byCategory["製造業"].Count)
	assert.Equal(t, 1, byCategory["DX"].Count)
	assert.Equal(t, "purpose", byCategory["DX"].Type)
	assert.Equal(t, 1, byCategory["創業支援"].Count)

	// The rate-70 relation (1,3) is excluded: the threshold is exclusive.
	assert.NotContains(t, byCategory, "設備投資")
	// The rate-65 relation (2,8) is excluded too.
	assert.NotContains(t, byCategory, "防犯")

	// Count-descending order.
	for i := 1; i < len(tally); i++ {
		assert.GreaterOrEqual(t, tally[i-1].Count, tally[i].Count)
	}
	assert.Equal(t, "全業種", tally[0].Category)
}

func TestCategoryTallyCachedUntilInvalidated(t *testing.T) {
	t.Parallel()

	store, svc := newFixture(t)
	ctx := context.Background()

	before, err := svc.CategoryTally(ctx)
	require.NoError(t, err)

	// A new qualifying relation does not appear until invalidation.
	require.NoError(t, store.Relations().Upsert(ctx, relation.Relation{
		CustomerID: 4, SubsidyID: 8, Status: relation.StatusProposed, MatchRate: 99,
	}))

	cached, err := svc.CategoryTally(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, cached)

	svc.InvalidateTally(ctx)

	after, err := svc.CategoryTally(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, before, after)

	found := false
	for _, row := range after {
		if row.Category == "防犯" {
			found = true
		}
	}
	assert.True(t, found, "new qualifying relation should surface after invalidation")
}

func TestDashboardSummary(t *testing.T) {
	t.Parallel()

	_, svc := newFixture(t)
	sum, err := svc.DashboardSummary(context.Background())
	require.NoError(t, err)

	// Newest active subsidies by id descending: 10 and 9.
	require.Len(t, sum.NewSubsidies, 2)
	assert.Equal(t, 10, sum.NewSubsidies[0].ID)
	assert.Equal(t, 9, sum.NewSubsidies[1].ID)

	// Expiring within 90 days, soonest first: 10 (21 days), 9 (22 days).
	require.Len(t, sum.Expiring, 2)
	assert.Equal(t, 10, sum.Expiring[0].Subsidy.ID)
	assert.Equal(t, 21, sum.Expiring[0].DaysLeft)
	assert.Equal(t, common.UrgencyHigh, sum.Expiring[0].Urgency)
	assert.Equal(t, 9, sum.Expiring[1].Subsidy.ID)
	assert.Equal(t, 22, sum.Expiring[1].DaysLeft)

	require.NotEmpty(t, sum.TopCategories)
	assert.LessOrEqual(t, len(sum.TopCategories), 5)
	assert.Equal(t, "全業種", sum.TopCategories[0].Category)
}

func TestDashboardSummaryUrgencyMedium(t *testing.T) {
	t.Parallel()

	// Widen the list so the 41-day deadline (subsidy 4, 2025-09-30) shows up
	// with medium urgency.
	store := memory.NewSeeded()
	svc := matching.NewService(
		store.Customers(), store.Subsidies(), store.Relations(),
		cache.NewMemoryCache(),
		matching.Config{
			MatchThreshold:  70,
			ClosingSoonDays: 30,
			UpcomingDays:    90,
			NewCount:        10,
			TallyTTL:        time.Minute,
		},
		matching.WithClock(func() time.Time { return referenceDate }),
	)

	sum, err := svc.DashboardSummary(context.Background())
	require.NoError(t, err)

	var found bool
	for _, e := range sum.Expiring {
		if e.Subsidy.ID == 4 {
			found = true
			assert.Equal(t, 41, e.DaysLeft)
			assert.Equal(t, common.UrgencyMedium, e.Urgency)
		}
	}
	require.True(t, found)

	// Open-ended and far-future deadlines never enter the expiring list.
	for _, e := range sum.Expiring {
		assert.NotEqual(t, 7, e.Subsidy.ID)
		assert.NotEqual(t, 2, e.Subsidy.ID)
	}
}
