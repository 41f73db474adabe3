// Package matching implements the customer-subsidy join views, the category
// tally behind the dashboard's "proposable subsidies" panel, and the
// dashboard summary itself.
package matching

import (
	"context"
	"sort"
	"time"

	"github.com/hiroba-develop/GrantsDB-Demo/internal/domain/customer"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/domain/relation"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/domain/subsidy"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/cache"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/monitoring/logging"
	prom "github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/monitoring/prometheus"
	"github.com/hiroba-develop/GrantsDB-Demo/pkg/types/common"
)

const tallyCacheKey = "tally:categories"

// SubsidyMatch is one subsidy matched to a customer, with the advisory
// workflow state attached.
type SubsidyMatch struct {
	Subsidy        subsidy.Subsidy        `json:"subsidy"`
	Status         relation.ProposalStatus `json:"status"`
	StatusLabel    string                 `json:"status_label"`
	MatchRate      int                    `json:"match_rate"`
	Classification subsidy.Classification `json:"classification"`
}

// CustomerMatch is one customer matched to a subsidy.
type CustomerMatch struct {
	Customer    customer.Customer       `json:"customer"`
	Status      relation.ProposalStatus `json:"status"`
	StatusLabel string                  `json:"status_label"`
	MatchRate   int                     `json:"match_rate"`
}

// CategoryCount is one row of the category tally.
type CategoryCount struct {
	Category string `json:"category"`
	// Type is "industry" or "purpose", for the UI drill-down link.
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// ExpiringSubsidy is a dashboard entry for a deadline inside the upcoming
// window.
type ExpiringSubsidy struct {
	Subsidy  subsidy.Subsidy     `json:"subsidy"`
	DaysLeft int                 `json:"days_left"`
	Urgency  common.UrgencyLevel `json:"urgency"`
}

// DashboardSummary aggregates the dashboard's three panels.
type DashboardSummary struct {
	NewSubsidies  []subsidy.Subsidy `json:"new_subsidies"`
	Expiring      []ExpiringSubsidy `json:"expiring"`
	TopCategories []CategoryCount   `json:"top_categories"`
}

// Config carries the thresholds and windows the aggregator applies.
type Config struct {
	// MatchThreshold is the exclusive lower bound on MatchRate for a
	// relation to count toward the tally.
	MatchThreshold int

	// ClosingSoonDays promotes an expiring entry to high urgency.
	ClosingSoonDays int

	// UpcomingDays bounds the expiring list.
	UpcomingDays int

	// NewCount caps the newest and expiring dashboard lists.
	NewCount int

	// TallyTTL bounds tally staleness after a store mutation.
	TallyTTL time.Duration
}

// Service joins the three record tables.
type Service struct {
	customers customer.Repository
	subsidies subsidy.Repository
	relations relation.Repository
	cache     cache.Cache
	cfg       Config
	now       func() time.Time
	log       logging.Logger
	metrics   *prom.AppMetrics
}

// Option configures a Service.
type Option func(*Service)

// WithLogger attaches a logger.
func WithLogger(log logging.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithMetrics attaches tally and cache metrics.
func WithMetrics(m *prom.AppMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService wires the aggregator.
func NewService(
	customers customer.Repository,
	subsidies subsidy.Repository,
	relations relation.Repository,
	c cache.Cache,
	cfg Config,
	opts ...Option,
) *Service {
	s := &Service{
		customers: customers,
		subsidies: subsidies,
		relations: relations,
		cache:     c,
		cfg:       cfg,
		now:       time.Now,
		log:       logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubsidiesForCustomer returns the subsidies related to a customer.
// Relations pointing at deleted subsidies are silently dropped.
func (s *Service) SubsidiesForCustomer(ctx context.Context, customerID int) ([]SubsidyMatch, error) {
	if _, err := s.customers.Get(ctx, customerID); err != nil {
		return nil, err
	}

	now := s.now()
	classifier := subsidy.Classifier{Window: s.cfg.ClosingSoonDays}

	var out []SubsidyMatch
	for _, rel := range s.relations.ListByCustomer(ctx, customerID) {
		sub, err := s.subsidies.Get(ctx, rel.SubsidyID)
		if err != nil {
			continue
		}
		out = append(out, SubsidyMatch{
			Subsidy:        sub,
			Status:         rel.Status,
			StatusLabel:    rel.Status.Label(),
			MatchRate:      rel.MatchRate,
			Classification: classifier.Classify(sub.Deadline, now),
		})
	}
	return out, nil
}

// CustomersForSubsidy returns the customers related to a subsidy.
// Relations pointing at deleted customers are silently dropped.
func (s *Service) CustomersForSubsidy(ctx context.Context, subsidyID int) ([]CustomerMatch, error) {
	if _, err := s.subsidies.Get(ctx, subsidyID); err != nil {
		return nil, err
	}

	var out []CustomerMatch
	for _, rel := range s.relations.ListBySubsidy(ctx, subsidyID) {
		c, err := s.customers.Get(ctx, rel.CustomerID)
		if err != nil {
			continue
		}
		out = append(out, CustomerMatch{
			Customer:    c,
			Status:      rel.Status,
			StatusLabel: rel.Status.Label(),
			MatchRate:   rel.MatchRate,
		})
	}
	return out, nil
}

// CategoryTally counts proposable subsidies per category: every relation
// whose match rate exceeds the threshold contributes one count to each
// industry and purpose tag of its subsidy.  Rows come back count descending;
// zero-count categories never appear.  The result is cached for TallyTTL.
func (s *Service) CategoryTally(ctx context.Context) ([]CategoryCount, error) {
	var out []CategoryCount
	err := s.cache.GetOrSet(ctx, tallyCacheKey, &out, s.cfg.TallyTTL,
		func(ctx context.Context) (interface{}, error) {
			return s.computeTally(ctx), nil
		})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// InvalidateTally drops the cached tally.  Mutation handlers call it so the
// dashboard reflects edits without waiting out the TTL.
func (s *Service) InvalidateTally(ctx context.Context) {
	if err := s.cache.Delete(ctx, tallyCacheKey); err != nil {
		s.log.Warn("tally cache invalidation failed", logging.Err(err))
	}
}

func (s *Service) computeTally(ctx context.Context) []CategoryCount {
	start := time.Now()

	type entry struct {
		count int
		typ   string
		first int
	}
	counts := map[string]*entry{}
	order := 0

	for _, rel := range s.relations.List(ctx) {
		if rel.MatchRate <= s.cfg.MatchThreshold {
			continue
		}
		sub, err := s.subsidies.Get(ctx, rel.SubsidyID)
		if err != nil {
			continue
		}
		tally := func(tags []string, typ string) {
			for _, tag := range tags {
				e := counts[tag]
				if e == nil {
					e = &entry{typ: typ, first: order}
					order++
					counts[tag] = e
				}
				e.count++
			}
		}
		tally(sub.Industries, "industry")
		tally(sub.Purposes, "purpose")
	}

	out := make([]CategoryCount, 0, len(counts))
	for cat, e := range counts {
		out = append(out, CategoryCount{Category: cat, Type: e.typ, Count: e.count})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return counts[out[i].Category].first < counts[out[j].Category].first
	})

	if s.metrics != nil {
		s.metrics.TallyComputeDuration.WithLabelValues("store").Observe(time.Since(start).Seconds())
	}
	return out
}

// DashboardSummary builds the dashboard panels: newest active subsidies,
// deadlines inside the upcoming window, and the top category tallies.
func (s *Service) DashboardSummary(ctx context.Context) (DashboardSummary, error) {
	now := s.now()
	subs := s.subsidies.List(ctx)
	classifier := subsidy.Classifier{Window: s.cfg.ClosingSoonDays}

	// Newest: id descending, closed programmes excluded.
	newest := append([]subsidy.Subsidy(nil), subs...)
	sort.SliceStable(newest, func(i, j int) bool { return newest[i].ID > newest[j].ID })
	var newList []subsidy.Subsidy
	for _, sub := range newest {
		if !classifier.Classify(sub.Deadline, now).Active() {
			continue
		}
		newList = append(newList, sub)
		if len(newList) == s.cfg.NewCount {
			break
		}
	}

	// Expiring: dated deadlines within the upcoming window, soonest first.
	var expiring []ExpiringSubsidy
	for _, sub := range subs {
		days, ok := subsidy.DaysUntil(sub.Deadline, now)
		if !ok || days < 0 || days >= s.cfg.UpcomingDays {
			continue
		}
		urgency := common.UrgencyMedium
		if days <= s.cfg.ClosingSoonDays {
			urgency = common.UrgencyHigh
		}
		expiring = append(expiring, ExpiringSubsidy{Subsidy: sub, DaysLeft: days, Urgency: urgency})
	}
	sort.SliceStable(expiring, func(i, j int) bool {
		return expiring[i].DaysLeft < expiring[j].DaysLeft
	})
	if len(expiring) > s.cfg.NewCount {
		expiring = expiring[:s.cfg.NewCount]
	}

	tally, err := s.CategoryTally(ctx)
	if err != nil {
		return DashboardSummary{}, err
	}
	if len(tally) > 5 {
		tally = tally[:5]
	}

	return DashboardSummary{
		NewSubsidies:  newList,
		Expiring:      expiring,
		TopCategories: tally,
	}, nil
}
