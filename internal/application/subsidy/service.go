// Package subsidy implements the subsidy search service: keyword and facet
// filtering, deadline classification, and the two-tier active-first sort the
// list views rely on.
package subsidy

import (
	"context"
	"sort"
	"strings"
	"time"

	domain "github.com/hiroba-develop/GrantsDB-Demo/internal/domain/subsidy"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/monitoring/logging"
	prom "github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/monitoring/prometheus"
	"github.com/hiroba-develop/GrantsDB-Demo/pkg/errors"
)

// Filter narrows a subsidy search.  Zero-value fields are ignored.  Industry
// and Purpose facets are mutually exclusive drill-downs; setting both is a
// caller error.
type Filter struct {
	// Term matches case-insensitively against name, overview, agency, and
	// the industry and purpose tags.
	Term string `json:"term"`

	// Prefecture matches exactly.
	Prefecture string `json:"prefecture"`

	Industry string `json:"industry"`
	Purpose  string `json:"purpose"`
}

// Item is a subsidy together with its deadline verdict.
type Item struct {
	domain.Subsidy
	Classification domain.Classification `json:"classification"`
}

// Service is the read-side search engine over the subsidy table.
type Service struct {
	repo       domain.Repository
	classifier domain.Classifier
	now        func() time.Time
	log        logging.Logger
	metrics    *prom.AppMetrics
}

// Option configures a Service.
type Option func(*Service)

// WithLogger attaches a logger.
func WithLogger(log logging.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithMetrics attaches search metrics.
func WithMetrics(m *prom.AppMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the time source.  The demo deployment pins it to the
// configured reference date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService builds a search service with the given closing-soon window in
// days.
func NewService(repo domain.Repository, closingSoonDays int, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		classifier: domain.Classifier{Window: closingSoonDays},
		now:        time.Now,
		log:        logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search returns the filtered subsidy list in display order: active
// programmes first, soonest deadline on top with open-ended ones after all
// dated ones, then closed programmes newest deadline first.
func (s *Service) Search(ctx context.Context, f Filter) ([]Item, error) {
	if f.Industry != "" && f.Purpose != "" {
		return nil, errors.New(errors.CodeSubsidyFilterInvalid,
			"industry and purpose filters are mutually exclusive")
	}

	start := time.Now()
	now := s.now()

	var items []Item
	for _, sub := range s.repo.List(ctx) {
		if !matches(sub, f) {
			continue
		}
		items = append(items, Item{
			Subsidy:        sub,
			Classification: s.classifier.Classify(sub.Deadline, now),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return lessActiveFirst(items[i], items[j])
	})

	if s.metrics != nil {
		prom.RecordSearch(s.metrics, "list", len(items), time.Since(start))
	}
	return items, nil
}

// SearchArchive returns every subsidy, expired ones included, newest deadline
// first.  The term additionally matches the Target field, which the archive
// view displays.
func (s *Service) SearchArchive(ctx context.Context, term string) []Item {
	start := time.Now()
	now := s.now()

	var items []Item
	for _, sub := range s.repo.List(ctx) {
		if term != "" && !matchesTerm(sub, term, true) {
			continue
		}
		items = append(items, Item{
			Subsidy:        sub,
			Classification: s.classifier.Classify(sub.Deadline, now),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		ti, iOK := domain.ParseDeadline(items[i].Deadline)
		tj, jOK := domain.ParseDeadline(items[j].Deadline)
		if iOK != jOK {
			// Open-ended entries sort after all dated ones.
			return iOK
		}
		if !iOK {
			return false
		}
		return ti.After(tj)
	})

	if s.metrics != nil {
		prom.RecordSearch(s.metrics, "archive", len(items), time.Since(start))
	}
	return items
}

// Get returns a single classified subsidy.
func (s *Service) Get(ctx context.Context, id int) (Item, error) {
	sub, err := s.repo.Get(ctx, id)
	if err != nil {
		return Item{}, err
	}
	return Item{
		Subsidy:        sub,
		Classification: s.classifier.Classify(sub.Deadline, s.now()),
	}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Predicates and ordering
// ─────────────────────────────────────────────────────────────────────────────

func matches(sub domain.Subsidy, f Filter) bool {
	if f.Prefecture != "" && sub.Prefecture != f.Prefecture {
		return false
	}
	if f.Industry != "" && !sub.HasIndustry(f.Industry) {
		return false
	}
	if f.Purpose != "" && !sub.HasPurpose(f.Purpose) {
		return false
	}
	if f.Term != "" && !matchesTerm(sub, f.Term, false) {
		return false
	}
	return true
}

func matchesTerm(sub domain.Subsidy, term string, includeTarget bool) bool {
	t := strings.ToLower(term)
	if containsFold(sub.Name, t) || containsFold(sub.Overview, t) || containsFold(sub.Agency, t) {
		return true
	}
	if includeTarget && containsFold(sub.Target, t) {
		return true
	}
	for _, tag := range sub.Industries {
		if containsFold(tag, t) {
			return true
		}
	}
	for _, tag := range sub.Purposes {
		if containsFold(tag, t) {
			return true
		}
	}
	return false
}

// containsFold checks substring containment against an already-lowercased
// needle.
func containsFold(haystack, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}

// lessActiveFirst implements the list view's display order.
func lessActiveFirst(a, b Item) bool {
	aActive := a.Classification.Active()
	bActive := b.Classification.Active()
	if aActive != bActive {
		return aActive
	}

	ta, aOK := domain.ParseDeadline(a.Deadline)
	tb, bOK := domain.ParseDeadline(b.Deadline)

	if aActive {
		// Soonest dated deadline first; open-ended entries trail.
		if aOK != bOK {
			return aOK
		}
		if !aOK {
			return false
		}
		return ta.Before(tb)
	}

	// Closed: most recently expired first.  Closed entries always carry a
	// parsed deadline.
	if !aOK || !bOK {
		return aOK
	}
	return ta.After(tb)
}
