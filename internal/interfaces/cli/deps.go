package cli

import (
	"context"
	"time"

	"github.com/hiroba-develop/GrantsDB-Demo/internal/application/export"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/application/matching"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/application/proposal"
	subsidyapp "github.com/hiroba-develop/GrantsDB-Demo/internal/application/subsidy"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/cache"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/pdf"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/store/memory"
)

func contextWithCLI(ctx context.Context, c *CLIContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, cliContextKey{}, c)
}

// localServices is the in-process service graph the CLI commands run
// against.  Every invocation starts from the seed dataset.
type localServices struct {
	Store    *memory.Store
	Search   *subsidyapp.Service
	Matching *matching.Service
	Proposal *proposal.Service
	Export   *export.Service
}

// buildLocal wires the full application stack over a freshly seeded store.
func buildLocal(cliCtx *CLIContext) *localServices {
	cfg := cliCtx.Config
	log := cliCtx.Logger

	now := time.Now
	if ref, ok := cfg.Matching.ReferenceTime(); ok {
		now = func() time.Time { return ref }
	}

	st := memory.NewSeeded(memory.WithLogger(log))
	c := cache.NewMemoryCache()

	search := subsidyapp.NewService(st.Subsidies(), cfg.Matching.ClosingSoonDays,
		subsidyapp.WithClock(now), subsidyapp.WithLogger(log))
	match := matching.NewService(st.Customers(), st.Subsidies(), st.Relations(), c,
		matching.Config{
			MatchThreshold:  cfg.Matching.MatchThreshold,
			ClosingSoonDays: cfg.Matching.ClosingSoonDays,
			UpcomingDays:    cfg.Matching.UpcomingDays,
			NewCount:        cfg.Matching.DashboardNewCount,
			TallyTTL:        cfg.Cache.TallyTTL,
		},
		matching.WithClock(now), matching.WithLogger(log))
	props := proposal.NewService(st.Customers(), st.Subsidies(),
		pdf.NewGenerator(cfg.Proposal, log), proposal.WithLogger(log))
	exports := export.NewService(st.Subsidies(), export.WithLogger(log))

	return &localServices{
		Store:    st,
		Search:   search,
		Matching: match,
		Proposal: props,
		Export:   exports,
	}
}
