package integration

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiroba-develop/GrantsDB-Demo/internal/application/export"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/application/matching"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/application/proposal"
	subsidyapp "github.com/hiroba-develop/GrantsDB-Demo/internal/application/subsidy"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/config"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/auth"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/cache"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/monitoring/logging"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/pdf"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/store/memory"
	httpserver "github.com/hiroba-develop/GrantsDB-Demo/internal/interfaces/http"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/interfaces/http/handlers"
	"github.com/hiroba-develop/GrantsDB-Demo/pkg/client"
)

// startServer boots the fully wired HTTP stack over a seeded store and
// returns an SDK client pointed at it.
func startServer(t *testing.T) *client.Client {
	t.Helper()

	ref := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	now := func() time.Time { return ref }
	log := logging.NewNopLogger()

	st := memory.NewSeeded()
	c := cache.NewMemoryCache()

	search := subsidyapp.NewService(st.Subsidies(), 30, subsidyapp.WithClock(now))
	match := matching.NewService(st.Customers(), st.Subsidies(), st.Relations(), c,
		matching.Config{
			MatchThreshold:  70,
			ClosingSoonDays: 30,
			UpcomingDays:    90,
			NewCount:        3,
			TallyTTL:        time.Minute,
		},
		matching.WithClock(now))
	props := proposal.NewService(st.Customers(), st.Subsidies(),
		pdf.NewGenerator(config.ProposalConfig{PageSize: "A4"}, log))
	exports := export.NewService(st.Subsidies())

	router := httpserver.NewRouter(httpserver.RouterConfig{
		CustomerHandler:  handlers.NewCustomerHandler(st.Customers(), match),
		SubsidyHandler:   handlers.NewSubsidyHandler(search, st.Subsidies(), match, props, exports),
		DashboardHandler: handlers.NewDashboardHandler(match),
		SessionHandler:   handlers.NewSessionHandler(auth.NewDemoAuthenticator(log), st, match),
		HealthHandler:    handlers.NewHealthHandler(c, nil, "integration"),
		Logger:           log,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	sdk, err := client.NewClient(srv.URL)
	require.NoError(t, err)
	return sdk
}

func TestAPI_SubsidySearchFlow(t *testing.T) {
	t.Parallel()
	sdk := startServer(t)
	ctx := context.Background()

	items, err := sdk.Subsidies().List(ctx, client.SearchFilter{})
	require.NoError(t, err)
	require.Len(t, items, 10)
	assert.Equal(t, 10, items[0].ID)
	assert.Equal(t, "closing_soon", items[0].Classification.Status)

	tokyo, err := sdk.Subsidies().List(ctx, client.SearchFilter{Prefecture: "東京都"})
	require.NoError(t, err)
	for _, it := range tokyo {
		assert.Equal(t, "東京都", it.Prefecture)
	}

	_, err = sdk.Subsidies().List(ctx, client.SearchFilter{Industry: "製造業", Purpose: "設備投資"})
	require.Error(t, err)
	apiErr, ok := err.(*client.APIError)
	require.True(t, ok)
	assert.Equal(t, "SUB_002", apiErr.Code)

	archive, err := sdk.Subsidies().Archive(ctx, "")
	require.NoError(t, err)
	require.Len(t, archive, 10)
	assert.Equal(t, 2, archive[0].ID)

	facets, err := sdk.Subsidies().Facets(ctx)
	require.NoError(t, err)
	assert.Contains(t, facets.Industries, "製造業")
}

func TestAPI_CustomerMatchingFlow(t *testing.T) {
	t.Parallel()
	sdk := startServer(t)
	ctx := context.Background()

	customers, err := sdk.Customers().List(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 4)

	matches, err := sdk.Customers().Subsidies(ctx, 1)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	// Deleting the customer cascades to its relations.
	require.NoError(t, sdk.Customers().Delete(ctx, 1))

	_, err = sdk.Customers().Get(ctx, 1)
	require.Error(t, err)
	apiErr, ok := err.(*client.APIError)
	require.True(t, ok)
	assert.True(t, apiErr.IsNotFound())

	byCustomer, err := sdk.Subsidies().Customers(ctx, 2)
	require.NoError(t, err)
	for _, m := range byCustomer {
		assert.NotEqual(t, 1, m.Customer.ID)
	}
}

func TestAPI_DashboardAndExports(t *testing.T) {
	t.Parallel()
	sdk := startServer(t)
	ctx := context.Background()

	summary, err := sdk.Dashboard().Summary(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, summary.NewSubsidies)
	assert.Equal(t, 10, summary.NewSubsidies[0].ID)
	require.NotEmpty(t, summary.TopCategories)
	assert.Equal(t, "全業種", summary.TopCategories[0].Category)

	tally, err := sdk.Dashboard().Categories(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, tally)

	csvData, err := sdk.Subsidies().ExportCSV(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(csvData), "id,name,agency"))

	pdfData, err := sdk.Subsidies().Proposal(ctx, 2, 1)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdfData, []byte("%PDF-")))
}

func TestAPI_ReplaceInvalidatesTally(t *testing.T) {
	t.Parallel()
	sdk := startServer(t)
	ctx := context.Background()

	before, err := sdk.Dashboard().Categories(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, before)

	// Retag the most-matched programme and confirm the tally follows.
	sub, err := sdk.Subsidies().Get(ctx, 2)
	require.NoError(t, err)
	modified := sub.Subsidy
	modified.Industries = []string{"情報通信業"}

	_, err = sdk.Subsidies().Replace(ctx, modified)
	require.NoError(t, err)

	after, err := sdk.Dashboard().Categories(ctx)
	require.NoError(t, err)

	var hasNew bool
	for _, c := range after {
		if c.Category == "情報通信業" {
			hasNew = true
		}
	}
	assert.True(t, hasNew)
}
