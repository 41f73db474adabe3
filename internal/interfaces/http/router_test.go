package http

import (
	"bytes"
	"encoding/json"
	"net/http"
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
	"github.com/hiroba-develop/GrantsDB-Demo/internal/interfaces/http/handlers"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/interfaces/http/middleware"
)

// envelope mirrors common.APIResponse for decoding without committing to a
// payload type.
type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	RequestID string          `json:"request_id"`
	Error     *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) http.Handler {
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

	return NewRouter(RouterConfig{
		CustomerHandler:  handlers.NewCustomerHandler(st.Customers(), match),
		SubsidyHandler:   handlers.NewSubsidyHandler(search, st.Subsidies(), match, props, exports),
		DashboardHandler: handlers.NewDashboardHandler(match),
		SessionHandler:   handlers.NewSessionHandler(auth.NewDemoAuthenticator(log), st, match),
		HealthHandler:    handlers.NewHealthHandler(c, nil, "test"),
		Logger:           log,
	})
}

func do(t *testing.T, h http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestRouter_SubsidyList(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	w := do(t, h, http.MethodGet, "/api/v1/subsidies", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	env := decode(t, w)
	require.True(t, env.Success)
	assert.NotEmpty(t, env.RequestID)

	var items []struct {
		ID             int `json:"id"`
		Classification struct {
			Status string `json:"status"`
		} `json:"classification"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 10)
	assert.Equal(t, 10, items[0].ID)
	assert.Equal(t, "closing_soon", items[0].Classification.Status)
}

func TestRouter_SubsidyList_Filtered(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	w := do(t, h, http.MethodGet, "/api/v1/subsidies?prefecture=%E5%85%A8%E5%9B%BD", "")
	require.Equal(t, http.StatusOK, w.Code)

	env := decode(t, w)
	var items []struct {
		Prefecture string `json:"prefecture"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.NotEmpty(t, items)
	for _, it := range items {
		assert.Equal(t, "全国", it.Prefecture)
	}
}

func TestRouter_SubsidyList_FacetConflict(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	w := do(t, h, http.MethodGet,
		"/api/v1/subsidies?industry=%E8%A3%BD%E9%80%A0%E6%A5%AD&purpose=%E8%A8%AD%E5%82%99%E6%8A%95%E8%B3%87", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	env := decode(t, w)
	require.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "SUB_002", env.Error.Code)
}

func TestRouter_SubsidyArchive(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	w := do(t, h, http.MethodGet, "/api/v1/subsidies/archive", "")
	require.Equal(t, http.StatusOK, w.Code)

	env := decode(t, w)
	var items []struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 10)
	assert.Equal(t, 2, items[0].ID)
}

func TestRouter_SubsidyFacets(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	w := do(t, h, http.MethodGet, "/api/v1/subsidies/facets", "")
	require.Equal(t, http.StatusOK, w.Code)

	env := decode(t, w)
	var facets struct {
		Industries  []string `json:"industries"`
		Purposes    []string `json:"purposes"`
		Prefectures []string `json:"prefectures"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &facets))
	assert.Contains(t, facets.Industries, "製造業")
	assert.NotEmpty(t, facets.Purposes)
	assert.NotEmpty(t, facets.Prefectures)
}

func TestRouter_SubsidyGet(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	w := do(t, h, http.MethodGet, "/api/v1/subsidies/5", "")
	require.Equal(t, http.StatusOK, w.Code)

	env := decode(t, w)
	var item struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &item))
	assert.Equal(t, 5, item.ID)

	w = do(t, h, http.MethodGet, "/api/v1/subsidies/999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	env = decode(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "SUB_001", env.Error.Code)
}

func TestRouter_InvalidPathID(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	w := do(t, h, http.MethodGet, "/api/v1/customers/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodGet, "/api/v1/customers/0", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_CustomerLifecycle(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	w := do(t, h, http.MethodGet, "/api/v1/customers", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &list))
	require.Len(t, list, 4)

	body := `{"name":"株式会社A改","industry":"製造業","scale":"従業員80名","location":"東京都","issues":"販路拡大"}`
	w = do(t, h, http.MethodPut, "/api/v1/customers/1", body)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodGet, "/api/v1/customers/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &got))
	assert.Equal(t, 1, got.ID)
	assert.Equal(t, "株式会社A改", got.Name)

	w = do(t, h, http.MethodDelete, "/api/v1/customers/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodGet, "/api/v1/customers/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Relations went with the customer.
	w = do(t, h, http.MethodGet, "/api/v1/subsidies/2/customers", "")
	require.Equal(t, http.StatusOK, w.Code)
	var matches []struct {
		Customer struct {
			ID int `json:"id"`
		} `json:"customer"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &matches))
	for _, m := range matches {
		assert.NotEqual(t, 1, m.Customer.ID)
	}
}

func TestRouter_CustomerSubsidies(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	w := do(t, h, http.MethodGet, "/api/v1/customers/1/subsidies", "")
	require.Equal(t, http.StatusOK, w.Code)

	var matches []struct {
		Subsidy struct {
			ID int `json:"id"`
		} `json:"subsidy"`
		StatusLabel string `json:"status_label"`
		MatchRate   int    `json:"match_rate"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &matches))
	require.Len(t, matches, 2)
	ids := []int{matches[0].Subsidy.ID, matches[1].Subsidy.ID}
	assert.ElementsMatch(t, []int{2, 3}, ids)
}

func TestRouter_ExportCSV(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	w := do(t, h, http.MethodGet, "/api/v1/subsidies/export.csv", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "subsidies.csv")
	assert.True(t, strings.HasPrefix(w.Body.String(), "id,name,agency"))
}

func TestRouter_ProposalPDF(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	w := do(t, h, http.MethodPost, "/api/v1/subsidies/2/proposal", `{"customer_id":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "proposal_1_2.pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}

func TestRouter_Proposal_BadRequest(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	w := do(t, h, http.MethodPost, "/api/v1/subsidies/2/proposal", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/api/v1/subsidies/2/proposal", `{"customer_id":999}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_Dashboard(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	w := do(t, h, http.MethodGet, "/api/v1/dashboard/summary", "")
	require.Equal(t, http.StatusOK, w.Code)

	var summary struct {
		NewSubsidies []struct {
			ID int `json:"id"`
		} `json:"new_subsidies"`
		Expiring []struct {
			DaysLeft int    `json:"days_left"`
			Urgency  string `json:"urgency"`
		} `json:"expiring"`
		TopCategories []struct {
			Category string `json:"category"`
			Count    int    `json:"count"`
		} `json:"top_categories"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &summary))
	require.NotEmpty(t, summary.NewSubsidies)
	assert.Equal(t, 10, summary.NewSubsidies[0].ID)
	require.NotEmpty(t, summary.Expiring)
	assert.Equal(t, "HIGH", summary.Expiring[0].Urgency)

	w = do(t, h, http.MethodGet, "/api/v1/dashboard/categories", "")
	require.Equal(t, http.StatusOK, w.Code)
	var tally []struct {
		Category string `json:"category"`
		Count    int    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &tally))
	require.NotEmpty(t, tally)
	assert.Equal(t, "全業種", tally[0].Category)
}

func TestRouter_Session(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	w := do(t, h, http.MethodPost, "/api/v1/session", `{"email":"anyone@example.com","password":"whatever"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var sess struct {
		Token    string `json:"token"`
		Identity struct {
			Email       string `json:"email"`
			DisplayName string `json:"display_name"`
		} `json:"identity"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &sess))
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, "demo@example.com", sess.Identity.Email)
	assert.Equal(t, "デモユーザー", sess.Identity.DisplayName)

	w = do(t, h, http.MethodGet, "/api/v1/session", "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_SessionReset(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	w := do(t, h, http.MethodDelete, "/api/v1/customers/3", "")
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, h, http.MethodGet, "/api/v1/customers/3", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodPost, "/api/v1/session/reset", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodGet, "/api/v1/customers/3", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	w := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"up"`)
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/subsidies", nil)
	req.Header.Set("Origin", "https://demo.example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_RequestIDPropagation(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-fixed-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-fixed-123", w.Header().Get(middleware.HeaderRequestID))
	assert.Equal(t, "req-fixed-123", decode(t, w).RequestID)
}
