package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiroba-develop/GrantsDB-Demo/internal/testutil"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestRequestLogging_LevelByStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "ok is info", status: http.StatusOK, wantLevel: "info"},
		{name: "client error is warn", status: http.StatusNotFound, wantLevel: "warn"},
		{name: "server error is error", status: http.StatusInternalServerError, wantLevel: "error"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			log := testutil.NewMockLogger()
			r := newEngine()
			r.Use(RequestID(), RequestLogging(log, DefaultLoggingConfig()))
			r.GET("/x", func(c *gin.Context) { c.Status(tt.status) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

			msgs := log.MessagesAtLevel(tt.wantLevel)
			require.Len(t, msgs, 1)
			assert.Equal(t, "http request", msgs[0].Message)
		})
	}
}

func TestRequestLogging_SkipPaths(t *testing.T) {
	t.Parallel()

	log := testutil.NewMockLogger()
	r := newEngine()
	r.Use(RequestLogging(log, DefaultLoggingConfig()))
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Empty(t, log.GetMessages())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api", nil))
	assert.Len(t, log.GetMessages(), 1)
}

func TestRecovery_ConvertsPanic(t *testing.T) {
	t.Parallel()

	log := testutil.NewMockLogger()
	r := newEngine()
	r.Use(RequestID(), Recovery(log))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
	assert.True(t, log.HasMessage("panic recovered"))
}

func TestRequestID_GeneratesAndTrusts(t *testing.T) {
	t.Parallel()

	r := newEngine()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	// Generated when absent.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get(HeaderRequestID))

	// Trusted when supplied.
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "req-abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-abc", w.Body.String())
}
