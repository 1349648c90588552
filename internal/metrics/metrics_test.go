package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monebot/website/pkg/core"
)

func TestHooks_Connections(t *testing.T) {
	m := New()
	hooks := m.Hooks()

	hooks.OnConnect("home")
	hooks.OnConnect("home")
	hooks.OnDisconnect("home", core.TerminateNormal)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ConnectionsActive.WithLabelValues("home")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ConnectionsTotal.WithLabelValues("home")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DisconnectsTotal.WithLabelValues("home", "normal")))
}

func TestHooks_Events(t *testing.T) {
	m := New()
	hooks := m.Hooks()

	hooks.OnEvent("webhooks", "select_event", nil)
	hooks.OnEvent("webhooks", "select_event", nil)
	hooks.OnEvent("webhooks", "bogus", errors.New("unknown event"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.EventsTotal.WithLabelValues("webhooks", "select_event", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsTotal.WithLabelValues("webhooks", "bogus", "error")))
}

func TestHooks_Diffs(t *testing.T) {
	m := New()
	m.Hooks().OnDiff("api_docs", 2)
	m.Hooks().OnDiff("api_docs", 1)

	assert.Equal(t, 1, testutil.CollectAndCount(m.DiffSlots))
}

func TestBreakerObserver(t *testing.T) {
	m := New()
	observe := m.BreakerObserver("stats")
	assert.Equal(t, 0.0, testutil.ToFloat64(m.BreakerState.WithLabelValues("stats")))

	observe(gobreaker.StateClosed, gobreaker.StateOpen)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.BreakerState.WithLabelValues("stats")))

	observe(gobreaker.StateOpen, gobreaker.StateHalfOpen)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BreakerState.WithLabelValues("stats")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BreakerTransitions.WithLabelValues("stats", "open")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.Hooks().OnConnect("home")
	m.ObserveHTTP("/", http.StatusOK, 20*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `monebot_web_live_connections_active{page="home"} 1`))
	assert.Contains(t, body, "monebot_web_http_request_duration_seconds")
	assert.Contains(t, body, "go_goroutines")
}

func TestNew_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New()
		New()
	})
}
