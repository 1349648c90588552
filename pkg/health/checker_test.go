package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(ctx context.Context) error { return nil }

func TestCheck_AllPass(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	hc := NewChecker(WithClock(clock), WithVersion("1.2.3"))
	hc.Add("stats", ok, time.Second)
	hc.AddCritical("items", ok, time.Second)

	report := hc.Check(context.Background())
	assert.Equal(t, StatusHealthy, report.Status)
	assert.Equal(t, "1.2.3", report.Version)
	assert.True(t, clock.Now().Equal(report.Timestamp))
	require.Len(t, report.Checks, 2)
	assert.True(t, report.Checks["items"].Critical)
	assert.Equal(t, []string{"items", "stats"}, hc.Names())
}

func TestCheck_NonCriticalFailureDegrades(t *testing.T) {
	hc := NewChecker()
	hc.AddCritical("items", ok, time.Second)
	hc.Add("stats", func(ctx context.Context) error { return errors.New("breaker open") }, time.Second)

	report := hc.Check(context.Background())
	assert.Equal(t, StatusDegraded, report.Status)
	assert.Equal(t, StatusUnhealthy, report.Checks["stats"].Status)
	assert.Equal(t, "breaker open", report.Checks["stats"].Error)
}

func TestCheck_CriticalFailure(t *testing.T) {
	hc := NewChecker()
	hc.Add("stats", func(ctx context.Context) error { return errors.New("x") }, time.Second)
	hc.AddCritical("items", func(ctx context.Context) error { return errors.New("db down") }, time.Second)

	assert.Equal(t, StatusUnhealthy, hc.Check(context.Background()).Status)
}

func TestCheck_Timeout(t *testing.T) {
	hc := NewChecker()
	hc.AddCritical("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}, 10*time.Millisecond)

	report := hc.Check(context.Background())
	assert.Equal(t, StatusUnhealthy, report.Status)
	assert.Contains(t, report.Checks["slow"].Error, "deadline exceeded")
}

func TestCheck_Panic(t *testing.T) {
	hc := NewChecker()
	hc.Add("boom", func(ctx context.Context) error { panic("oops") }, time.Second)

	report := hc.Check(context.Background())
	assert.Equal(t, StatusDegraded, report.Status)
	assert.Equal(t, "check panicked", report.Checks["boom"].Error)
}

func TestCheck_NoChecks(t *testing.T) {
	assert.Equal(t, StatusHealthy, NewChecker().Check(context.Background()).Status)
}

func TestHandler(t *testing.T) {
	hc := NewChecker()
	hc.Add("stats", ok, 0)

	rec := httptest.NewRecorder()
	hc.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var report Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, StatusHealthy, report.Status)

	hc.AddCritical("items", func(ctx context.Context) error { return errors.New("down") }, 0)
	rec = httptest.NewRecorder()
	hc.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
