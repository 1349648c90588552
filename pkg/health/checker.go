// Package health reports whether the website and its dependencies are usable.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Status is the health of one check or of the whole service.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// DefaultTimeout bounds a check that sets no timeout of its own.
const DefaultTimeout = 2 * time.Second

// CheckFunc returns nil when the dependency is usable.
type CheckFunc func(ctx context.Context) error

// Result is the outcome of one check.
type Result struct {
	Status     Status `json:"status"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
	Critical   bool   `json:"critical,omitempty"`
}

// Report is the aggregated status.
type Report struct {
	Status    Status            `json:"status"`
	Checks    map[string]Result `json:"checks,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version,omitempty"`
}

type check struct {
	name     string
	fn       CheckFunc
	timeout  time.Duration
	critical bool
}

// Checker runs registered checks concurrently.
type Checker struct {
	mu      sync.RWMutex
	checks  []check
	clock   clockwork.Clock
	version string
}

// Option configures a Checker.
type Option func(*Checker)

func WithClock(clock clockwork.Clock) Option {
	return func(c *Checker) { c.clock = clock }
}

func WithVersion(version string) Option {
	return func(c *Checker) { c.version = version }
}

func NewChecker(opts ...Option) *Checker {
	c := &Checker{clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Add registers a check whose failure degrades the service.
func (c *Checker) Add(name string, fn CheckFunc, timeout time.Duration) {
	c.add(check{name: name, fn: fn, timeout: timeout})
}

// AddCritical registers a check whose failure makes the service unhealthy.
func (c *Checker) AddCritical(name string, fn CheckFunc, timeout time.Duration) {
	c.add(check{name: name, fn: fn, timeout: timeout, critical: true})
}

func (c *Checker) add(ch check) {
	if ch.timeout <= 0 {
		ch.timeout = DefaultTimeout
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks = append(c.checks, ch)
}

// Names lists registered checks in sorted order.
func (c *Checker) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.checks))
	for _, ch := range c.checks {
		names = append(names, ch.name)
	}
	sort.Strings(names)
	return names
}

// Check runs every check and aggregates the results.
func (c *Checker) Check(ctx context.Context) Report {
	c.mu.RLock()
	checks := append([]check(nil), c.checks...)
	c.mu.RUnlock()

	report := Report{
		Status:    StatusHealthy,
		Checks:    make(map[string]Result, len(checks)),
		Timestamp: c.clock.Now().UTC(),
		Version:   c.version,
	}

	results := make([]Result, len(checks))
	var wg sync.WaitGroup
	for i, ch := range checks {
		wg.Add(1)
		go func(i int, ch check) {
			defer wg.Done()
			results[i] = c.run(ctx, ch)
		}(i, ch)
	}
	wg.Wait()

	for i, ch := range checks {
		r := results[i]
		report.Checks[ch.name] = r
		if r.Status == StatusHealthy {
			continue
		}
		if ch.critical {
			report.Status = StatusUnhealthy
		} else if report.Status == StatusHealthy {
			report.Status = StatusDegraded
		}
	}
	return report
}

func (c *Checker) run(ctx context.Context, ch check) (r Result) {
	ctx, cancel := context.WithTimeout(ctx, ch.timeout)
	defer cancel()

	start := c.clock.Now()
	r = Result{Status: StatusHealthy, Critical: ch.critical}
	defer func() {
		if p := recover(); p != nil {
			r.Status = StatusUnhealthy
			r.Error = "check panicked"
		}
		r.DurationMS = c.clock.Since(start).Milliseconds()
	}()

	if err := ch.fn(ctx); err != nil {
		r.Status = StatusUnhealthy
		r.Error = err.Error()
	}
	return r
}

// Handler serves the report as JSON: 200 unless a critical check fails.
func (c *Checker) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		report := c.Check(r.Context())

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		if report.Status == StatusUnhealthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}
		_ = json.NewEncoder(w).Encode(report)
	})
}
