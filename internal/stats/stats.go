// Package stats fetches the display counters shown in the landing hero. The
// counters are best effort: any failure resolves to the static fallback.
package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/monebot/website/internal/content"
	"github.com/monebot/website/pkg/logging"
)

// DefaultTimeout bounds a single fetch.
const DefaultTimeout = 5 * time.Second

// ErrUnexpectedStatus is returned for non-2xx upstream responses.
var ErrUnexpectedStatus = errors.New("stats: unexpected status")

// Display holds the counters as rendered.
type Display struct {
	Servers string
	Members string
	Rating  string
}

// Fallback returns the counters shown before and instead of a fetch.
func Fallback() Display {
	return Display{
		Servers: content.FallbackServers,
		Members: content.FallbackMembers,
		Rating:  content.FallbackRating,
	}
}

// Count is a counter that may arrive as a JSON string or number.
type Count string

// UnmarshalJSON accepts "125K+", 125000 and null.
func (c *Count) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*c = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*c = Count(strings.TrimSpace(v))
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("stats: invalid count %s: %w", s, err)
	}
	if n <= 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		*c = ""
		return nil
	}
	*c = Count(FormatCompact(int64(n)))
	return nil
}

// Response is the payload of the stats endpoint.
type Response struct {
	Stats struct {
		ServerCount Count `json:"serverCount"`
		MemberCount Count `json:"memberCount"`
	} `json:"stats"`
}

// Fetcher reads display counters from an HTTP endpoint.
type Fetcher struct {
	client   *resty.Client
	endpoint string
	breaker  *gobreaker.CircuitBreaker
	logger   logging.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.client.SetTimeout(d)
		}
	}
}

// WithBreaker shares a circuit breaker between fetchers.
func WithBreaker(cb *gobreaker.CircuitBreaker) Option {
	return func(f *Fetcher) {
		f.breaker = cb
	}
}

// WithLogger sets the logger used for swallowed failures.
func WithLogger(l logging.Logger) Option {
	return func(f *Fetcher) {
		f.logger = l
	}
}

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(f *Fetcher) {
		timeout := f.client.GetClient().Timeout
		f.client = resty.NewWithClient(hc).SetTimeout(timeout).SetHeader("Accept", "application/json")
	}
}

// NewBreaker returns the breaker guarding the stats upstream. It opens after
// three consecutive failures and probes again after cooldown.
func NewBreaker(cooldown time.Duration, onChange func(from, to gobreaker.State)) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "stats",
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if onChange != nil {
				onChange(from, to)
			}
		},
	})
}

// NewFetcher creates a fetcher for endpoint. Without WithBreaker each fetcher
// gets its own breaker.
func NewFetcher(endpoint string, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:   resty.New().SetTimeout(DefaultTimeout).SetHeader("Accept", "application/json"),
		endpoint: endpoint,
		logger:   logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.breaker == nil {
		f.breaker = NewBreaker(30*time.Second, nil)
	}
	return f
}

// Endpoint returns the URL the fetcher reads.
func (f *Fetcher) Endpoint() string {
	return f.endpoint
}

// Fetch performs one GET. Fields that are missing or empty keep their
// fallback value. There is no retry.
func (f *Fetcher) Fetch(ctx context.Context) (Display, error) {
	out, err := f.breaker.Execute(func() (any, error) {
		var body Response
		resp, err := f.client.R().
			SetContext(ctx).
			SetResult(&body).
			ForceContentType("application/json").
			Get(f.endpoint)
		if err != nil {
			return nil, fmt.Errorf("stats: fetch %s: %w", f.endpoint, err)
		}
		if !resp.IsSuccess() {
			return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode())
		}
		return &body, nil
	})
	if err != nil {
		return Fallback(), err
	}

	body := out.(*Response)
	d := Fallback()
	if v := string(body.Stats.ServerCount); v != "" {
		d.Servers = v
	}
	if v := string(body.Stats.MemberCount); v != "" {
		d.Members = v
	}
	return d, nil
}

// Resolve is Fetch with the error swallowed.
func (f *Fetcher) Resolve(ctx context.Context) Display {
	d, err := f.Fetch(ctx)
	if err != nil {
		f.logger.Debug("stats fetch failed, using fallback",
			logging.String("endpoint", f.endpoint),
			logging.Err(err),
		)
		return Fallback()
	}
	return d
}
