// Package copyflag tracks which snippet was copied last and clears the
// acknowledgement after a delay.
package copyflag

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultDelay is how long a copy acknowledgement stays visible.
const DefaultDelay = 2 * time.Second

// Token identifies one Mark call.
type Token uint64

// Expired is posted to a live socket mailbox when a mark's delay elapses.
type Expired struct {
	Token Token
}

// Indicator holds at most one copied key at a time.
type Indicator struct {
	clock clockwork.Clock
	delay time.Duration

	mu    sync.Mutex
	key   string
	token Token
	timer clockwork.Timer
}

// Option configures an Indicator.
type Option func(*Indicator)

// WithClock injects the clock timers are scheduled on.
func WithClock(c clockwork.Clock) Option {
	return func(i *Indicator) {
		i.clock = c
	}
}

// New creates an indicator that clears after delay. A non-positive delay
// uses DefaultDelay.
func New(delay time.Duration, opts ...Option) *Indicator {
	if delay <= 0 {
		delay = DefaultDelay
	}
	i := &Indicator{
		clock: clockwork.NewRealClock(),
		delay: delay,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Delay returns the acknowledgement duration.
func (i *Indicator) Delay() time.Duration {
	return i.delay
}

// Mark sets key as copied and schedules onExpire with the returned token.
// A previous pending expiry is stopped; if it already fired, Expire ignores
// its stale token.
func (i *Indicator) Mark(key string, onExpire func(Token)) Token {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.timer != nil {
		i.timer.Stop()
	}
	i.token++
	i.key = key
	token := i.token
	i.timer = i.clock.AfterFunc(i.delay, func() {
		if onExpire != nil {
			onExpire(token)
		}
	})
	return token
}

// Expire clears the key if token is still the latest mark.
func (i *Indicator) Expire(token Token) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	if token != i.token || i.key == "" {
		return false
	}
	i.key = ""
	i.timer = nil
	return true
}

// Current returns the copied key, or "".
func (i *Indicator) Current() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.key
}

// IsCopied reports whether key is the current copied key.
func (i *Indicator) IsCopied(key string) bool {
	return key != "" && i.Current() == key
}

// Stop cancels the pending expiry without clearing the key.
func (i *Indicator) Stop() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.timer != nil {
		i.timer.Stop()
		i.timer = nil
	}
}
