// Package shutdown runs ordered cleanup hooks when the process is asked to
// stop.
package shutdown

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"
	"time"

	"github.com/monebot/website/pkg/logging"
)

var ErrTimeout = errors.New("shutdown timed out")

// Hook priorities. Lower runs first.
const (
	PriorityHTTP  = 100
	PriorityLive  = 200
	PriorityStore = 300
)

// Hook is one cleanup step.
type Hook struct {
	Name     string
	Priority int
	Fn       func(ctx context.Context) error
}

// Coordinator collects hooks and runs them once.
type Coordinator struct {
	timeout time.Duration
	signals []os.Signal
	logger  logging.Logger

	mu    sync.Mutex
	hooks []Hook
	once  sync.Once
	err   error
}

// Option configures a Coordinator.
type Option func(*Coordinator)

func WithSignals(sigs ...os.Signal) Option {
	return func(c *Coordinator) { c.signals = sigs }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// New returns a coordinator that gives all hooks together timeout to finish.
func New(timeout time.Duration, opts ...Option) *Coordinator {
	c := &Coordinator{
		timeout: timeout,
		signals: []os.Signal{os.Interrupt, syscall.SIGTERM},
		logger:  logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register adds a hook.
func (c *Coordinator) Register(name string, priority int, fn func(ctx context.Context) error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, Hook{Name: name, Priority: priority, Fn: fn})
}

// Wait blocks until a signal arrives or ctx is done, then runs the hooks.
func (c *Coordinator) Wait(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, c.signals...)
	defer stop()
	<-ctx.Done()
	c.logger.Info("shutdown requested")
	return c.Shutdown()
}

// Shutdown runs the hooks in priority order. Later calls return the first
// result.
func (c *Coordinator) Shutdown() error {
	c.once.Do(func() {
		c.mu.Lock()
		hooks := append([]Hook(nil), c.hooks...)
		c.mu.Unlock()
		sort.SliceStable(hooks, func(i, j int) bool { return hooks[i].Priority < hooks[j].Priority })

		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()

		var errs []error
		for _, h := range hooks {
			start := time.Now()
			err := h.Fn(ctx)
			c.logger.Debug("shutdown hook finished",
				logging.String("hook", h.Name),
				logging.Duration("took", time.Since(start)),
				logging.Err(err),
			)
			if err != nil {
				errs = append(errs, err)
			}
			if ctx.Err() != nil {
				errs = append(errs, ErrTimeout)
				break
			}
		}
		c.err = errors.Join(errs...)
	})
	return c.err
}
