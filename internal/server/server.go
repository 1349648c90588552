// Package server assembles the website: live pages, JSON API, static client
// script, health, metrics and crawler files behind one HTTP handler.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"
	"github.com/sony/gobreaker"

	"github.com/monebot/website/client"
	"github.com/monebot/website/internal/api"
	"github.com/monebot/website/internal/config"
	"github.com/monebot/website/internal/content"
	"github.com/monebot/website/internal/items"
	"github.com/monebot/website/internal/metrics"
	"github.com/monebot/website/internal/pages"
	"github.com/monebot/website/internal/site"
	"github.com/monebot/website/internal/stats"
	"github.com/monebot/website/pkg/health"
	"github.com/monebot/website/pkg/logging"
	"github.com/monebot/website/pkg/router"
	"github.com/monebot/website/pkg/transport"
)

const (
	PathHealth  = "/health"
	PathMetrics = "/metrics"
	PathRobots  = "/robots.txt"
	PathSitemap = "/sitemap.xml"
)

// breakerCooldown is how long the stats breaker stays open before probing.
const breakerCooldown = 30 * time.Second

var ErrNoConfig = errors.New("server: config is required")

type Server struct {
	cfg     *config.Config
	logger  logging.Logger
	clock   clockwork.Clock
	version string

	store   items.Repository
	stats   pages.StatsSource
	breaker *gobreaker.CircuitBreaker
	metrics *metrics.Metrics
	health  *health.Checker
	live    *router.Router

	handler http.Handler
	http    *http.Server
}

// Option configures a Server.
type Option func(*Server)

func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithItems replaces the in-memory item store.
func WithItems(store items.Repository) Option {
	return func(s *Server) { s.store = store }
}

// WithStats replaces the HTTP statistics fetcher.
func WithStats(src pages.StatsSource) Option {
	return func(s *Server) { s.stats = src }
}

func WithClock(clock clockwork.Clock) Option {
	return func(s *Server) { s.clock = clock }
}

func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// New builds the handler tree for cfg.
func New(cfg *config.Config, opts ...Option) (*Server, error) {
	if cfg == nil {
		return nil, ErrNoConfig
	}
	s := &Server{
		cfg:     cfg,
		logger:  logging.NopLogger{},
		clock:   clockwork.NewRealClock(),
		metrics: metrics.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = items.NewMemoryStore(items.WithClock(s.clock))
	}

	s.breaker = stats.NewBreaker(breakerCooldown, s.metrics.BreakerObserver("stats"))
	if s.stats == nil {
		s.stats = stats.NewFetcher(cfg.StatsURL(),
			stats.WithTimeout(cfg.Stats.Timeout),
			stats.WithBreaker(s.breaker),
			stats.WithLogger(s.logger.With(logging.String("component", "stats"))),
		)
	}

	s.health = health.NewChecker(health.WithClock(s.clock), health.WithVersion(s.version))
	s.health.AddCritical("items", s.store.Ping, 2*time.Second)
	s.health.Add("stats", s.checkStatsBreaker, time.Second)

	s.handler = s.routes()
	s.http = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s, nil
}

func (s *Server) routes() http.Handler {
	tc := transport.DefaultConfig()
	tc.AllowedOrigins = s.cfg.Server.AllowedOrigins

	s.live = router.New(
		router.WithLogger(s.logger.With(logging.String("component", "router"))),
		router.WithLayout(site.Layout(site.LayoutOptions{
			BaseURL: s.cfg.Site.BaseURL,
			OGImage: content.LogoURL,
		})),
		router.WithHooks(s.metrics.Hooks()),
		router.WithTransportConfig(tc),
		router.WithMaxSessions(s.cfg.Server.MaxSessions),
	)

	s.live.Use(
		middleware.RealIP,
		middleware.CleanPath,
		logging.RequestLogger(s.logger),
		router.Recovery(s.logger),
		s.observe,
		router.SecureHeaders(router.DefaultSecureHeadersConfig()),
		refreshHeader(pages.PathDashboard, s.cfg.Site.DashboardURL),
	)

	pages.Register(s.live, pages.Options{
		DashboardURL: s.cfg.Site.DashboardURL,
		InviteURL:    s.cfg.Site.InviteURL,
		CopyDelay:    s.cfg.UI.CopyReset,
		Clock:        s.clock,
		Stats:        s.stats,
	})

	apiHandler := api.New(s.store, api.Options{
		ServerCount: s.cfg.Stats.ServerCount,
		MemberCount: s.cfg.Stats.MemberCount,
		Rate:        s.cfg.API.Rate,
		Burst:       s.cfg.API.Burst,
		Logger:      s.logger,
	})
	s.live.Mount(api.Prefix, apiHandler.Routes())

	s.live.Mount("/_live", http.StripPrefix("/_live", client.Handler()))
	s.live.Handle(PathHealth, s.health.Handler())
	s.live.Handle(PathMetrics, s.metrics.Handler())
	s.live.Get(PathRobots, s.robots)
	s.live.Get(PathSitemap, s.sitemap)
	s.live.NotFound(s.notFound)

	return s.live
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr is the configured listen address.
func (s *Server) Addr() string {
	return s.http.Addr
}

// ListenAndServe listens on the configured address.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.http.Addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown. It returns nil after a
// graceful shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("server listening", logging.String("addr", ln.Addr().String()))
	if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, then closes live sessions. Hijacked
// websocket connections are not tracked by http.Server.
func (s *Server) Shutdown(ctx context.Context) error {
	httpErr := s.http.Shutdown(ctx)
	liveErr := s.live.Shutdown(ctx)
	return errors.Join(httpErr, liveErr)
}

// Metrics exposes the collectors.
func (s *Server) Metrics() *metrics.Metrics {
	return s.metrics
}

func (s *Server) checkStatsBreaker(ctx context.Context) error {
	if s.breaker.State() == gobreaker.StateOpen {
		return gobreaker.ErrOpenState
	}
	return nil
}

// observe records request durations by chi route pattern. Websocket
// upgrades are skipped; their lifetime is tracked by the live hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Upgrade") != "" {
			next.ServeHTTP(w, r)
			return
		}
		start := s.clock.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.metrics.ObserveHTTP(route, status, s.clock.Since(start))
	})
}

// refreshHeader adds a Refresh header to the plain HTTP response for path so
// clients without scripts or meta support still follow the redirect.
func refreshHeader(path, target string) func(http.Handler) http.Handler {
	value := "0; url=" + target
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == path && r.Header.Get("Upgrade") == "" {
				w.Header().Set("Refresh", value)
			}
			next.ServeHTTP(w, r)
		})
	}
}
