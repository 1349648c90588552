// Package router mounts live pages and plain handlers on a chi mux.
//
// A live route answers an ordinary GET with the full server-rendered
// document. A WebSocket upgrade on the same path starts a live session:
// the browser joins, sends events, and receives slot diffs.
package router

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/monebot/website/pkg/core"
	"github.com/monebot/website/pkg/logging"
	"github.com/monebot/website/pkg/transport"
)

// Common router errors.
var (
	ErrNilRenderer     = errors.New("component returned nil renderer")
	ErrTooManySessions = errors.New("too many live sessions")
	ErrRouterShutdown  = errors.New("router is shutting down")
	ErrAlreadyJoined   = errors.New("already joined")
	ErrNotJoined       = errors.New("join required before events")
)

// Middleware is a function that wraps an HTTP handler.
type Middleware func(http.Handler) http.Handler

// ErrorHandler handles errors during request processing.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// LayoutFunc wraps the rendered body of a live component into a complete
// HTML document for the initial HTTP response.
type LayoutFunc func(ctx context.Context, c core.Component, body string) core.Renderer

// Hooks receive connection lifecycle notifications. Nil fields are skipped.
type Hooks struct {
	OnConnect    func(component string)
	OnDisconnect func(component string, reason core.TerminateReason)
	OnEvent      func(component, event string, err error)
	OnDiff       func(component string, slots int)
}

// LiveRoute is a path served by a live component.
type LiveRoute struct {
	Path      string
	Component func() core.Component
}

// Router handles HTTP routing for the site.
type Router struct {
	mux          *chi.Mux
	liveRoutes   map[string]*LiveRoute
	layout       LayoutFunc
	errorHandler ErrorHandler
	logger       logging.Logger
	hooks        Hooks
	transport    transport.Config
	sessions     *SessionManager

	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	mu sync.RWMutex
}

// Option configures a Router.
type Option func(*Router)

// WithLayout sets the document layout for live routes.
func WithLayout(layout LayoutFunc) Option {
	return func(r *Router) { r.layout = layout }
}

// WithLogger sets the router logger.
func WithLogger(logger logging.Logger) Option {
	return func(r *Router) { r.logger = logger }
}

// WithHooks sets the lifecycle hooks.
func WithHooks(hooks Hooks) Option {
	return func(r *Router) { r.hooks = hooks }
}

// WithTransportConfig sets the WebSocket transport configuration.
func WithTransportConfig(cfg transport.Config) Option {
	return func(r *Router) { r.transport = cfg }
}

// WithMaxSessions caps concurrent live sessions. Zero means unlimited.
func WithMaxSessions(n int) Option {
	return func(r *Router) { r.sessions = NewSessionManager(n) }
}

// WithErrorHandler sets the error handler used by the HTTP render path.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(r *Router) { r.errorHandler = handler }
}

// New creates a new router.
func New(opts ...Option) *Router {
	r := &Router{
		mux:        chi.NewRouter(),
		liveRoutes: make(map[string]*LiveRoute),
		layout:     DefaultLayout,
		logger:     logging.NopLogger{},
		transport:  transport.DefaultConfig(),
		sessions:   NewSessionManager(0),
		errorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.baseCtx, r.cancel = context.WithCancel(context.Background())
	return r
}

// Use adds middleware. Like chi, all middleware must be added before the
// first route.
func (r *Router) Use(mw ...func(http.Handler) http.Handler) {
	r.mux.Use(mw...)
}

// Mux exposes the underlying chi router for sub-routing.
func (r *Router) Mux() chi.Router {
	return r.mux
}

// Sessions returns the live session manager.
func (r *Router) Sessions() *SessionManager {
	return r.sessions
}

// Live registers a live component at path.
func (r *Router) Live(path string, component func() core.Component) {
	r.mu.Lock()
	route := &LiveRoute{Path: path, Component: component}
	r.liveRoutes[path] = route
	r.mu.Unlock()

	r.mux.Get(path, r.handleLive(route))
}

// LiveRoutes returns the registered live paths.
func (r *Router) LiveRoutes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	paths := make([]string, 0, len(r.liveRoutes))
	for p := range r.liveRoutes {
		paths = append(paths, p)
	}
	return paths
}

// Handle registers a plain handler for all methods.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

// HandleFunc registers a plain handler function for all methods.
func (r *Router) HandleFunc(pattern string, handler http.HandlerFunc) {
	r.mux.HandleFunc(pattern, handler)
}

// Get registers a GET handler.
func (r *Router) Get(pattern string, handler http.HandlerFunc) {
	r.mux.Get(pattern, handler)
}

// Mount attaches a sub-handler under prefix.
func (r *Router) Mount(prefix string, handler http.Handler) {
	r.mux.Mount(prefix, handler)
}

// NotFound sets the 404 handler.
func (r *Router) NotFound(handler http.HandlerFunc) {
	r.mux.NotFound(handler)
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Shutdown closes every live session and waits for their loops to exit or
// for ctx to expire. http.Server.Shutdown does not track hijacked
// connections, so the server calls this alongside it.
func (r *Router) Shutdown(ctx context.Context) error {
	r.cancel()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Router) handleLive(route *LiveRoute) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if isWebSocketRequest(req) {
			r.handleWebSocket(w, req, route)
			return
		}
		r.renderLive(w, req, route)
	}
}

// renderLive serves the initial, fully server-rendered document.
func (r *Router) renderLive(w http.ResponseWriter, req *http.Request, route *LiveRoute) {
	ctx := req.Context()
	component := route.Component()

	if err := component.Mount(ctx, extractParams(req), extractSession(req)); err != nil {
		r.errorHandler(w, req, err)
		return
	}

	body, err := renderToString(ctx, component)
	if err != nil {
		r.errorHandler(w, req, err)
		return
	}

	var buf bytes.Buffer
	if err := r.layout(ctx, component, body).Render(ctx, &buf); err != nil {
		r.errorHandler(w, req, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		logging.L(ctx).Debug("write response", logging.Err(err))
	}

	if err := component.Terminate(ctx, core.TerminateNormal); err != nil {
		logging.L(ctx).Warn("terminate after render", logging.String("component", component.Name()), logging.Err(err))
	}
}

func renderToString(ctx context.Context, component core.Component) (string, error) {
	renderer := component.Render(ctx)
	if renderer == nil {
		return "", ErrNilRenderer
	}
	var buf bytes.Buffer
	if err := renderer.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// DefaultLayout wraps the body in a bare document with the live root and
// client script.
func DefaultLayout(ctx context.Context, c core.Component, body string) core.Renderer {
	return core.RendererFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"></head><body>")
		b.WriteString(RootOpen)
		b.WriteString(body)
		b.WriteString(RootClose)
		b.WriteString(`<script src="` + ClientScriptPath + `" defer></script></body></html>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// Markup shared with the client script.
const (
	RootOpen         = `<div id="lv-root" data-live-root>`
	RootClose        = `</div>`
	ClientScriptPath = "/_live/live.js"
)

// extractSession copies request cookies into a session map.
func extractSession(req *http.Request) core.Session {
	session := make(core.Session)
	for _, cookie := range req.Cookies() {
		session["cookie:"+cookie.Name] = cookie.Value
	}
	if id := req.Header.Get("X-Request-ID"); id != "" {
		session["request_id"] = id
	}
	return session
}

// extractParams extracts URL query parameters, first value wins.
func extractParams(req *http.Request) core.Params {
	params := make(core.Params)
	for key, values := range req.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

// isWebSocketRequest checks if this is a WebSocket upgrade request.
func isWebSocketRequest(req *http.Request) bool {
	return strings.Contains(strings.ToLower(req.Header.Get("Upgrade")), "websocket")
}
