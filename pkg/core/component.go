// Package core provides the live component abstractions the website pages are
// built on.
package core

import (
	"context"
	"io"
)

// Component is the interface that all live page components implement.
// A component instance belongs to exactly one connection; the router calls
// its methods from a single goroutine, so implementations need no locking.
type Component interface {
	// Name returns the identifier for this component type.
	Name() string

	// Mount is called once before the first render.
	Mount(ctx context.Context, params Params, session Session) error

	// Render returns the current HTML representation of the component.
	Render(ctx context.Context) Renderer

	// HandleEvent processes user interactions (clicks, hovers, copies).
	HandleEvent(ctx context.Context, event string, payload map[string]any) error

	// HandleInfo processes messages posted to the socket mailbox, such as
	// timer expiries or the result of a background fetch.
	HandleInfo(ctx context.Context, msg any) error

	// Terminate is called when the connection goes away.
	Terminate(ctx context.Context, reason TerminateReason) error
}

// Renderer renders HTML. It has the same shape as templ.Component.
type Renderer interface {
	Render(ctx context.Context, w io.Writer) error
}

// RendererFunc adapts an ordinary function to Renderer.
type RendererFunc func(ctx context.Context, w io.Writer) error

func (f RendererFunc) Render(ctx context.Context, w io.Writer) error {
	return f(ctx, w)
}

// HTML returns a Renderer that writes s verbatim.
func HTML(s string) Renderer {
	return RendererFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

// Params contains URL query parameters from the connection.
type Params map[string]string

// Get returns a parameter value or empty string if not found.
func (p Params) Get(key string) string {
	return p[key]
}

// GetDefault returns a parameter value or the default if not found.
func (p Params) GetDefault(key, defaultValue string) string {
	if v, ok := p[key]; ok {
		return v
	}
	return defaultValue
}

// Session contains request-scoped data passed from the HTTP handler.
type Session map[string]any

// GetString returns a session value as string.
func (s Session) GetString(key string) string {
	if v, ok := s[key].(string); ok {
		return v
	}
	return ""
}

// TerminateReason indicates why a component is being terminated.
type TerminateReason int

const (
	// TerminateNormal indicates the client left.
	TerminateNormal TerminateReason = iota
	// TerminateShutdown indicates server shutdown or a dropped connection.
	TerminateShutdown
	// TerminateError indicates termination due to an error.
	TerminateError
)

func (r TerminateReason) String() string {
	switch r {
	case TerminateNormal:
		return "normal"
	case TerminateShutdown:
		return "shutdown"
	case TerminateError:
		return "error"
	default:
		return "unknown"
	}
}

// BaseComponent provides default implementations for Component methods.
// Embed it in page components to avoid implementing unused methods.
type BaseComponent struct {
	socket *Socket
}

// SetSocket sets the socket for the component (called by the router).
func (bc *BaseComponent) SetSocket(s *Socket) {
	bc.socket = s
}

// Socket returns the component's socket, or nil during the initial HTTP render.
func (bc *BaseComponent) Socket() *Socket {
	return bc.socket
}

// Connected reports whether the component is bound to a live socket.
func (bc *BaseComponent) Connected() bool {
	return bc.socket != nil && bc.socket.IsConnected()
}

func (bc *BaseComponent) Name() string {
	return ""
}

func (bc *BaseComponent) Mount(ctx context.Context, params Params, session Session) error {
	return nil
}

func (bc *BaseComponent) HandleEvent(ctx context.Context, event string, payload map[string]any) error {
	return nil
}

func (bc *BaseComponent) HandleInfo(ctx context.Context, msg any) error {
	return nil
}

func (bc *BaseComponent) Terminate(ctx context.Context, reason TerminateReason) error {
	return nil
}

// StringValue extracts the "value" entry of an event payload, which the
// client fills from the lv-value attribute.
func StringValue(payload map[string]any) string {
	v, _ := payload["value"].(string)
	return v
}
