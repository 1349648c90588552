// Package pages implements the live components behind each route of the
// site: home, API docs, webhooks and the dashboard redirect.
package pages

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/monebot/website/internal/copyflag"
	"github.com/monebot/website/internal/site/components"
	"github.com/monebot/website/internal/stats"
	"github.com/monebot/website/pkg/core"
	"github.com/monebot/website/pkg/logging"
	"github.com/monebot/website/pkg/router"
)

// Route paths.
const (
	PathHome      = "/"
	PathAPIDocs   = "/api-docs"
	PathWebhooks  = "/webhooks"
	PathDashboard = "/dashboard"
)

// CommandClipboard asks the client to write args["text"] to the clipboard.
const CommandClipboard = "clipboard"

// CommandRedirect asks the client to navigate to args["url"].
const CommandRedirect = "redirect"

// Errors returned from HandleEvent. The router replies them to the client
// without closing the connection.
var (
	ErrUnknownEvent   = errors.New("pages: unknown event")
	ErrUnknownSnippet = errors.New("pages: unknown snippet")
)

// StatsSource resolves the hero counters. It must not fail.
type StatsSource interface {
	Resolve(ctx context.Context) stats.Display
}

// Options carries the settings shared by all pages.
type Options struct {
	DashboardURL string
	InviteURL    string
	// CopyDelay is how long copy acknowledgements stay visible.
	CopyDelay time.Duration
	// Clock schedules copy expiry; defaults to the real clock.
	Clock clockwork.Clock
	// Stats feeds the home hero; nil keeps the fallback.
	Stats StatsSource
}

// Register mounts every page on r.
func Register(r *router.Router, opts Options) {
	r.Live(PathHome, func() core.Component { return NewHome(opts) })
	r.Live(PathAPIDocs, func() core.Component { return NewAPIDocs(opts) })
	r.Live(PathWebhooks, func() core.Component { return NewWebhooks(opts) })
	r.Live(PathDashboard, func() core.Component { return NewDashboard(opts) })
}

// Paths lists the routes Register mounts, in sitemap order.
func Paths() []string {
	return []string{PathHome, PathAPIDocs, PathWebhooks, PathDashboard}
}

// chrome holds the header state shared by the content pages.
type chrome struct {
	opts     Options
	menuOpen bool
}

// handleChromeEvent applies header events and reports whether event was one.
func (c *chrome) handleChromeEvent(event string) bool {
	switch event {
	case components.EventToggleMenu:
		c.menuOpen = !c.menuOpen
	case components.EventCloseMenu:
		c.menuOpen = false
	default:
		return false
	}
	return true
}

// MenuOpen reports whether the mobile navigation is visible.
func (c *chrome) MenuOpen() bool {
	return c.menuOpen
}

func (c *chrome) renderHeader(sb *strings.Builder) {
	opts := components.DefaultHeaderOptions(c.opts.DashboardURL, c.opts.InviteURL)
	opts.MenuOpen = c.menuOpen
	sb.WriteString(components.RenderHeader(opts))
}

func (c *chrome) renderFooter(sb *strings.Builder) {
	sb.WriteString(components.RenderFooter(components.DefaultFooterOptions()))
}

// copier copies literal snippets to the client clipboard and tracks the
// acknowledgement.
type copier struct {
	indicator *copyflag.Indicator
}

func newCopier(opts Options) copier {
	var copts []copyflag.Option
	if opts.Clock != nil {
		copts = append(copts, copyflag.WithClock(opts.Clock))
	}
	return copier{indicator: copyflag.New(opts.CopyDelay, copts...)}
}

// copy marks key and pushes text to the clipboard. Expiry is delivered to
// HandleInfo through the socket mailbox.
func (c *copier) copy(ctx context.Context, socket *core.Socket, key, text string) error {
	if socket == nil {
		c.indicator.Mark(key, nil)
		return nil
	}
	c.indicator.Mark(key, func(token copyflag.Token) {
		socket.PostInfo(copyflag.Expired{Token: token})
	})
	if err := socket.PushCommand(CommandClipboard, map[string]any{"text": text}); err != nil {
		return fmt.Errorf("push clipboard %q: %w", key, err)
	}
	logging.L(ctx).Debug("snippet copied", logging.String("key", key))
	return nil
}

// handleCopyInfo clears an expired acknowledgement and reports whether msg
// was a copy expiry.
func (c *copier) handleCopyInfo(msg any) bool {
	expired, ok := msg.(copyflag.Expired)
	if !ok {
		return false
	}
	c.indicator.Expire(expired.Token)
	return true
}

// Copied returns the key of the acknowledged snippet, or "".
func (c *copier) Copied() string {
	return c.indicator.Current()
}

func (c *copier) isCopied(key string) bool {
	return c.indicator.IsCopied(key)
}

func (c *copier) stop() {
	c.indicator.Stop()
}

func unknownEvent(event string) error {
	return fmt.Errorf("%w: %q", ErrUnknownEvent, event)
}

func unknownSnippet(key string) error {
	return fmt.Errorf("%w: %q", ErrUnknownSnippet, key)
}
