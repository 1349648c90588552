package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/monebot/website/internal/content"
	"github.com/monebot/website/internal/site"
	"github.com/monebot/website/pkg/core"
	"github.com/monebot/website/pkg/router"
)

// DefaultDashboardURL is used when no dashboard URL is configured.
const DefaultDashboardURL = "https://monebot.com/dashboard"

// Dashboard forwards the browser to the external dashboard. The first render
// carries a meta refresh and an inline script; a live connection also gets
// a redirect command.
type Dashboard struct {
	core.BaseComponent
	target string
}

// NewDashboard creates the dashboard redirect component.
func NewDashboard(opts Options) *Dashboard {
	target := opts.DashboardURL
	if target == "" {
		target = DefaultDashboardURL
	}
	return &Dashboard{target: string(templ.URL(target))}
}

func (d *Dashboard) Name() string { return "dashboard" }

// Target returns the sanitized redirect URL.
func (d *Dashboard) Target() string {
	return d.target
}

func (d *Dashboard) PageConfig() site.PageConfig {
	return site.PageConfig{
		Title:       "Redirecting to MoneBot Dashboard",
		Description: content.DashboardRedirectTitle,
		Path:        PathDashboard,
		NoIndex:     true,
		RedirectURL: d.target,
	}
}

func (d *Dashboard) Mount(ctx context.Context, params core.Params, session core.Session) error {
	socket := d.Socket()
	if socket == nil {
		return nil
	}
	if err := socket.PushCommand(CommandRedirect, map[string]any{"url": d.target}); err != nil {
		return fmt.Errorf("push redirect: %w", err)
	}
	return nil
}

func (d *Dashboard) Render(ctx context.Context) core.Renderer {
	return redirectView(d.target)
}

// redirectView is the spinner page shown while the browser navigates.
func redirectView(target string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		script, err := templ.JSONString(target)
		if err != nil {
			return err
		}
		nonce := ""
		if n := router.CSPNonce(ctx); n != "" {
			nonce = ` nonce="` + templ.EscapeString(n) + `"`
		}
		_, err = fmt.Fprintf(w,
			`<div class="redirect"><div class="spinner" role="status" aria-label="Loading"></div><p>%s</p><p class="muted">%s <a href="%s">%s</a>.</p></div><script%s>window.location.href = %s;</script>`,
			templ.EscapeString(content.DashboardRedirectTitle),
			templ.EscapeString(content.DashboardRedirectNote),
			templ.EscapeString(target),
			templ.EscapeString(content.DashboardRedirectLink),
			nonce,
			script,
		)
		return err
	})
}
