package pages

import (
	"context"
	"fmt"
	"html"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/monebot/website/internal/content"
	"github.com/monebot/website/internal/site"
	"github.com/monebot/website/internal/site/components"
	"github.com/monebot/website/pkg/core"
)

// APIDocs documents the MoneBot REST API.
type APIDocs struct {
	core.BaseComponent
	chrome
	copier
}

// NewAPIDocs creates the API documentation page component.
func NewAPIDocs(opts Options) *APIDocs {
	return &APIDocs{
		chrome: chrome{opts: opts},
		copier: newCopier(opts),
	}
}

func (p *APIDocs) Name() string { return "api_docs" }

func (p *APIDocs) PageConfig() site.PageConfig {
	return site.PageConfig{
		Title:       "MoneBot API Documentation",
		Description: content.APISubtitle,
		Path:        PathAPIDocs,
		Keywords:    []string{"monebot api", "discord bot api", "rest api", "webhooks"},
	}
}

// Snippet returns the literal text a copy key refers to.
func (p *APIDocs) Snippet(key string) (string, bool) {
	if key == content.CopyKeyAuth {
		return content.AuthCurl, true
	}
	if i, ok := content.ParseIndexedKey(key, "endpoint"); ok {
		endpoints := content.Endpoints()
		if i < len(endpoints) {
			return endpoints[i].Response, true
		}
	}
	return "", false
}

func (p *APIDocs) HandleEvent(ctx context.Context, event string, payload map[string]any) error {
	if p.handleChromeEvent(event) {
		return nil
	}
	if event != components.EventCopy {
		return unknownEvent(event)
	}
	key := core.StringValue(payload)
	text, ok := p.Snippet(key)
	if !ok {
		return unknownSnippet(key)
	}
	return p.copy(ctx, p.Socket(), key, text)
}

func (p *APIDocs) HandleInfo(ctx context.Context, msg any) error {
	p.handleCopyInfo(msg)
	return nil
}

func (p *APIDocs) Terminate(ctx context.Context, reason core.TerminateReason) error {
	p.stop()
	return nil
}

func (p *APIDocs) Render(ctx context.Context) core.Renderer {
	var sb strings.Builder

	p.renderHeader(&sb)
	sb.WriteString(`<main id="main-content">`)
	sb.WriteString("\n")

	// Hero
	sb.WriteString(`<section class="doc-hero"><div class="container">`)
	sb.WriteString(fmt.Sprintf(`<h1>%s<em>%s</em></h1>`, html.EscapeString(content.APITitle), html.EscapeString(content.APITitleEm)))
	sb.WriteString(fmt.Sprintf(`<p>%s</p>`, html.EscapeString(content.APISubtitle)))
	sb.WriteString(`<div class="pills">`)
	sb.WriteString(fmt.Sprintf(`<span class="pill pill-brand">%sAPI Key Required</span>`, site.Icon("key")))
	sb.WriteString(fmt.Sprintf(`<span class="pill">%sBase URL: %s</span>`, site.Icon("globe"), html.EscapeString(content.APIBaseHost)))
	sb.WriteString(`</div>`)
	sb.WriteString(`</div></section>`)
	sb.WriteString("\n")

	// Quick start
	sb.WriteString(`<section class="section section-white" aria-labelledby="quick-start"><div class="container">`)
	sb.WriteString(`<h2 id="quick-start" class="center">Quick Start</h2>`)
	sb.WriteString(`<div class="grid grid-2" style="margin-top:2.5rem">`)
	sb.WriteString(`<div>`)
	sb.WriteString(`<h3>Authentication</h3>`)
	sb.WriteString(fmt.Sprintf(`<p style="margin:0.75rem 0 1rem">%s</p>`, html.EscapeString(content.AuthIntro)))
	sb.WriteString(components.RenderCodeBlock(components.CodeBlockOptions{
		Label:   "cURL",
		Code:    content.AuthCurl,
		CopyKey: content.CopyKeyAuth,
		Copied:  p.isCopied(content.CopyKeyAuth),
	}))
	sb.WriteString(`</div>`)
	sb.WriteString(`<div>`)
	sb.WriteString(`<h3>Rate Limits</h3>`)
	sb.WriteString(`<div class="grid" style="margin-top:1rem">`)
	for _, plan := range content.RatePlans() {
		sb.WriteString(fmt.Sprintf(`<div class="card plan"><h3>%s</h3><strong>%s</strong><span class="muted">requests per hour</span></div>`,
			html.EscapeString(plan.Name), formatThousands(plan.RequestsPerHour)))
	}
	sb.WriteString(`</div>`)
	sb.WriteString(`</div>`)
	sb.WriteString(`</div>`)
	sb.WriteString(`</div></section>`)
	sb.WriteString("\n")

	// Endpoints
	sb.WriteString(`<section class="section" aria-labelledby="endpoints"><div class="container">`)
	sb.WriteString(`<h2 id="endpoints" class="center">API Endpoints</h2>`)
	sb.WriteString(`<div class="grid" style="margin-top:2.5rem">`)
	for i, ep := range content.Endpoints() {
		sb.WriteString(p.renderEndpoint(i, ep))
	}
	sb.WriteString(`</div>`)
	sb.WriteString(`</div></section>`)
	sb.WriteString("\n")

	// Webhook events
	sb.WriteString(`<section class="section section-white" aria-labelledby="webhook-events"><div class="container">`)
	sb.WriteString(`<h2 id="webhook-events" class="center">Webhook Events</h2>`)
	sb.WriteString(`<ul class="grid grid-3" style="margin-top:2.5rem">`)
	for _, ev := range content.EventSummaries() {
		sb.WriteString(fmt.Sprintf(`<li class="card event-summary"><div class="event-item">%s<code>%s</code></div><p>%s</p></li>`,
			site.Icon("zap"), html.EscapeString(ev.Name), html.EscapeString(ev.Description)))
	}
	sb.WriteString(`</ul>`)
	sb.WriteString(fmt.Sprintf(`<div class="cta"><a href="%s" class="btn btn-primary">Learn More About Webhooks</a></div>`, PathWebhooks))
	sb.WriteString(`</div></section>`)
	sb.WriteString("\n")

	sb.WriteString(`</main>`)
	sb.WriteString("\n")
	p.renderFooter(&sb)

	return core.HTML(sb.String())
}

func (p *APIDocs) renderEndpoint(i int, ep content.Endpoint) string {
	var sb strings.Builder

	method := strings.ToLower(ep.Method)
	sb.WriteString(`<article class="card endpoint">`)
	sb.WriteString(`<div>`)
	sb.WriteString(fmt.Sprintf(`<div class="endpoint-head"><span class="method method-%s">%s</span><code class="path">%s</code></div>`,
		html.EscapeString(method), html.EscapeString(ep.Method), html.EscapeString(ep.Path)))
	sb.WriteString(fmt.Sprintf(`<p style="margin:0.75rem 0 1.25rem">%s</p>`, html.EscapeString(ep.Description)))
	if len(ep.Params) > 0 {
		sb.WriteString(`<div class="params"><h4>Parameters</h4>`)
		for _, param := range ep.Params {
			flag, flagClass := "optional", "param-flag"
			if param.Required {
				flag, flagClass = "required", "param-flag is-required"
			}
			sb.WriteString(fmt.Sprintf(`<div class="param"><code class="param-name">%s</code><span class="param-type">%s</span><span class="%s">%s</span><span class="muted">%s</span></div>`,
				html.EscapeString(param.Name), html.EscapeString(param.Type), flagClass, flag, html.EscapeString(param.Description)))
		}
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</div>`)

	key := content.EndpointCopyKey(i)
	sb.WriteString(components.RenderCodeBlock(components.CodeBlockOptions{
		Label:   "Response",
		Code:    ep.Response,
		CopyKey: key,
		Copied:  p.isCopied(key),
	}))
	sb.WriteString(`</article>`)
	sb.WriteString("\n")

	return sb.String()
}

var numberPrinter = message.NewPrinter(language.English)

// formatThousands renders 10000 as "10,000".
func formatThousands(n int) string {
	return numberPrinter.Sprintf("%d", n)
}
