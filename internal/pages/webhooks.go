package pages

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/monebot/website/internal/content"
	"github.com/monebot/website/internal/site"
	"github.com/monebot/website/internal/site/components"
	"github.com/monebot/website/pkg/core"
)

// EventSelectEvent picks the event shown in the payload explorer.
const EventSelectEvent = "select_event"

// Webhooks slot ids.
const (
	SlotEventOptions = "event-options"
	SlotEventPayload = "event-payload"
)

var eventIcons = map[string]string{
	"member_join":       "user-plus",
	"member_leave":      "user-minus",
	"message_delete":    "message-circle",
	"moderation_action": "shield",
}

// Webhooks documents webhook events and their setup.
type Webhooks struct {
	core.BaseComponent
	chrome
	copier

	selected string
}

// NewWebhooks creates the webhooks page component.
func NewWebhooks(opts Options) *Webhooks {
	return &Webhooks{
		chrome:   chrome{opts: opts},
		copier:   newCopier(opts),
		selected: content.DefaultEventID,
	}
}

func (p *Webhooks) Name() string { return "webhooks" }

func (p *Webhooks) PageConfig() site.PageConfig {
	return site.PageConfig{
		Title:       "MoneBot Webhooks",
		Description: content.WebhooksSubtitle,
		Path:        PathWebhooks,
		Keywords:    []string{"discord webhooks", "monebot webhooks", "member_join", "real-time events"},
	}
}

// Selected returns the id of the event shown in the explorer.
func (p *Webhooks) Selected() string {
	return p.selected
}

// Mount honours ?event=<id> so explorer links can be shared.
func (p *Webhooks) Mount(ctx context.Context, params core.Params, session core.Session) error {
	if id := params.Get("event"); id != "" {
		p.selectEvent(id)
	}
	return nil
}

// selectEvent changes the selection; unknown ids leave it unchanged.
func (p *Webhooks) selectEvent(id string) bool {
	if _, ok := content.WebhookEventByID(id); !ok {
		return false
	}
	p.selected = id
	return true
}

func (p *Webhooks) current() content.WebhookEvent {
	ev, ok := content.WebhookEventByID(p.selected)
	if !ok {
		ev, _ = content.WebhookEventByID(content.DefaultEventID)
	}
	return ev
}

// Snippet returns the literal text a copy key refers to.
func (p *Webhooks) Snippet(key string) (string, bool) {
	if key == content.CopyKeyPayload {
		return p.current().Payload, true
	}
	if i, ok := content.ParseIndexedKey(key, "step"); ok {
		steps := content.SetupSteps()
		if i < len(steps) {
			return steps[i].Code, true
		}
	}
	return "", false
}

func (p *Webhooks) HandleEvent(ctx context.Context, event string, payload map[string]any) error {
	if p.handleChromeEvent(event) {
		return nil
	}
	switch event {
	case EventSelectEvent:
		p.selectEvent(core.StringValue(payload))
		return nil
	case components.EventCopy:
		key := core.StringValue(payload)
		text, ok := p.Snippet(key)
		if !ok {
			return unknownSnippet(key)
		}
		return p.copy(ctx, p.Socket(), key, text)
	default:
		return unknownEvent(event)
	}
}

func (p *Webhooks) HandleInfo(ctx context.Context, msg any) error {
	p.handleCopyInfo(msg)
	return nil
}

func (p *Webhooks) Terminate(ctx context.Context, reason core.TerminateReason) error {
	p.stop()
	return nil
}

func (p *Webhooks) Render(ctx context.Context) core.Renderer {
	var sb strings.Builder

	p.renderHeader(&sb)
	sb.WriteString(`<main id="main-content">`)
	sb.WriteString("\n")

	// Hero
	sb.WriteString(`<section class="doc-hero"><div class="container">`)
	sb.WriteString(fmt.Sprintf(`<h1>%s<em>%s</em></h1>`, html.EscapeString(content.WebhooksTitle), html.EscapeString(content.WebhooksTitleEm)))
	sb.WriteString(fmt.Sprintf(`<p>%s</p>`, html.EscapeString(content.WebhooksSubtitle)))
	sb.WriteString(`<div class="pills">`)
	sb.WriteString(fmt.Sprintf(`<span class="pill pill-brand">%sReal-time Events</span>`, site.Icon("zap")))
	sb.WriteString(fmt.Sprintf(`<span class="pill">%sSecure &amp; Reliable</span>`, site.Icon("shield")))
	sb.WriteString(`</div>`)
	sb.WriteString(`</div></section>`)
	sb.WriteString("\n")

	// Why
	sb.WriteString(`<section class="section section-white" aria-labelledby="why-webhooks"><div class="container">`)
	sb.WriteString(`<h2 id="why-webhooks" class="center">Why Use Webhooks?</h2>`)
	sb.WriteString(`<div class="grid grid-3" style="margin-top:2.5rem">`)
	for _, h := range content.Highlights() {
		sb.WriteString(fmt.Sprintf(`<article class="card highlight"><span class="card-icon">%s</span><h3>%s</h3><p>%s</p></article>`,
			site.Icon(h.Icon), html.EscapeString(h.Title), html.EscapeString(h.Description)))
	}
	sb.WriteString(`</div>`)
	sb.WriteString(`</div></section>`)
	sb.WriteString("\n")

	// Explorer
	sb.WriteString(p.renderExplorer())

	// Setup guide
	sb.WriteString(`<section class="section section-white" aria-labelledby="setup-guide"><div class="container">`)
	sb.WriteString(`<h2 id="setup-guide" class="center">Setup Guide</h2>`)
	sb.WriteString(`<div class="grid" style="margin-top:2.5rem;gap:3rem">`)
	for i, step := range content.SetupSteps() {
		key := content.StepCopyKey(i)
		sb.WriteString(`<div class="step grid-2 grid">`)
		sb.WriteString(fmt.Sprintf(`<div><div class="step-head"><span class="step-num">%d</span><h3>%s</h3></div><p style="margin-top:0.75rem">%s</p></div>`,
			step.Step, html.EscapeString(step.Title), html.EscapeString(step.Description)))
		sb.WriteString(components.RenderCodeBlock(components.CodeBlockOptions{
			Label:   "Code Example",
			Code:    step.Code,
			CopyKey: key,
			Copied:  p.isCopied(key),
		}))
		sb.WriteString(`</div>`)
		sb.WriteString("\n")
	}
	sb.WriteString(`</div>`)
	sb.WriteString(`</div></section>`)
	sb.WriteString("\n")

	// Security
	sb.WriteString(`<section class="section" aria-labelledby="security"><div class="container">`)
	sb.WriteString(`<div class="card">`)
	sb.WriteString(fmt.Sprintf(`<div class="step-head"><span class="card-icon">%s</span><h3 id="security">Security Best Practices</h3></div>`, site.Icon("alert-circle")))
	sb.WriteString(`<ul class="grid" style="gap:0.75rem;margin-top:1rem">`)
	for _, practice := range content.SecurityPractices() {
		sb.WriteString(fmt.Sprintf(`<li class="practice">%s<span>%s</span></li>`, site.Icon("check"), html.EscapeString(practice)))
	}
	sb.WriteString(`</ul>`)
	sb.WriteString(`</div>`)
	sb.WriteString(`</div></section>`)
	sb.WriteString("\n")

	sb.WriteString(`</main>`)
	sb.WriteString("\n")
	p.renderFooter(&sb)

	return core.HTML(sb.String())
}

func (p *Webhooks) renderExplorer() string {
	var sb strings.Builder

	sb.WriteString(`<section class="section" aria-labelledby="webhook-events"><div class="container">`)
	sb.WriteString(`<h2 id="webhook-events" class="center">Webhook Events</h2>`)
	sb.WriteString(`<div class="explorer" style="margin-top:2.5rem">`)

	sb.WriteString(`<div>`)
	sb.WriteString(`<h3 style="margin-bottom:1rem">Available Events</h3>`)
	sb.WriteString(fmt.Sprintf(`<div class="event-options" data-slot="%s">`, SlotEventOptions))
	for _, ev := range content.WebhookEvents() {
		class := "event-option"
		pressed := "false"
		if ev.ID == p.selected {
			class += " is-selected"
			pressed = "true"
		}
		sb.WriteString(fmt.Sprintf(`<button type="button" class="%s" lv-click="%s" lv-value="%s" aria-pressed="%s" data-event="%s">%s<div><strong>%s</strong><span>%s</span></div></button>`,
			class, EventSelectEvent, html.EscapeString(ev.ID), pressed, html.EscapeString(ev.ID),
			site.Icon(eventIcons[ev.ID]), html.EscapeString(ev.Name), html.EscapeString(ev.Description)))
	}
	sb.WriteString(`</div>`)
	sb.WriteString(`</div>`)

	current := p.current()
	sb.WriteString(`<div>`)
	sb.WriteString(`<h3 style="margin-bottom:1rem">Event Payload</h3>`)
	sb.WriteString(`<div class="code-block">`)
	sb.WriteString(`<div class="code-head">`)
	sb.WriteString(`<span class="code-label">JSON</span>`)
	sb.WriteString(fmt.Sprintf(`<span data-slot="%s">`, components.CopySlot(content.CopyKeyPayload)))
	sb.WriteString(components.RenderCopyButton(content.CopyKeyPayload, p.isCopied(content.CopyKeyPayload)))
	sb.WriteString(`</span>`)
	sb.WriteString(`</div>`)
	sb.WriteString(fmt.Sprintf(`<pre><code data-slot="%s">%s</code></pre>`,
		SlotEventPayload, html.EscapeString(current.Payload)))
	sb.WriteString(`</div>`)
	sb.WriteString(`</div>`)

	sb.WriteString(`</div>`)
	sb.WriteString(`</div></section>`)
	sb.WriteString("\n")

	return sb.String()
}
