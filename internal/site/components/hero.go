package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/monebot/website/internal/content"
	"github.com/monebot/website/internal/site"
)

// Hero stat slot ids.
const (
	SlotStatServers = "stat-servers"
	SlotStatMembers = "stat-members"
	SlotStatRating  = "stat-rating"
)

// HeroOptions configures the hero section.
type HeroOptions struct {
	Servers string
	Members string
	Rating  string
	// InviteURL is the target of the Add to Discord button
	InviteURL string
}

// RenderHero generates the landing hero: headline, calls to action, the three
// display statistics and the dashboard preview.
func RenderHero(opts HeroOptions) string {
	var sb strings.Builder

	sb.WriteString(`<section class="hero" aria-labelledby="hero-title">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="container hero-grid">`)
	sb.WriteString("\n")

	sb.WriteString(`<div>`)
	sb.WriteString(fmt.Sprintf(`<h1 id="hero-title">%s<em>%s</em>%s</h1>`,
		html.EscapeString(content.HeroHeadlinePrefix),
		html.EscapeString(content.HeroHeadlineEm),
		html.EscapeString(content.HeroHeadlineSuffix)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`<p class="hero-subtitle">%s</p>`, html.EscapeString(content.HeroSubtitle)))
	sb.WriteString("\n")

	sb.WriteString(`<div class="hero-actions">`)
	sb.WriteString(fmt.Sprintf(`<a href="%s" class="btn btn-discord" target="_blank" rel="noopener noreferrer">%s%s</a>`,
		html.EscapeString(opts.InviteURL), site.Icon("message-circle"), html.EscapeString(content.HeroPrimaryCTA)))
	sb.WriteString(fmt.Sprintf(`<a href="#features" class="btn btn-outline"><span class="play-dot" aria-hidden="true"></span>%s</a>`,
		html.EscapeString(content.HeroSecondaryCTA)))
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(`<div class="hero-stats">`)
	sb.WriteString(renderStatTile("server", SlotStatServers, opts.Servers, content.StatServersLabel))
	sb.WriteString(renderStatTile("users", SlotStatMembers, opts.Members, content.StatMembersLabel))
	sb.WriteString(renderStatTile("star", SlotStatRating, opts.Rating, content.StatRatingLabel))
	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(renderPreview())

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</section>`)
	sb.WriteString("\n")

	return sb.String()
}

func renderStatTile(icon, slot, value, label string) string {
	return fmt.Sprintf(`<div class="stat-tile"><span class="stat-icon">%s</span><strong class="stat-value" data-slot="%s">%s</strong><span class="stat-label">%s</span></div>`,
		site.Icon(icon), slot, html.EscapeString(value), html.EscapeString(label))
}

func renderPreview() string {
	var sb strings.Builder

	sb.WriteString(`<div class="preview" aria-hidden="true">`)
	sb.WriteString(`<div class="preview-frame">`)
	sb.WriteString(`<div class="preview-bar"><span></span><span></span><span></span></div>`)
	sb.WriteString(`<div class="preview-body">`)
	sb.WriteString(fmt.Sprintf(`<h3>%s</h3>`, html.EscapeString(content.PreviewTitle)))
	for _, card := range content.PreviewCards() {
		sb.WriteString(`<div class="preview-card">`)
		sb.WriteString(fmt.Sprintf(`<h4>%s <span class="status">%s</span></h4>`,
			html.EscapeString(card.Title), html.EscapeString(card.Status)))
		sb.WriteString(`<ul>`)
		for _, line := range card.Lines {
			sb.WriteString(fmt.Sprintf(`<li>%s</li>`, html.EscapeString(line)))
		}
		sb.WriteString(`</ul>`)
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</div>`)
	sb.WriteString(`</div>`)
	sb.WriteString(fmt.Sprintf(`<div class="callout callout-top">%s</div>`, html.EscapeString(content.CalloutAdmin)))
	sb.WriteString(fmt.Sprintf(`<div class="callout callout-bottom"><span class="status">%s</span></div>`, html.EscapeString(content.CalloutStatus)))
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	return sb.String()
}
