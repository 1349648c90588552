package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/monebot/website/internal/content"
	"github.com/monebot/website/internal/site"
)

// StatisticsOptions configures the performance section.
type StatisticsOptions struct {
	Statistics   []content.Statistic
	InviteURL    string
	DashboardURL string
}

// RenderStatistics generates the performance cards followed by the closing
// call to action.
func RenderStatistics(opts StatisticsOptions) string {
	var sb strings.Builder

	sb.WriteString(`<section id="statistics" class="section" aria-labelledby="statistics-title">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="container">`)
	sb.WriteString("\n")
	sb.WriteString(renderSectionHead("statistics-title",
		content.StatisticsHeadingPrefix, content.StatisticsHeadingEm, content.StatisticsHeadingSuffix,
		content.StatisticsSubtitle))

	sb.WriteString(`<div class="grid grid-4">`)
	sb.WriteString("\n")
	for _, s := range opts.Statistics {
		color := html.EscapeString(s.Color)
		sb.WriteString(fmt.Sprintf(`<article class="card metric-card"><span class="card-icon" style="color:%s">%s</span><strong class="metric-value">%s</strong><h3 class="metric-label">%s</h3><p>%s</p><span class="metric-trend" style="color:%s">%s</span></article>`,
			color, site.Icon(s.Icon), html.EscapeString(s.Value), html.EscapeString(s.Label),
			html.EscapeString(s.Description), color, html.EscapeString(s.Trend)))
		sb.WriteString("\n")
	}
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(`<div class="cta">`)
	sb.WriteString(fmt.Sprintf(`<h2>%s</h2>`, html.EscapeString(content.CTAHeading)))
	sb.WriteString(fmt.Sprintf(`<p class="cta-note">%s</p>`, html.EscapeString(content.CTASubtitle)))
	sb.WriteString(`<div class="hero-actions">`)
	sb.WriteString(fmt.Sprintf(`<a href="%s" class="btn btn-discord" target="_blank" rel="noopener noreferrer">%s%s</a>`,
		html.EscapeString(opts.InviteURL), site.Icon("message-circle"), html.EscapeString(content.HeroPrimaryCTA)))
	sb.WriteString(fmt.Sprintf(`<a href="%s" class="btn btn-outline">View Dashboard</a>`, html.EscapeString(opts.DashboardURL)))
	sb.WriteString(`</div>`)
	sb.WriteString(`<ul class="trust-list">`)
	for _, item := range content.TrustIndicators() {
		sb.WriteString(fmt.Sprintf(`<li class="trust-item">%s%s</li>`, site.Icon("check"), html.EscapeString(item)))
	}
	sb.WriteString(`</ul>`)
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</section>`)
	sb.WriteString("\n")

	return sb.String()
}
