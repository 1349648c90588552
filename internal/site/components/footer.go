package components

import (
	"fmt"
	"html"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/monebot/website/internal/content"
	"github.com/monebot/website/internal/site"
)

// FooterOptions configures the site footer.
type FooterOptions struct {
	Brand     string
	LogoURL   string
	Blurb     string
	Social    []content.SocialLink
	Quick     []content.Link
	Resources []content.Link
	Legal     []content.Link
	Copyright string
	// Members and Servers feed the serving counter line
	Members int64
	Servers int64
}

// DefaultFooterOptions returns the footer used on every page.
func DefaultFooterOptions() FooterOptions {
	return FooterOptions{
		Brand:     content.FooterBrand,
		LogoURL:   content.LogoURL,
		Blurb:     content.FooterBlurb,
		Social:    content.SocialLinks(),
		Quick:     content.QuickLinks(),
		Resources: content.ResourceLinks(),
		Legal:     content.LegalLinks(),
		Copyright: content.Copyright,
		Members:   content.ServingMembers,
		Servers:   content.ServingServers,
	}
}

var counterPrinter = message.NewPrinter(language.English)

// ServingLine formats the counter line, e.g.
// "Serving 1,476,241,022 members in 12,888,325 servers".
func ServingLine(members, servers int64) string {
	return counterPrinter.Sprintf("Serving %d members in %d servers", members, servers)
}

// RenderFooter generates the site footer.
func RenderFooter(opts FooterOptions) string {
	var sb strings.Builder

	sb.WriteString(`<footer class="site-footer">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="container">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="footer-grid">`)
	sb.WriteString("\n")

	// Brand
	sb.WriteString(`<div class="footer-brand">`)
	sb.WriteString(renderLogo(opts.Brand, opts.LogoURL))
	sb.WriteString(fmt.Sprintf(`<p>%s</p>`, html.EscapeString(opts.Blurb)))
	sb.WriteString(`<div class="social">`)
	for _, s := range opts.Social {
		sb.WriteString(fmt.Sprintf(`<a href="%s" aria-label="%s" title="%s">%s</a>`,
			html.EscapeString(s.Href), html.EscapeString(s.Name), html.EscapeString(s.Description), site.Icon(s.Icon)))
	}
	sb.WriteString(`</div>`)
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(renderFooterColumn("Quick Links", opts.Quick))
	sb.WriteString(renderFooterColumn("Resources", opts.Resources))

	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	// Bottom bar
	sb.WriteString(`<div class="footer-bottom">`)
	sb.WriteString(fmt.Sprintf(`<p>%s</p>`, html.EscapeString(opts.Copyright)))
	sb.WriteString(`<nav class="legal" aria-label="Legal">`)
	for i, l := range opts.Legal {
		if i > 0 {
			sb.WriteString(`<span aria-hidden="true">|</span>`)
		}
		sb.WriteString(fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(l.Href), html.EscapeString(l.Name)))
	}
	sb.WriteString(`</nav>`)
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf(`<p class="serving center">%s</p>`, html.EscapeString(ServingLine(opts.Members, opts.Servers))))
	sb.WriteString("\n")

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</footer>`)
	sb.WriteString("\n")

	return sb.String()
}

func renderFooterColumn(title string, links []content.Link) string {
	var sb strings.Builder
	sb.WriteString(`<div class="footer-col">`)
	sb.WriteString(fmt.Sprintf(`<h3>%s</h3>`, html.EscapeString(title)))
	sb.WriteString(`<ul>`)
	for _, l := range links {
		sb.WriteString(fmt.Sprintf(`<li><a href="%s">%s</a></li>`, html.EscapeString(l.Href), html.EscapeString(l.Name)))
	}
	sb.WriteString(`</ul>`)
	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	return sb.String()
}
