package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/monebot/website/internal/content"
)

// RenderTrustedBy generates the strip of showcased communities.
func RenderTrustedBy(servers []content.TrustedServer) string {
	var sb strings.Builder

	sb.WriteString(`<section class="trusted" aria-label="Trusted by">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="container">`)
	sb.WriteString(fmt.Sprintf(`<p class="eyebrow">%s</p>`, html.EscapeString(content.TrustedHeading)))
	sb.WriteString("\n")

	sb.WriteString(`<ul class="grid grid-6">`)
	for _, s := range servers {
		sb.WriteString(`<li class="server">`)
		sb.WriteString(fmt.Sprintf(`<span class="server-icon"><img src="%s" alt="%s" width="56" height="56" loading="lazy"><span class="server-online" aria-hidden="true"></span></span>`,
			html.EscapeString(s.Image), html.EscapeString(s.Name)))
		sb.WriteString(fmt.Sprintf(`<span class="server-name">%s</span>`, html.EscapeString(s.Name)))
		sb.WriteString(fmt.Sprintf(`<span class="server-members">%s</span>`, html.EscapeString(s.Members)))
		sb.WriteString(`</li>`)
	}
	sb.WriteString(`</ul>`)
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf(`<p class="center muted" style="margin-top:2rem">%s</p>`, html.EscapeString(content.TrustedFooter)))
	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</section>`)
	sb.WriteString("\n")

	return sb.String()
}
