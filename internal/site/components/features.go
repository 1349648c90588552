package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/monebot/website/internal/content"
	"github.com/monebot/website/internal/site"
)

// Feature card events.
const (
	EventHoverFeature   = "hover_feature"
	EventUnhoverFeature = "unhover_feature"
)

// FeaturesOptions configures the features grid.
type FeaturesOptions struct {
	Features []content.Feature
	// Hovered is the id of the card under the pointer, if any
	Hovered string
}

// FeatureSlot is the slot id wrapping the card of a feature.
func FeatureSlot(id string) string {
	return "feature-" + id
}

// IsFeatureActive reports whether a card is highlighted.
func IsFeatureActive(f content.Feature, hovered string) bool {
	return f.Active || (hovered != "" && hovered == f.ID)
}

// RenderFeatures generates the features section with its bottom call to action.
func RenderFeatures(opts FeaturesOptions) string {
	var sb strings.Builder

	sb.WriteString(`<section id="features" class="section section-alt" aria-labelledby="features-title">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="container">`)
	sb.WriteString("\n")
	sb.WriteString(renderSectionHead("features-title",
		content.FeaturesHeadingPrefix, content.FeaturesHeadingEm, content.FeaturesHeadingSuffix,
		content.FeaturesSubtitle))

	sb.WriteString(`<div class="grid grid-4">`)
	sb.WriteString("\n")
	for _, f := range opts.Features {
		sb.WriteString(renderFeatureCard(f, IsFeatureActive(f, opts.Hovered)))
	}
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(`<div class="cta">`)
	sb.WriteString(`<a href="#features" class="btn btn-primary">See All Features</a>`)
	sb.WriteString(`<p class="cta-note">or <a href="/api-docs">browse our documentation</a></p>`)
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</section>`)
	sb.WriteString("\n")

	return sb.String()
}

// renderFeatureCard wraps the card in a stable slot element that carries the
// hover bindings, so patching the card does not lose pointer tracking.
func renderFeatureCard(f content.Feature, active bool) string {
	class := "card feature-card"
	if active {
		class += " is-active"
	}
	id := html.EscapeString(f.ID)
	return fmt.Sprintf(`<div data-slot="%s" lv-mouseenter="%s" lv-mouseleave="%s" lv-value="%s"><article class="%s" data-feature="%s"><span class="card-icon">%s</span><h3>%s</h3><p>%s</p><span class="card-more">Learn more →</span></article></div>`+"\n",
		html.EscapeString(FeatureSlot(f.ID)), EventHoverFeature, EventUnhoverFeature, id,
		class, id, site.Icon(f.Icon), html.EscapeString(f.Title), html.EscapeString(f.Description))
}

func renderSectionHead(id, prefix, em, suffix, subtitle string) string {
	return fmt.Sprintf(`<div class="section-head"><h2 id="%s">%s<em>%s</em>%s</h2><p>%s</p></div>`+"\n",
		id, html.EscapeString(prefix), html.EscapeString(em), html.EscapeString(suffix), html.EscapeString(subtitle))
}
