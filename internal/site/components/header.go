// Package components provides the presentational sections the MoneBot pages
// are composed of. Every function is a pure render of its options.
package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/monebot/website/internal/content"
	"github.com/monebot/website/internal/site"
)

// Header events.
const (
	EventToggleMenu = "toggle_menu"
	EventCloseMenu  = "close_menu"
)

// Header slot ids.
const (
	SlotMenuToggle = "menu-toggle"
	SlotMobileMenu = "mobile-menu"
)

// HeaderOptions configures the site header.
type HeaderOptions struct {
	// Brand is the name next to the logo
	Brand string
	// LogoURL is the logo image
	LogoURL string
	// Items are the navigation links
	Items []content.Link
	// DashboardURL is the target of the Dashboard button
	DashboardURL string
	// InviteURL is the target of the Add to Discord button
	InviteURL string
	// MenuOpen renders the mobile navigation panel
	MenuOpen bool
}

// DefaultHeaderOptions returns the header used on every page.
func DefaultHeaderOptions(dashboardURL, inviteURL string) HeaderOptions {
	return HeaderOptions{
		Brand:        content.HeaderBrand,
		LogoURL:      content.LogoURL,
		Items:        content.MenuItems(),
		DashboardURL: dashboardURL,
		InviteURL:    inviteURL,
	}
}

// RenderHeader generates the sticky header with the collapsible mobile panel.
func RenderHeader(opts HeaderOptions) string {
	var sb strings.Builder

	sb.WriteString(`<header class="site-header">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="container header-inner">`)
	sb.WriteString("\n")

	sb.WriteString(renderLogo(opts.Brand, opts.LogoURL))

	sb.WriteString(`<nav class="nav-links" aria-label="Main navigation">`)
	for _, item := range opts.Items {
		sb.WriteString(fmt.Sprintf(`<a href="%s" class="nav-link">%s</a>`,
			html.EscapeString(item.Href), html.EscapeString(item.Name)))
	}
	sb.WriteString(`</nav>`)
	sb.WriteString("\n")

	sb.WriteString(`<div class="header-actions">`)
	sb.WriteString(renderHeaderActions(opts, ""))
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	// The toggle keeps a stable wrapper so its icon can be patched.
	sb.WriteString(fmt.Sprintf(`<span data-slot="%s">`, SlotMenuToggle))
	if opts.MenuOpen {
		sb.WriteString(fmt.Sprintf(`<button type="button" class="menu-toggle" lv-click="%s" aria-label="Toggle mobile menu" aria-expanded="true">%s</button>`,
			EventToggleMenu, site.Icon("x")))
	} else {
		sb.WriteString(fmt.Sprintf(`<button type="button" class="menu-toggle" lv-click="%s" aria-label="Toggle mobile menu" aria-expanded="false">%s</button>`,
			EventToggleMenu, site.Icon("menu")))
	}
	sb.WriteString(`</span>`)
	sb.WriteString("\n")

	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf(`<div data-slot="%s">`, SlotMobileMenu))
	if opts.MenuOpen {
		sb.WriteString(renderMobilePanel(opts))
	}
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(`</header>`)
	sb.WriteString("\n")

	return sb.String()
}

func renderLogo(brand, logoURL string) string {
	return fmt.Sprintf(`<a href="/" class="logo"><img src="%s" alt="%s Logo" width="32" height="32"><span>%s</span></a>`,
		html.EscapeString(logoURL), html.EscapeString(brand), html.EscapeString(brand))
}

// renderHeaderActions renders the Dashboard and Add to Discord buttons. A
// non-empty event is attached to both.
func renderHeaderActions(opts HeaderOptions, event string) string {
	click := ""
	block := ""
	if event != "" {
		click = fmt.Sprintf(` lv-click="%s"`, event)
		block = " btn-block"
	}
	return fmt.Sprintf(`<a href="%s" class="btn btn-outline%s"%s>Dashboard</a><a href="%s" class="btn btn-primary%s"%s target="_blank" rel="noopener noreferrer">%s</a>`,
		html.EscapeString(opts.DashboardURL), block, click,
		html.EscapeString(opts.InviteURL), block, click, content.HeroPrimaryCTA)
}

func renderMobilePanel(opts HeaderOptions) string {
	var sb strings.Builder

	sb.WriteString(`<div class="mobile-panel" role="dialog" aria-modal="true" aria-label="Mobile navigation">`)
	sb.WriteString(`<div class="mobile-panel-head">`)
	sb.WriteString(renderLogo(opts.Brand, opts.LogoURL))
	sb.WriteString(fmt.Sprintf(`<button type="button" class="menu-toggle" lv-click="%s" aria-label="Close mobile menu">%s</button>`,
		EventCloseMenu, site.Icon("x")))
	sb.WriteString(`</div>`)

	sb.WriteString(`<nav class="mobile-nav">`)
	for _, item := range opts.Items {
		sb.WriteString(fmt.Sprintf(`<a href="%s" class="mobile-link" lv-click="%s">%s</a>`,
			html.EscapeString(item.Href), EventCloseMenu, html.EscapeString(item.Name)))
	}
	sb.WriteString(`</nav>`)

	sb.WriteString(`<div class="mobile-actions">`)
	sb.WriteString(renderHeaderActions(opts, EventCloseMenu))
	sb.WriteString(`</div>`)
	sb.WriteString(`</div>`)

	return sb.String()
}
