package site

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/monebot/website/internal/content"
)

// HeadOptions carries per-request values for RenderHead.
type HeadOptions struct {
	// BaseURL is the public origin used for canonical and OG urls.
	BaseURL string
	// Nonce is the CSP nonce for inline scripts.
	Nonce string
	// Extra is raw markup appended before </head>.
	Extra string
}

// RenderHead generates a complete <head> section with SEO, Open Graph, and JSON-LD.
func RenderHead(cfg PageConfig, opts HeadOptions) string {
	var sb strings.Builder

	themeColor := cfg.ThemeColor
	if themeColor == "" {
		themeColor = Colors["brand"]
	}
	canonical := ""
	if opts.BaseURL != "" {
		canonical = strings.TrimRight(opts.BaseURL, "/") + cfg.Path
	}

	sb.WriteString("<head>\n")
	sb.WriteString(`<meta charset="UTF-8">` + "\n")
	sb.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0">` + "\n")
	sb.WriteString(fmt.Sprintf("<title>%s</title>\n", html.EscapeString(cfg.Title)))

	if cfg.Description != "" {
		sb.WriteString(fmt.Sprintf(`<meta name="description" content="%s">`+"\n", html.EscapeString(cfg.Description)))
	}
	if len(cfg.Keywords) > 0 {
		sb.WriteString(fmt.Sprintf(`<meta name="keywords" content="%s">`+"\n", html.EscapeString(strings.Join(cfg.Keywords, ", "))))
	}
	if canonical != "" {
		sb.WriteString(fmt.Sprintf(`<link rel="canonical" href="%s">`+"\n", html.EscapeString(canonical)))
	}
	sb.WriteString(fmt.Sprintf(`<meta name="theme-color" content="%s">`+"\n", themeColor))
	if cfg.RedirectURL != "" {
		sb.WriteString(fmt.Sprintf(`<meta http-equiv="refresh" content="0;url=%s">`+"\n", html.EscapeString(cfg.RedirectURL)))
	}

	if cfg.NoIndex {
		sb.WriteString(`<meta name="robots" content="noindex, nofollow">` + "\n")
	} else {
		sb.WriteString(`<meta name="robots" content="index, follow">` + "\n")
	}

	sb.WriteString(renderOpenGraph(cfg, canonical))
	sb.WriteString(renderTwitterCard(cfg))
	sb.WriteString(renderJSONLD(cfg, canonical, opts.Nonce))

	sb.WriteString(fmt.Sprintf(`<link rel="icon" href="%s">`+"\n", html.EscapeString(content.LogoURL)))
	sb.WriteString(`<link rel="preconnect" href="https://fonts.googleapis.com">` + "\n")
	sb.WriteString(`<link href="https://fonts.googleapis.com/css2?family=Inter:wght@400;500;600;700&family=Playfair+Display:ital,wght@0,400;0,700;1,400&display=swap" rel="stylesheet">` + "\n")

	sb.WriteString("<style>\n")
	sb.WriteString(RenderStyles())
	sb.WriteString("\n</style>\n")

	if opts.Extra != "" {
		sb.WriteString(opts.Extra)
		sb.WriteString("\n")
	}
	sb.WriteString("</head>\n")

	return sb.String()
}

func renderOpenGraph(cfg PageConfig, canonical string) string {
	var sb strings.Builder

	sb.WriteString(`<meta property="og:type" content="website">` + "\n")
	sb.WriteString(`<meta property="og:site_name" content="MoneBot">` + "\n")
	if cfg.Title != "" {
		sb.WriteString(fmt.Sprintf(`<meta property="og:title" content="%s">`+"\n", html.EscapeString(cfg.Title)))
	}
	if cfg.Description != "" {
		sb.WriteString(fmt.Sprintf(`<meta property="og:description" content="%s">`+"\n", html.EscapeString(cfg.Description)))
	}
	if canonical != "" {
		sb.WriteString(fmt.Sprintf(`<meta property="og:url" content="%s">`+"\n", html.EscapeString(canonical)))
	}
	if cfg.OGImage != "" {
		sb.WriteString(fmt.Sprintf(`<meta property="og:image" content="%s">`+"\n", html.EscapeString(cfg.OGImage)))
	}
	sb.WriteString(fmt.Sprintf(`<meta property="og:locale" content="%s">`+"\n", language(cfg)))

	return sb.String()
}

func renderTwitterCard(cfg PageConfig) string {
	var sb strings.Builder

	sb.WriteString(`<meta name="twitter:card" content="summary_large_image">` + "\n")
	if cfg.Title != "" {
		sb.WriteString(fmt.Sprintf(`<meta name="twitter:title" content="%s">`+"\n", html.EscapeString(cfg.Title)))
	}
	if cfg.Description != "" {
		sb.WriteString(fmt.Sprintf(`<meta name="twitter:description" content="%s">`+"\n", html.EscapeString(cfg.Description)))
	}
	if cfg.OGImage != "" {
		sb.WriteString(fmt.Sprintf(`<meta name="twitter:image" content="%s">`+"\n", html.EscapeString(cfg.OGImage)))
	}

	return sb.String()
}

func renderJSONLD(cfg PageConfig, canonical, nonce string) string {
	data, err := json.Marshal(map[string]any{
		"@context":            "https://schema.org",
		"@type":               "SoftwareApplication",
		"name":                "MoneBot",
		"headline":            cfg.Title,
		"description":         cfg.Description,
		"url":                 canonical,
		"applicationCategory": "CommunicationApplication",
		"operatingSystem":     "Discord",
		"aggregateRating": map[string]any{
			"@type":       "AggregateRating",
			"ratingValue": "4.9",
			"bestRating":  "5",
		},
	})
	if err != nil {
		return ""
	}
	// json.Marshal escapes <, > and & so the payload cannot close the tag.
	return fmt.Sprintf(`<script type="application/ld+json"%s>%s</script>`+"\n", nonceAttr(nonce), data)
}

func nonceAttr(nonce string) string {
	if nonce == "" {
		return ""
	}
	return ` nonce="` + html.EscapeString(nonce) + `"`
}

func language(cfg PageConfig) string {
	if cfg.Language == "" {
		return "en"
	}
	return cfg.Language
}

// RenderDocument wraps body content in a complete HTML document.
func RenderDocument(cfg PageConfig, opts HeadOptions, bodyContent string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="%s">
%s<body>
%s
</body>
</html>`, language(cfg), RenderHead(cfg, opts), bodyContent)
}
