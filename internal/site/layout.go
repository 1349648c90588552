package site

import (
	"context"
	"io"
	"strings"

	"github.com/monebot/website/pkg/core"
	"github.com/monebot/website/pkg/router"
)

// DefaultPageConfig is used for components that do not implement Page.
var DefaultPageConfig = PageConfig{
	Title:       "MoneBot - Make a Professional Discord Server",
	Description: "A very customizable multipurpose Discord bot for welcome images, moderation, reaction roles, leveling system and many more features.",
	Path:        "/",
	Keywords:    []string{"discord bot", "moderation", "welcome messages", "reaction roles", "leveling"},
}

// LayoutOptions configures Layout.
type LayoutOptions struct {
	// BaseURL is the public site origin, e.g. https://monebot.com.
	BaseURL string
	// OGImage is the default social preview image.
	OGImage string
}

// Layout returns the document layout for live pages. The component body is
// placed inside the live root followed by the client script.
func Layout(opts LayoutOptions) router.LayoutFunc {
	return func(ctx context.Context, c core.Component, body string) core.Renderer {
		cfg := DefaultPageConfig
		if p, ok := c.(Page); ok {
			cfg = p.PageConfig()
		}
		if cfg.OGImage == "" {
			cfg.OGImage = opts.OGImage
		}
		nonce := router.CSPNonce(ctx)

		var sb strings.Builder
		sb.WriteString(router.RootOpen)
		sb.WriteString(body)
		sb.WriteString(router.RootClose)
		sb.WriteString("\n")
		sb.WriteString(`<script src="` + router.ClientScriptPath + `"` + nonceAttr(nonce) + ` defer></script>`)

		doc := RenderDocument(cfg, HeadOptions{BaseURL: opts.BaseURL, Nonce: nonce}, sb.String())
		return core.RendererFunc(func(ctx context.Context, w io.Writer) error {
			_, err := io.WriteString(w, doc)
			return err
		})
	}
}
