package pages

import (
	"context"
	"strings"

	"github.com/monebot/website/internal/content"
	"github.com/monebot/website/internal/site"
	"github.com/monebot/website/internal/site/components"
	"github.com/monebot/website/internal/stats"
	"github.com/monebot/website/pkg/core"
	"github.com/monebot/website/pkg/logging"
)

// StatsLoaded carries the result of the background stats fetch.
type StatsLoaded struct {
	Display stats.Display
}

// Home is the landing page.
type Home struct {
	core.BaseComponent
	chrome

	display stats.Display
	hovered string
	cancel  context.CancelFunc
}

// NewHome creates the landing page component.
func NewHome(opts Options) *Home {
	return &Home{
		chrome:  chrome{opts: opts},
		display: stats.Fallback(),
	}
}

func (h *Home) Name() string { return "home" }

func (h *Home) PageConfig() site.PageConfig {
	return site.PageConfig{
		Title:       "MoneBot - Make a Professional Discord Server",
		Description: content.HeroSubtitle,
		Path:        PathHome,
		Keywords:    []string{"discord bot", "welcome images", "moderation", "reaction roles", "leveling system"},
	}
}

// Mount renders the fallback counters and, on a live connection, starts the
// one-shot stats fetch. The result arrives in HandleInfo.
func (h *Home) Mount(ctx context.Context, params core.Params, session core.Session) error {
	socket := h.Socket()
	if socket == nil || h.opts.Stats == nil {
		return nil
	}

	fetchCtx, cancel := context.WithCancel(ctx)
	h.cancel = cancel
	src := h.opts.Stats
	go func() {
		d := src.Resolve(fetchCtx)
		if fetchCtx.Err() != nil {
			return
		}
		socket.SendInfo(StatsLoaded{Display: d})
	}()
	return nil
}

// Display returns the counters currently shown.
func (h *Home) Display() stats.Display {
	return h.display
}

// Hovered returns the id of the hovered feature card.
func (h *Home) Hovered() string {
	return h.hovered
}

func (h *Home) HandleEvent(ctx context.Context, event string, payload map[string]any) error {
	if h.handleChromeEvent(event) {
		return nil
	}
	switch event {
	case components.EventHoverFeature:
		id := core.StringValue(payload)
		if _, ok := content.FeatureByID(id); ok {
			h.hovered = id
		}
	case components.EventUnhoverFeature:
		// A late leave for a card the pointer already left is ignored.
		if id := core.StringValue(payload); id == "" || id == h.hovered {
			h.hovered = ""
		}
	default:
		return unknownEvent(event)
	}
	return nil
}

func (h *Home) HandleInfo(ctx context.Context, msg any) error {
	if loaded, ok := msg.(StatsLoaded); ok {
		h.display = loaded.Display
		logging.L(ctx).Debug("stats loaded",
			logging.String("servers", loaded.Display.Servers),
			logging.String("members", loaded.Display.Members),
		)
	}
	return nil
}

func (h *Home) Terminate(ctx context.Context, reason core.TerminateReason) error {
	if h.cancel != nil {
		h.cancel()
	}
	return nil
}

func (h *Home) Render(ctx context.Context) core.Renderer {
	var sb strings.Builder

	h.renderHeader(&sb)
	sb.WriteString(`<main id="main-content">`)
	sb.WriteString("\n")
	sb.WriteString(components.RenderHero(components.HeroOptions{
		Servers:   h.display.Servers,
		Members:   h.display.Members,
		Rating:    h.display.Rating,
		InviteURL: h.opts.InviteURL,
	}))
	sb.WriteString(components.RenderTrustedBy(content.TrustedServers()))
	sb.WriteString(components.RenderFeatures(components.FeaturesOptions{
		Features: content.Features(),
		Hovered:  h.hovered,
	}))
	sb.WriteString(components.RenderStatistics(components.StatisticsOptions{
		Statistics:   content.Statistics(),
		InviteURL:    h.opts.InviteURL,
		DashboardURL: h.opts.DashboardURL,
	}))
	sb.WriteString(`</main>`)
	sb.WriteString("\n")
	h.renderFooter(&sb)

	return core.HTML(sb.String())
}
