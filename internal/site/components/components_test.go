package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/monebot/website/internal/content"
)

func parse(t *testing.T, markup string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// findAll collects element nodes matching pred in document order.
func findAll(n *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && pred(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func byClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool { return hasClass(n, class) }
}

func bySlot(slot string) func(*html.Node) bool {
	return func(n *html.Node) bool { return attr(n, "data-slot") == slot }
}

func text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

func TestRenderHeader_Closed(t *testing.T) {
	doc := parse(t, RenderHeader(DefaultHeaderOptions("https://monebot.com/dashboard", "https://discord.com/invite")))

	assert.Len(t, findAll(doc, byClass("nav-link")), 5)
	assert.Empty(t, findAll(doc, byClass("mobile-panel")))

	toggles := findAll(doc, byClass("menu-toggle"))
	require.Len(t, toggles, 1)
	assert.Equal(t, EventToggleMenu, attr(toggles[0], "lv-click"))
	assert.Equal(t, "false", attr(toggles[0], "aria-expanded"))

	logo := findAll(doc, byClass("logo"))
	require.Len(t, logo, 1)
	assert.Equal(t, "ProBot", text(logo[0]))
}

func TestRenderHeader_Open(t *testing.T) {
	opts := DefaultHeaderOptions("https://monebot.com/dashboard", "https://discord.com/invite")
	opts.MenuOpen = true
	doc := parse(t, RenderHeader(opts))

	panel := findAll(doc, bySlot(SlotMobileMenu))
	require.Len(t, panel, 1)
	assert.Len(t, findAll(panel[0], byClass("mobile-panel")), 1)

	links := findAll(panel[0], byClass("mobile-link"))
	require.Len(t, links, 5)
	for _, l := range links {
		assert.Equal(t, EventCloseMenu, attr(l, "lv-click"))
	}

	closers := findAll(panel[0], func(n *html.Node) bool { return attr(n, "lv-click") == EventCloseMenu })
	assert.Len(t, closers, 5+1+2, "links, close button and both actions")
	assert.Equal(t, "true", attr(findAll(doc, bySlot(SlotMenuToggle))[0].FirstChild, "aria-expanded"))
}

func TestRenderHero_StatSlots(t *testing.T) {
	doc := parse(t, RenderHero(HeroOptions{Servers: "130K+", Members: "16M+", Rating: "4.9/5", InviteURL: "https://x"}))

	for slot, want := range map[string]string{
		SlotStatServers: "130K+",
		SlotStatMembers: "16M+",
		SlotStatRating:  "4.9/5",
	} {
		nodes := findAll(doc, bySlot(slot))
		require.Len(t, nodes, 1, slot)
		assert.Equal(t, want, text(nodes[0]))
	}

	assert.Len(t, findAll(doc, byClass("preview-card")), len(content.PreviewCards()))
	h1 := findAll(doc, func(n *html.Node) bool { return n.Data == "h1" })
	require.Len(t, h1, 1)
	assert.Equal(t, "Make a Professional Discord Server", text(h1[0]))
}

func TestRenderHero_EscapesValues(t *testing.T) {
	out := RenderHero(HeroOptions{Servers: "<b>1</b>"})
	assert.Contains(t, out, "&lt;b&gt;1&lt;/b&gt;")
}

func TestRenderFeatures(t *testing.T) {
	features := content.Features()

	doc := parse(t, RenderFeatures(FeaturesOptions{Features: features}))
	cards := findAll(doc, byClass("feature-card"))
	require.Len(t, cards, 8)

	active := findAll(doc, byClass("is-active"))
	require.Len(t, active, 1)
	assert.Equal(t, "welcome-messages", attr(active[0], "data-feature"))

	wrappers := findAll(doc, func(n *html.Node) bool { return attr(n, "lv-mouseenter") == EventHoverFeature })
	require.Len(t, wrappers, 8)
	assert.Equal(t, FeatureSlot("welcome-messages"), attr(wrappers[0], "data-slot"))
	assert.Equal(t, "welcome-messages", attr(wrappers[0], "lv-value"))
	assert.Equal(t, EventUnhoverFeature, attr(wrappers[0], "lv-mouseleave"))

	doc = parse(t, RenderFeatures(FeaturesOptions{Features: features, Hovered: "automod"}))
	active = findAll(doc, byClass("is-active"))
	require.Len(t, active, 2)
	assert.Equal(t, "automod", attr(active[1], "data-feature"))
}

func TestIsFeatureActive(t *testing.T) {
	welcome, _ := content.FeatureByID("welcome-messages")
	automod, _ := content.FeatureByID("automod")

	assert.True(t, IsFeatureActive(welcome, ""))
	assert.True(t, IsFeatureActive(welcome, "automod"))
	assert.False(t, IsFeatureActive(automod, ""))
	assert.False(t, IsFeatureActive(automod, "leveling"))
	assert.True(t, IsFeatureActive(automod, "automod"))
}

func TestRenderStatistics(t *testing.T) {
	doc := parse(t, RenderStatistics(StatisticsOptions{
		Statistics:   content.Statistics(),
		InviteURL:    "https://invite",
		DashboardURL: "/dashboard",
	}))

	cards := findAll(doc, byClass("metric-card"))
	require.Len(t, cards, 4)
	assert.Equal(t, "99.9%", text(findAll(cards[0], byClass("metric-value"))[0]))
	assert.Equal(t, "<1s", text(findAll(cards[1], byClass("metric-value"))[0]))
	assert.Len(t, findAll(doc, byClass("trust-item")), 3)

	dash := findAll(doc, func(n *html.Node) bool { return n.Data == "a" && attr(n, "href") == "/dashboard" })
	require.Len(t, dash, 1)
	assert.Equal(t, "View Dashboard", text(dash[0]))
}

func TestRenderTrustedBy(t *testing.T) {
	doc := parse(t, RenderTrustedBy(content.TrustedServers()))

	servers := findAll(doc, byClass("server"))
	require.Len(t, servers, 6)
	assert.Equal(t, "PewDiePie | Floor Gang", text(findAll(servers[0], byClass("server-name"))[0]))
	assert.Equal(t, "688,000 Members", text(findAll(servers[2], byClass("server-members"))[0]))
}

func TestRenderFooter(t *testing.T) {
	doc := parse(t, RenderFooter(DefaultFooterOptions()))

	cols := findAll(doc, byClass("footer-col"))
	require.Len(t, cols, 2)
	assert.Len(t, findAll(cols[0], func(n *html.Node) bool { return n.Data == "li" }), 6)
	assert.Len(t, findAll(cols[1], func(n *html.Node) bool { return n.Data == "li" }), 5)

	legal := findAll(doc, byClass("legal"))
	require.Len(t, legal, 1)
	assert.Len(t, findAll(legal[0], func(n *html.Node) bool { return n.Data == "a" }), 3)

	assert.Len(t, findAll(findAll(doc, byClass("social"))[0], func(n *html.Node) bool { return n.Data == "a" }), 3)
	assert.Equal(t, "Serving 1,476,241,022 members in 12,888,325 servers", text(findAll(doc, byClass("serving"))[0]))
	assert.Equal(t, "MoneBot", text(findAll(doc, byClass("logo"))[0]))
}

func TestServingLine(t *testing.T) {
	assert.Equal(t, "Serving 1,000 members in 7 servers", ServingLine(1000, 7))
}

func TestRenderCodeBlock(t *testing.T) {
	out := RenderCodeBlock(CodeBlockOptions{Label: "Response", Code: `{"a": "<b>"}`, CopyKey: "endpoint-1"})
	doc := parse(t, out)

	slots := findAll(doc, bySlot(CopySlot("endpoint-1")))
	require.Len(t, slots, 1)
	btn := findAll(slots[0], byClass("copy-btn"))
	require.Len(t, btn, 1)
	assert.Equal(t, EventCopy, attr(btn[0], "lv-click"))
	assert.Equal(t, "endpoint-1", attr(btn[0], "lv-value"))
	assert.False(t, hasClass(btn[0], "is-copied"))

	code := findAll(doc, func(n *html.Node) bool { return n.Data == "code" })
	require.Len(t, code, 1)
	assert.Equal(t, `{"a": "<b>"}`, text(code[0]))

	copied := parse(t, RenderCodeBlock(CodeBlockOptions{Code: "x", CopyKey: "auth", Copied: true}))
	btn = findAll(copied, byClass("copy-btn"))
	require.Len(t, btn, 1)
	assert.True(t, hasClass(btn[0], "is-copied"))
	assert.Contains(t, text(btn[0]), "Copied")
}

func TestRenderCodeBlock_NoCopyKey(t *testing.T) {
	doc := parse(t, RenderCodeBlock(CodeBlockOptions{Code: "x"}))
	assert.Empty(t, findAll(doc, byClass("copy-btn")))
	assert.Empty(t, findAll(doc, byClass("code-head")))
}
