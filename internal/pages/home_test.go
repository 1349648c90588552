package pages

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monebot/website/internal/site/components"
	"github.com/monebot/website/internal/stats"
	"github.com/monebot/website/pkg/core"
)

type staticStats stats.Display

func (s staticStats) Resolve(ctx context.Context) stats.Display { return stats.Display(s) }

func TestHome_RendersCatalogs(t *testing.T) {
	home := NewHome(testOptions(nil))
	require.NoError(t, home.Mount(context.Background(), nil, nil))
	doc := render(t, home)

	assert.Len(t, findAll(doc, byClass("nav-link")), 5)
	assert.Len(t, findAll(doc, byClass("feature-card")), 8)
	assert.Len(t, findAll(doc, byClass("metric-card")), 4)
	assert.Len(t, findAll(doc, byClass("server")), 6)
	assert.Len(t, findAll(doc, byClass("site-footer")), 1)

	assert.Equal(t, "125K+", slotText(t, doc, components.SlotStatServers))
	assert.Equal(t, "15M+", slotText(t, doc, components.SlotStatMembers))
	assert.Equal(t, "4.9/5", slotText(t, doc, components.SlotStatRating))
}

func TestHome_LiveStatsReplaceFallback(t *testing.T) {
	opts := testOptions(nil)
	opts.Stats = staticStats{Servers: "130K+", Members: "16M+", Rating: "4.9/5"}
	home := NewHome(opts)
	socket, _ := connect(t, home)

	require.NoError(t, home.Mount(context.Background(), nil, nil))

	// Fallback is rendered until the fetch result arrives.
	assert.Equal(t, "125K+", slotText(t, render(t, home), components.SlotStatServers))

	info := nextInfo(t, socket)
	require.NoError(t, home.HandleInfo(context.Background(), info))

	doc := render(t, home)
	assert.Equal(t, "130K+", slotText(t, doc, components.SlotStatServers))
	assert.Equal(t, "16M+", slotText(t, doc, components.SlotStatMembers))
	require.NoError(t, home.Terminate(context.Background(), core.TerminateNormal))
}

func TestHome_StatsFailureKeepsFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	opts := testOptions(nil)
	opts.Stats = stats.NewFetcher(srv.URL)
	home := NewHome(opts)
	socket, _ := connect(t, home)

	require.NoError(t, home.Mount(context.Background(), nil, nil))
	require.NoError(t, home.HandleInfo(context.Background(), nextInfo(t, socket)))

	assert.Equal(t, stats.Fallback(), home.Display())
	doc := render(t, home)
	assert.Equal(t, "125K+", slotText(t, doc, components.SlotStatServers))
	assert.Equal(t, "15M+", slotText(t, doc, components.SlotStatMembers))
	assert.Equal(t, "4.9/5", slotText(t, doc, components.SlotStatRating))
}

func TestHome_NoFetchWithoutSocket(t *testing.T) {
	opts := testOptions(nil)
	called := make(chan struct{}, 1)
	opts.Stats = statsFunc(func(ctx context.Context) stats.Display {
		called <- struct{}{}
		return stats.Fallback()
	})
	home := NewHome(opts)
	require.NoError(t, home.Mount(context.Background(), nil, nil))
	assert.Empty(t, called)
}

type statsFunc func(ctx context.Context) stats.Display

func (f statsFunc) Resolve(ctx context.Context) stats.Display { return f(ctx) }

func TestHome_ToggleMenu(t *testing.T) {
	home := NewHome(testOptions(nil))
	ctx := context.Background()

	for i, want := range []bool{true, false, true} {
		require.NoError(t, home.HandleEvent(ctx, components.EventToggleMenu, nil))
		assert.Equal(t, want, home.MenuOpen(), "click %d", i+1)
		panels := findAll(render(t, home), byClass("mobile-panel"))
		if want {
			assert.Len(t, panels, 1)
		} else {
			assert.Empty(t, panels)
		}
	}

	require.NoError(t, home.HandleEvent(ctx, components.EventCloseMenu, nil))
	assert.False(t, home.MenuOpen())
	require.NoError(t, home.HandleEvent(ctx, components.EventCloseMenu, nil))
	assert.False(t, home.MenuOpen(), "close is idempotent")
}

func TestHome_HoverFeature(t *testing.T) {
	home := NewHome(testOptions(nil))
	ctx := context.Background()

	require.NoError(t, home.HandleEvent(ctx, components.EventHoverFeature, map[string]any{"value": "automod"}))
	assert.Equal(t, "automod", home.Hovered())
	assert.Len(t, findAll(render(t, home), byClass("is-active")), 2)

	require.NoError(t, home.HandleEvent(ctx, components.EventHoverFeature, map[string]any{"value": "nope"}))
	assert.Equal(t, "automod", home.Hovered(), "unknown ids are ignored")

	require.NoError(t, home.HandleEvent(ctx, components.EventUnhoverFeature, map[string]any{"value": "leveling"}))
	assert.Equal(t, "automod", home.Hovered(), "stale leave is ignored")

	require.NoError(t, home.HandleEvent(ctx, components.EventUnhoverFeature, map[string]any{"value": "automod"}))
	assert.Equal(t, "", home.Hovered())
	assert.Len(t, findAll(render(t, home), byClass("is-active")), 1)
}

func TestHome_UnknownEvent(t *testing.T) {
	err := NewHome(testOptions(nil)).HandleEvent(context.Background(), "explode", nil)
	assert.ErrorIs(t, err, ErrUnknownEvent)
}

func TestHome_PageConfig(t *testing.T) {
	cfg := NewHome(testOptions(nil)).PageConfig()
	assert.Equal(t, PathHome, cfg.Path)
	assert.NotEmpty(t, cfg.Title)
}
