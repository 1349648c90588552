package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogSizes(t *testing.T) {
	assert.Len(t, MenuItems(), 5)
	assert.Len(t, Features(), 8)
	assert.Len(t, Statistics(), 4)
	assert.Len(t, TrustedServers(), 6)
	assert.Len(t, PreviewCards(), 4)
	assert.Len(t, QuickLinks(), 6)
	assert.Len(t, ResourceLinks(), 5)
	assert.Len(t, LegalLinks(), 3)
	assert.Len(t, SocialLinks(), 3)
	assert.Len(t, Endpoints(), 4)
	assert.Len(t, EventSummaries(), 5)
	assert.Len(t, RatePlans(), 3)
	assert.Len(t, WebhookEvents(), 4)
	assert.Len(t, SetupSteps(), 3)
	assert.Len(t, Highlights(), 3)
	assert.Len(t, SecurityPractices(), 5)
}

func TestFeatures_OnlyWelcomeIsActive(t *testing.T) {
	var active []string
	seen := map[string]bool{}
	for _, f := range Features() {
		assert.False(t, seen[f.ID], "duplicate id %s", f.ID)
		seen[f.ID] = true
		if f.Active {
			active = append(active, f.ID)
		}
	}
	assert.Equal(t, []string{"welcome-messages"}, active)
}

func TestFeatureByID(t *testing.T) {
	f, ok := FeatureByID("automod")
	require.True(t, ok)
	assert.Equal(t, "Smart Automod", f.Title)

	_, ok = FeatureByID("nope")
	assert.False(t, ok)
}

func TestWebhookEvents_PayloadsAreJSONNamingTheirEvent(t *testing.T) {
	for _, e := range WebhookEvents() {
		var payload map[string]any
		require.NoError(t, json.Unmarshal([]byte(e.Payload), &payload), e.ID)
		assert.Equal(t, e.ID, payload["event"])
	}
}

func TestEndpoints_ResponsesAreJSON(t *testing.T) {
	for _, ep := range Endpoints() {
		assert.True(t, json.Valid([]byte(ep.Response)), ep.Path)
	}
	assert.Empty(t, Endpoints()[2].Params)
}

func TestWebhookEventByID(t *testing.T) {
	e, ok := WebhookEventByID(DefaultEventID)
	require.True(t, ok)
	assert.Equal(t, "Member Join", e.Name)

	_, ok = WebhookEventByID("role_update")
	assert.False(t, ok, "role_update is listed on the API page only")
}

func TestCatalogsAreFreshCopies(t *testing.T) {
	items := MenuItems()
	items[0].Name = "Changed"
	assert.Equal(t, "Features", MenuItems()[0].Name)

	cards := PreviewCards()
	cards[0].Lines[0] = "Changed"
	assert.Equal(t, "Channel: #welcome", PreviewCards()[0].Lines[0])
}

func TestCopyKeys(t *testing.T) {
	assert.Equal(t, "endpoint-3", EndpointCopyKey(3))
	assert.Equal(t, "step-0", StepCopyKey(0))

	i, ok := ParseIndexedKey("step-2", "step")
	assert.True(t, ok)
	assert.Equal(t, 2, i)

	for _, bad := range []string{"step-", "step-x", "endpoint-1", "step--1", "step", "step-01", "step-+1", "step- 1"} {
		_, ok := ParseIndexedKey(bad, "step")
		assert.False(t, ok, bad)
	}
}

func TestAuthCurl(t *testing.T) {
	assert.Equal(t, `curl -H "Authorization: Bearer YOUR_API_KEY" https://api.monebot.com/v1/stats`, AuthCurl)
}
