package content

// Param documents one request parameter.
type Param struct {
	Name        string
	Type        string
	Required    bool
	Description string
}

// Endpoint is one documented REST endpoint.
type Endpoint struct {
	Method      string
	Path        string
	Description string
	Params      []Param
	Response    string
}

// EventSummary is a short webhook event description on the API page.
type EventSummary struct {
	Name        string
	Description string
}

// RatePlan is a documented request quota.
type RatePlan struct {
	Name            string
	RequestsPerHour int
}

// API docs copy.
const (
	APIBaseHost = "api.monebot.com"
	AuthCurl    = `curl -H "Authorization: Bearer YOUR_API_KEY" https://api.monebot.com/v1/stats`
	APITitle    = "MoneBot "
	APITitleEm  = "API Documentation"
	APISubtitle = "Integrate MoneBot's powerful features into your applications with our comprehensive REST API"
	AuthIntro   = "All API requests require an API key. Include it in the Authorization header:"
)

// Endpoints returns the documented API endpoints.
func Endpoints() []Endpoint {
	return []Endpoint{
		{
			Method:      "GET",
			Path:        "/api/v1/servers/{server_id}",
			Description: "Get server information and configuration",
			Params: []Param{
				{Name: "server_id", Type: "string", Required: true, Description: "Discord server ID"},
			},
			Response: `{
  "id": "123456789",
  "name": "My Server",
  "member_count": 1250,
  "features": {
    "welcome_enabled": true,
    "moderation_enabled": true,
    "reaction_roles": 15
  }
}`,
		},
		{
			Method:      "POST",
			Path:        "/api/v1/commands/execute",
			Description: "Execute a custom command",
			Params: []Param{
				{Name: "command", Type: "string", Required: true, Description: "Command name"},
				{Name: "server_id", Type: "string", Required: true, Description: "Discord server ID"},
				{Name: "args", Type: "array", Required: false, Description: "Command arguments"},
			},
			Response: `{
  "success": true,
  "result": "Command executed successfully",
  "execution_time": "0.23s"
}`,
		},
		{
			Method:      "GET",
			Path:        "/api/v1/stats",
			Description: "Get MoneBot global statistics",
			Response: `{
  "servers": 125000,
  "members": 15000000,
  "commands_today": 1250000,
  "uptime": "99.9%"
}`,
		},
		{
			Method:      "POST",
			Path:        "/api/v1/webhooks/register",
			Description: "Register a webhook endpoint",
			Params: []Param{
				{Name: "url", Type: "string", Required: true, Description: "Webhook URL"},
				{Name: "events", Type: "array", Required: true, Description: "Events to subscribe to"},
				{Name: "server_id", Type: "string", Required: true, Description: "Discord server ID"},
			},
			Response: `{
  "webhook_id": "wh_123456789",
  "url": "https://your-site.com/webhook",
  "events": ["member_join", "message_delete"],
  "created_at": "2025-01-15T10:30:00Z"
}`,
		},
	}
}

// EventSummaries returns the webhook events listed on the API page.
func EventSummaries() []EventSummary {
	return []EventSummary{
		{Name: "member_join", Description: "User joins the server"},
		{Name: "member_leave", Description: "User leaves the server"},
		{Name: "message_delete", Description: "Message is deleted"},
		{Name: "role_update", Description: "Role is created, updated, or deleted"},
		{Name: "moderation_action", Description: "Moderation action taken"},
	}
}

// RatePlans returns the documented quotas.
func RatePlans() []RatePlan {
	return []RatePlan{
		{Name: "Free Plan", RequestsPerHour: 100},
		{Name: "Premium Plan", RequestsPerHour: 1000},
		{Name: "Enterprise Plan", RequestsPerHour: 10000},
	}
}
