package content

import (
	"strconv"
	"strings"
)

// WebhookEvent is an event of the webhooks explorer.
type WebhookEvent struct {
	ID          string
	Name        string
	Description string
	Payload     string
}

// SetupStep is one step of the webhook setup guide.
type SetupStep struct {
	Step        int
	Title       string
	Description string
	Code        string
}

// Highlight is a "why use webhooks" card.
type Highlight struct {
	Icon        string
	Title       string
	Description string
}

// DefaultEventID is the event selected when the webhooks page mounts.
const DefaultEventID = "member_join"

// Webhooks page copy.
const (
	WebhooksTitle    = "MoneBot "
	WebhooksTitleEm  = "Webhooks"
	WebhooksSubtitle = "Get real-time notifications about events in your Discord server with powerful webhook integrations"
)

// Copy keys identify the snippet a copy button copies.
const (
	CopyKeyAuth    = "auth"
	CopyKeyPayload = "payload"
)

// EndpointCopyKey is the copy key of the i-th endpoint response.
func EndpointCopyKey(i int) string { return "endpoint-" + strconv.Itoa(i) }

// StepCopyKey is the copy key of the i-th setup step snippet.
func StepCopyKey(i int) string { return "step-" + strconv.Itoa(i) }

// ParseIndexedKey splits keys such as "step-2" into prefix and index. The
// index must be written the way StepCopyKey and EndpointCopyKey write it.
func ParseIndexedKey(key, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(key, prefix+"-")
	if !ok || rest == "" {
		return 0, false
	}
	i, err := strconv.Atoi(rest)
	if err != nil || i < 0 || strconv.Itoa(i) != rest {
		return 0, false
	}
	return i, true
}

// WebhookEvents returns the explorer events.
func WebhookEvents() []WebhookEvent {
	return []WebhookEvent{
		{
			ID:          "member_join",
			Name:        "Member Join",
			Description: "Triggered when a user joins your server",
			Payload: `{
  "event": "member_join",
  "server_id": "123456789",
  "user": {
    "id": "987654321",
    "username": "NewUser",
    "discriminator": "1234",
    "avatar": "avatar_hash",
    "joined_at": "2025-01-15T10:30:00Z"
  },
  "timestamp": "2025-01-15T10:30:00Z"
}`,
		},
		{
			ID:          "member_leave",
			Name:        "Member Leave",
			Description: "Triggered when a user leaves your server",
			Payload: `{
  "event": "member_leave",
  "server_id": "123456789",
  "user": {
    "id": "987654321",
    "username": "LeftUser",
    "discriminator": "5678"
  },
  "timestamp": "2025-01-15T10:30:00Z"
}`,
		},
		{
			ID:          "message_delete",
			Name:        "Message Delete",
			Description: "Triggered when a message is deleted",
			Payload: `{
  "event": "message_delete",
  "server_id": "123456789",
  "channel_id": "555666777",
  "message": {
    "id": "888999111",
    "author_id": "987654321",
    "content": "Deleted message content",
    "deleted_at": "2025-01-15T10:30:00Z"
  },
  "timestamp": "2025-01-15T10:30:00Z"
}`,
		},
		{
			ID:          "moderation_action",
			Name:        "Moderation Action",
			Description: "Triggered when a moderation action is taken",
			Payload: `{
  "event": "moderation_action",
  "server_id": "123456789",
  "action": "ban",
  "target_user": {
    "id": "987654321",
    "username": "BannedUser"
  },
  "moderator": {
    "id": "111222333",
    "username": "ModeratorUser"
  },
  "reason": "Spam",
  "timestamp": "2025-01-15T10:30:00Z"
}`,
		},
	}
}

// WebhookEventByID looks up an explorer event.
func WebhookEventByID(id string) (WebhookEvent, bool) {
	for _, e := range WebhookEvents() {
		if e.ID == id {
			return e, true
		}
	}
	return WebhookEvent{}, false
}

// SetupSteps returns the webhook setup guide.
func SetupSteps() []SetupStep {
	return []SetupStep{
		{
			Step:        1,
			Title:       "Create Webhook Endpoint",
			Description: "Set up an HTTP endpoint on your server to receive webhook events",
			Code: `// Express.js example
app.post('/monebot-webhook', (req, res) => {
  const event = req.body;
  
  // Verify webhook signature (recommended)
  const signature = req.headers['x-monebot-signature'];
  
  // Process the event
  console.log('Received event:', event.event);
  
  res.status(200).send('OK');
});`,
		},
		{
			Step:        2,
			Title:       "Register Your Webhook",
			Description: "Use the MoneBot API to register your webhook endpoint",
			Code: `curl -X POST "https://api.monebot.com/v1/webhooks/register" \
  -H "Authorization: Bearer YOUR_API_KEY" \
  -H "Content-Type: application/json" \
  -d '{
    "url": "https://your-domain.com/monebot-webhook",
    "events": ["member_join", "member_leave"],
    "server_id": "YOUR_SERVER_ID"
  }'`,
		},
		{
			Step:        3,
			Title:       "Handle Events",
			Description: "Process different event types in your application",
			Code: `switch (event.event) {
  case 'member_join':
    // Send welcome email
    await sendWelcomeEmail(event.user);
    break;
    
  case 'member_leave':
    // Update analytics
    await updateMemberStats(event.server_id);
    break;
    
  case 'moderation_action':
    // Log to audit system
    await logModerationAction(event);
    break;
}`,
		},
	}
}

// Highlights returns the "why use webhooks" cards.
func Highlights() []Highlight {
	return []Highlight{
		{Icon: "zap", Title: "Real-time Updates", Description: "Receive instant notifications when events happen in your Discord server"},
		{Icon: "settings", Title: "Automated Workflows", Description: "Trigger automated actions in your applications based on Discord events"},
		{Icon: "shield", Title: "Secure Integration", Description: "Cryptographically signed webhooks ensure data integrity and security"},
	}
}

// SecurityPractices returns the security checklist.
func SecurityPractices() []string {
	return []string{
		"Always verify webhook signatures using the provided secret",
		"Use HTTPS endpoints to protect data in transit",
		"Implement rate limiting to prevent webhook flooding",
		"Store webhook secrets securely and rotate them regularly",
		"Validate and sanitize all incoming webhook data",
	}
}

// Dashboard redirect copy.
const (
	DashboardRedirectTitle = "Redirecting to MoneBot Dashboard..."
	DashboardRedirectNote  = "If you are not redirected automatically,"
	DashboardRedirectLink  = "click here"
)
