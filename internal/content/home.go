// Package content holds the literal catalogs the pages render. Every
// accessor returns a fresh slice so callers cannot mutate shared state.
package content

// Link is a labelled navigation target.
type Link struct {
	Name string
	Href string
}

// SocialLink is a footer social button.
type SocialLink struct {
	Name        string
	Href        string
	Icon        string
	Description string
}

// Feature is one card of the features grid.
type Feature struct {
	ID          string
	Icon        string
	Title       string
	Description string
	// Active cards are always highlighted.
	Active bool
}

// Statistic is one card of the performance section.
type Statistic struct {
	Icon        string
	Value       string
	Label       string
	Description string
	Trend       string
	// Color is the accent used for the icon and trend line.
	Color string
}

// TrustedServer is a community shown in the trusted-by strip.
type TrustedServer struct {
	Name    string
	Members string
	Image   string
}

// PreviewCard is a tile of the dashboard mock in the hero.
type PreviewCard struct {
	Title  string
	Status string
	Lines  []string
}

// Brand names. The header still carries the previous bot name.
const (
	HeaderBrand = "ProBot"
	FooterBrand = "MoneBot"
	LogoURL     = "https://raw.createusercontent.com/a799031b-5d59-43ac-97df-4edda7d9e21d/"
)

// Hero copy.
const (
	HeroHeadlinePrefix = "Make a "
	HeroHeadlineEm     = "Professional"
	HeroHeadlineSuffix = " Discord Server"
	HeroSubtitle       = "A very customizable multipurpose bot for welcome images, moderation, reaction roles, leveling system and many more features."
	HeroPrimaryCTA     = "Add to Discord"
	HeroSecondaryCTA   = "Browse Features"
	PreviewTitle       = "MoneBot Dashboard"
	CalloutAdmin       = "Server Admin"
	CalloutStatus      = "All Systems Active"
)

// Hero stat labels and fallbacks.
const (
	StatServersLabel = "Servers"
	StatMembersLabel = "Members Served"
	StatRatingLabel  = "User Rating"
	FallbackServers  = "125K+"
	FallbackMembers  = "15M+"
	FallbackRating   = "4.9/5"
)

// Serving counters shown in the footer.
const (
	ServingMembers int64 = 1476241022
	ServingServers int64 = 12888325
	Copyright            = "© 2025 MoneBot. All rights reserved."
	FooterBlurb          = "A very customizable multipurpose bot for welcome images, in-depth logs, social commands, moderation and many more features to make your Discord server professional."
)

// Section headings.
const (
	FeaturesHeadingPrefix = "Everything you need for a "
	FeaturesHeadingEm     = "thriving"
	FeaturesHeadingSuffix = " Discord server"
	FeaturesSubtitle      = "From welcoming new members to advanced moderation, ProBot has all the tools you need"

	StatisticsHeadingPrefix = "Built for "
	StatisticsHeadingEm     = "performance"
	StatisticsHeadingSuffix = " and reliability"
	StatisticsSubtitle      = "ProBot delivers exceptional performance with industry-leading reliability metrics"

	CTAHeading  = "Let ProBot take care of your server"
	CTASubtitle = "Join over 12.8 million servers using ProBot to create amazing Discord communities"

	TrustedHeading = "Trusted by over 12.8 million Discord servers, including"
	TrustedFooter  = "Join thousands of communities already using ProBot to enhance their Discord experience"
)

// MenuItems returns the header navigation.
func MenuItems() []Link {
	return []Link{
		{Name: "Features", Href: "#features"},
		{Name: "Commands", Href: "#commands"},
		{Name: "Documentation", Href: "#docs"},
		{Name: "Premium", Href: "#premium"},
		{Name: "Support", Href: "#support"},
	}
}

// Features returns the feature cards in display order.
func Features() []Feature {
	return []Feature{
		{ID: "welcome-messages", Icon: "message-circle", Title: "Welcome Messages", Active: true,
			Description: "Create custom welcome images with user avatars and customizable backgrounds to greet new members in style."},
		{ID: "moderation", Icon: "shield", Title: "Powerful Moderation",
			Description: "Advanced auto-moderation, detailed logs, and comprehensive moderation tools to keep your server safe."},
		{ID: "reaction-roles", Icon: "user-check", Title: "Reaction Roles",
			Description: "Let members assign roles to themselves by reacting to messages. Support for 250+ roles with various modes."},
		{ID: "leveling", Icon: "trending-up", Title: "Leveling System",
			Description: "Reward active members with level roles and permissions as they participate in your community."},
		{ID: "embed-builder", Icon: "image", Title: "Embed Messages",
			Description: "Create beautiful embed messages with custom colors, fields, and images using our intuitive builder."},
		{ID: "automod", Icon: "zap", Title: "Smart Automod",
			Description: "Automatically detect and handle spam, bad words, suspicious links, and unwanted content."},
		{ID: "custom-commands", Icon: "settings", Title: "Custom Commands",
			Description: "Create powerful custom commands with variables, conditions, and advanced scripting capabilities."},
		{ID: "user-engagement", Icon: "users", Title: "User Engagement",
			Description: "Starboard, giveaways, polls, and interactive features to keep your community active and engaged."},
	}
}

// FeatureByID looks up a feature card.
func FeatureByID(id string) (Feature, bool) {
	for _, f := range Features() {
		if f.ID == id {
			return f, true
		}
	}
	return Feature{}, false
}

// Statistics returns the performance cards.
func Statistics() []Statistic {
	return []Statistic{
		{Icon: "arrow-up", Value: "99.9%", Label: "Uptime", Description: "Reliable service you can count on", Trend: "+0.1% this month", Color: "#28CA42"},
		{Icon: "clock", Value: "<1s", Label: "Response Time", Description: "Lightning fast command execution", Trend: "Optimized for speed", Color: "#8B7355"},
		{Icon: "star", Value: "1M+", Label: "Daily Commands", Description: "Commands processed every day", Trend: "+12% this week", Color: "#FFB800"},
		{Icon: "zap", Value: "24/7", Label: "Active Support", Description: "Community and developer support", Trend: "Always available", Color: "#5865F2"},
	}
}

// TrustIndicators returns the checklist under the call to action.
func TrustIndicators() []string {
	return []string{"Free forever", "No setup required", "24/7 support"}
}

// TrustedServers returns the showcased communities.
func TrustedServers() []TrustedServer {
	const img = "?w=64&h=64&fit=crop&crop=center"
	return []TrustedServer{
		{Name: "PewDiePie | Floor Gang", Members: "200,000 Members", Image: "https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b" + img},
		{Name: "Gaming Community", Members: "150,000 Members", Image: "https://images.unsplash.com/photo-1560472354-b33ff0c44a43" + img},
		{Name: "Anime Soul Discord", Members: "688,000 Members", Image: "https://images.unsplash.com/photo-1578662996442-48f60103fc96" + img},
		{Name: "Tech Hub", Members: "400,000 Members", Image: "https://images.unsplash.com/photo-1518709268805-4e9042af2176" + img},
		{Name: "Developer Community", Members: "120,000 Members", Image: "https://images.unsplash.com/photo-1519389950473-47ba0277781c" + img},
		{Name: "Crypto Trading", Members: "300,000 Members", Image: "https://images.unsplash.com/photo-1559526324-593bc054d0c4" + img},
	}
}

// PreviewCards returns the tiles of the hero dashboard mock.
func PreviewCards() []PreviewCard {
	return []PreviewCard{
		{Title: "Welcome Messages", Status: "Active", Lines: []string{"Channel: #welcome", "Custom image enabled"}},
		{Title: "Moderation", Status: "Auto-mod enabled", Lines: []string{"Logs: #mod-logs", "Mute role configured"}},
		{Title: "Reaction Roles", Status: "3 active setups", Lines: []string{"Channel: #self-roles"}},
		{Title: "Leveling System", Status: "Level rewards active", Lines: []string{"Leaderboard enabled"}},
	}
}

// QuickLinks returns the footer navigation column.
func QuickLinks() []Link {
	return []Link{
		{Name: "Features", Href: "#features"},
		{Name: "Premium", Href: "/premium"},
		{Name: "API Documentation", Href: "/api-docs"},
		{Name: "Webhooks", Href: "/webhooks"},
		{Name: "Support", Href: "#support"},
		{Name: "Status", Href: "#status"},
	}
}

// ResourceLinks returns the footer resources column.
func ResourceLinks() []Link {
	return []Link{
		{Name: "Setup Guides", Href: "#guides"},
		{Name: "Video Tutorials", Href: "#tutorials"},
		{Name: "Changelog", Href: "#changelog"},
		{Name: "API Documentation", Href: "/api-docs"},
		{Name: "Webhook Integration", Href: "/webhooks"},
	}
}

// LegalLinks returns the footer legal links.
func LegalLinks() []Link {
	return []Link{
		{Name: "Terms of Service", Href: "#terms"},
		{Name: "Privacy Policy", Href: "#privacy"},
		{Name: "Refund Policy", Href: "#refund"},
	}
}

// SocialLinks returns the footer social buttons.
func SocialLinks() []SocialLink {
	return []SocialLink{
		{Name: "Discord", Href: "#discord", Icon: "message-circle", Description: "Join our support server"},
		{Name: "Twitter", Href: "#twitter", Icon: "twitter", Description: "Follow for updates"},
		{Name: "GitHub", Href: "#github", Icon: "github", Description: "View our open source projects"},
	}
}
