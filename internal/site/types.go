// Package site provides the document shell shared by every MoneBot page:
// head and SEO metadata, the stylesheet, icons, and the live layout.
package site

// PageConfig defines the metadata of a page.
type PageConfig struct {
	// Title is the page title (browser tab and search results)
	Title string
	// Description is the meta description for SEO
	Description string
	// Path is the page path, joined with the base URL for canonical links
	Path string
	// Keywords are SEO keywords for the page
	Keywords []string
	// OGImage is the Open Graph image URL
	OGImage string
	// Language defaults to "en"
	Language string
	// ThemeColor is the mobile browser theme color
	ThemeColor string
	// NoIndex keeps the page out of search engines
	NoIndex bool
	// RedirectURL, when set, emits a meta refresh to that URL
	RedirectURL string
}

// Page is implemented by live components that describe their own metadata.
type Page interface {
	PageConfig() PageConfig
}
