package server

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"

	"github.com/monebot/website/internal/pages"
	"github.com/monebot/website/internal/site"
	"github.com/monebot/website/pkg/logging"
	"github.com/monebot/website/pkg/router"
)

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc      string `xml:"loc"`
	Priority string `xml:"priority"`
}

// SitemapPaths lists the indexable pages. The dashboard redirect is left out.
func SitemapPaths() []string {
	var out []string
	for _, p := range pages.Paths() {
		if p == pages.PathDashboard {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s *Server) baseURL() string {
	return strings.TrimRight(s.cfg.Site.BaseURL, "/")
}

func (s *Server) sitemap(w http.ResponseWriter, r *http.Request) {
	set := urlSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, p := range SitemapPaths() {
		priority := "0.8"
		if p == pages.PathHome {
			priority = "1.0"
		}
		set.URLs = append(set.URLs, sitemapURL{Loc: s.baseURL() + p, Priority: priority})
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	fmt.Fprint(w, xml.Header)
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		s.logger.Warn("encode sitemap", logging.Err(err))
	}
}

func (s *Server) robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "User-agent: *\nAllow: /\nDisallow: %s\n\nSitemap: %s%s\n",
		pages.PathDashboard, s.baseURL(), PathSitemap)
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	cfg := site.PageConfig{
		Title:       "Page Not Found - MoneBot",
		Description: "The page you are looking for does not exist.",
		Path:        r.URL.Path,
		NoIndex:     true,
	}
	body := `<main class="section"><div class="container redirect">` +
		`<h1>Page not found</h1>` +
		`<p>The page you are looking for does not exist. <a href="/">Go back home</a></p>` +
		`</div></main>`

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprint(w, site.RenderDocument(cfg, site.HeadOptions{BaseURL: s.cfg.Site.BaseURL, Nonce: router.CSPNonce(r.Context())}, body))
}
