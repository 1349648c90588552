package site

import (
	"fmt"
	"sort"
	"strings"
)

// Colors is the warm MoneBot palette.
var Colors = map[string]string{
	"bg":        "#F5F4F0",
	"bgAlt":     "#FAF9F7",
	"surface":   "#FFFFFF",
	"text":      "#2C2419",
	"textMuted": "#5C5347",
	"brand":     "#8B7355",
	"brandDark": "#75624A",
	"sand":      "#D4C4A8",
	"border":    "#E8E6E1",
	"discord":   "#5865F2",
	"online":    "#28CA42",
	"code":      "#2C2419",
	"codeText":  "#F5F4F0",
}

// FontSans is the body font stack, FontSerif the heading font stack.
var (
	FontSans  = `'Inter', system-ui, -apple-system, 'Segoe UI', Roboto, sans-serif`
	FontSerif = `'Playfair Display', Georgia, 'Times New Roman', serif`
	FontMono  = `'SF Mono', ui-monospace, Menlo, Consolas, monospace`
)

// StyleOption allows customizing the generated CSS
type StyleOption func(*styleConfig)

type styleConfig struct {
	customColors      map[string]string
	includeReset      bool
	includeAnimations bool
}

// WithCustomColors overrides default colors
func WithCustomColors(colors map[string]string) StyleOption {
	return func(cfg *styleConfig) {
		for k, v := range colors {
			cfg.customColors[k] = v
		}
	}
}

// WithReset includes a CSS reset
func WithReset(include bool) StyleOption {
	return func(cfg *styleConfig) {
		cfg.includeReset = include
	}
}

// WithAnimations includes animation definitions
func WithAnimations(include bool) StyleOption {
	return func(cfg *styleConfig) {
		cfg.includeAnimations = include
	}
}

// RenderStyles generates the complete CSS shared by every page.
func RenderStyles(opts ...StyleOption) string {
	cfg := &styleConfig{
		customColors:      make(map[string]string),
		includeReset:      true,
		includeAnimations: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	colors := make(map[string]string, len(Colors))
	for k, v := range Colors {
		colors[k] = v
	}
	for k, v := range cfg.customColors {
		colors[k] = v
	}

	var sb strings.Builder

	if cfg.includeReset {
		sb.WriteString(cssReset())
	}
	sb.WriteString(cssVariables(colors))
	sb.WriteString(cssBase())
	sb.WriteString(cssLayout())
	sb.WriteString(cssButtons())
	sb.WriteString(cssHeader())
	sb.WriteString(cssHero())
	sb.WriteString(cssCards())
	sb.WriteString(cssFooter())
	sb.WriteString(cssDocs())
	sb.WriteString(cssCode())
	if cfg.includeAnimations {
		sb.WriteString(cssAnimations())
	}
	sb.WriteString(cssAccessibility())
	sb.WriteString(cssResponsive())

	return sb.String()
}

func cssReset() string {
	return `
*,*::before,*::after{box-sizing:border-box;margin:0;padding:0}
html{-webkit-text-size-adjust:100%;scroll-behavior:smooth}
body{line-height:1.6;-webkit-font-smoothing:antialiased}
img,svg{display:block;max-width:100%}
input,button,textarea,select{font:inherit}
a{color:inherit;text-decoration:none}
ul,ol{list-style:none}
`
}

func cssVariables(colors map[string]string) string {
	names := make([]string, 0, len(colors))
	for name := range colors {
		names = append(names, name)
	}
	sort.Strings(names)

	vars := make([]string, 0, len(names))
	for _, name := range names {
		vars = append(vars, fmt.Sprintf("--color-%s:%s", name, colors[name]))
	}
	return fmt.Sprintf(":root{%s;--font-sans:%s;--font-serif:%s;--font-mono:%s}\n",
		strings.Join(vars, ";"), FontSans, FontSerif, FontMono)
}

func cssBase() string {
	return `
body{font-family:var(--font-sans);background:var(--color-bg);color:var(--color-text);min-height:100vh}
h1,h2,h3{font-family:var(--font-serif);font-weight:700;line-height:1.15;color:var(--color-text)}
h1{font-size:clamp(2.25rem,5vw,4rem)}
h2{font-size:clamp(1.75rem,3.5vw,2.75rem)}
h3{font-size:1.25rem}
h1 em,h2 em{font-style:italic;color:var(--color-brand)}
p{color:var(--color-textMuted)}
code{font-family:var(--font-mono);font-size:0.9em}
::selection{background:var(--color-sand)}
`
}

func cssLayout() string {
	return `
.container{width:100%;max-width:1200px;margin:0 auto;padding:0 1.25rem}
.section{padding:4rem 0}
.section-alt{background:var(--color-bgAlt)}
.section-white{background:var(--color-surface)}
.section-head{text-align:center;max-width:720px;margin:0 auto 3rem}
.section-head p{margin-top:1rem;font-size:1.125rem}
.grid{display:grid;gap:1.5rem;grid-template-columns:1fr}
.center{text-align:center}
.muted{color:var(--color-textMuted)}
`
}

func cssButtons() string {
	return `
.btn{display:inline-flex;align-items:center;justify-content:center;gap:0.5rem;padding:0.75rem 1.5rem;border-radius:0.5rem;font-weight:600;border:1px solid transparent;cursor:pointer;transition:background .2s,color .2s,border-color .2s}
.btn svg{width:1.125rem;height:1.125rem}
.btn-primary{background:var(--color-brand);color:#fff}
.btn-primary:hover{background:var(--color-brandDark)}
.btn-discord{background:var(--color-discord);color:#fff}
.btn-discord:hover{filter:brightness(0.92)}
.btn-outline{background:transparent;border-color:var(--color-brand);color:var(--color-brand)}
.btn-outline:hover{background:var(--color-brand);color:#fff}
.btn-ghost{background:transparent;color:var(--color-text)}
.btn-ghost:hover{color:var(--color-brand)}
.btn-block{width:100%}
`
}

func cssHeader() string {
	return `
.site-header{position:sticky;top:0;z-index:50;background:rgba(245,244,240,0.95);backdrop-filter:blur(8px);border-bottom:1px solid var(--color-border)}
.header-inner{display:flex;align-items:center;justify-content:space-between;height:4rem}
.logo{display:flex;align-items:center;gap:0.5rem;font-family:var(--font-serif);font-size:1.375rem;font-weight:700}
.logo img{width:2rem;height:2rem;border-radius:0.5rem}
.nav-links{display:none;gap:2rem}
.nav-link{color:var(--color-textMuted);font-weight:500}
.nav-link:hover{color:var(--color-brand)}
.header-actions{display:none;gap:0.75rem}
.menu-toggle{display:inline-flex;background:none;border:0;padding:0.5rem;cursor:pointer;color:var(--color-text)}
.menu-toggle svg{width:1.5rem;height:1.5rem}
.mobile-panel{position:fixed;inset:0;z-index:60;background:var(--color-bg);padding:1.25rem;display:flex;flex-direction:column;gap:1.5rem}
.mobile-panel-head{display:flex;align-items:center;justify-content:space-between}
.mobile-nav{display:flex;flex-direction:column;gap:1rem}
.mobile-link{font-size:1.125rem;font-weight:500}
.mobile-actions{display:flex;flex-direction:column;gap:0.75rem;margin-top:auto}
`
}

func cssHero() string {
	return `
.hero{padding:4rem 0 5rem}
.hero-grid{display:grid;gap:3rem;align-items:center}
.hero-subtitle{margin:1.5rem 0 2rem;font-size:1.125rem;max-width:560px}
.hero-actions{display:flex;flex-wrap:wrap;gap:1rem}
.play-dot{width:0.5rem;height:0.5rem;border-radius:9999px;background:currentColor}
.hero-stats{display:grid;grid-template-columns:repeat(3,1fr);gap:1rem;margin-top:2.5rem}
.stat-tile{background:var(--color-surface);border:1px solid var(--color-border);border-radius:0.75rem;padding:1rem;text-align:center}
.stat-icon{display:inline-flex;color:var(--color-brand)}
.stat-icon svg{width:1.25rem;height:1.25rem}
.stat-value{display:block;font-family:var(--font-serif);font-size:1.5rem;font-weight:700}
.stat-label{font-size:0.8125rem;color:var(--color-textMuted)}
.preview{position:relative}
.preview-frame{background:var(--color-surface);border:1px solid var(--color-border);border-radius:1rem;box-shadow:0 20px 40px rgba(44,36,25,0.08);overflow:hidden}
.preview-bar{display:flex;gap:0.375rem;padding:0.75rem 1rem;border-bottom:1px solid var(--color-border)}
.preview-bar span{width:0.625rem;height:0.625rem;border-radius:9999px;background:var(--color-sand)}
.preview-body{padding:1.25rem;display:grid;gap:1rem}
.preview-card{border:1px solid var(--color-border);border-radius:0.75rem;padding:1rem;background:var(--color-bgAlt)}
.preview-card h4{display:flex;justify-content:space-between;font-size:0.9375rem}
.preview-card ul{margin-top:0.5rem;font-size:0.875rem;color:var(--color-textMuted)}
.status{display:inline-flex;align-items:center;gap:0.375rem;font-size:0.75rem;color:var(--color-online)}
.status::before{content:"";width:0.5rem;height:0.5rem;border-radius:9999px;background:var(--color-online)}
.callout{position:absolute;background:var(--color-surface);border:1px solid var(--color-border);border-radius:0.75rem;padding:0.5rem 0.875rem;font-size:0.8125rem;font-weight:600;box-shadow:0 8px 20px rgba(44,36,25,0.08)}
.callout-top{top:-1rem;right:-0.5rem}
.callout-bottom{bottom:-1rem;left:-0.5rem}
.trusted{padding:3rem 0;border-top:1px solid var(--color-border);border-bottom:1px solid var(--color-border)}
.eyebrow{text-align:center;text-transform:uppercase;letter-spacing:0.1em;font-size:0.8125rem;color:var(--color-textMuted);margin-bottom:2rem}
.server{display:flex;flex-direction:column;align-items:center;gap:0.5rem;text-align:center}
.server-icon{position:relative;width:3.5rem;height:3.5rem;border-radius:9999px;background:var(--color-sand);display:flex;align-items:center;justify-content:center;font-weight:700;color:var(--color-text)}
.server-icon img{width:100%;height:100%;border-radius:9999px;object-fit:cover}
.server-online{position:absolute;right:0;bottom:0;width:0.875rem;height:0.875rem;border-radius:9999px;background:var(--color-online);border:2px solid var(--color-bg)}
.server-name{font-weight:600;font-size:0.9375rem}
.server-members{font-size:0.8125rem;color:var(--color-textMuted)}
`
}

func cssCards() string {
	return `
.card{background:var(--color-surface);border:1px solid var(--color-border);border-radius:1rem;padding:1.75rem;transition:border-color .2s,transform .2s,box-shadow .2s}
.feature-card.is-active{border-color:var(--color-brand);transform:translateY(-4px);box-shadow:0 12px 30px rgba(139,115,85,0.15)}
.card-icon{display:inline-flex;align-items:center;justify-content:center;width:3rem;height:3rem;border-radius:0.75rem;background:var(--color-bg);color:var(--color-brand);margin-bottom:1.25rem}
.card-icon svg{width:1.5rem;height:1.5rem}
.feature-card.is-active .card-icon{background:var(--color-brand);color:#fff}
.card p{margin-top:0.5rem}
.card-more{display:inline-block;margin-top:1rem;font-weight:600;color:var(--color-brand)}
.metric-value{display:block;font-family:var(--font-serif);font-size:2.5rem;font-weight:700;margin-top:0.25rem}
.metric-label{font-weight:600}
.metric-trend{display:inline-block;margin-top:0.75rem;font-size:0.8125rem;font-weight:600;color:var(--color-online)}
.cta{text-align:center;margin-top:3rem}
.cta .hero-actions{justify-content:center;margin-top:1.5rem}
.cta-note{margin-top:1rem;font-size:0.9375rem}
.cta-note a{color:var(--color-brand);text-decoration:underline}
.trust-list{display:flex;flex-wrap:wrap;justify-content:center;gap:1.5rem;margin-top:2rem;font-size:0.9375rem;color:var(--color-textMuted)}
.trust-item{display:inline-flex;align-items:center;gap:0.375rem}
.trust-item svg{width:1rem;height:1rem;color:var(--color-online)}
`
}

func cssFooter() string {
	return `
.site-footer{background:var(--color-text);color:var(--color-bg);padding:4rem 0 2rem}
.site-footer p,.site-footer a{color:var(--color-sand)}
.site-footer a:hover{color:#fff}
.footer-grid{display:grid;gap:2.5rem}
.footer-brand .logo{color:#fff}
.footer-brand p{margin:1rem 0 1.5rem;max-width:320px}
.social{display:flex;gap:0.75rem}
.social a{display:inline-flex;width:2.25rem;height:2.25rem;align-items:center;justify-content:center;border-radius:9999px;border:1px solid rgba(212,196,168,0.3)}
.social svg{width:1rem;height:1rem}
.footer-col h3{font-family:var(--font-sans);font-size:0.875rem;text-transform:uppercase;letter-spacing:0.08em;color:#fff;margin-bottom:1rem}
.footer-col ul{display:flex;flex-direction:column;gap:0.625rem}
.footer-bottom{display:flex;flex-direction:column;gap:1rem;margin-top:3rem;padding-top:2rem;border-top:1px solid rgba(212,196,168,0.2);font-size:0.875rem}
.legal{display:flex;flex-wrap:wrap;gap:0.5rem}
.serving{color:var(--color-sand)}
`
}

func cssDocs() string {
	return `
.doc-hero{padding:4rem 0 3rem;text-align:center}
.doc-hero p{max-width:640px;margin:1.25rem auto 0;font-size:1.125rem}
.pills{display:flex;flex-wrap:wrap;justify-content:center;gap:0.75rem;margin-top:2rem}
.pill{display:inline-flex;align-items:center;gap:0.375rem;padding:0.375rem 0.875rem;border-radius:9999px;font-size:0.8125rem;font-weight:600;background:var(--color-surface);border:1px solid var(--color-border)}
.pill svg{width:0.875rem;height:0.875rem}
.pill-brand{background:var(--color-brand);border-color:var(--color-brand);color:#fff}
.plan h3{font-family:var(--font-sans);font-size:1rem}
.plan strong{display:block;font-family:var(--font-serif);font-size:1.75rem;margin-top:0.5rem}
.endpoint{display:grid;gap:1.5rem}
.endpoint-head{display:flex;flex-wrap:wrap;align-items:center;gap:0.75rem}
.method{padding:0.25rem 0.625rem;border-radius:0.375rem;font-family:var(--font-mono);font-size:0.75rem;font-weight:700;color:#fff;background:var(--color-online)}
.method-post{background:var(--color-discord)}
.method-put{background:var(--color-brand)}
.method-delete{background:#C0392B}
.path{font-family:var(--font-mono);font-weight:600}
.params h4,.endpoint h4{font-size:0.875rem;text-transform:uppercase;letter-spacing:0.06em;color:var(--color-textMuted);margin-bottom:0.75rem}
.param{display:flex;flex-wrap:wrap;gap:0.5rem;align-items:baseline;padding:0.625rem 0;border-bottom:1px solid var(--color-border)}
.param-name{font-family:var(--font-mono);font-weight:600}
.param-type{font-size:0.8125rem;color:var(--color-brand)}
.param-flag{font-size:0.75rem;font-weight:600;padding:0.125rem 0.5rem;border-radius:9999px;background:var(--color-bg)}
.param-flag.is-required{background:#F6E3D6;color:#8A4B21}
.event-item{display:flex;gap:1rem;align-items:flex-start}
.event-item code{color:var(--color-brand);font-weight:600}
.explorer{display:grid;gap:1.5rem}
.event-options{display:flex;flex-direction:column;gap:0.5rem}
.event-option{display:flex;gap:0.75rem;align-items:flex-start;text-align:left;width:100%;background:var(--color-surface);border:1px solid var(--color-border);border-radius:0.75rem;padding:1rem;cursor:pointer}
.event-option.is-selected{border-color:var(--color-brand);background:var(--color-bgAlt)}
.event-option svg{width:1.25rem;height:1.25rem;color:var(--color-brand);flex-shrink:0}
.event-option strong{display:block}
.event-option span{font-size:0.875rem;color:var(--color-textMuted)}
.step{display:grid;gap:1rem}
.step-head{display:flex;gap:1rem;align-items:flex-start}
.step-num{display:inline-flex;align-items:center;justify-content:center;flex-shrink:0;width:2.25rem;height:2.25rem;border-radius:9999px;background:var(--color-brand);color:#fff;font-weight:700}
.practice{display:flex;gap:0.75rem;align-items:flex-start}
.practice svg{width:1.25rem;height:1.25rem;color:var(--color-online);flex-shrink:0;margin-top:0.125rem}
.redirect{min-height:100vh;display:flex;flex-direction:column;align-items:center;justify-content:center;gap:1.5rem;text-align:center;padding:2rem}
.redirect a{color:var(--color-brand);text-decoration:underline}
.spinner{width:3rem;height:3rem;border-radius:9999px;border:4px solid var(--color-border);border-top-color:var(--color-brand);animation:spin 1s linear infinite}
`
}

func cssCode() string {
	return `
.code-block{background:var(--color-code);border-radius:0.75rem;overflow:hidden}
.code-head{display:flex;align-items:center;justify-content:space-between;padding:0.625rem 1rem;border-bottom:1px solid rgba(245,244,240,0.1)}
.code-label{font-size:0.75rem;font-weight:600;text-transform:uppercase;letter-spacing:0.08em;color:var(--color-sand)}
.copy-btn{display:inline-flex;align-items:center;gap:0.375rem;background:transparent;border:1px solid rgba(245,244,240,0.2);border-radius:0.375rem;color:var(--color-codeText);font-size:0.75rem;padding:0.25rem 0.625rem;cursor:pointer}
.copy-btn svg{width:0.875rem;height:0.875rem}
.copy-btn.is-copied{border-color:var(--color-online);color:var(--color-online)}
.code-block pre{padding:1rem 1.25rem;overflow-x:auto;color:var(--color-codeText);font-family:var(--font-mono);font-size:0.8125rem;line-height:1.7}
`
}

func cssAnimations() string {
	return `
@keyframes spin{to{transform:rotate(360deg)}}
@keyframes pulse{50%{opacity:.5}}
.play-dot{animation:pulse 2s ease-in-out infinite}
`
}

func cssAccessibility() string {
	return `
.sr-only{position:absolute;width:1px;height:1px;padding:0;margin:-1px;overflow:hidden;clip:rect(0,0,0,0);border:0}
:focus-visible{outline:2px solid var(--color-brand);outline-offset:2px}
@media (prefers-reduced-motion:reduce){*,*::before,*::after{animation:none!important;transition:none!important;scroll-behavior:auto!important}}
`
}

func cssResponsive() string {
	return `
@media (min-width:640px){
.grid-2,.grid-4,.grid-6{grid-template-columns:repeat(2,1fr)}
.grid-3{grid-template-columns:repeat(2,1fr)}
.footer-bottom{flex-direction:row;justify-content:space-between;align-items:center}
}
@media (min-width:768px){
.grid-3{grid-template-columns:repeat(3,1fr)}
.grid-6{grid-template-columns:repeat(3,1fr)}
.explorer{grid-template-columns:2fr 3fr}
.footer-grid{grid-template-columns:2fr 1fr 1fr}
}
@media (min-width:1024px){
.nav-links,.header-actions{display:flex}
.menu-toggle{display:none}
.hero-grid{grid-template-columns:1fr 1fr}
.grid-4{grid-template-columns:repeat(4,1fr)}
.grid-6{grid-template-columns:repeat(6,1fr)}
.section{padding:6rem 0}
}
`
}
