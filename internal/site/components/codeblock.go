package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/monebot/website/internal/site"
)

// EventCopy is sent by copy buttons with the snippet key as value.
const EventCopy = "copy"

// CodeBlockOptions configures a code block.
type CodeBlockOptions struct {
	// Label is shown in the header, e.g. "Response"
	Label string
	// Code is the literal snippet
	Code string
	// CopyKey identifies the snippet for the copy button; empty hides it
	CopyKey string
	// Copied shows the copied acknowledgement
	Copied bool
}

// CopySlot is the slot id of the copy button for key.
func CopySlot(key string) string {
	return "copy-" + key
}

// RenderCodeBlock generates a dark code block with an optional copy button.
func RenderCodeBlock(opts CodeBlockOptions) string {
	var sb strings.Builder

	sb.WriteString(`<div class="code-block">`)
	if opts.Label != "" || opts.CopyKey != "" {
		sb.WriteString(`<div class="code-head">`)
		sb.WriteString(fmt.Sprintf(`<span class="code-label">%s</span>`, html.EscapeString(opts.Label)))
		if opts.CopyKey != "" {
			sb.WriteString(fmt.Sprintf(`<span data-slot="%s">`, html.EscapeString(CopySlot(opts.CopyKey))))
			sb.WriteString(RenderCopyButton(opts.CopyKey, opts.Copied))
			sb.WriteString(`</span>`)
		}
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`<pre><code>`)
	sb.WriteString(html.EscapeString(opts.Code))
	sb.WriteString(`</code></pre>`)
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	return sb.String()
}

// RenderCopyButton generates the copy button alone, for snippets laid out
// without a code block header.
func RenderCopyButton(key string, copied bool) string {
	if copied {
		return fmt.Sprintf(`<button type="button" class="copy-btn is-copied" lv-click="%s" lv-value="%s" aria-label="Copied">%s<span>Copied</span></button>`,
			EventCopy, html.EscapeString(key), site.Icon("check"))
	}
	return fmt.Sprintf(`<button type="button" class="copy-btn" lv-click="%s" lv-value="%s" aria-label="Copy to clipboard">%s<span>Copy</span></button>`,
		EventCopy, html.EscapeString(key), site.Icon("copy"))
}
