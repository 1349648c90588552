package router

import (
	"hash/fnv"
	"strings"
)

const slotMarker = `data-slot="`

// extractSlots scans html once for elements carrying data-slot and returns
// their trimmed inner content, split into text-only and markup slots.
// Nested slots are reported individually as well as inside their parent.
func extractSlots(html string) (textSlots, htmlSlots map[string]string) {
	textSlots = make(map[string]string)
	htmlSlots = make(map[string]string)

	n := len(html)
	pos := 0

	for pos < n {
		idx := strings.Index(html[pos:], slotMarker)
		if idx == -1 {
			break
		}

		idStart := pos + idx + len(slotMarker)
		idLen := strings.IndexByte(html[idStart:], '"')
		if idLen == -1 {
			break
		}
		slotID := html[idStart : idStart+idLen]

		tagStart := strings.LastIndexByte(html[:pos+idx], '<')
		if tagStart == -1 {
			pos = idStart + idLen
			continue
		}
		tagName := tagNameAt(html, tagStart+1)

		openEnd := strings.IndexByte(html[idStart+idLen:], '>')
		if openEnd == -1 {
			break
		}
		contentStart := idStart + idLen + openEnd + 1

		if contentEnd := matchingClose(html, contentStart, tagName); contentEnd != -1 {
			content := strings.TrimSpace(html[contentStart:contentEnd])
			if strings.ContainsAny(content, "<>&") {
				htmlSlots[slotID] = content
			} else {
				textSlots[slotID] = content
			}
		}

		// Continue inside the slot so nested slots are found too.
		pos = contentStart
	}

	return textSlots, htmlSlots
}

func tagNameAt(html string, start int) string {
	end := start
	for end < len(html) {
		switch html[end] {
		case ' ', '>', '/', '\t', '\n', '\r':
			return html[start:end]
		}
		end++
	}
	return html[start:end]
}

// matchingClose returns the index of the close tag that balances an element
// of tagName whose content begins at from, or -1.
func matchingClose(html string, from int, tagName string) int {
	openTag := "<" + tagName
	closeTag := "</" + tagName + ">"
	n := len(html)

	depth := 1
	pos := from
	for pos < n {
		nextClose := strings.Index(html[pos:], closeTag)
		if nextClose == -1 {
			return -1
		}
		nextClose += pos

		nextOpen := strings.Index(html[pos:nextClose], openTag)
		if nextOpen != -1 {
			after := pos + nextOpen + len(openTag)
			if after < n {
				switch html[after] {
				case ' ', '>', '/', '\t', '\n', '\r':
					depth++
				}
			}
			pos = after
			continue
		}

		depth--
		if depth == 0 {
			return nextClose
		}
		pos = nextClose + len(closeTag)
	}
	return -1
}

// hashSlotContent computes the FNV-64a hash used to detect slot changes.
func hashSlotContent(content string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(content))
	return h.Sum64()
}
