package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSlots(t *testing.T) {
	html := `<div>
  <span data-slot="count"> 42 </span>
  <ul data-slot="list"><li>a</li><li>b</li></ul>
  <div data-slot="outer"><div class="x"><div data-slot="inner">deep</div></div></div>
</div>`

	text, markup := extractSlots(html)

	assert.Equal(t, "42", text["count"])
	assert.Equal(t, "deep", text["inner"])
	assert.Equal(t, "<li>a</li><li>b</li>", markup["list"])
	assert.Equal(t, `<div class="x"><div data-slot="inner">deep</div></div>`, markup["outer"])
}

func TestExtractSlots_Unbalanced(t *testing.T) {
	text, markup := extractSlots(`<p data-slot="a">never closed`)
	assert.Empty(t, text)
	assert.Empty(t, markup)
}

func TestExtractSlots_SimilarTagNames(t *testing.T) {
	text, markup := extractSlots(`<b data-slot="a"><br>x</b>`)
	assert.Empty(t, text)
	assert.Equal(t, "<br>x", markup["a"])
}

func TestHashSlotContent(t *testing.T) {
	assert.Equal(t, hashSlotContent("a"), hashSlotContent("a"))
	assert.NotEqual(t, hashSlotContent("a"), hashSlotContent("b"))
}

func TestExtractSlots_EntitiesAreMarkup(t *testing.T) {
	text, markup := extractSlots(`<span data-slot="a">Tom &amp; Jerry</span>`)
	assert.Empty(t, text)
	assert.Equal(t, "Tom &amp; Jerry", markup["a"])
}
