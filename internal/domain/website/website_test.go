package website

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tpl, ok := Lookup(DefaultTemplateID)
	require.True(t, ok)
	assert.Equal(t, "Classic", tpl.Name)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}

func TestTemplatesReturnsCopy(t *testing.T) {
	list := Templates()
	list[0].Name = "changed"
	tpl, _ := Lookup(list[0].ID)
	assert.NotEqual(t, "changed", tpl.Name)
}

func TestDefaultContent(t *testing.T) {
	tpl, _ := Lookup("minimal")
	content := DefaultContent(tpl, Contact{Name: "Acme", Phone: "011 555 0101"})

	assert.Len(t, content, 2)
	hero := content[SectionHero].(map[string]interface{})
	assert.Equal(t, "Acme", hero["headline"])
	contact := content[SectionContact].(map[string]interface{})
	assert.Equal(t, "011 555 0101", contact["phone"])
}

func TestValidSlug(t *testing.T) {
	assert.True(t, ValidSlug("acme-plumbing"))
	assert.True(t, ValidSlug("abc"))
	assert.False(t, ValidSlug("ab"))
	assert.False(t, ValidSlug("Acme"))
	assert.False(t, ValidSlug("acme--plumbing"))
	assert.False(t, ValidSlug("-acme"))
	assert.Equal(t, "acme", NormalizeSlug("  ACME "))
}

func TestRender(t *testing.T) {
	tpl, _ := Lookup("classic")
	content := DefaultContent(tpl, Contact{Name: "Acme & Sons", Email: "hi@acme.test"})
	content[SectionServices] = map[string]interface{}{
		"heading": "Services",
		"items":   []interface{}{"Plumbing", " ", 42},
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Page{Template: tpl, Content: content}))
	html := buf.String()

	assert.Contains(t, html, "<title>Acme &amp; Sons</title>")
	assert.Contains(t, html, "<li>Plumbing</li>")
	assert.Contains(t, html, "<li>42</li>")
	assert.NotContains(t, html, "<li> </li>")
	assert.Contains(t, html, "mailto:hi@acme.test")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte(`id="about"`)), bytes.Index(buf.Bytes(), []byte(`id="services"`)))
}

func TestRenderSkipsUnknownSections(t *testing.T) {
	tpl, _ := Lookup("minimal")
	var buf bytes.Buffer
	err := Render(&buf, Page{Title: "X", Template: tpl, Content: map[string]interface{}{
		"about": map[string]interface{}{"body": "hidden"},
	}})
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "hidden")
}
