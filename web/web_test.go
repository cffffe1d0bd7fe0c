package web

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engagementAPI/internal/i18n"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{"index.html", "tr-h1", "tr-h2", "tr-p", "tr-span"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestElementsAreTranslated(t *testing.T) {
	seen := make(map[string]bool)
	for _, e := range Elements {
		assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true
		assert.NotEmpty(t, e.En, e.ID)
		assert.NotEmpty(t, e.Ar, e.ID)
	}
}

func TestTranslate(t *testing.T) {
	tr := Translate(i18n.Arabic, "wishes-title")
	assert.Equal(t, "wishes-title", tr.ID)
	assert.Equal(t, tr.Ar, tr.Text)

	missing := Translate(i18n.English, "nope")
	assert.Equal(t, "nope", missing.ID)
	assert.Empty(t, missing.Text)
}

func TestStaticAssets(t *testing.T) {
	for _, name := range []string{"script.js", "style.css"} {
		_, err := fs.Stat(Static(), name)
		assert.NoError(t, err, name)
	}
}

func TestScriptDelegatesTouchFeedback(t *testing.T) {
	script, err := fs.ReadFile(Static(), "script.js")
	require.NoError(t, err)

	assert.Contains(t, string(script), "'button, .message-card, .countdown-item'")
	assert.Contains(t, string(script), "document.addEventListener('touchstart'")
	assert.Contains(t, string(script), "musicToggle.dataset.iconPlaying")
}
