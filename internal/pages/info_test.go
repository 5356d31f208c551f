package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbourn/go-snitchon-backend/internal/search"
)

func TestLoadInfoPages(t *testing.T) {
	pages, err := LoadInfoPages(NewMarkdown())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"about", "how-you-can-help", "identify-fake-news", "trusted-tools", "verify-information",
	}, pages.Slugs())

	tools, ok := pages.Get("trusted-tools")
	require.True(t, ok)
	assert.Equal(t, "Trusted tools", tools.Title)
	assert.Contains(t, string(tools.HTML), "<table>")
	assert.Contains(t, string(tools.HTML), `href="https://tineye.com"`)
	assert.Contains(t, string(tools.HTML), "noreferrer")

	about, ok := pages.Get("about")
	require.True(t, ok)
	assert.Equal(t, "About SnitchOn", about.Title)

	_, ok = pages.Get("missing")
	assert.False(t, ok)

	assert.Len(t, pages.Sources(), 5)
}

func TestInfoPages_Searchable(t *testing.T) {
	pages, err := LoadInfoPages(NewMarkdown())
	require.NoError(t, err)
	idx := search.NewIndex(pages.Sources())

	hits := idx.TopK("reverse image search", 3)
	require.NotEmpty(t, hits)
	found := false
	for _, h := range hits {
		if h.Page == "trusted-tools" || h.Page == "verify-information" {
			found = true
		}
	}
	assert.True(t, found, "hits: %+v", hits)
}

func TestTitle_FallsBackToSlug(t *testing.T) {
	assert.Equal(t, "x", title([]byte("no heading here"), "x"))
	assert.Equal(t, "Hello", title([]byte("intro\n## Hello\n"), "x"))
}
