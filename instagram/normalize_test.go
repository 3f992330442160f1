package instagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURLPrecedence(t *testing.T) {
	items := []RawPost{
		{ID: "1", DisplayURL: "https://cdn.example.com/display.jpg", Images: []string{"https://cdn.example.com/first.jpg"}, URL: "https://instagram.com/p/1"},
		{ID: "2", Images: []string{"https://cdn.example.com/first.jpg"}, URL: "https://instagram.com/p/2"},
		{ID: "3", URL: "https://instagram.com/p/3"},
	}

	posts := Normalize(items)
	require.Len(t, posts, 3)

	assert.Equal(t, "https://cdn.example.com/display.jpg", posts[0].URL)
	assert.Equal(t, "https://cdn.example.com/first.jpg", posts[1].URL)
	assert.Equal(t, "https://instagram.com/p/3", posts[2].URL)
}

func TestNormalizeDropsItemsWithoutURL(t *testing.T) {
	items := []RawPost{
		{ID: "1", DisplayURL: "https://cdn.example.com/a.jpg"},
		{ID: "2"},
		{ID: "3", Images: []string{}},
		{ID: "4", DisplayURL: "https://cdn.example.com/b.jpg"},
	}

	posts := Normalize(items)
	require.Len(t, posts, 2)

	// Relative order of survivors is preserved, and every URL is non-empty.
	assert.Equal(t, "1", posts[0].ID)
	assert.Equal(t, "4", posts[1].ID)
	for _, post := range posts {
		assert.NotEmpty(t, post.URL)
	}
}

func TestNormalizeCaptionDefaultAndPermalink(t *testing.T) {
	items := []RawPost{
		{ID: "1", DisplayURL: "https://cdn.example.com/a.jpg", URL: "https://instagram.com/p/1"},
		{ID: "2", DisplayURL: "https://cdn.example.com/b.jpg", Caption: "fresh linework"},
	}

	posts := Normalize(items)
	require.Len(t, posts, 2)

	assert.Equal(t, "Tattoo Image", posts[0].Caption)
	assert.Equal(t, "https://instagram.com/p/1", posts[0].Permalink)
	assert.Equal(t, "fresh linework", posts[1].Caption)
}

func TestNormalizeEmptyInput(t *testing.T) {
	assert.Empty(t, Normalize(nil))
	assert.Empty(t, Normalize([]RawPost{}))
}
