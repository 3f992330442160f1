package instagram

// RawPost is one item from the scraper actor's dataset. Field presence varies
// by post type, so everything except ID is optional.
type RawPost struct {
	ID         string   `json:"id"`
	DisplayURL string   `json:"displayUrl"`
	Images     []string `json:"images"`
	URL        string   `json:"url"`
	Caption    string   `json:"caption"`
}

// Post is the uniform candidate shape presented for user selection.
type Post struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Caption   string `json:"caption"`
	Permalink string `json:"permalink"`
}

const defaultCaption = "Tattoo Image"

// resolveImageURL picks the image location with precedence
// displayUrl -> images[0] -> url. Empty means no resolvable image.
func resolveImageURL(item RawPost) string {
	if item.DisplayURL != "" {
		return item.DisplayURL
	}
	if len(item.Images) > 0 && item.Images[0] != "" {
		return item.Images[0]
	}
	return item.URL
}

// Normalize maps heterogeneous scraped posts into the uniform candidate list.
// Items with no resolvable image URL are dropped silently; relative order of
// the survivors is preserved.
func Normalize(items []RawPost) []Post {
	posts := make([]Post, 0, len(items))
	for _, item := range items {
		url := resolveImageURL(item)
		if url == "" {
			continue
		}

		caption := item.Caption
		if caption == "" {
			caption = defaultCaption
		}

		posts = append(posts, Post{
			ID:        item.ID,
			URL:       url,
			Caption:   caption,
			Permalink: item.URL,
		})
	}
	return posts
}
