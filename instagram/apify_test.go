package instagram_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wanderboy007/inksesh-app/instagram"
)

func TestFetchPostsDecodesDatasetItems(t *testing.T) {
	var gotPath, gotToken string
	var gotInput map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.URL.Query().Get("token")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotInput))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"ig1","displayUrl":"https://cdn/a.jpg","url":"https://instagram.com/p/1","caption":"koi"},
			{"id":"ig2","images":["https://cdn/b.jpg"],"url":"https://instagram.com/p/2"}
		]`))
	}))
	defer server.Close()

	scraper := instagram.NewApifyScraperWithBaseURL(server.URL, "actor-123", "secret-token")

	posts, err := scraper.FetchPosts(context.Background(), "inkmaster")
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, "/acts/actor-123/run-sync-get-dataset-items", gotPath)
	assert.Equal(t, "secret-token", gotToken)
	assert.Equal(t, []interface{}{"inkmaster"}, gotInput["username"])
	assert.EqualValues(t, 5, gotInput["resultsLimit"])

	assert.Equal(t, "ig1", posts[0].ID)
	assert.Equal(t, "https://cdn/a.jpg", posts[0].DisplayURL)
	assert.Equal(t, []string{"https://cdn/b.jpg"}, posts[1].Images)
}

func TestFetchPostsActorError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":"monthly usage hard limit exceeded"}`))
	}))
	defer server.Close()

	scraper := instagram.NewApifyScraperWithBaseURL(server.URL, "actor-123", "secret-token")

	_, err := scraper.FetchPosts(context.Background(), "inkmaster")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 402")
	assert.Contains(t, err.Error(), "hard limit")
}
