package instagram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Scraper fetches raw posts for an Instagram username or profile URL.
type Scraper interface {
	FetchPosts(ctx context.Context, input string) ([]RawPost, error)
}

const (
	apifyBaseURL = "https://api.apify.com/v2"
	resultsLimit = 5
)

// actorInput is the scraper actor's expected input document.
type actorInput struct {
	Username     []string `json:"username"`
	ResultsLimit int      `json:"resultsLimit"`
	SearchType   string   `json:"searchType"`
	SearchLimit  int      `json:"searchLimit"`
}

// ApifyScraper runs an Apify Instagram scraper actor synchronously and reads
// the resulting dataset items.
type ApifyScraper struct {
	httpClient *http.Client
	baseURL    string
	actorID    string
	token      string
}

func NewApifyScraper(actorID, token string) *ApifyScraper {
	return &ApifyScraper{
		httpClient: &http.Client{Timeout: 90 * time.Second},
		baseURL:    apifyBaseURL,
		actorID:    actorID,
		token:      token,
	}
}

// NewApifyScraperWithBaseURL is used by tests to point the client at a stub server.
func NewApifyScraperWithBaseURL(baseURL, actorID, token string) *ApifyScraper {
	s := NewApifyScraper(actorID, token)
	s.baseURL = baseURL
	return s
}

func (s *ApifyScraper) FetchPosts(ctx context.Context, input string) ([]RawPost, error) {
	body, err := json.Marshal(actorInput{
		Username:     []string{input},
		ResultsLimit: resultsLimit,
		SearchType:   "hashtag",
		SearchLimit:  1,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal actor input: %w", err)
	}

	endpoint := fmt.Sprintf("%s/acts/%s/run-sync-get-dataset-items?token=%s",
		s.baseURL, url.PathEscape(s.actorID), url.QueryEscape(s.token))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build actor request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("run scraper actor: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		return nil, fmt.Errorf("scraper actor returned status %d: %s", res.StatusCode, string(msg))
	}

	var items []RawPost
	if err := json.NewDecoder(res.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode dataset items: %w", err)
	}

	return items, nil
}
