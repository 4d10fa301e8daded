package flame

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// searchCacheTTL bounds how long a search page is served from memory.
const searchCacheTTL = 5 * time.Minute

// Client performs the read-only catalog requests. Endpoints require an API
// key sent as the x-api-key header.
type Client struct {
	urls   *URLBuilder
	apiKey string
	client *http.Client

	mu    sync.Mutex
	cache map[string]cachedSearch
}

type cachedSearch struct {
	results   *SearchResults
	fetchedAt time.Time
}

// NewClient creates a catalog client. baseURL and gameID zero values select
// the hosted defaults.
func NewClient(baseURL string, gameID int, apiKey string) *Client {
	return &Client{
		urls:   NewURLBuilder(baseURL, gameID),
		apiKey: apiKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache: make(map[string]cachedSearch),
	}
}

// URLs exposes the underlying builder, for callers that only need the
// request shapes.
func (c *Client) URLs() *URLBuilder {
	return c.urls
}

// Search runs a paged catalog search. Identical requests within the cache
// TTL are served from memory.
func (c *Client) Search(ctx context.Context, args SearchArgs) (*SearchResults, error) {
	if len(args.Loaders) > 0 && !ValidLoaders(args.Loaders) {
		return nil, fmt.Errorf("loader set %v is not indexed by the catalog", args.Loaders)
	}
	u := c.urls.SearchURL(args)

	c.mu.Lock()
	if entry, ok := c.cache[u]; ok && time.Since(entry.fetchedAt) < searchCacheTTL {
		c.mu.Unlock()
		return entry.results, nil
	}
	c.mu.Unlock()

	var results SearchResults
	if err := c.getJSON(ctx, u, &results); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[u] = cachedSearch{results: &results, fetchedAt: time.Now()}
	c.mu.Unlock()

	return &results, nil
}

// Mod looks up a single catalog entry by id.
func (c *Client) Mod(ctx context.Context, addonID string) (*Mod, error) {
	var resp modResponse
	if err := c.getJSON(ctx, c.urls.InfoURL(addonID), &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Versions lists the files of one entry, optionally filtered by game version.
func (c *Client) Versions(ctx context.Context, addonID, gameVersion string) ([]File, error) {
	var resp filesResponse
	if err := c.getJSON(ctx, c.urls.VersionsURL(addonID, gameVersion), &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// DependencyVersions lists the files of a dependency entry pinned to a game
// version and loader set, applying the Quilt override table.
func (c *Client) DependencyVersions(ctx context.Context, addonID, gameVersion string, loaders []Loader) ([]File, error) {
	if !ValidLoaders(loaders) {
		return nil, fmt.Errorf("loader set %v is not indexed by the catalog", loaders)
	}
	var resp filesResponse
	if err := c.getJSON(ctx, c.urls.DependencyURL(addonID, gameVersion, loaders), &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// File looks up a single file of one entry.
func (c *Client) File(ctx context.Context, addonID, fileID string) (*File, error) {
	var resp fileResponse
	if err := c.getJSON(ctx, c.urls.FileURL(addonID, fileID), &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Files looks up many files, possibly across entries, in one request.
func (c *Client) Files(ctx context.Context, fileIDs []int) ([]File, error) {
	var resp filesResponse
	if err := c.postJSON(ctx, c.urls.FilesURL(), filesRequest{FileIDs: fileIDs}, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Changelog fetches the HTML changelog for one file of one entry.
func (c *Client) Changelog(ctx context.Context, modID, fileID int) (string, error) {
	var resp textResponse
	if err := c.getJSON(ctx, c.urls.FileChangelogURL(modID, fileID), &resp); err != nil {
		return "", err
	}
	return resp.Data, nil
}

// Description fetches the HTML long description for one entry.
func (c *Client) Description(ctx context.Context, modID int) (string, error) {
	var resp textResponse
	if err := c.getJSON(ctx, c.urls.DescriptionURL(modID), &resp); err != nil {
		return "", err
	}
	return resp.Data, nil
}

// getJSON performs one GET and decodes the response body into target.
func (c *Client) getJSON(ctx context.Context, url string, target any) error {
	return c.doJSON(ctx, http.MethodGet, url, nil, target)
}

// postJSON sends body as JSON and decodes the response into target.
func (c *Client) postJSON(ctx context.Context, url string, body, target any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodPost, url, bytes.NewReader(payload), target)
}

func (c *Client) doJSON(ctx context.Context, method, url string, body io.Reader, target any) error {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog API returned status %d for %s", resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
