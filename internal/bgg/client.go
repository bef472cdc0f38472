package bgg

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound indicates the thing endpoint returned no item for the id.
var ErrNotFound = errors.New("bgg: item not found")

// Searcher defines the search operation used by the resolver.
type Searcher interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

// ThingFetcher defines the detail operation shared by the enricher, the image
// fetcher, and URL verification.
type ThingFetcher interface {
	Thing(ctx context.Context, id int64) (*Thing, error)
}

// API combines every BGG operation the pipeline consumes.
type API interface {
	Searcher
	ThingFetcher
	Download(ctx context.Context, rawURL string) ([]byte, error)
}

// Client provides access to the BGG XML API.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	maxRetries  int
	backoffBase time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

var _ API = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRetryPolicy sets the retry count and the initial backoff delay, which
// doubles on every attempt.
func WithRetryPolicy(maxRetries int, backoffBase time.Duration) Option {
	return func(c *Client) {
		if maxRetries >= 0 {
			c.maxRetries = maxRetries
		}
		if backoffBase > 0 {
			c.backoffBase = backoffBase
		}
	}
}

// WithSleep overrides the backoff sleep function (used in tests).
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) {
		if sleep != nil {
			c.sleep = sleep
		}
	}
}

// New creates a BGG client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("bgg base url required")
	}
	client := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		maxRetries:  3,
		backoffBase: 2 * time.Second,
		sleep:       sleepContext,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Search queries the search endpoint for board games matching the supplied
// name. Expansions are included; BGG models them as a separate type filter.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("parse bgg url: %w", err)
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("type", "boardgame,boardgameexpansion")
	endpoint.RawQuery = params.Encode()

	body, err := c.get(ctx, endpoint.String())
	if err != nil {
		return nil, err
	}

	var payload searchEnvelope
	if err := xml.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode bgg search response: %w", err)
	}

	results := make([]SearchResult, 0, len(payload.Items))
	for _, item := range payload.Items {
		id, err := strconv.ParseInt(item.ID, 10, 64)
		if err != nil || id < 1 {
			continue
		}
		name := pickName(item.Names)
		if name == "" {
			continue
		}
		results = append(results, SearchResult{ID: id, Name: name, Year: item.Year.Value})
	}
	return results, nil
}

// Thing fetches one item's full metadata, stats included.
func (c *Client) Thing(ctx context.Context, id int64) (*Thing, error) {
	if id < 1 {
		return nil, fmt.Errorf("bgg id must be positive, got %d", id)
	}
	endpoint, err := url.Parse(c.baseURL + "/thing")
	if err != nil {
		return nil, fmt.Errorf("parse bgg url: %w", err)
	}
	params := url.Values{}
	params.Set("id", strconv.FormatInt(id, 10))
	params.Set("stats", "1")
	endpoint.RawQuery = params.Encode()

	body, err := c.get(ctx, endpoint.String())
	if err != nil {
		return nil, err
	}

	var payload thingEnvelope
	if err := xml.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode bgg thing response: %w", err)
	}
	if len(payload.Items) == 0 {
		return nil, ErrNotFound
	}
	return buildThing(id, payload.Items[0]), nil
}

// Download fetches a binary resource (image) from an absolute URL, using the
// same retry policy as the API endpoints.
func (c *Client) Download(ctx context.Context, rawURL string) ([]byte, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, errors.New("download url must not be empty")
	}
	return c.get(ctx, rawURL)
}

// get performs a GET with retry on 429, 5xx, and transport failures. Backoff
// starts at backoffBase and doubles each attempt.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	var lastErr error
	delay := c.backoffBase
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := c.sleep(ctx, delay); err != nil {
				return nil, err
			}
			delay *= 2
		}

		body, retryable, err := c.getOnce(ctx, rawURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}
	return nil, fmt.Errorf("bgg request failed after %d retries: %w", c.maxRetries, lastErr)
}

func (c *Client) getOnce(ctx context.Context, rawURL string) (body []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		return nil, true, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("bgg returned %d (latency=%v)", resp.StatusCode, latency)
	default:
		return nil, false, fmt.Errorf("bgg returned %d (latency=%v)", resp.StatusCode, latency)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read response body: %w", err)
	}
	return data, false, nil
}

func pickName(names []nameElem) string {
	for _, name := range names {
		if name.Type == "primary" && name.Value != "" {
			return name.Value
		}
	}
	for _, name := range names {
		if name.Value != "" {
			return name.Value
		}
	}
	return ""
}

func buildThing(id int64, item thingItem) *Thing {
	thing := &Thing{
		ID:          id,
		PrimaryName: pickName(item.Names),
		Year:        item.Year.Value,
		ImageURL:    strings.TrimSpace(item.Image),
		MinPlayers:  atoiOrZero(item.MinPlayers.Value),
		MaxPlayers:  atoiOrZero(item.MaxPlayers.Value),
		MinPlaytime: atoiOrZero(item.MinPlaytime.Value),
		MaxPlaytime: atoiOrZero(item.MaxPlaytime.Value),
	}

	if item.Statistics != nil {
		if weight, err := strconv.ParseFloat(item.Statistics.Ratings.AverageWeight.Value, 64); err == nil {
			thing.AverageWeight = weight
		}
	}

	for _, poll := range item.Polls {
		if poll.Name != "suggested_numplayers" {
			continue
		}
		for _, results := range poll.Results {
			if results.NumPlayers == "" {
				continue
			}
			bucket := PollBucket{NumPlayers: results.NumPlayers}
			for _, res := range results.Result {
				switch res.Value {
				case "Best":
					bucket.Best = res.NumVotes
				case "Recommended":
					bucket.Recommended = res.NumVotes
				case "Not Recommended":
					bucket.NotRecommended = res.NumVotes
				}
			}
			thing.PlayerPoll = append(thing.PlayerPoll, bucket)
		}
	}

	for _, link := range item.Links {
		switch link.Type {
		case "boardgamemechanic":
			thing.Mechanics = append(thing.Mechanics, link.Value)
		case "boardgamecategory":
			thing.Categories = append(thing.Categories, link.Value)
		}
	}

	return thing
}

func atoiOrZero(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return n
}
