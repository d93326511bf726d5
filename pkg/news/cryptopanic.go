package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultMaxAttempts    = 6
	defaultInitialBackoff = 2 * time.Second
	maxBackoff            = 300 * time.Second
)

// CryptoPanicClient fetches news posts from the CryptoPanic API with
// exponential backoff against rate limiting and transient server errors.
type CryptoPanicClient struct {
	baseURL     string
	authToken   string
	httpClient  *http.Client
	maxAttempts int

	// sleep is swapped out in tests.
	sleep func(time.Duration)
}

func NewCryptoPanicClient(authToken, baseURL string) *CryptoPanicClient {
	return &CryptoPanicClient{
		baseURL:     baseURL,
		authToken:   authToken,
		httpClient:  &http.Client{Timeout: 20 * time.Second},
		maxAttempts: defaultMaxAttempts,
		sleep:       time.Sleep,
	}
}

// Fetch returns at most limit articles. Rate limiting (429, honoring a
// Retry-After header), 5xx responses and transport errors are retried with
// doubling backoff capped at 300s; any other error class degrades to an empty
// result rather than failing the cycle.
func (c *CryptoPanicClient) Fetch(ctx context.Context, limit int) []Article {
	if c.authToken == "" {
		slog.Error("cryptopanic auth token missing; cannot fetch")
		return nil
	}

	endpoint, err := c.buildURL()
	if err != nil {
		slog.Error("cryptopanic url invalid", "error", err, "url", c.baseURL)
		return nil
	}

	attempt := 0
	backoff := defaultInitialBackoff
	for attempt < c.maxAttempts {
		articles, retry, wait := c.fetchOnce(ctx, endpoint, limit, backoff)
		if !retry {
			return articles
		}

		slog.Warn("cryptopanic fetch retrying",
			"wait", wait,
			"attempt", attempt+1,
			"max_attempts", c.maxAttempts,
		)
		c.sleep(wait)
		attempt++
		backoff = nextBackoff(backoff)
	}

	slog.Error("exceeded cryptopanic fetch attempts, returning empty list", "attempts", c.maxAttempts)
	return nil
}

// fetchOnce performs a single HTTP attempt. It reports whether the caller
// should retry and how long to wait before doing so.
func (c *CryptoPanicClient) fetchOnce(ctx context.Context, endpoint string, limit int, backoff time.Duration) (articles []Article, retry bool, wait time.Duration) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		slog.Error("build cryptopanic request", "error", err)
		return nil, false, 0
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Warn("cryptopanic request failed", "error", err)
		return nil, true, backoff
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		wait = backoff
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if secs, err := strconv.Atoi(ra); err == nil {
				wait = time.Duration(secs) * time.Second
			}
		}
		return nil, true, wait

	case resp.StatusCode >= 500:
		slog.Warn("cryptopanic server error", "status", resp.StatusCode)
		return nil, true, backoff

	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		// Auth and other client errors are not transient.
		slog.Error("cryptopanic returned non-retryable status", "status", resp.StatusCode)
		return nil, false, 0
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Warn("read cryptopanic response", "error", err)
		return nil, true, backoff
	}

	results, err := parseResults(body)
	if err != nil {
		// A garbled body on a 2xx is as transient as a dropped connection.
		slog.Warn("decode cryptopanic response", "error", err)
		return nil, true, backoff
	}

	if len(results) == 0 {
		slog.Info("cryptopanic returned empty results")
		return nil, false, 0
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results, false, 0
}

func (c *CryptoPanicClient) buildURL() (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("auth_token", c.authToken)
	q.Set("public", "true")
	q.Set("filter", "news")
	q.Set("page", "1")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// parseResults accepts both response shapes the API is known to serve:
// a bare array of posts, or an object with a "results" array.
func parseResults(body []byte) ([]Article, error) {
	var wrapped struct {
		Results []Article `json:"results"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil {
		return wrapped.Results, nil
	}

	var bare []Article
	if err := json.Unmarshal(body, &bare); err != nil {
		return nil, fmt.Errorf("unrecognized response shape: %w", err)
	}
	return bare, nil
}

func nextBackoff(current time.Duration) time.Duration {
	doubled := current * 2
	if doubled > maxBackoff {
		return maxBackoff
	}
	return doubled
}
