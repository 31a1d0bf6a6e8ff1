// Search through a local proxy server.
//
// The proxy (for example a FastAPI wrapper around ytmusicapi) answers
// GET /api/search?q=...&filter=videos&limit=N with a JSON array of results.
package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/ytfolder/internal/models"
	"github.com/desertthunder/ytfolder/internal/shared"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const defaultProxyURL string = "http://localhost:8080"

// ProxySearch implements [matcher.Searcher] against the proxy's search endpoint.
type ProxySearch struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewProxySearch creates a proxy searcher. Empty baseURL and nil client select the defaults.
func NewProxySearch(baseURL string, client *http.Client, limiter *rate.Limiter) *ProxySearch {
	if baseURL == "" {
		baseURL = defaultProxyURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	if limiter == nil {
		limiter = NewLimiter(0)
	}

	return &ProxySearch{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
		limiter:    limiter,
	}
}

func (p *ProxySearch) doRequest(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if detail := gjson.GetBytes(body, "detail").String(); detail != "" {
			return nil, fmt.Errorf("%w: proxy error (status %d): %s", shared.ErrAPIRequest, resp.StatusCode, detail)
		}
		return nil, fmt.Errorf("%w: proxy error: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	return body, nil
}

// Search calls the proxy and maps each result with a video ID to a [models.Candidate].
//
// The channel is the first artist's name, falling back to channel and author fields.
func (p *ProxySearch) Search(ctx context.Context, query string, limit int) ([]models.Candidate, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("/api/search?q=%s&filter=videos&limit=%d", url.QueryEscape(query), limit)
	body, err := p.doRequest(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: proxy returned invalid JSON", shared.ErrAPIRequest)
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("%w: expected a JSON array of results", shared.ErrAPIRequest)
	}

	var candidates []models.Candidate
	parsed.ForEach(func(_, result gjson.Result) bool {
		videoID := result.Get("videoId").String()
		if videoID == "" {
			return true
		}

		channel := result.Get("artists.0.name").String()
		if channel == "" {
			channel = result.Get("channel").String()
		}
		if channel == "" {
			channel = result.Get("author").String()
		}

		candidates = append(candidates, models.Candidate{
			Title:       result.Get("title").String(),
			ChannelName: channel,
			URL:         WatchURL(videoID),
		})
		return true
	})

	return candidates, nil
}
