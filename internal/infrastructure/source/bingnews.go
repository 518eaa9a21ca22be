package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"SignalScanner/internal/domain"
	"SignalScanner/internal/ports"
)

const (
	bingNewsEndpoint = "https://api.bing.microsoft.com/v7.0/news/search"
	bingNewsName     = "Bing News"
	bingNewsMaxItems = 10
)

// BingNews calls the keyed news-search REST API, scoped to the past month in
// the US market. Without an API key the adapter soft-disables: Configured
// reports false and Fetch returns nothing.
type BingNews struct {
	client   *http.Client
	endpoint string
	apiKey   string
	logger   *slog.Logger
}

var _ ports.SignalSource = (*BingNews)(nil)

// NewBingNews wires the keyed client; endpoint falls back to the public API.
func NewBingNews(client *http.Client, endpoint, apiKey string, logger *slog.Logger) *BingNews {
	if client == nil {
		client = defaultHTTPClient()
	}
	if endpoint == "" {
		endpoint = bingNewsEndpoint
	}
	return &BingNews{client: client, endpoint: endpoint, apiKey: apiKey, logger: logger}
}

// Name identifies the adapter inside the registry and the run log.
func (b *BingNews) Name() string {
	return "bing_news"
}

// Configured reports whether an API key is present.
func (b *BingNews) Configured() bool {
	return b.apiKey != ""
}

// Fetch returns up to ten results for the query, or nothing on any failure
// or when the adapter is unkeyed.
func (b *BingNews) Fetch(ctx context.Context, query string) []domain.RawSignal {
	if !b.Configured() {
		return nil
	}
	signals, err := b.fetch(ctx, query)
	if err != nil {
		b.warn("bing news fetch failed", "query", query, "error", err)
		return nil
	}
	return signals
}

type bingResponse struct {
	Value []struct {
		Name          string `json:"name"`
		URL           string `json:"url"`
		Description   string `json:"description"`
		DatePublished string `json:"datePublished"`
		Provider      []struct {
			Name string `json:"name"`
		} `json:"provider"`
	} `json:"value"`
}

func (b *BingNews) fetch(ctx context.Context, query string) ([]domain.RawSignal, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("mkt", "en-US")
	params.Set("freshness", "Month")
	params.Set("count", fmt.Sprintf("%d", bingNewsMaxItems))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?%s", b.endpoint, params.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request news: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bing returned %s", resp.Status)
	}

	var payload bingResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	items := payload.Value
	if len(items) > bingNewsMaxItems {
		items = items[:bingNewsMaxItems]
	}

	signals := make([]domain.RawSignal, 0, len(items))
	for _, item := range items {
		publisher := bingNewsName
		if len(item.Provider) > 0 && item.Provider[0].Name != "" {
			publisher = item.Provider[0].Name
		}
		signals = append(signals, domain.RawSignal{
			Headline:     item.Name,
			Description:  item.Description,
			Source:       publisher,
			SourceURL:    item.URL,
			PublishedAt:  parseRSSTime(item.DatePublished),
			MatchedQuery: query,
		})
	}

	return signals, nil
}

func (b *BingNews) warn(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Warn(msg, args...)
	}
}
