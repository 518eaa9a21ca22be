package source

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"SignalScanner/internal/domain"
	"SignalScanner/internal/ports"
)

const (
	googleNewsBaseURL = "https://news.google.com/rss/search"
	googleNewsName    = "Google News"

	// Publisher suffixes look like "Headline - Reuters". A dash further from
	// the end than this is part of the headline, not a publisher marker.
	sourceSuffixWindow = 60

	googleNewsMaxItems = 10
)

// GoogleNews searches the public Google News RSS endpoint for one query at a
// time. Unauthenticated, so it is always configured.
type GoogleNews struct {
	client  *http.Client
	baseURL string
	logger  *slog.Logger
}

var _ ports.SignalSource = (*GoogleNews)(nil)

// NewGoogleNews wires an HTTP client; a nil client gets a default with timeout.
func NewGoogleNews(client *http.Client, logger *slog.Logger) *GoogleNews {
	if client == nil {
		client = defaultHTTPClient()
	}
	return &GoogleNews{client: client, baseURL: googleNewsBaseURL, logger: logger}
}

// Name identifies the adapter inside the registry and the run log.
func (g *GoogleNews) Name() string {
	return "google_news"
}

// Configured is always true; the endpoint needs no credentials.
func (g *GoogleNews) Configured() bool {
	return true
}

// Fetch returns up to ten items for the query, or nothing when the endpoint
// misbehaves. Failures never propagate past the adapter.
func (g *GoogleNews) Fetch(ctx context.Context, query string) []domain.RawSignal {
	signals, err := g.fetch(ctx, query)
	if err != nil {
		g.warn("google news fetch failed", "query", query, "error", err)
		return nil
	}
	return signals
}

func (g *GoogleNews) fetch(ctx context.Context, query string) ([]domain.RawSignal, error) {
	feed, err := fetchFeed(ctx, g.client, g.searchURL(query), "SignalScanner/1.0")
	if err != nil {
		return nil, err
	}

	items := feed.Channel.Items
	if len(items) > googleNewsMaxItems {
		items = items[:googleNewsMaxItems]
	}

	signals := make([]domain.RawSignal, 0, len(items))
	for _, item := range items {
		headline, publisher := splitSourceSuffix(item.Title)
		if publisher == "" {
			publisher = googleNewsName
		}
		signals = append(signals, domain.RawSignal{
			Headline:     headline,
			Description:  stripHTML(item.Description),
			Source:       publisher,
			SourceURL:    item.Link,
			PublishedAt:  parseRSSTime(item.PubDate),
			MatchedQuery: query,
		})
	}

	return signals, nil
}

func (g *GoogleNews) searchURL(query string) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("hl", "en-US")
	params.Set("gl", "US")
	params.Set("ceid", "US:en")
	return fmt.Sprintf("%s?%s", g.baseURL, params.Encode())
}

// splitSourceSuffix separates a trailing " - Publisher" marker from the
// headline when the dash sits within the suffix window of the title's end.
func splitSourceSuffix(title string) (headline, publisher string) {
	idx := strings.LastIndex(title, " - ")
	if idx < 0 || len(title)-idx > sourceSuffixWindow {
		return strings.TrimSpace(title), ""
	}
	return strings.TrimSpace(title[:idx]), strings.TrimSpace(title[idx+3:])
}

func (g *GoogleNews) warn(msg string, args ...any) {
	if g.logger != nil {
		g.logger.Warn(msg, args...)
	}
}
