package source

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"SignalScanner/internal/domain"
	"SignalScanner/internal/ports"
)

const (
	industryFeedMaxItems = 30

	// Names shorter than this produce too many accidental substring hits
	// ("AI", "Go") and are skipped during the scan.
	minMatchNameLen = 3
)

// IndustryFeed parses one fixed trade-publication feed per run and matches
// every item against the full roster name list. Matching happens inside the
// adapter, so emitted signals carry the hit roster name as MatchedQuery and
// resolve exactly downstream.
type IndustryFeed struct {
	client      *http.Client
	feedURL     string
	displayName string
	logger      *slog.Logger
}

var _ ports.FeedScanner = (*IndustryFeed)(nil)

// NewIndustryFeed wires the fixed feed; displayName labels persisted signals.
func NewIndustryFeed(client *http.Client, feedURL, displayName string, logger *slog.Logger) *IndustryFeed {
	if client == nil {
		client = defaultHTTPClient()
	}
	if displayName == "" {
		displayName = "Industry Feed"
	}
	return &IndustryFeed{client: client, feedURL: feedURL, displayName: displayName, logger: logger}
}

// Name identifies the adapter in the run log.
func (f *IndustryFeed) Name() string {
	return "industry_feed"
}

// Scan fetches the feed once and returns at most one signal per article: the
// first roster name found in the item's title plus snippet, case-insensitive.
// Any fetch or parse failure yields an empty result.
func (f *IndustryFeed) Scan(ctx context.Context, names []string) []domain.RawSignal {
	feed, err := fetchFeed(ctx, f.client, f.feedURL, "SignalScanner/1.0")
	if err != nil {
		f.warn("industry feed fetch failed", "url", f.feedURL, "error", err)
		return nil
	}

	items := feed.Channel.Items
	if len(items) > industryFeedMaxItems {
		items = items[:industryFeedMaxItems]
	}

	var signals []domain.RawSignal
	for _, item := range items {
		snippet := stripHTML(item.Description)
		haystack := strings.ToLower(item.Title + " " + snippet)

		for _, name := range names {
			if len(name) < minMatchNameLen {
				continue
			}
			if !strings.Contains(haystack, strings.ToLower(name)) {
				continue
			}
			signals = append(signals, domain.RawSignal{
				Headline:     strings.TrimSpace(item.Title),
				Description:  snippet,
				Source:       f.displayName,
				SourceURL:    item.Link,
				PublishedAt:  parseRSSTime(item.PubDate),
				MatchedQuery: name,
			})
			break
		}
	}

	return signals
}

func (f *IndustryFeed) warn(msg string, args ...any) {
	if f.logger != nil {
		f.logger.Warn(msg, args...)
	}
}
