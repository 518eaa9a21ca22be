package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"SignalScanner/internal/domain"
	"SignalScanner/internal/ports"
)

const (
	filingsEndpoint = "https://efts.sec.gov/LATEST/search-index"
	filingsName     = "SEC EDGAR"
	filingsMaxHits  = 5
	filingsMonths   = 6
)

var defaultFilingForms = []string{"8-K", "10-K", "10-Q", "S-1", "D"}

// Filings queries the SEC full-text search over a rolling six-month window
// for a fixed set of filing types. The API's fair-use policy requires a
// descriptive identifying User-Agent; without one the adapter soft-disables.
type Filings struct {
	client    *http.Client
	endpoint  string
	userAgent string
	forms     []string
	logger    *slog.Logger
}

var _ ports.SignalSource = (*Filings)(nil)

// NewFilings wires the filings search client; forms defaults to the standard
// disclosure set when empty.
func NewFilings(client *http.Client, endpoint, userAgent string, forms []string, logger *slog.Logger) *Filings {
	if client == nil {
		client = defaultHTTPClient()
	}
	if endpoint == "" {
		endpoint = filingsEndpoint
	}
	if len(forms) == 0 {
		forms = defaultFilingForms
	}
	return &Filings{client: client, endpoint: endpoint, userAgent: userAgent, forms: forms, logger: logger}
}

// Name identifies the adapter in the registry and the run log.
func (s *Filings) Name() string {
	return "sec_filings"
}

// Configured reports whether an identifying User-Agent header is present.
func (s *Filings) Configured() bool {
	return s.userAgent != ""
}

// Fetch returns at most five filing hits for the entity query, with
// synthesized headlines; any failure yields an empty result.
func (s *Filings) Fetch(ctx context.Context, query string) []domain.RawSignal {
	if !s.Configured() {
		return nil
	}
	signals, err := s.fetch(ctx, query)
	if err != nil {
		s.warn("filings search failed", "query", query, "error", err)
		return nil
	}
	return signals
}

type filingsResponse struct {
	Hits struct {
		Hits []struct {
			Source struct {
				DisplayNames []string `json:"display_names"`
				FormType     string   `json:"form_type"`
				FileDate     string   `json:"file_date"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (s *Filings) fetch(ctx context.Context, query string) ([]domain.RawSignal, error) {
	now := time.Now().UTC()
	params := url.Values{}
	params.Set("q", fmt.Sprintf("%q", query))
	params.Set("forms", strings.Join(s.forms, ","))
	params.Set("dateRange", "custom")
	params.Set("startdt", now.AddDate(0, -filingsMonths, 0).Format("2006-01-02"))
	params.Set("enddt", now.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?%s", s.endpoint, params.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request filings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("filings search returned %s", resp.Status)
	}

	var payload filingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	hits := payload.Hits.Hits
	if len(hits) > filingsMaxHits {
		hits = hits[:filingsMaxHits]
	}

	signals := make([]domain.RawSignal, 0, len(hits))
	for _, hit := range hits {
		entity := query
		if len(hit.Source.DisplayNames) > 0 && hit.Source.DisplayNames[0] != "" {
			entity = hit.Source.DisplayNames[0]
		}

		var publishedAt *time.Time
		if parsed, err := time.Parse("2006-01-02", hit.Source.FileDate); err == nil {
			publishedAt = &parsed
		}

		signals = append(signals, domain.RawSignal{
			Headline:     fmt.Sprintf("Filing: %s — %s", hit.Source.FormType, entity),
			Description:  fmt.Sprintf("%s filing by %s on %s", hit.Source.FormType, entity, hit.Source.FileDate),
			Source:       filingsName,
			SourceURL:    fmt.Sprintf("https://www.sec.gov/edgar/search/#/q=%s", url.QueryEscape(fmt.Sprintf("%q", query))),
			PublishedAt:  publishedAt,
			MatchedQuery: query,
		})
	}

	return signals, nil
}

func (s *Filings) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
