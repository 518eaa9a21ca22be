package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFilingsSoftDisableWithoutUserAgent(t *testing.T) {
	t.Parallel()

	s := NewFilings(nil, "", "", nil, nil)

	if s.Configured() {
		t.Fatal("adapter without identifying header must report unconfigured")
	}
	if signals := s.Fetch(context.Background(), "Acme Capital"); len(signals) != 0 {
		t.Fatalf("expected no signals, got %d", len(signals))
	}
}

func TestFilingsFetch(t *testing.T) {
	t.Parallel()

	var hits strings.Builder
	hits.WriteString(`{"_source":{"display_names":["Acme Capital Corp"],"form_type":"8-K","file_date":"2026-07-01"}}`)
	for i := 0; i < 6; i++ {
		fmt.Fprintf(&hits, `,{"_source":{"display_names":[],"form_type":"10-Q","file_date":"2026-06-%02d"}}`, i+1)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "Example Co admin@example.org" {
			t.Errorf("missing identifying header, got %q", got)
		}
		q := r.URL.Query()
		if q.Get("q") != `"Acme Capital"` {
			t.Errorf("unexpected q param: %q", q.Get("q"))
		}
		if q.Get("forms") == "" || q.Get("startdt") == "" || q.Get("enddt") == "" {
			t.Errorf("missing window params: %v", q)
		}
		fmt.Fprintf(w, `{"hits":{"hits":[%s]}}`, hits.String())
	}))
	defer server.Close()

	s := NewFilings(server.Client(), server.URL, "Example Co admin@example.org", nil, nil)

	signals := s.Fetch(context.Background(), "Acme Capital")
	if len(signals) != filingsMaxHits {
		t.Fatalf("expected %d signals, got %d", filingsMaxHits, len(signals))
	}

	first := signals[0]
	if first.Headline != "Filing: 8-K — Acme Capital Corp" {
		t.Fatalf("unexpected headline: %q", first.Headline)
	}
	if first.Source != filingsName {
		t.Fatalf("unexpected source: %q", first.Source)
	}
	if first.PublishedAt == nil || first.PublishedAt.Format("2006-01-02") != "2026-07-01" {
		t.Fatalf("unexpected published date: %v", first.PublishedAt)
	}
	if first.MatchedQuery != "Acme Capital" {
		t.Fatalf("unexpected matched query: %q", first.MatchedQuery)
	}

	// Hits without display names fall back to the query as the entity.
	if signals[1].Headline != "Filing: 10-Q — Acme Capital" {
		t.Fatalf("unexpected fallback headline: %q", signals[1].Headline)
	}
}

func TestFilingsFetchAbsorbsFailures(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "throttled", http.StatusForbidden)
	}))
	defer server.Close()

	s := NewFilings(server.Client(), server.URL, "Example Co admin@example.org", nil, nil)
	if signals := s.Fetch(context.Background(), "Acme Capital"); len(signals) != 0 {
		t.Fatalf("expected no signals on failure, got %d", len(signals))
	}
}
