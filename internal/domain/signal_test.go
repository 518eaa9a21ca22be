package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSignalRowTruncation(t *testing.T) {
	t.Parallel()

	company := CompanyRef{ID: 7, Name: "Acme Capital", Tier: TierSQO, Priority: 1}
	published := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	raw := RawSignal{
		Headline:    strings.Repeat("h", 600),
		Description: strings.Repeat("d", 1200),
		Source:      strings.Repeat("s", 250),
		SourceURL:   "https://example.org/" + strings.Repeat("u", 600),
		PublishedAt: &published,
	}

	row := NewSignalRow(company, raw, TypeFunding, HeatHot)

	assert.Len(t, row.Headline, MaxHeadlineLen)
	assert.Len(t, row.Description, MaxDescriptionLen)
	assert.Len(t, row.Source, MaxSourceLen)
	assert.Len(t, row.SourceURL, MaxSourceURLLen)
	assert.Equal(t, int64(7), row.CompanyID)
	assert.Equal(t, "Acme Capital", row.CompanyName)
	assert.Equal(t, TypeFunding, row.SignalType)
	assert.Equal(t, HeatHot, row.Heat)
	assert.Equal(t, &published, row.PublishedAt)
}

// Truncation happens before the uniqueness check, so two distinct long
// headlines sharing a 500-character prefix collide under the dedup key.
// Documented behavior, not a bug.
func TestTruncationCollision(t *testing.T) {
	t.Parallel()

	company := CompanyRef{ID: 1, Name: "Acme Capital"}
	prefix := strings.Repeat("x", 500)

	first := NewSignalRow(company, RawSignal{Headline: prefix + " first tail"}, TypeGeneral, HeatCool)
	second := NewSignalRow(company, RawSignal{Headline: prefix + " second tail"}, TypeGeneral, HeatCool)

	assert.Equal(t, first.Headline, second.Headline)
	assert.Equal(t, first.CompanyID, second.CompanyID)
}

func TestTruncateShortStringsUntouched(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", Truncate("short", 500))
	assert.Equal(t, "", Truncate("anything", 0))
}
