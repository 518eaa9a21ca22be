package domain

import "time"

// Tier is the commercial-importance classification of a tracked company.
type Tier string

const (
	TierSQO    Tier = "SQO"
	TierClient Tier = "Client"
	TierICP    Tier = "ICP"
	TierTAM    Tier = "TAM"
)

// SignalType is the semantic category assigned by the classifier.
type SignalType string

const (
	TypeFunding     SignalType = "funding"
	TypeProduct     SignalType = "product"
	TypePartnership SignalType = "partnership"
	TypeHiring      SignalType = "hiring"
	TypeRegulatory  SignalType = "regulatory"
	TypeMilestone   SignalType = "milestone"
	TypeGeneral     SignalType = "general"
)

// Heat is the urgency tier indicating how time-sensitive a signal is.
type Heat string

const (
	HeatHot  Heat = "hot"
	HeatWarm Heat = "warm"
	HeatCool Heat = "cool"
)

// RawSignal is the common shape all source adapters normalize into.
// It lives only within a single pass and is never persisted directly.
type RawSignal struct {
	Headline     string
	Description  string
	Source       string
	SourceURL    string
	PublishedAt  *time.Time
	MatchedQuery string
}

// CompanyRef identifies one tracked company from the external roster.
// Read-only within a run; lower Priority means more important.
type CompanyRef struct {
	ID       int64
	Name     string
	Tier     Tier
	Priority int
}

// SignalRow is the persisted form of a resolved, classified signal.
// (CompanyID, Headline) is the sole dedup key in storage.
type SignalRow struct {
	CompanyID   int64
	CompanyName string
	Headline    string
	Source      string
	Description string
	PublishedAt *time.Time
	SignalType  SignalType
	Heat        Heat
	SourceURL   string
}

// IngestionResult summarizes one adapter pass for the run log.
type IngestionResult struct {
	Source            string
	CompaniesSearched int
	SignalsFound      int
	SignalsNew        int
	DurationMs        int64
}

// Column limits applied before the uniqueness check. Two long headlines
// sharing a truncated prefix will collide under the dedup key.
const (
	MaxHeadlineLen    = 500
	MaxSourceLen      = 200
	MaxDescriptionLen = 1000
	MaxSourceURLLen   = 500
)

// NewSignalRow converts a resolved, classified raw signal into its storable
// row form, truncating oversized fields.
func NewSignalRow(company CompanyRef, raw RawSignal, signalType SignalType, heat Heat) SignalRow {
	return SignalRow{
		CompanyID:   company.ID,
		CompanyName: company.Name,
		Headline:    Truncate(raw.Headline, MaxHeadlineLen),
		Source:      Truncate(raw.Source, MaxSourceLen),
		Description: Truncate(raw.Description, MaxDescriptionLen),
		PublishedAt: raw.PublishedAt,
		SignalType:  signalType,
		Heat:        heat,
		SourceURL:   Truncate(raw.SourceURL, MaxSourceURLLen),
	}
}

// Truncate limits s to max runes.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
