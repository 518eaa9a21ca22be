package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"SignalScanner/internal/classify"
	"SignalScanner/internal/domain"
	"SignalScanner/internal/ports"
	"SignalScanner/internal/roster"
)

// priorityCutoff splits the roster: companies at this priority or better get
// the per-company news passes; the rest are covered only by the feed and
// filings passes.
const priorityCutoff = 2

// CompanyPass binds a per-query source to the inter-request delay that keeps
// it inside its rate limit.
type CompanyPass struct {
	Source ports.SignalSource
	Delay  time.Duration
}

// PipelineDeps wires all collaborators into the ingestion pipeline.
type PipelineDeps struct {
	Directory ports.CompanyDirectory
	Store     ports.SignalStore
	RunLog    ports.RunLog

	CompanyPasses []CompanyPass
	MarketSource  ports.SignalSource
	MarketQueries []string
	MarketDelay   time.Duration
	Feed          ports.FeedScanner
	Filings       ports.SignalSource
	FilingsDelay  time.Duration

	StripSuffixes bool
	Logger        *slog.Logger
}

// Pipeline runs one full ingestion pass sequence: per-company news passes
// over the priority companies, a curated market-keyword sweep, then the
// industry feed and filings passes over the full roster.
type Pipeline struct {
	deps PipelineDeps
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{deps: deps}
}

// Run executes every configured pass and returns one IngestionResult per
// pass. A failure to load the roster aborts the whole run; every other
// failure is contained within its pass.
func (p *Pipeline) Run(ctx context.Context) ([]domain.IngestionResult, error) {
	if p.deps.Directory == nil {
		return nil, fmt.Errorf("company directory is not configured")
	}

	companies, err := p.deps.Directory.ListCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}

	resolver := roster.NewResolver(companies, p.deps.StripSuffixes)

	var priorityNames []string
	for _, c := range companies {
		if c.Priority <= priorityCutoff {
			priorityNames = append(priorityNames, c.Name)
		}
	}

	p.info("run started", "companies", len(companies), "priority", len(priorityNames))

	var results []domain.IngestionResult

	for _, pass := range p.deps.CompanyPasses {
		if pass.Source == nil {
			continue
		}
		if !pass.Source.Configured() {
			p.info("source not configured, pass skipped", "source", pass.Source.Name())
			continue
		}
		res := p.runQueryPass(ctx, pass.Source, pass.Source.Name(), priorityNames, pass.Delay, resolver)
		results = p.record(ctx, results, res)
	}

	if p.deps.MarketSource != nil && p.deps.MarketSource.Configured() && len(p.deps.MarketQueries) > 0 {
		label := p.deps.MarketSource.Name() + "_market"
		res := p.runQueryPass(ctx, p.deps.MarketSource, label, p.deps.MarketQueries, p.deps.MarketDelay, resolver)
		results = p.record(ctx, results, res)
	}

	if p.deps.Feed != nil {
		res := p.runFeedPass(ctx, companies, resolver)
		results = p.record(ctx, results, res)
	}

	if p.deps.Filings != nil {
		if p.deps.Filings.Configured() {
			allNames := make([]string, 0, len(companies))
			for _, c := range companies {
				allNames = append(allNames, c.Name)
			}
			res := p.runQueryPass(ctx, p.deps.Filings, p.deps.Filings.Name(), allNames, p.deps.FilingsDelay, resolver)
			results = p.record(ctx, results, res)
		} else {
			p.info("source not configured, pass skipped", "source", p.deps.Filings.Name())
		}
	}

	return results, nil
}

// runQueryPass iterates the queries one at a time with an inter-request
// delay, accumulates all raw signals, and persists them as one batch.
func (p *Pipeline) runQueryPass(ctx context.Context, src ports.SignalSource, label string, queries []string, delay time.Duration, resolver *roster.Resolver) domain.IngestionResult {
	start := time.Now()

	var raws []domain.RawSignal
	for i, query := range queries {
		if i > 0 {
			if err := wait(ctx, delay); err != nil {
				p.info("pass interrupted", "source", label, "error", err)
				break
			}
		}
		raws = append(raws, src.Fetch(ctx, query)...)
	}

	res := p.persistBatch(ctx, label, len(queries), raws, resolver)
	res.DurationMs = time.Since(start).Milliseconds()
	return res
}

// runFeedPass scans the fixed industry feed once against the full roster.
func (p *Pipeline) runFeedPass(ctx context.Context, companies []domain.CompanyRef, resolver *roster.Resolver) domain.IngestionResult {
	start := time.Now()

	names := make([]string, 0, len(companies))
	for _, c := range companies {
		names = append(names, c.Name)
	}

	raws := p.deps.Feed.Scan(ctx, names)

	res := p.persistBatch(ctx, p.deps.Feed.Name(), len(companies), raws, resolver)
	res.DurationMs = time.Since(start).Milliseconds()
	return res
}

// persistBatch resolves, classifies, and stores one pass worth of raw
// signals. A persistence failure is logged and reported as zero new signals;
// it never aborts the run.
func (p *Pipeline) persistBatch(ctx context.Context, label string, searched int, raws []domain.RawSignal, resolver *roster.Resolver) domain.IngestionResult {
	now := time.Now()

	rows := make([]domain.SignalRow, 0, len(raws))
	for _, raw := range raws {
		company, ok := resolver.Resolve(raw.MatchedQuery)
		if !ok {
			continue
		}
		signalType := classify.Type(raw.Headline, raw.Description)
		heat := classify.Heat(company.Tier, raw.Headline, raw.PublishedAt, now)
		rows = append(rows, domain.NewSignalRow(company, raw, signalType, heat))
	}

	inserted := 0
	if len(rows) > 0 && p.deps.Store != nil {
		n, err := p.deps.Store.InsertNew(ctx, rows)
		if err != nil {
			p.error("persist batch failed", "source", label, "rows", len(rows), "error", err)
		} else {
			inserted = n
		}
	}

	return domain.IngestionResult{
		Source:            label,
		CompaniesSearched: searched,
		SignalsFound:      len(raws),
		SignalsNew:        inserted,
	}
}

// record appends the pass summary to the run log and the in-memory result
// list. Run-log failures are observability-only and never abort ingestion.
func (p *Pipeline) record(ctx context.Context, results []domain.IngestionResult, res domain.IngestionResult) []domain.IngestionResult {
	p.info("pass complete", "source", res.Source,
		"searched", res.CompaniesSearched, "found", res.SignalsFound,
		"new", res.SignalsNew, "duration_ms", res.DurationMs)

	if p.deps.RunLog != nil {
		if err := p.deps.RunLog.Append(ctx, res); err != nil {
			p.error("append run log failed", "source", res.Source, "error", err)
		}
	}

	return append(results, res)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.deps.Logger != nil {
		p.deps.Logger.Info(msg, args...)
	}
}

func (p *Pipeline) error(msg string, args ...any) {
	if p.deps.Logger != nil {
		p.deps.Logger.Error(msg, args...)
	}
}
