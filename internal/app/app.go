package app

import (
	"context"
	"database/sql"
	"log/slog"

	"SignalScanner/internal/config"
	"SignalScanner/internal/domain"
	"SignalScanner/internal/infrastructure/source"
	"SignalScanner/internal/infrastructure/storage"
	"SignalScanner/internal/logging"
	"SignalScanner/internal/ports"
	"SignalScanner/internal/usecase"
)

// Application wires configuration to the ingestion pipeline.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
}

// New builds a runnable application instance. The Postgres repository backs
// all three collaborators (roster, signal store, run log); an external caller
// embedding the pipeline can substitute its own via usecase.PipelineDeps.
func New(cfg config.Config, db *sql.DB, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	registry := source.NewRegistry()
	if cfg.Sources.GoogleNews.Enabled {
		registry.Register(source.NewGoogleNews(nil, baseLogger.With("component", "source.google_news")))
	}
	if cfg.Sources.BingNews.Enabled {
		registry.Register(source.NewBingNews(nil, cfg.Sources.BingNews.Endpoint,
			cfg.Sources.BingNews.APIKey, baseLogger.With("component", "source.bing_news")))
	}

	var companyPasses []usecase.CompanyPass
	var marketSource ports.SignalSource
	if src, err := registry.Resolve("google_news"); err == nil {
		companyPasses = append(companyPasses, usecase.CompanyPass{Source: src, Delay: cfg.Sources.GoogleNews.Delay()})
		marketSource = src
	}
	if src, err := registry.Resolve("bing_news"); err == nil {
		companyPasses = append(companyPasses, usecase.CompanyPass{Source: src, Delay: cfg.Sources.BingNews.Delay()})
	}

	var feed ports.FeedScanner
	if cfg.Sources.IndustryFeed.Enabled {
		feed = source.NewIndustryFeed(nil, cfg.Sources.IndustryFeed.URL,
			cfg.Sources.IndustryFeed.DisplayName, baseLogger.With("component", "source.industry_feed"))
	}

	var filings ports.SignalSource
	if cfg.Sources.Filings.Enabled {
		filings = source.NewFilings(nil, cfg.Sources.Filings.Endpoint,
			cfg.Sources.Filings.UserAgent, cfg.Sources.Filings.Forms,
			baseLogger.With("component", "source.sec_filings"))
	}

	repository := storage.NewPostgresRepository(db)

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Directory:     repository,
		Store:         repository,
		RunLog:        repository,
		CompanyPasses: companyPasses,
		MarketSource:  marketSource,
		MarketQueries: cfg.MarketQueries,
		MarketDelay:   cfg.Sources.GoogleNews.Delay(),
		Feed:          feed,
		Filings:       filings,
		FilingsDelay:  cfg.Sources.Filings.Delay(),
		StripSuffixes: cfg.Roster.StripSuffixes,
		Logger:        baseLogger.With("component", "pipeline"),
	})

	return &Application{cfg: cfg, pipeline: pipeline}
}

// Run executes one full ingestion run and returns its pass summaries.
func (a *Application) Run(ctx context.Context) ([]domain.IngestionResult, error) {
	if a.pipeline == nil {
		return nil, nil
	}
	return a.pipeline.Run(ctx)
}
