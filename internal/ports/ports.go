package ports

import (
	"context"

	"SignalScanner/internal/domain"
)

// SignalSource fetches raw signals for a single query string. Fetch must not
// fail: any network, HTTP-status, or parse problem is absorbed inside the
// adapter and yields an empty slice, so a broken source can never abort a
// pass.
type SignalSource interface {
	Name() string
	Configured() bool
	Fetch(ctx context.Context, query string) []domain.RawSignal
}

// FeedScanner consumes one fixed feed per run and matches items against the
// full roster name list itself, emitting signals whose MatchedQuery is the
// roster name that hit. Same absorb-all-failures contract as SignalSource.
type FeedScanner interface {
	Name() string
	Scan(ctx context.Context, names []string) []domain.RawSignal
}

// CompanyDirectory is the external read-only roster collaborator.
type CompanyDirectory interface {
	ListCompanies(ctx context.Context) ([]domain.CompanyRef, error)
}

// SignalStore persists signal batches. InsertNew submits one batched upsert
// with (company_id, headline) conflict target and ignore-on-conflict
// semantics, and reports exactly how many rows were newly inserted.
type SignalStore interface {
	InsertNew(ctx context.Context, rows []domain.SignalRow) (int, error)
}

// RunLog records one IngestionResult per adapter pass. Write-only from the
// pipeline's perspective.
type RunLog interface {
	Append(ctx context.Context, result domain.IngestionResult) error
}
