package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"SignalScanner/internal/domain"
	"SignalScanner/internal/ports"
)

// PostgresRepository backs the roster, signal-store, and run-log collaborators
// with Postgres. Expected tables:
//
//	companies(id, name, tier, priority)
//	signals(id, company_id, company_name, headline, source, description,
//	        published_at, signal_type, heat, source_url,
//	        UNIQUE (company_id, headline))
//	ingestion_runs(id, source, companies_searched, signals_found,
//	               signals_new, duration_ms, created_at)
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.CompanyDirectory = (*PostgresRepository)(nil)
var _ ports.SignalStore = (*PostgresRepository)(nil)
var _ ports.RunLog = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// ListCompanies loads the full roster, most important companies first.
func (r *PostgresRepository) ListCompanies(ctx context.Context) ([]domain.CompanyRef, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database is not configured")
	}

	rows, err := r.builder.
		Select("id", "name", "tier", "priority").
		From("companies").
		OrderBy("priority ASC", "name ASC").
		RunWith(r.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query companies: %w", err)
	}
	defer rows.Close()

	var companies []domain.CompanyRef
	for rows.Next() {
		var c domain.CompanyRef
		if err := rows.Scan(&c.ID, &c.Name, &c.Tier, &c.Priority); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return companies, nil
}

// InsertNew submits one batched insert with ignore-on-conflict semantics on
// (company_id, headline) and returns exactly how many rows were newly
// inserted. Duplicates already in storage are silently skipped, never
// overwritten.
func (r *PostgresRepository) InsertNew(ctx context.Context, signalRows []domain.SignalRow) (int, error) {
	if r.db == nil || len(signalRows) == 0 {
		return 0, nil
	}

	insert := r.builder.
		Insert("signals").
		Columns("company_id", "company_name", "headline", "source",
			"description", "published_at", "signal_type", "heat", "source_url")

	for _, row := range dedupeRows(signalRows) {
		insert = insert.Values(row.CompanyID, row.CompanyName, row.Headline,
			row.Source, row.Description, row.PublishedAt,
			string(row.SignalType), string(row.Heat), row.SourceURL)
	}

	rows, err := insert.
		Suffix("ON CONFLICT (company_id, headline) DO NOTHING RETURNING id").
		RunWith(r.db).
		QueryContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("insert signals: %w", err)
	}
	defer rows.Close()

	inserted := 0
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return inserted, fmt.Errorf("scan inserted id: %w", err)
		}
		inserted++
	}
	if err := rows.Err(); err != nil {
		return inserted, fmt.Errorf("rows iteration: %w", err)
	}

	return inserted, nil
}

// Append records one pass summary in the run log.
func (r *PostgresRepository) Append(ctx context.Context, result domain.IngestionResult) error {
	if r.db == nil {
		return fmt.Errorf("database is not configured")
	}

	_, err := r.builder.
		Insert("ingestion_runs").
		Columns("source", "companies_searched", "signals_found", "signals_new", "duration_ms").
		Values(result.Source, result.CompaniesSearched, result.SignalsFound,
			result.SignalsNew, result.DurationMs).
		RunWith(r.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("append run log: %w", err)
	}

	return nil
}

// dedupeRows drops repeats of the same (company, headline) key within one
// batch, keeping the first occurrence, so the conflict target only ever sees
// each key once per statement.
func dedupeRows(rows []domain.SignalRow) []domain.SignalRow {
	type key struct {
		companyID int64
		headline  string
	}

	seen := make(map[key]struct{}, len(rows))
	deduped := make([]domain.SignalRow, 0, len(rows))
	for _, row := range rows {
		k := key{companyID: row.CompanyID, headline: row.Headline}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		deduped = append(deduped, row)
	}
	return deduped
}
