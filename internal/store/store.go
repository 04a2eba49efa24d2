package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// CountryRow is one country-statistics row. Indicator values stay exactly
// as published (TEXT); all numeric coercion belongs to the normalizer.
type CountryRow struct {
	Name      string            `db:"name" json:"name"`
	Code      string            `db:"code" json:"code"`
	PwrIndex  string            `db:"pwr_index" json:"pwr_index"`
	StatsJSON string            `db:"stats" json:"-"`
	Stats     map[string]string `db:"-" json:"stats"`
}

// BudgetEntry is one (country code, year) expenditure cell. Value is the
// raw published string; an unparseable or empty value is a null year.
type BudgetEntry struct {
	Code  string `db:"code" json:"code"`
	Year  int    `db:"year" json:"year"`
	Value string `db:"value" json:"value"`
}

// RevenueEntry is one defense company's revenue for one year, in USD
// millions. Nil revenue means the source had no figure for that year.
type RevenueEntry struct {
	Company string   `db:"company" json:"company"`
	Country string   `db:"country" json:"country"`
	Year    int      `db:"year" json:"year"`
	Revenue *float64 `db:"revenue" json:"revenue"`
}

// TradeEntry is one country's arms exports and imports for one financial
// year, in USD millions.
type TradeEntry struct {
	Country string   `db:"country" json:"country"`
	Year    int      `db:"year" json:"year"`
	Exports *float64 `db:"exports" json:"exports"`
	Imports *float64 `db:"imports" json:"imports"`
}

// Store is the persistence interface for the source datasets.
type Store interface {
	UpsertCountry(ctx context.Context, row *CountryRow) error
	ListCountries(ctx context.Context) ([]CountryRow, error)

	UpsertBudgetEntry(ctx context.Context, e *BudgetEntry) error
	ListBudgetEntries(ctx context.Context) ([]BudgetEntry, error)

	UpsertRevenueEntry(ctx context.Context, e *RevenueEntry) error
	ListRevenueEntries(ctx context.Context) ([]RevenueEntry, error)

	UpsertTradeEntry(ctx context.Context, e *TradeEntry) error
	ListTradeEntries(ctx context.Context) ([]TradeEntry, error)

	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// New opens a SQLite database and runs migrations.
func New(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) UpsertCountry(ctx context.Context, row *CountryRow) error {
	statsJSON, _ := json.Marshal(row.Stats)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO countries (name, code, pwr_index, stats)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			code = excluded.code,
			pwr_index = excluded.pwr_index,
			stats = excluded.stats
	`, row.Name, row.Code, row.PwrIndex, string(statsJSON))
	if err != nil {
		return fmt.Errorf("upsert country %s: %w", row.Name, err)
	}
	return nil
}

func (s *SQLiteStore) ListCountries(ctx context.Context) ([]CountryRow, error) {
	var rows []CountryRow
	if err := s.db.SelectContext(ctx, &rows, "SELECT * FROM countries ORDER BY name"); err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	for i := range rows {
		json.Unmarshal([]byte(rows[i].StatsJSON), &rows[i].Stats)
	}
	return rows, nil
}

func (s *SQLiteStore) UpsertBudgetEntry(ctx context.Context, e *BudgetEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budget_series (code, year, value)
		VALUES (?, ?, ?)
		ON CONFLICT(code, year) DO UPDATE SET value = excluded.value
	`, e.Code, e.Year, e.Value)
	if err != nil {
		return fmt.Errorf("upsert budget %s/%d: %w", e.Code, e.Year, err)
	}
	return nil
}

func (s *SQLiteStore) ListBudgetEntries(ctx context.Context) ([]BudgetEntry, error) {
	var entries []BudgetEntry
	err := s.db.SelectContext(ctx, &entries,
		"SELECT * FROM budget_series ORDER BY code, year")
	if err != nil {
		return nil, fmt.Errorf("list budget entries: %w", err)
	}
	return entries, nil
}

func (s *SQLiteStore) UpsertRevenueEntry(ctx context.Context, e *RevenueEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO company_revenue (company, country, year, revenue)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(company, year) DO UPDATE SET
			country = excluded.country,
			revenue = excluded.revenue
	`, e.Company, e.Country, e.Year, e.Revenue)
	if err != nil {
		return fmt.Errorf("upsert revenue %s/%d: %w", e.Company, e.Year, err)
	}
	return nil
}

func (s *SQLiteStore) ListRevenueEntries(ctx context.Context) ([]RevenueEntry, error) {
	var entries []RevenueEntry
	err := s.db.SelectContext(ctx, &entries,
		"SELECT * FROM company_revenue ORDER BY company, year")
	if err != nil {
		return nil, fmt.Errorf("list revenue entries: %w", err)
	}
	return entries, nil
}

func (s *SQLiteStore) UpsertTradeEntry(ctx context.Context, e *TradeEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO trade_flows (country, year, exports, imports)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(country, year) DO UPDATE SET
			exports = excluded.exports,
			imports = excluded.imports
	`, e.Country, e.Year, e.Exports, e.Imports)
	if err != nil {
		return fmt.Errorf("upsert trade %s/%d: %w", e.Country, e.Year, err)
	}
	return nil
}

func (s *SQLiteStore) ListTradeEntries(ctx context.Context) ([]TradeEntry, error) {
	var entries []TradeEntry
	err := s.db.SelectContext(ctx, &entries,
		"SELECT * FROM trade_flows ORDER BY country, year")
	if err != nil {
		return nil, fmt.Errorf("list trade entries: %w", err)
	}
	return entries, nil
}
