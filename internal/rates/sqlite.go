package rates

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

const ratesSchema = `
	CREATE TABLE IF NOT EXISTS costs (
		carrier TEXT NOT NULL,
		prefix  TEXT NOT NULL,
		cost    TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_costs_prefix ON costs (prefix);
`

// OpenRatesDB opens the SQLite rates database, creating the schema if it
// does not exist yet.
func OpenRatesDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %v", ErrBackendUnavailable, err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping database: %v", ErrBackendUnavailable, err)
	}

	if _, err := db.Exec(ratesSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}

// LoadCarrierRates replaces a carrier's rows inside one transaction.
// Duplicates are collapsed per policy before insert, so the table ends up
// with exactly one row per prefix. A failed load rolls back and leaves any
// previously loaded rows untouched.
func LoadCarrierRates(db *sql.DB, carrier string, records []Record, policy DuplicatePolicy) error {
	costs, err := dedupe(records, policy)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM costs WHERE carrier = ?`, carrier); err != nil {
		return fmt.Errorf("failed to clear carrier %s: %w", carrier, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO costs (carrier, prefix, cost) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for prefix, cost := range costs {
		if _, err := stmt.Exec(carrier, prefix, cost.String()); err != nil {
			return fmt.Errorf("failed to insert prefix %s: %w", prefix, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// SQLTable is the relational backend: one carrier's slice of the shared
// costs table. Loading is the most expensive of the three strategies; each
// probe is a single indexed point query. Poor fit for lookup-heavy
// workloads unless the rows are loaded once and reused across runs.
type SQLTable struct {
	db      *sql.DB
	carrier string
}

// NewSQLTable wraps the rows already loaded for carrier (see
// LoadCarrierRates or cmd/ratesdb).
func NewSQLTable(db *sql.DB, carrier string) *SQLTable {
	return &SQLTable{db: db, carrier: carrier}
}

func (t *SQLTable) LookupExact(prefix string) (decimal.Decimal, bool, error) {
	var cost string
	err := t.db.QueryRow(
		`SELECT cost FROM costs WHERE carrier = ? AND prefix = ?`,
		t.carrier, prefix,
	).Scan(&cost)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Decimal{}, false, nil
	}
	if err != nil {
		return decimal.Decimal{}, false, fmt.Errorf("failed to query prefix %s: %w", prefix, err)
	}
	d, err := ParseCost(cost)
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	return d, true, nil
}

func (t *SQLTable) Len() int {
	var n int
	if err := t.db.QueryRow(`SELECT COUNT(*) FROM costs WHERE carrier = ?`, t.carrier).Scan(&n); err != nil {
		return 0
	}
	return n
}

// Close is a no-op: several carrier tables share one *sql.DB, which stays
// owned by whoever opened it.
func (t *SQLTable) Close() error { return nil }
