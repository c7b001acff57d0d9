package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/nvr/internal/decision"
	"github.com/rcliao/nvr/internal/model"
)

// SQLiteBackend keeps the history in a SQLite database, one row per record
// ordered by its append position.
type SQLiteBackend struct {
	db      *sql.DB
	path    string
	entropy *rand.Rand
}

// NewSQLiteBackend opens or creates a SQLite database at the given path.
func NewSQLiteBackend(dbPath string) (*SQLiteBackend, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	b := &SQLiteBackend{
		db:      db,
		path:    dbPath,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := b.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return b, nil
}

func (b *SQLiteBackend) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), b.entropy).String()
}

func (b *SQLiteBackend) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		id               TEXT PRIMARY KEY,
		seq              INTEGER NOT NULL UNIQUE,
		date             TEXT NOT NULL,
		product          TEXT NOT NULL,
		price            REAL NOT NULL,
		needs            TEXT NOT NULL,
		vals             TEXT NOT NULL,
		match_percentage REAL NOT NULL,
		value_density    REAL NOT NULL,
		roi              REAL NOT NULL,
		time_type        TEXT NOT NULL DEFAULT '',
		decision         TEXT NOT NULL,
		is_impulse       INTEGER NOT NULL DEFAULT 0,
		saved_at         TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_records_decision ON records(decision);
	`
	_, err := b.db.Exec(schema)
	return err
}

func (b *SQLiteBackend) Location() string { return b.path }

func (b *SQLiteBackend) Load(ctx context.Context) ([]model.Record, error) {
	rows, err := b.db.QueryContext(ctx,
		`SELECT date, product, price, needs, vals, match_percentage, value_density,
		        roi, time_type, decision, is_impulse
		 FROM records ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Save replaces the table contents with records in one transaction.
func (b *SQLiteBackend) Save(ctx context.Context, records []model.Record) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for seq, r := range records {
		needs, err := json.Marshal(r.Needs)
		if err != nil {
			return fmt.Errorf("encode needs: %w", err)
		}
		vals, err := json.Marshal(r.Values)
		if err != nil {
			return fmt.Errorf("encode values: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO records (id, seq, date, product, price, needs, vals, match_percentage,
			                      value_density, roi, time_type, decision, is_impulse, saved_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			b.newID(), seq, r.Date, r.Product, r.Price, string(needs), string(vals),
			r.MatchPercentage, r.ValueDensity, r.ROI, r.TimeType, string(r.Decision),
			r.IsImpulse, now)
		if err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
	}

	return tx.Commit()
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row scanner) (model.Record, error) {
	var r model.Record
	var needs, vals, tier string

	err := row.Scan(
		&r.Date, &r.Product, &r.Price, &needs, &vals, &r.MatchPercentage,
		&r.ValueDensity, &r.ROI, &r.TimeType, &tier, &r.IsImpulse,
	)
	if err != nil {
		return r, err
	}

	r.Decision = decision.Tier(tier)
	if err := json.Unmarshal([]byte(needs), &r.Needs); err != nil {
		return r, fmt.Errorf("decode needs: %w", err)
	}
	if err := json.Unmarshal([]byte(vals), &r.Values); err != nil {
		return r, fmt.Errorf("decode values: %w", err)
	}
	return r, nil
}
