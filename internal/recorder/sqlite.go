package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"CoinbasePremium/internal/model"
)

// SQLiteRecorder persists the run journal to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets a dashboard read while a run writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id         TEXT NOT NULL UNIQUE,
			timestamp      INTEGER NOT NULL,
			day            TEXT NOT NULL,
			status         TEXT NOT NULL,
			price_days     INTEGER,
			first_day      TEXT,
			last_day       TEXT,
			latest_price   REAL,
			coinbase_price REAL,
			binance_price  REAL,
			premium        REAL,
			action         TEXT,
			history_len    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS premium_points (
			day        TEXT PRIMARY KEY,
			value      REAL NOT NULL,
			run_id     TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func nullFloat(d decimal.NullDecimal) sql.NullFloat64 {
	if !d.Valid {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: d.Decimal.InexactFloat64(), Valid: true}
}

func (r *SQLiteRecorder) RecordRun(s *model.RunSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var latest sql.NullFloat64
	if s.PriceDays > 0 {
		latest = sql.NullFloat64{Float64: s.LatestPrice.InexactFloat64(), Valid: true}
	}
	_, err := r.db.Exec(`INSERT INTO runs
		(run_id, timestamp, day, status, price_days, first_day, last_day, latest_price,
		 coinbase_price, binance_price, premium, action, history_len)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		s.RunID, s.StartedAt.Unix(), s.Day.String(), string(s.Status),
		s.PriceDays, s.FirstDay.String(), s.LastDay.String(), latest,
		nullFloat(s.CoinbasePrice), nullFloat(s.BinancePrice), nullFloat(s.Premium),
		string(s.Action), s.HistoryLen,
	)
	return err
}

func (r *SQLiteRecorder) RecordPremium(runID string, p model.PremiumPoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO premium_points (day, value, run_id, updated_at)
		VALUES (?,?,?,?)
		ON CONFLICT(day) DO UPDATE SET
			value = excluded.value,
			run_id = excluded.run_id,
			updated_at = excluded.updated_at`,
		p.Day.String(), p.Value.InexactFloat64(), runID, time.Now().Unix(),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
