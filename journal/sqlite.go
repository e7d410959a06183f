package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db     *sql.DB
	window time.Duration
}

// NewSQLite opens (or creates) the database at path and ensures the
// schema exists. WAL mode keeps queries from blocking the scanner's
// inserts.
func NewSQLite(path string, window time.Duration) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}

	// Single writer keeps the dedup check-then-insert serialized.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	return &SQLite{db: db, window: window}, nil
}

func (j *SQLite) Record(ctx context.Context, rec SignalRecord) (SignalRecord, error) {
	rec = normalize(rec)

	if j.window > 0 {
		var existing string
		err := j.db.QueryRowContext(ctx, `
			SELECT id FROM signals
			WHERE strategy_id = ? AND symbol = ? AND direction = ? AND created_at >= ?
			LIMIT 1`,
			rec.StrategyID, rec.Symbol, rec.Direction, rec.CreatedAt.Add(-j.window),
		).Scan(&existing)
		switch {
		case err == nil:
			return rec, fmt.Errorf("%w: %s %s %s already journaled as %s",
				ErrDuplicate, rec.Symbol, rec.StrategyID, rec.Direction, existing)
		case !errors.Is(err, sql.ErrNoRows):
			return rec, err
		}
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO signals
		(id, symbol, strategy, strategy_id, strategy_category, direction,
		 entry_price, stop_loss, take_profit, timeframe, reason, status, entry_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Symbol, rec.Strategy, rec.StrategyID, rec.Category, rec.Direction,
		rec.EntryPrice, rec.StopLoss, rec.TakeProfit, rec.Timeframe, rec.Reason,
		rec.Status, rec.EntryType, rec.CreatedAt,
	)
	return rec, err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
