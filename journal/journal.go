// Package journal persists triggered signals and answers queries over
// them. Two backends are provided: SQLite for the default standalone
// setup and Postgres for shared deployments, plus a CSV export for
// spreadsheets. Backends suppress duplicates, where a duplicate is a
// signal with the same strategy, symbol and direction journaled within
// the dedup window of the new record.
package journal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Column defaults applied by Record when the caller leaves them empty.
const (
	StatusPending   = "Pending"
	EntryTypeMarket = "MARKET"
	DefaultCategory = "Trend Following"
)

// DefaultWindow is the dedup window used when the caller passes none.
const DefaultWindow = 60 * time.Minute

// ErrDuplicate is returned by Record when an equivalent signal already
// sits inside the dedup window. Callers that treat re-fires as routine
// should match it with errors.Is and move on.
var ErrDuplicate = errors.New("duplicate signal")

// SignalRecord is one journaled signal. Reason carries the
// human-readable trigger description, e.g. "EMA_9 crossed above EMA_21".
type SignalRecord struct {
	ID         string
	Symbol     string
	Strategy   string
	StrategyID string
	Category   string
	Direction  string
	EntryPrice float64
	StopLoss   float64
	TakeProfit float64
	Timeframe  string
	Reason     string
	Status     string
	EntryType  string
	CreatedAt  time.Time
}

type Journal interface {
	// Record inserts rec and returns it with defaults filled in. A
	// duplicate inside the dedup window is reported as ErrDuplicate
	// and nothing is inserted.
	Record(ctx context.Context, rec SignalRecord) (SignalRecord, error)

	// Recent returns the newest records, newest first.
	Recent(ctx context.Context, limit int) ([]SignalRecord, error)

	// CreatedBetween returns records created within [start, end),
	// oldest first.
	CreatedBetween(ctx context.Context, start, end time.Time) ([]SignalRecord, error)

	// Get returns a single record by ID.
	Get(ctx context.Context, id string) (SignalRecord, error)

	Close() error
}

// Open returns a Journal for the given driver, either "sqlite" or
// "postgres". For sqlite the dsn is a file path. A window of zero or
// less disables duplicate suppression.
func Open(ctx context.Context, driver, dsn string, window time.Duration) (Journal, error) {
	switch driver {
	case "", "sqlite", "sqlite3":
		return NewSQLite(dsn, window)
	case "postgres", "postgresql":
		return NewPostgres(ctx, dsn, window)
	default:
		return nil, fmt.Errorf("unknown journal driver %q", driver)
	}
}

// normalize fills the columns Record defaults when the caller leaves
// them zero.
func normalize(rec SignalRecord) SignalRecord {
	if rec.ID == "" {
		rec.ID = newID()
	}
	if rec.Category == "" {
		rec.Category = DefaultCategory
	}
	if rec.Status == "" {
		rec.Status = StatusPending
	}
	if rec.EntryType == "" {
		rec.EntryType = EntryTypeMarket
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	return rec
}

// rowScanner is satisfied by *sql.Row, *sql.Rows and pgx rows alike.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSignal(row rowScanner) (SignalRecord, error) {
	var rec SignalRecord
	err := row.Scan(
		&rec.ID,
		&rec.Symbol,
		&rec.Strategy,
		&rec.StrategyID,
		&rec.Category,
		&rec.Direction,
		&rec.EntryPrice,
		&rec.StopLoss,
		&rec.TakeProfit,
		&rec.Timeframe,
		&rec.Reason,
		&rec.Status,
		&rec.EntryType,
		&rec.CreatedAt,
	)
	return rec, err
}
