package journal

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func newTestSQLite(t *testing.T, window time.Duration) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path, window)
	assert.NoError(t, err)

	return j, path
}

func testRecord(symbol string, created time.Time) SignalRecord {
	return SignalRecord{
		Symbol:     symbol,
		Strategy:   "MA Crossover",
		StrategyID: "builtin-ma-crossover",
		Direction:  "BUY",
		EntryPrice: 1.1000,
		StopLoss:   1.0780,
		TakeProfit: 1.1440,
		Timeframe:  "H1",
		Reason:     "EMA_9 crossed above EMA_21",
		CreatedAt:  created,
	}
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t, 0)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='signals'`).Scan(&name)
	assert.NoError(t, err)
	assert.Equal(t, "signals", name)
}

func TestSQLiteRecordPersists(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t, 0)
	ctx := context.Background()

	created := time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)
	rec, err := j.Record(ctx, testRecord("EURUSD", created))
	assert.NoError(t, err)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var (
		id, symbol, strategy, strategyID, category  string
		direction, timeframe, reason, status, etype string
		entry, stop, take                           float64
		createdAt                                   time.Time
	)

	err = db.QueryRow(`
        SELECT id, symbol, strategy, strategy_id, strategy_category, direction,
               entry_price, stop_loss, take_profit, timeframe, reason, status, entry_type, created_at
        FROM signals LIMIT 1`).Scan(
		&id, &symbol, &strategy, &strategyID, &category, &direction,
		&entry, &stop, &take, &timeframe, &reason, &status, &etype, &createdAt,
	)
	assert.NoError(t, err)

	assert.Equal(t, rec.ID, id)
	assert.Equal(t, "EURUSD", symbol)
	assert.Equal(t, "MA Crossover", strategy)
	assert.Equal(t, "builtin-ma-crossover", strategyID)
	assert.Equal(t, DefaultCategory, category)
	assert.Equal(t, "BUY", direction)
	assert.InDelta(t, 1.1000, entry, 1e-9)
	assert.InDelta(t, 1.0780, stop, 1e-9)
	assert.InDelta(t, 1.1440, take, 1e-9)
	assert.Equal(t, "H1", timeframe)
	assert.Equal(t, "EMA_9 crossed above EMA_21", reason)
	assert.Equal(t, StatusPending, status)
	assert.Equal(t, EntryTypeMarket, etype)
	assert.True(t, createdAt.Equal(created))
}

func TestSQLiteRecordFillsDefaults(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t, 0)
	t.Cleanup(func() { _ = j.Close() })

	rec, err := j.Record(context.Background(), SignalRecord{
		Symbol:     "GBPUSD",
		Strategy:   "RSI Divergence",
		StrategyID: "builtin-rsi-divergence",
		Direction:  "SELL",
		EntryPrice: 1.2500,
		StopLoss:   1.2750,
		TakeProfit: 1.2000,
		Timeframe:  "H4",
	})
	assert.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, DefaultCategory, rec.Category)
	assert.Equal(t, StatusPending, rec.Status)
	assert.Equal(t, EntryTypeMarket, rec.EntryType)
	assert.WithinDuration(t, time.Now().UTC(), rec.CreatedAt, 5*time.Second)
}

func TestSQLiteRecordKeepsExplicitFields(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t, 0)
	t.Cleanup(func() { _ = j.Close() })

	created := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	in := testRecord("USDJPY", created)
	in.ID = "01HRZX0000000000000000TEST"
	in.Category = "Mean Reversion"
	in.Status = "Filled"
	in.EntryType = "LIMIT"

	rec, err := j.Record(context.Background(), in)
	assert.NoError(t, err)

	assert.Equal(t, "01HRZX0000000000000000TEST", rec.ID)
	assert.Equal(t, "Mean Reversion", rec.Category)
	assert.Equal(t, "Filled", rec.Status)
	assert.Equal(t, "LIMIT", rec.EntryType)
	assert.True(t, rec.CreatedAt.Equal(created))
}

func TestSQLiteDuplicateWindow(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t, time.Hour)
	t.Cleanup(func() { _ = j.Close() })
	ctx := context.Background()

	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	_, err := j.Record(ctx, testRecord("EURUSD", base))
	assert.NoError(t, err)

	// Same strategy, symbol and direction 30 minutes later is a dup.
	_, err = j.Record(ctx, testRecord("EURUSD", base.Add(30*time.Minute)))
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Contains(t, err.Error(), "already journaled")

	// A different direction is not.
	sell := testRecord("EURUSD", base.Add(30*time.Minute))
	sell.Direction = "SELL"
	_, err = j.Record(ctx, sell)
	assert.NoError(t, err)

	// Nor a different symbol.
	_, err = j.Record(ctx, testRecord("GBPUSD", base.Add(30*time.Minute)))
	assert.NoError(t, err)

	// Nor the same signal after the window has passed.
	_, err = j.Record(ctx, testRecord("EURUSD", base.Add(61*time.Minute)))
	assert.NoError(t, err)
}

func TestSQLiteDuplicateWindowDisabled(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t, 0)
	t.Cleanup(func() { _ = j.Close() })
	ctx := context.Background()

	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	_, err := j.Record(ctx, testRecord("EURUSD", base))
	assert.NoError(t, err)
	_, err = j.Record(ctx, testRecord("EURUSD", base.Add(time.Minute)))
	assert.NoError(t, err)
}

func TestSQLiteRecent(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t, 0)
	t.Cleanup(func() { _ = j.Close() })
	ctx := context.Background()

	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	for i, symbol := range []string{"EURUSD", "GBPUSD", "USDJPY"} {
		_, err := j.Record(ctx, testRecord(symbol, base.Add(time.Duration(i)*time.Minute)))
		assert.NoError(t, err)
	}

	recs, err := j.Recent(ctx, 2)
	assert.NoError(t, err)
	assert.Len(t, recs, 2)
	assert.Equal(t, "USDJPY", recs[0].Symbol)
	assert.Equal(t, "GBPUSD", recs[1].Symbol)

	// A non-positive limit falls back to the default.
	recs, err = j.Recent(ctx, 0)
	assert.NoError(t, err)
	assert.Len(t, recs, 3)
}

func TestSQLiteCreatedBetween(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t, 0)
	t.Cleanup(func() { _ = j.Close() })
	ctx := context.Background()

	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	_, err := j.Record(ctx, testRecord("EURUSD", start.Add(-time.Second)))
	assert.NoError(t, err)
	_, err = j.Record(ctx, testRecord("GBPUSD", start))
	assert.NoError(t, err)
	_, err = j.Record(ctx, testRecord("USDJPY", end.Add(-time.Second)))
	assert.NoError(t, err)
	_, err = j.Record(ctx, testRecord("AUDUSD", end))
	assert.NoError(t, err)

	recs, err := j.CreatedBetween(ctx, start, end)
	assert.NoError(t, err)
	assert.Len(t, recs, 2)

	// Start is inclusive, end is not, and results come back oldest first.
	assert.Equal(t, "GBPUSD", recs[0].Symbol)
	assert.Equal(t, "USDJPY", recs[1].Symbol)
}

func TestSQLiteGet(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t, 0)
	t.Cleanup(func() { _ = j.Close() })
	ctx := context.Background()

	created := time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)
	rec, err := j.Record(ctx, testRecord("EURUSD", created))
	assert.NoError(t, err)

	got, err := j.Get(ctx, rec.ID)
	assert.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Symbol, got.Symbol)
	assert.Equal(t, rec.Reason, got.Reason)
	assert.True(t, got.CreatedAt.Equal(created))

	_, err = j.Get(ctx, "missing")
	assert.ErrorContains(t, err, "not found")
}

func TestOpenUnknownDriver(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), "oracle", "dsn", 0)
	assert.ErrorContains(t, err, "unknown journal driver")
}
