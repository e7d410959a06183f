package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Postgres struct {
	pool   *pgxpool.Pool
	window time.Duration
}

// NewPostgres connects to dsn, verifies the connection and ensures the
// schema exists.
func NewPostgres(ctx context.Context, dsn string, window time.Duration) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	if _, err := pool.Exec(ctx, PostgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres schema: %w", err)
	}
	return &Postgres{pool: pool, window: window}, nil
}

func (j *Postgres) Record(ctx context.Context, rec SignalRecord) (SignalRecord, error) {
	rec = normalize(rec)

	if j.window > 0 {
		var existing string
		err := j.pool.QueryRow(ctx, `
			SELECT id FROM signals
			WHERE strategy_id = $1 AND symbol = $2 AND direction = $3 AND created_at >= $4
			LIMIT 1`,
			rec.StrategyID, rec.Symbol, rec.Direction, rec.CreatedAt.Add(-j.window),
		).Scan(&existing)
		switch {
		case err == nil:
			return rec, fmt.Errorf("%w: %s %s %s already journaled as %s",
				ErrDuplicate, rec.Symbol, rec.StrategyID, rec.Direction, existing)
		case !errors.Is(err, pgx.ErrNoRows):
			return rec, err
		}
	}

	_, err := j.pool.Exec(ctx, `
		INSERT INTO signals
		(id, symbol, strategy, strategy_id, strategy_category, direction,
		 entry_price, stop_loss, take_profit, timeframe, reason, status, entry_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		rec.ID, rec.Symbol, rec.Strategy, rec.StrategyID, rec.Category, rec.Direction,
		rec.EntryPrice, rec.StopLoss, rec.TakeProfit, rec.Timeframe, rec.Reason,
		rec.Status, rec.EntryType, rec.CreatedAt,
	)
	return rec, err
}

func (j *Postgres) Get(ctx context.Context, id string) (SignalRecord, error) {
	row := j.pool.QueryRow(ctx, `
		SELECT `+signalColumns+`
		FROM signals
		WHERE id = $1`, id)

	rec, err := scanSignal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SignalRecord{}, fmt.Errorf("signal %q not found", id)
		}
		return SignalRecord{}, err
	}
	return rec, nil
}

func (j *Postgres) Recent(ctx context.Context, limit int) ([]SignalRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := j.pool.Query(ctx, `
		SELECT `+signalColumns+`
		FROM signals
		ORDER BY created_at DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPgSignals(rows)
}

func (j *Postgres) CreatedBetween(ctx context.Context, start, end time.Time) ([]SignalRecord, error) {
	rows, err := j.pool.Query(ctx, `
		SELECT `+signalColumns+`
		FROM signals
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at ASC, id ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPgSignals(rows)
}

func collectPgSignals(rows pgx.Rows) ([]SignalRecord, error) {
	var out []SignalRecord
	for rows.Next() {
		rec, err := scanSignal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (j *Postgres) Close() error {
	j.pool.Close()
	return nil
}
