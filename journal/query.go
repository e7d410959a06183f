package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const signalColumns = `id, symbol, strategy, strategy_id, strategy_category, direction,
	entry_price, stop_loss, take_profit, timeframe, reason, status, entry_type, created_at`

// Get returns a single signal record by ID.
func (j *SQLite) Get(ctx context.Context, id string) (SignalRecord, error) {
	row := j.db.QueryRowContext(ctx, `
		SELECT `+signalColumns+`
		FROM signals
		WHERE id = ?`, id)

	rec, err := scanSignal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SignalRecord{}, fmt.Errorf("signal %q not found", id)
		}
		return SignalRecord{}, err
	}
	return rec, nil
}

// Recent returns the newest signals, newest first.
func (j *SQLite) Recent(ctx context.Context, limit int) ([]SignalRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT `+signalColumns+`
		FROM signals
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSignals(rows)
}

// CreatedBetween returns signals created within [start, end), oldest
// first.
func (j *SQLite) CreatedBetween(ctx context.Context, start, end time.Time) ([]SignalRecord, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT `+signalColumns+`
		FROM signals
		WHERE created_at >= ? AND created_at < ?
		ORDER BY created_at ASC, id ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSignals(rows)
}

func collectSignals(rows *sql.Rows) ([]SignalRecord, error) {
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
