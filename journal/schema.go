package journal

const Schema = `
CREATE TABLE IF NOT EXISTS signals (
	id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	strategy TEXT NOT NULL,
	strategy_id TEXT NOT NULL,
	strategy_category TEXT NOT NULL,
	direction TEXT NOT NULL,
	entry_price REAL NOT NULL,
	stop_loss REAL NOT NULL,
	take_profit REAL NOT NULL,
	timeframe TEXT NOT NULL,
	reason TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	entry_type TEXT NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_signals_created ON signals(created_at);
CREATE INDEX IF NOT EXISTS idx_signals_dedup ON signals(strategy_id, symbol, direction, created_at);
`

const PostgresSchema = `
CREATE TABLE IF NOT EXISTS signals (
	id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	strategy TEXT NOT NULL,
	strategy_id TEXT NOT NULL,
	strategy_category TEXT NOT NULL,
	direction TEXT NOT NULL,
	entry_price DOUBLE PRECISION NOT NULL,
	stop_loss DOUBLE PRECISION NOT NULL,
	take_profit DOUBLE PRECISION NOT NULL,
	timeframe TEXT NOT NULL,
	reason TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	entry_type TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_signals_created ON signals(created_at);
CREATE INDEX IF NOT EXISTS idx_signals_dedup ON signals(strategy_id, symbol, direction, created_at);
`
