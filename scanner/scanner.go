// Package scanner drives the scan loop: fetch candle history for each
// symbol and timeframe, run the strategy catalog over the closes, wrap
// whatever fires in risk levels and hand it to the journal.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/eNirmalraj/insight-trading-dashboard/journal"
	"github.com/eNirmalraj/insight-trading-dashboard/market"
	"github.com/eNirmalraj/insight-trading-dashboard/metrics"
	"github.com/eNirmalraj/insight-trading-dashboard/risk"
	"github.com/eNirmalraj/insight-trading-dashboard/strategy"
)

// CandleSource fetches candle history. *mt5.Client satisfies it.
type CandleSource interface {
	Candles(ctx context.Context, symbol string, timeframe market.Timeframe, count int) ([]market.Candle, error)
}

// SymbolSource lists terminal symbols for discovery. *mt5.Client
// satisfies it.
type SymbolSource interface {
	Symbols(ctx context.Context) ([]market.SymbolInfo, error)
}

// SignalSink journals triggered signals. The journal backends satisfy
// it.
type SignalSink interface {
	Record(ctx context.Context, rec journal.SignalRecord) (journal.SignalRecord, error)
}

// Config wires a Scanner. Source and Journal are required, and one of
// Symbols or Discovery. Zero values for the knobs fall back to the
// same defaults the config package ships.
type Config struct {
	Source    CandleSource
	Journal   SignalSink
	Discovery SymbolSource

	Catalog     []strategy.Strategy
	Symbols     []string
	Timeframes  []market.Timeframe
	BufferSize  int
	SymbolLimit int
	SymbolDelay time.Duration
	Interval    time.Duration

	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

// Scanner runs scan cycles over a symbol list.
type Scanner struct {
	source    CandleSource
	journal   SignalSink
	discovery SymbolSource

	catalog     []strategy.Strategy
	fixed       []string
	timeframes  []market.Timeframe
	bufferSize  int
	symbolLimit int
	symbolDelay time.Duration
	interval    time.Duration

	log     *zap.Logger
	metrics *metrics.Metrics
}

// CycleStats summarizes one scan pass.
type CycleStats struct {
	Scanned    int
	Signals    int
	Duplicates int
	Errors     int
	Elapsed    time.Duration
}

func New(cfg Config) (*Scanner, error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("scanner: candle source is required")
	}
	if cfg.Journal == nil {
		return nil, fmt.Errorf("scanner: journal is required")
	}
	if len(cfg.Symbols) == 0 && cfg.Discovery == nil {
		return nil, fmt.Errorf("scanner: either a symbol list or a discovery source is required")
	}

	s := &Scanner{
		source:      cfg.Source,
		journal:     cfg.Journal,
		discovery:   cfg.Discovery,
		catalog:     cfg.Catalog,
		fixed:       cfg.Symbols,
		timeframes:  cfg.Timeframes,
		bufferSize:  cfg.BufferSize,
		symbolLimit: cfg.SymbolLimit,
		symbolDelay: cfg.SymbolDelay,
		interval:    cfg.Interval,
		log:         cfg.Logger,
		metrics:     cfg.Metrics,
	}

	if s.catalog == nil {
		s.catalog = strategy.Builtin()
	}
	if len(s.timeframes) == 0 {
		s.timeframes = []market.Timeframe{market.H1, market.H4}
	}
	if s.bufferSize <= 0 {
		s.bufferSize = 200
	}
	if s.symbolLimit == 0 {
		s.symbolLimit = 50
	}
	if s.interval <= 0 {
		s.interval = 5 * time.Minute
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	return s, nil
}

// Cycle runs one pass over symbols. Failures on individual symbols are
// logged and counted, never fatal to the pass; a canceled context ends
// it early with whatever was gathered so far.
func (s *Scanner) Cycle(ctx context.Context, symbols []string) CycleStats {
	start := time.Now()
	var stats CycleStats

	for i, symbol := range symbols {
		if i > 0 && s.symbolDelay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(s.symbolDelay):
			}
		}
		if ctx.Err() != nil {
			break
		}

		for _, tf := range s.timeframes {
			s.scanOne(ctx, symbol, tf, &stats)
		}
	}

	stats.Elapsed = time.Since(start)
	s.metrics.ScanCycles.Inc()
	s.metrics.CycleDuration.Observe(stats.Elapsed.Seconds())
	return stats
}

func (s *Scanner) scanOne(ctx context.Context, symbol string, tf market.Timeframe, stats *CycleStats) {
	candles, err := s.source.Candles(ctx, symbol, tf, s.bufferSize)
	if err != nil {
		s.metrics.FetchErrors.Inc()
		stats.Errors++
		s.log.Warn("candle fetch failed",
			zap.String("symbol", symbol),
			zap.String("timeframe", string(tf)),
			zap.Error(err))
		return
	}

	s.metrics.SymbolsScanned.Inc()
	stats.Scanned++

	closes := market.Closes(candles)
	if len(closes) == 0 {
		return
	}

	signals := strategy.RunAll(s.catalog, closes)
	if len(signals) == 0 {
		return
	}

	entry := closes[len(closes)-1]
	for _, sig := range signals {
		s.journalSignal(ctx, symbol, tf, entry, sig, stats)
	}
}

func (s *Scanner) journalSignal(ctx context.Context, symbol string, tf market.Timeframe, entry float64, sig strategy.Signal, stats *CycleStats) {
	levels := risk.Calculate(entry, sig.Direction)

	rec := journal.SignalRecord{
		Symbol:     symbol,
		Strategy:   sig.StrategyName,
		StrategyID: sig.StrategyID,
		Direction:  string(sig.Direction),
		EntryPrice: entry,
		StopLoss:   levels.StopLoss,
		TakeProfit: levels.TakeProfit,
		Timeframe:  string(tf),
		Reason:     sig.Reason,
	}

	stored, err := s.journal.Record(ctx, rec)
	switch {
	case errors.Is(err, journal.ErrDuplicate):
		s.metrics.Duplicates.Inc()
		stats.Duplicates++
		s.log.Debug("duplicate signal suppressed",
			zap.String("symbol", symbol),
			zap.String("strategy", sig.StrategyID),
			zap.String("direction", string(sig.Direction)))
	case err != nil:
		s.metrics.JournalErrors.Inc()
		stats.Errors++
		s.log.Error("journal write failed",
			zap.String("symbol", symbol),
			zap.String("strategy", sig.StrategyID),
			zap.Error(err))
	default:
		s.metrics.SignalsEmitted.WithLabelValues(sig.StrategyName, string(sig.Direction)).Inc()
		stats.Signals++
		s.log.Info("signal journaled",
			zap.String("id", stored.ID),
			zap.String("symbol", symbol),
			zap.String("timeframe", string(tf)),
			zap.String("strategy", sig.StrategyName),
			zap.String("direction", string(sig.Direction)),
			zap.Float64("entry", entry),
			zap.Float64("stop_loss", levels.StopLoss),
			zap.Float64("take_profit", levels.TakeProfit),
			zap.String("reason", sig.Reason))
	}
}
