package scanner

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eNirmalraj/insight-trading-dashboard/journal"
	"github.com/eNirmalraj/insight-trading-dashboard/market"
	"github.com/eNirmalraj/insight-trading-dashboard/metrics"
)

type stubSource struct {
	candles []market.Candle
	err     error
	calls   []string
	counts  []int
}

func (s *stubSource) Candles(_ context.Context, symbol string, tf market.Timeframe, count int) ([]market.Candle, error) {
	s.calls = append(s.calls, symbol+"/"+string(tf))
	s.counts = append(s.counts, count)
	if s.err != nil {
		return nil, s.err
	}
	return s.candles, nil
}

type stubDiscovery struct {
	infos []market.SymbolInfo
	err   error
}

func (s *stubDiscovery) Symbols(context.Context) ([]market.SymbolInfo, error) {
	return s.infos, s.err
}

type stubJournal struct {
	recs []journal.SignalRecord
	err  error
}

func (j *stubJournal) Record(_ context.Context, rec journal.SignalRecord) (journal.SignalRecord, error) {
	if j.err != nil {
		return rec, j.err
	}
	rec.ID = fmt.Sprintf("TEST-%03d", len(j.recs)+1)
	j.recs = append(j.recs, rec)
	return rec, nil
}

func candlesFrom(closes []float64) []market.Candle {
	base := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	out := make([]market.Candle, len(closes))
	for i, c := range closes {
		out[i] = market.Candle{
			Time:   base.Add(time.Duration(i) * time.Hour),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 100,
		}
	}
	return out
}

// dipCloses holds 100 with a one bar dip late in the series. The fast
// EMA dives harder and recovers faster than the slow one, crossing back
// above it exactly at the final bar.
func dipCloses() []float64 {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100
	}
	closes[52] = 99
	return closes
}

func newTestScanner(t *testing.T, cfg Config) (*Scanner, *metrics.Metrics) {
	t.Helper()

	m := metrics.New()
	cfg.Metrics = m

	s, err := New(cfg)
	require.NoError(t, err)
	return s, m
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	src := &stubSource{}
	jr := &stubJournal{}

	tests := []struct {
		name   string
		cfg    Config
		errMsg string
	}{
		{
			name:   "missing source",
			cfg:    Config{Journal: jr, Symbols: []string{"EURUSD"}},
			errMsg: "candle source is required",
		},
		{
			name:   "missing journal",
			cfg:    Config{Source: src, Symbols: []string{"EURUSD"}},
			errMsg: "journal is required",
		},
		{
			name:   "no symbols and no discovery",
			cfg:    Config{Source: src, Journal: jr},
			errMsg: "symbol list or a discovery source",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	s, _ := newTestScanner(t, Config{
		Source:  &stubSource{},
		Journal: &stubJournal{},
		Symbols: []string{"EURUSD"},
	})

	assert.Len(t, s.catalog, 3)
	assert.Equal(t, []market.Timeframe{market.H1, market.H4}, s.timeframes)
	assert.Equal(t, 200, s.bufferSize)
	assert.Equal(t, 50, s.symbolLimit)
	assert.Equal(t, 5*time.Minute, s.interval)
	assert.NotNil(t, s.log)
}

func TestCycleJournalsSignal(t *testing.T) {
	t.Parallel()

	src := &stubSource{candles: candlesFrom(dipCloses())}
	jr := &stubJournal{}
	s, m := newTestScanner(t, Config{
		Source:     src,
		Journal:    jr,
		Symbols:    []string{"EURUSD"},
		Timeframes: []market.Timeframe{market.H1},
	})

	stats := s.Cycle(context.Background(), []string{"EURUSD"})

	assert.Equal(t, 1, stats.Scanned)
	assert.Equal(t, 1, stats.Signals)
	assert.Equal(t, 0, stats.Duplicates)
	assert.Equal(t, 0, stats.Errors)

	require.Len(t, jr.recs, 1)
	rec := jr.recs[0]
	assert.Equal(t, "EURUSD", rec.Symbol)
	assert.Equal(t, "MA Crossover", rec.Strategy)
	assert.Equal(t, "builtin-ma-crossover", rec.StrategyID)
	assert.Equal(t, "BUY", rec.Direction)
	assert.Equal(t, "H1", rec.Timeframe)
	assert.Equal(t, "EMA_9 crossed above EMA_21", rec.Reason)

	// Entry is the last close; stop and target sit 2% and 4% away.
	assert.InDelta(t, 100.0, rec.EntryPrice, 1e-9)
	assert.InDelta(t, 98.0, rec.StopLoss, 1e-9)
	assert.InDelta(t, 104.0, rec.TakeProfit, 1e-9)

	assert.Equal(t, []string{"EURUSD/H1"}, src.calls)
	assert.Equal(t, []int{200}, src.counts)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SignalsEmitted.WithLabelValues("MA Crossover", "BUY")))
}

func TestCycleShortHistory(t *testing.T) {
	t.Parallel()

	src := &stubSource{candles: candlesFrom([]float64{100, 101, 102})}
	jr := &stubJournal{}
	s, _ := newTestScanner(t, Config{
		Source:     src,
		Journal:    jr,
		Symbols:    []string{"EURUSD"},
		Timeframes: []market.Timeframe{market.H1},
	})

	stats := s.Cycle(context.Background(), []string{"EURUSD"})

	assert.Equal(t, 1, stats.Scanned)
	assert.Equal(t, 0, stats.Signals)
	assert.Empty(t, jr.recs)
}

func TestCycleEmptyCandles(t *testing.T) {
	t.Parallel()

	src := &stubSource{}
	jr := &stubJournal{}
	s, _ := newTestScanner(t, Config{
		Source:     src,
		Journal:    jr,
		Symbols:    []string{"EURUSD"},
		Timeframes: []market.Timeframe{market.H1},
	})

	stats := s.Cycle(context.Background(), []string{"EURUSD"})

	assert.Equal(t, 1, stats.Scanned)
	assert.Equal(t, 0, stats.Signals)
	assert.Equal(t, 0, stats.Errors)
	assert.Empty(t, jr.recs)
}

func TestCycleFetchErrorContinues(t *testing.T) {
	t.Parallel()

	src := &stubSource{err: fmt.Errorf("bridge error (status 502)")}
	jr := &stubJournal{}
	s, m := newTestScanner(t, Config{
		Source:     src,
		Journal:    jr,
		Symbols:    []string{"EURUSD", "GBPUSD"},
		Timeframes: []market.Timeframe{market.H1},
	})

	stats := s.Cycle(context.Background(), []string{"EURUSD", "GBPUSD"})

	// Both symbols were attempted despite the failures.
	assert.Equal(t, []string{"EURUSD/H1", "GBPUSD/H1"}, src.calls)
	assert.Equal(t, 0, stats.Scanned)
	assert.Equal(t, 2, stats.Errors)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.FetchErrors))
}

func TestCycleDuplicateSuppressed(t *testing.T) {
	t.Parallel()

	src := &stubSource{candles: candlesFrom(dipCloses())}
	jr := &stubJournal{err: fmt.Errorf("%w: seen before", journal.ErrDuplicate)}
	s, m := newTestScanner(t, Config{
		Source:     src,
		Journal:    jr,
		Symbols:    []string{"EURUSD"},
		Timeframes: []market.Timeframe{market.H1},
	})

	stats := s.Cycle(context.Background(), []string{"EURUSD"})

	assert.Equal(t, 0, stats.Signals)
	assert.Equal(t, 1, stats.Duplicates)
	assert.Equal(t, 0, stats.Errors)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Duplicates))
}

func TestCycleJournalError(t *testing.T) {
	t.Parallel()

	src := &stubSource{candles: candlesFrom(dipCloses())}
	jr := &stubJournal{err: fmt.Errorf("disk full")}
	s, m := newTestScanner(t, Config{
		Source:     src,
		Journal:    jr,
		Symbols:    []string{"EURUSD"},
		Timeframes: []market.Timeframe{market.H1},
	})

	stats := s.Cycle(context.Background(), []string{"EURUSD"})

	assert.Equal(t, 0, stats.Signals)
	assert.Equal(t, 1, stats.Errors)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JournalErrors))
}

func TestCycleScansEveryTimeframe(t *testing.T) {
	t.Parallel()

	src := &stubSource{}
	jr := &stubJournal{}
	s, _ := newTestScanner(t, Config{
		Source:     src,
		Journal:    jr,
		Symbols:    []string{"EURUSD", "GBPUSD"},
		Timeframes: []market.Timeframe{market.H1, market.H4},
	})

	stats := s.Cycle(context.Background(), []string{"EURUSD", "GBPUSD"})

	assert.Equal(t, 4, stats.Scanned)
	assert.Equal(t, []string{"EURUSD/H1", "EURUSD/H4", "GBPUSD/H1", "GBPUSD/H4"}, src.calls)
}

func TestCycleCanceledContext(t *testing.T) {
	t.Parallel()

	src := &stubSource{}
	jr := &stubJournal{}
	s, _ := newTestScanner(t, Config{
		Source:     src,
		Journal:    jr,
		Symbols:    []string{"EURUSD"},
		Timeframes: []market.Timeframe{market.H1},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats := s.Cycle(ctx, []string{"EURUSD", "GBPUSD"})

	assert.Equal(t, 0, stats.Scanned)
	assert.Empty(t, src.calls)
}

func TestSymbolsFixedList(t *testing.T) {
	t.Parallel()

	s, _ := newTestScanner(t, Config{
		Source:  &stubSource{},
		Journal: &stubJournal{},
		Symbols: []string{"EURUSD", "XAUUSD"},
	})

	symbols, err := s.Symbols(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"EURUSD", "XAUUSD"}, symbols)
}

func TestSymbolsDiscovery(t *testing.T) {
	t.Parallel()

	disc := &stubDiscovery{infos: []market.SymbolInfo{
		{Name: "EURUSD", Visible: true, TradeMode: 4},
		{Name: "BTCUSDT", Visible: true, TradeMode: 4},   // not a 6-char pair
		{Name: "GBPJPY", Visible: false, TradeMode: 4},   // hidden
		{Name: "USDCHF", Visible: true, TradeMode: 0},    // trading disabled
		{Name: "AUDNZD", Visible: true, TradeMode: 4},
		{Name: "EURGBP", Visible: true, TradeMode: 4},
	}}

	s, _ := newTestScanner(t, Config{
		Source:      &stubSource{},
		Journal:     &stubJournal{},
		Discovery:   disc,
		SymbolLimit: 2,
	})

	symbols, err := s.Symbols(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"EURUSD", "AUDNZD"}, symbols)
}

func TestSymbolsDiscoveryError(t *testing.T) {
	t.Parallel()

	s, _ := newTestScanner(t, Config{
		Source:    &stubSource{},
		Journal:   &stubJournal{},
		Discovery: &stubDiscovery{err: fmt.Errorf("bridge down")},
	})

	_, err := s.Symbols(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "discover symbols")
}

func TestSymbolsDiscoveryNothingTradable(t *testing.T) {
	t.Parallel()

	disc := &stubDiscovery{infos: []market.SymbolInfo{
		{Name: "BTCUSDT", Visible: true, TradeMode: 4},
	}}

	s, _ := newTestScanner(t, Config{
		Source:    &stubSource{},
		Journal:   &stubJournal{},
		Discovery: disc,
	})

	_, err := s.Symbols(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no tradable forex symbols")
}

func TestRunStopsOnCancel(t *testing.T) {
	t.Parallel()

	src := &stubSource{}
	s, _ := newTestScanner(t, Config{
		Source:   src,
		Journal:  &stubJournal{},
		Symbols:  []string{"EURUSD"},
		Interval: time.Hour,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
