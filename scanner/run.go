package scanner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/eNirmalraj/insight-trading-dashboard/market"
)

// Symbols returns the scan list: the fixed list when one is
// configured, otherwise visible tradable forex pairs discovered from
// the terminal, capped at the symbol limit.
func (s *Scanner) Symbols(ctx context.Context) ([]string, error) {
	if len(s.fixed) > 0 {
		return s.fixed, nil
	}

	infos, err := s.discovery.Symbols(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover symbols: %w", err)
	}

	names := market.FilterForex(infos, s.symbolLimit)
	if len(names) == 0 {
		return nil, fmt.Errorf("no tradable forex symbols discovered")
	}
	return names, nil
}

// Run cycles until ctx is canceled. Discovery refreshes before every
// cycle so pairs toggled in the terminal get picked up; a failed
// discovery skips the cycle and retries at the next tick.
func (s *Scanner) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		symbols, err := s.Symbols(ctx)
		if err != nil {
			s.log.Error("symbol discovery failed", zap.Error(err))
		} else {
			s.log.Info("scan cycle starting", zap.Int("symbols", len(symbols)))
			stats := s.Cycle(ctx, symbols)
			s.log.Info("scan cycle complete",
				zap.Int("scanned", stats.Scanned),
				zap.Int("signals", stats.Signals),
				zap.Int("duplicates", stats.Duplicates),
				zap.Int("errors", stats.Errors),
				zap.Duration("elapsed", stats.Elapsed))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
