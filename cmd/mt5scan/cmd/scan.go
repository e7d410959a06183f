package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eNirmalraj/insight-trading-dashboard/config"
	"github.com/eNirmalraj/insight-trading-dashboard/journal"
	"github.com/eNirmalraj/insight-trading-dashboard/logger"
	"github.com/eNirmalraj/insight-trading-dashboard/metrics"
	"github.com/eNirmalraj/insight-trading-dashboard/mt5"
	"github.com/eNirmalraj/insight-trading-dashboard/scanner"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run the signal scanner as a daemon",
	Long: `Run the scanner loop: discover tradable symbols, fetch candles for
every configured timeframe, evaluate the strategy catalog and journal
each signal. The cycle repeats every scan interval until interrupted.

Example:
  mt5scan scan -c mt5scan.yaml`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, health, err := connectBridge(ctx, cfg)
	if err != nil {
		return err
	}
	log.Info("bridge connected",
		zap.String("url", cfg.MT5.BridgeURL),
		zap.String("terminal", health.Terminal),
		zap.String("version", health.Version),
		zap.Bool("connected", health.Connected))

	j, err := openJournal(ctx, cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	m := metrics.New()
	if cfg.Metrics.Addr != "" {
		srv := metrics.NewServer(cfg.Metrics.Addr, m, log)
		srv.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Stop(shutdownCtx)
		}()
	}

	s, err := newScanner(cfg, client, j, log, m)
	if err != nil {
		return err
	}

	log.Info("scanner starting",
		zap.Strings("timeframes", cfg.Scan.Timeframes),
		zap.String("interval", cfg.Scan.Interval),
		zap.Int("symbol_limit", cfg.Scan.SymbolLimit))

	if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.Info("scanner stopped")
	return nil
}

// newScanner wires a Scanner from the loaded config.
func newScanner(cfg *config.Config, client *mt5.Client, j journal.Journal, log *zap.Logger, m *metrics.Metrics) (*scanner.Scanner, error) {
	timeframes, err := cfg.Scan.ParseTimeframes()
	if err != nil {
		return nil, err
	}
	interval, err := cfg.Scan.ParseInterval()
	if err != nil {
		return nil, err
	}
	delay, err := cfg.Scan.ParseSymbolDelay()
	if err != nil {
		return nil, err
	}

	s, err := scanner.New(scanner.Config{
		Source:      client,
		Journal:     j,
		Discovery:   client,
		Symbols:     cfg.Scan.Symbols,
		Timeframes:  timeframes,
		BufferSize:  cfg.Scan.BufferSize,
		SymbolLimit: cfg.Scan.SymbolLimit,
		SymbolDelay: delay,
		Interval:    interval,
		Logger:      log,
		Metrics:     m,
	})
	if err != nil {
		return nil, fmt.Errorf("build scanner: %w", err)
	}
	return s, nil
}
