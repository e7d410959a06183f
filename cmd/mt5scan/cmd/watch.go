package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eNirmalraj/insight-trading-dashboard/indicators"
	"github.com/eNirmalraj/insight-trading-dashboard/mt5"
)

var watchCmd = &cobra.Command{
	Use:   "watch <symbol> [symbol...]",
	Short: "Stream live quotes with a fast/slow EMA readout",
	Long: `Subscribe to live quotes for one or more symbols and print each tick
with a fast/slow EMA computed over the mid price. The trend marker
shows + while the fast EMA is above the slow one, - while below.

Examples:
  mt5scan watch EURUSD
  mt5scan watch EURUSD GBPUSD --fast 5 --slow 13`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

var (
	watchFast int
	watchSlow int
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().IntVar(&watchFast, "fast", 9, "fast EMA period")
	watchCmd.Flags().IntVar(&watchSlow, "slow", 21, "slow EMA period")
}

type emaPair struct {
	fast *indicators.ExponentialMA
	slow *indicators.ExponentialMA
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchFast <= 0 || watchSlow <= 0 || watchFast >= watchSlow {
		return fmt.Errorf("EMA periods must satisfy 0 < fast < slow")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, health, err := connectBridge(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Streaming %s from %s (terminal %s)\n", strings.Join(args, ", "), cfg.MT5.BridgeURL, health.Terminal)
	fmt.Println("Press Ctrl-C to stop.")
	fmt.Println()

	emas := make(map[string]*emaPair, len(args))
	for _, sym := range args {
		emas[sym] = &emaPair{
			fast: indicators.NewEMA(watchFast),
			slow: indicators.NewEMA(watchSlow),
		}
	}

	err = client.StreamQuotes(ctx, args, func(q mt5.Quote) {
		pair, ok := emas[q.Symbol]
		if !ok {
			return
		}

		mid := q.Mid()
		pair.fast.Update(mid)
		pair.slow.Update(mid)

		line := fmt.Sprintf("%s %-10s bid=%.5f ask=%.5f",
			q.Time.Format("15:04:05"), q.Symbol, q.Bid, q.Ask)
		if pair.fast.Ready() && pair.slow.Ready() {
			trend := "="
			switch {
			case pair.fast.Value() > pair.slow.Value():
				trend = "+"
			case pair.fast.Value() < pair.slow.Value():
				trend = "-"
			}
			line += fmt.Sprintf(" ema%d=%.5f ema%d=%.5f %s",
				watchFast, pair.fast.Value(), watchSlow, pair.slow.Value(), trend)
		}
		fmt.Println(line)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	fmt.Println("\nStream closed.")
	return nil
}
