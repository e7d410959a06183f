package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eNirmalraj/insight-trading-dashboard/config"
	"github.com/eNirmalraj/insight-trading-dashboard/journal"
	"github.com/eNirmalraj/insight-trading-dashboard/mt5"
)

var rootCmd = &cobra.Command{
	Use:   "mt5scan",
	Short: "A multi-strategy signal scanner for MetaTrader 5",
	Long: `mt5scan evaluates a catalog of indicator strategies against MetaTrader 5
price data and journals every trade signal it finds.

It provides tools for:
  - Running the scanner as a daemon or for a single cycle
  - Querying the signal journal (recent, by day, by ID)
  - Exporting journaled signals to CSV
  - Listing tradable forex symbols from the terminal
  - Watching live quotes with a fast/slow EMA readout

The terminal is reached through an MT5 REST bridge. Settings come from
a config file, environment variables or a .env file.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

var cfgPath string

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (YAML or JSON)")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openJournal opens the journal backend the config selects, with the
// configured duplicate window.
func openJournal(ctx context.Context, cfg *config.Config) (journal.Journal, error) {
	window, err := cfg.Scan.ParseDuplicateWindow()
	if err != nil {
		return nil, err
	}

	j, err := journal.Open(ctx, cfg.Database.Driver, cfg.Database.SourceDSN(), window)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return j, nil
}

// connectBridge builds the bridge client, verifies the terminal is
// reachable and logs in when credentials are configured.
func connectBridge(ctx context.Context, cfg *config.Config) (*mt5.Client, mt5.Health, error) {
	client := mt5.NewClient(cfg.MT5.BridgeURL, cfg.MT5.Token)

	health, err := client.Health(ctx)
	if err != nil {
		return nil, mt5.Health{}, fmt.Errorf("bridge health: %w", err)
	}

	if cfg.MT5.HasLogin() {
		login := mt5.Login{
			Account:  cfg.MT5.Account,
			Password: cfg.MT5.Password,
			Server:   cfg.MT5.Server,
		}
		if err := client.Login(ctx, login); err != nil {
			return nil, mt5.Health{}, fmt.Errorf("mt5 login: %w", err)
		}
	}

	return client, health, nil
}
