package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eNirmalraj/insight-trading-dashboard/market"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols",
	Short: "List tradable forex symbols from the terminal",
	Long: `List the symbols the scanner would pick: visible, tradable forex pairs
quoted in a major currency, capped at the configured symbol limit.

With --all, list every symbol the terminal reports instead.

Examples:
  mt5scan symbols
  mt5scan symbols --all`,
	RunE: runSymbols,
}

var symbolsAll bool

func init() {
	rootCmd.AddCommand(symbolsCmd)

	symbolsCmd.Flags().BoolVar(&symbolsAll, "all", false, "list every terminal symbol, not just the forex scan set")
}

func runSymbols(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, _, err := connectBridge(ctx, cfg)
	if err != nil {
		return err
	}

	infos, err := client.Symbols(ctx)
	if err != nil {
		return fmt.Errorf("list symbols: %w", err)
	}

	if symbolsAll {
		for _, s := range infos {
			marker := " "
			if !s.Tradable() {
				marker = "-"
			}
			fmt.Printf("%s %-12s %s\n", marker, s.Name, s.Description)
		}
		fmt.Printf("\n%d symbols (- marks hidden or trade-disabled)\n", len(infos))
		return nil
	}

	names := market.FilterForex(infos, cfg.Scan.SymbolLimit)
	if len(names) == 0 {
		return fmt.Errorf("no tradable forex symbols found")
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
