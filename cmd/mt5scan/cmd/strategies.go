package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eNirmalraj/insight-trading-dashboard/strategy"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List the built-in strategy catalog",
	Long: `Print every built-in strategy with its indicators and rules.

Each strategy declares the indicators it needs and the rules that fire
BUY or SELL signals when their condition holds at the latest bar.`,
	Run: runStrategies,
}

func init() {
	rootCmd.AddCommand(strategiesCmd)
}

func runStrategies(cmd *cobra.Command, args []string) {
	for i, s := range strategy.Builtin() {
		if i > 0 {
			fmt.Println()
		}

		fmt.Printf("%s (%s)\n", s.Name, s.ID)

		keys := make([]string, len(s.Indicators))
		for j, spec := range s.Indicators {
			keys[j] = spec.Key()
		}
		fmt.Printf("  Indicators: %s\n", strings.Join(keys, ", "))

		fmt.Println("  Rules:")
		for _, r := range s.Rules {
			fmt.Printf("    %s %s %s -> %s\n", r.Left, r.Condition, r.Right, r.Direction)
		}
	}
}
