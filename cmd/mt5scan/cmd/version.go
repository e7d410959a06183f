package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the mt5scan CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mt5scan version %s\n", version)
		fmt.Println("A multi-strategy signal scanner for MetaTrader 5")
		fmt.Println("https://github.com/eNirmalraj/insight-trading-dashboard")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
