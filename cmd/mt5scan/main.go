package main

import (
	"os"

	"github.com/eNirmalraj/insight-trading-dashboard/cmd/mt5scan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
