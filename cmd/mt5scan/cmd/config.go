package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eNirmalraj/insight-trading-dashboard/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage configuration files for the scanner.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  mt5scan config init -o mt5scan.yaml
  mt5scan config validate -f mt5scan.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	Long: `Create a new configuration file with default settings.

Example:
  mt5scan config init -o mt5scan.yaml`,
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Check if a configuration file is valid and can be loaded. Environment
overrides and .env files apply, exactly as they would for a real run.

Example:
  mt5scan config validate -f mt5scan.yaml`,
	RunE: runConfigValidate,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "mt5scan.yaml", "output config file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if err := cfg.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Printf("✓ Created default configuration: %s\n", configInitOutput)
	fmt.Println("\nEdit the file and run with:")
	fmt.Printf("  mt5scan scan -c %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Printf("✓ Configuration valid: %s\n", configValidatePath)
	fmt.Printf("  Bridge: %s\n", cfg.MT5.BridgeURL)
	fmt.Printf("  Database: %s\n", cfg.Database.Driver)
	fmt.Printf("  Timeframes: %s\n", strings.Join(cfg.Scan.Timeframes, ", "))
	fmt.Printf("  Interval: %s\n", cfg.Scan.Interval)
	return nil
}
