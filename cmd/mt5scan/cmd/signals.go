package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/eNirmalraj/insight-trading-dashboard/journal"
)

var signalsCmd = &cobra.Command{
	Use:   "signals",
	Short: "Query the signal journal",
	Long: `Query and display journaled signals.

Subcommands:
  recent - List the most recently journaled signals
  today  - List signals journaled today
  day    - List signals journaled on a specific day
  show   - Get details of a specific signal by ID
  export - Write signals to a CSV file

Examples:
  mt5scan signals recent -n 10
  mt5scan signals today
  mt5scan signals day 2026-03-15
  mt5scan signals show 01JDX8ZGT5M3Q0V2C4B6N8R9KA
  mt5scan signals export -o signals.csv`,
}

var signalsRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List the most recently journaled signals",
	Args:  cobra.NoArgs,
	RunE:  runSignalsRecent,
}

var signalsTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "List signals journaled today",
	Args:  cobra.NoArgs,
	RunE:  runSignalsToday,
}

var signalsDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List signals journaled on a specific day",
	Args:  cobra.ExactArgs(1),
	RunE:  runSignalsDay,
}

var signalsShowCmd = &cobra.Command{
	Use:   "show <signal-id>",
	Short: "Get details of a specific signal",
	Args:  cobra.ExactArgs(1),
	RunE:  runSignalsShow,
}

var signalsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write signals to a CSV file",
	Long: `Export journaled signals to CSV. By default the most recent signals
are exported; use -d to export one whole day instead.

Examples:
  mt5scan signals export -o signals.csv
  mt5scan signals export -o monday.csv -d 2026-03-16`,
	Args: cobra.NoArgs,
	RunE: runSignalsExport,
}

var (
	signalsRecentLimit int
	signalsExportOut   string
	signalsExportDay   string
	signalsExportLimit int
)

func init() {
	rootCmd.AddCommand(signalsCmd)
	signalsCmd.AddCommand(signalsRecentCmd)
	signalsCmd.AddCommand(signalsTodayCmd)
	signalsCmd.AddCommand(signalsDayCmd)
	signalsCmd.AddCommand(signalsShowCmd)
	signalsCmd.AddCommand(signalsExportCmd)

	signalsRecentCmd.Flags().IntVarP(&signalsRecentLimit, "limit", "n", 20, "maximum number of signals to list")

	signalsExportCmd.Flags().StringVarP(&signalsExportOut, "out", "o", "signals.csv", "output CSV path")
	signalsExportCmd.Flags().StringVarP(&signalsExportDay, "day", "d", "", "export one day (YYYY-MM-DD) instead of the most recent signals")
	signalsExportCmd.Flags().IntVarP(&signalsExportLimit, "limit", "n", 100, "maximum number of signals when exporting without -d")
}

func runSignalsRecent(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	j, err := openJournal(ctx, cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	recs, err := j.Recent(ctx, signalsRecentLimit)
	if err != nil {
		return fmt.Errorf("query signals: %w", err)
	}
	if len(recs) == 0 {
		fmt.Println("No signals journaled yet.")
		return nil
	}

	fmt.Println(journal.FormatSignalsOrg(recs))
	return nil
}

func runSignalsToday(cmd *cobra.Command, args []string) error {
	loc := time.Local
	return listSignalsForDay(time.Now().In(loc).Format("2006-01-02"), loc)
}

func runSignalsDay(cmd *cobra.Command, args []string) error {
	return listSignalsForDay(args[0], time.Local)
}

func listSignalsForDay(day string, loc *time.Location) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	start, end, err := dayBounds(loc, day)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	ctx := context.Background()
	j, err := openJournal(ctx, cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	recs, err := j.CreatedBetween(ctx, start, end)
	if err != nil {
		return fmt.Errorf("query signals: %w", err)
	}
	if len(recs) == 0 {
		fmt.Printf("No signals journaled on %s.\n", day)
		return nil
	}

	fmt.Println(journal.FormatSignalsOrg(recs))
	return nil
}

func runSignalsShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	j, err := openJournal(ctx, cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	rec, err := j.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("get signal: %w", err)
	}

	fmt.Println(journal.FormatSignalOrg(rec))
	return nil
}

func runSignalsExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	j, err := openJournal(ctx, cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	var recs []journal.SignalRecord
	if signalsExportDay != "" {
		start, end, err := dayBounds(time.Local, signalsExportDay)
		if err != nil {
			return fmt.Errorf("date: %w", err)
		}
		recs, err = j.CreatedBetween(ctx, start, end)
		if err != nil {
			return fmt.Errorf("query signals: %w", err)
		}
	} else {
		recs, err = j.Recent(ctx, signalsExportLimit)
		if err != nil {
			return fmt.Errorf("query signals: %w", err)
		}
	}

	if err := journal.WriteCSV(signalsExportOut, recs); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	fmt.Printf("Exported %d signals to %s\n", len(recs), signalsExportOut)
	return nil
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.Add(24 * time.Hour)
	return start, end, nil
}
