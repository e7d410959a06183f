package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

var csvHeader = []string{
	"id", "symbol", "strategy", "strategy_id", "strategy_category", "direction",
	"entry_price", "stop_loss", "take_profit", "timeframe", "reason", "status",
	"entry_type", "created_at",
}

// WriteCSV writes recs to path, creating or truncating the file.
func WriteCSV(path string, recs []SignalRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(file)
	if err := w.Write(csvHeader); err != nil {
		file.Close()
		return err
	}
	for _, rec := range recs {
		if err := w.Write(csvRow(rec)); err != nil {
			file.Close()
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func csvRow(rec SignalRecord) []string {
	return []string{
		rec.ID,
		rec.Symbol,
		rec.Strategy,
		rec.StrategyID,
		rec.Category,
		rec.Direction,
		f(rec.EntryPrice),
		f(rec.StopLoss),
		f(rec.TakeProfit),
		rec.Timeframe,
		rec.Reason,
		rec.Status,
		rec.EntryType,
		rec.CreatedAt.Format(time.RFC3339),
	}
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
