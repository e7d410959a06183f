package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatSignalOrg renders a SignalRecord as an Org-mode block suitable for
// pasting into a trading journal. Structured facts live in a PROPERTIES
// drawer for easy search; the narrative sections stay blank for the trader
// to fill in after reviewing the setup.
func FormatSignalOrg(rec SignalRecord) string {
	heading := fmt.Sprintf("** Signal: %s %s (%s)", rec.Symbol, rec.Direction, shortID(rec.ID))
	// Use RFC3339 for copy/paste friendliness.
	created := rec.CreatedAt.UTC().Format(time.RFC3339)

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":SIGNAL_ID: %s\n", rec.ID))
	b.WriteString(fmt.Sprintf(":SYMBOL: %s\n", rec.Symbol))
	b.WriteString(fmt.Sprintf(":STRATEGY: %s\n", rec.Strategy))
	b.WriteString(fmt.Sprintf(":STRATEGY_ID: %s\n", rec.StrategyID))
	b.WriteString(fmt.Sprintf(":CATEGORY: %s\n", rec.Category))
	b.WriteString(fmt.Sprintf(":DIRECTION: %s\n", rec.Direction))
	b.WriteString(fmt.Sprintf(":TIMEFRAME: %s\n", rec.Timeframe))
	b.WriteString(fmt.Sprintf(":ENTRY_PRICE: %.5f\n", rec.EntryPrice))
	b.WriteString(fmt.Sprintf(":STOP_LOSS: %.5f\n", rec.StopLoss))
	b.WriteString(fmt.Sprintf(":TAKE_PROFIT: %.5f\n", rec.TakeProfit))
	b.WriteString(fmt.Sprintf(":STATUS: %s\n", rec.Status))
	b.WriteString(fmt.Sprintf(":ENTRY_TYPE: %s\n", rec.EntryType))
	b.WriteString(fmt.Sprintf(":CREATED_AT: %s\n", created))
	b.WriteString(fmt.Sprintf(":REASON: %s\n", rec.Reason))
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Setup\n- \n\n")
	b.WriteString("*** Outcome\n- \n")

	return b.String()
}

// FormatSignalsOrg renders multiple signals separated by blank lines.
func FormatSignalsOrg(recs []SignalRecord) string {
	var b strings.Builder
	for i, rec := range recs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatSignalOrg(rec))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
