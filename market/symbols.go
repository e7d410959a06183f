package market

import "strings"

// SymbolInfo describes one terminal symbol as reported by the bridge.
type SymbolInfo struct {
	Name        string
	Description string
	Path        string
	Digits      int
	Point       float64
	Visible     bool
	TradeMode   int
}

// TradeModeDisabled is the trade_mode of a symbol closed for trading.
const TradeModeDisabled = 0

// forexQuotes are the quote currencies accepted by the forex screen.
var forexQuotes = []string{"USD", "EUR", "GBP", "JPY", "CHF", "CAD", "AUD", "NZD"}

// IsForexPair reports whether the symbol looks like a spot forex pair:
// a six character name quoted in one of the major currencies.
func (s SymbolInfo) IsForexPair() bool {
	name := strings.ToUpper(s.Name)
	if len(name) != 6 {
		return false
	}
	for _, q := range forexQuotes {
		if strings.HasSuffix(name, q) {
			return true
		}
	}
	return false
}

// Tradable reports whether the terminal will accept orders for the symbol.
func (s SymbolInfo) Tradable() bool {
	return s.Visible && s.TradeMode != TradeModeDisabled
}

// FilterForex keeps visible, tradable forex pairs, at most limit of them.
// A limit of zero or less means no cap.
func FilterForex(symbols []SymbolInfo, limit int) []string {
	var names []string
	for _, s := range symbols {
		if !s.IsForexPair() || !s.Tradable() {
			continue
		}
		names = append(names, s.Name)
		if limit > 0 && len(names) >= limit {
			break
		}
	}
	return names
}
