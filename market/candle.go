package market

import "time"

// Candle represents OHLC (Open, High, Low, Close) candlestick data
// for one bar as served by the terminal bridge.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Closes extracts the close price series from candles, oldest first.
// Strategy evaluation consumes closes only.
func Closes(candles []Candle) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}
