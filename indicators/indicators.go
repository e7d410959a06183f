// Package indicators provides technical analysis indicators for trading.
//
// The batch functions (SMA, EMA, RSI, BollingerBands) map a close price
// series to an indicator series of the same length, index aligned with the
// input. Entries inside an indicator's warmup span are undefined and carry
// NaN; use Defined before consuming a value. The streaming types mirror the
// batch math one price at a time for live quote feeds.
package indicators

import "math"

// Defined reports whether a series value is usable, i.e. outside its
// indicator's warmup span.
func Defined(v float64) bool {
	return !math.IsNaN(v)
}

// undefined allocates a series of n entries, all NaN.
func undefined(n int) []float64 {
	s := make([]float64, n)
	nan := math.NaN()
	for i := range s {
		s[i] = nan
	}
	return s
}
