package strategy

import "fmt"

// Built-in strategy IDs.
const (
	MACrossoverID      = "builtin-ma-crossover"
	RSIDivergenceID    = "builtin-rsi-divergence"
	MomentumBreakoutID = "builtin-momentum-breakout"
)

// Builtin returns the built in strategy catalog:
//   - MA Crossover: EMA 9 crossing EMA 21
//   - RSI Divergence: RSI 14 beyond the 30/70 thresholds
//   - Momentum Breakout: close breaking the 20 period Bollinger Bands
//
// The slice is freshly allocated per call, so callers may reorder or
// filter it without affecting anyone else. Every definition is validated
// before it is returned; a failure here is a defect in this file and
// panics rather than limping on with a broken catalog.
func Builtin() []Strategy {
	ema9 := IndicatorSpec{Kind: EMA, Period: 9}
	ema21 := IndicatorSpec{Kind: EMA, Period: 21}
	rsi14 := IndicatorSpec{Kind: RSI, Period: 14}
	bb20 := IndicatorSpec{Kind: Bollinger, Period: 20, StdDev: 2}

	catalog := []Strategy{
		{
			ID:         MACrossoverID,
			Name:       "MA Crossover",
			Indicators: []IndicatorSpec{ema9, ema21},
			Rules: []Rule{
				{Condition: CrossOver, Left: Indicator(ema9), Right: Indicator(ema21), Direction: Buy},
				{Condition: CrossUnder, Left: Indicator(ema9), Right: Indicator(ema21), Direction: Sell},
			},
		},
		{
			ID:         RSIDivergenceID,
			Name:       "RSI Divergence",
			Indicators: []IndicatorSpec{rsi14},
			Rules: []Rule{
				{Condition: LessThan, Left: Indicator(rsi14), Right: Constant(30), Direction: Buy},
				{Condition: GreaterThan, Left: Indicator(rsi14), Right: Constant(70), Direction: Sell},
			},
		},
		{
			ID:         MomentumBreakoutID,
			Name:       "Momentum Breakout",
			Indicators: []IndicatorSpec{bb20},
			Rules: []Rule{
				{Condition: CrossOver, Left: Close(), Right: IndicatorBand(bb20, BandUpper), Direction: Buy},
				{Condition: CrossUnder, Left: Close(), Right: IndicatorBand(bb20, BandLower), Direction: Sell},
			},
		},
	}

	for _, s := range catalog {
		if err := s.Validate(); err != nil {
			panic(fmt.Sprintf("builtin catalog: %v", err))
		}
	}
	return catalog
}
