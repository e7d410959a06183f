// Package risk derives protective price levels for trade signals.
package risk

import (
	"github.com/eNirmalraj/insight-trading-dashboard/strategy"
)

// Fixed fractions around the entry price: risk 2% against the position,
// target 4% beyond it, a 1:2 risk to reward profile.
const (
	riskPct   = 0.02
	rewardPct = 0.04
)

// Levels are the protective prices attached to a signal.
type Levels struct {
	StopLoss   float64
	TakeProfit float64
}

// Calculate places stop loss and take profit around the entry price for
// the given trade direction. Any direction other than Buy is treated as
// a sell, matching the two sided signal model.
func Calculate(entry float64, dir strategy.Direction) Levels {
	if dir == strategy.Buy {
		return Levels{
			StopLoss:   entry * (1 - riskPct),
			TakeProfit: entry * (1 + rewardPct),
		}
	}
	return Levels{
		StopLoss:   entry * (1 + riskPct),
		TakeProfit: entry * (1 - rewardPct),
	}
}

// RR returns the reward to risk ratio of a filled level pair, or 0 when
// the stop sits on the entry.
func RR(entry, stop, takeProfit float64) float64 {
	risk := abs(entry - stop)
	reward := abs(takeProfit - entry)
	if risk == 0 {
		return 0
	}
	return reward / risk
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
