package strategy

import (
	"fmt"

	"github.com/eNirmalraj/insight-trading-dashboard/indicators"
)

// Failure reasons carried by verdicts that did not fire.
const (
	reasonMissingData   = "missing indicator data"
	reasonMissingTarget = "missing indicator2 data"
	reasonNoCross       = "no crossover detected"
	reasonNotMet        = "condition not met"
	reasonUnknown       = "unknown condition"
)

// Verdict is the outcome of evaluating one rule. A direction only
// exists on a fired verdict, so a non-trigger can never be mistaken for
// a trade signal.
type Verdict struct {
	triggered bool
	direction Direction
	reason    string
}

func fired(dir Direction, reason string) Verdict {
	return Verdict{triggered: true, direction: dir, reason: reason}
}

func notFired(reason string) Verdict {
	return Verdict{reason: reason}
}

// Triggered reports whether the rule fired.
func (v Verdict) Triggered() bool {
	return v.triggered
}

// Direction returns the trade side of a fired verdict. ok is false when
// the verdict did not fire.
func (v Verdict) Direction() (dir Direction, ok bool) {
	return v.direction, v.triggered
}

// Reason describes why the rule fired, or why it did not.
func (v Verdict) Reason() string {
	return v.reason
}

// EvaluateRule checks one rule at the latest index of the close series,
// reading indicator series from ind. It never returns an error: data
// problems surface as non-triggered verdicts with a failure reason.
func EvaluateRule(rule Rule, ind Computed, closes []float64) Verdict {
	latest := len(closes) - 1
	if latest < 0 {
		return notFired(reasonMissingData)
	}

	switch rule.Condition {
	case CrossOver, CrossUnder:
		a, ok := resolveSeries(rule.Left, ind, closes)
		if !ok {
			return notFired(reasonMissingData)
		}
		b, ok := resolveSeries(rule.Right, ind, closes)
		if !ok {
			return notFired(reasonMissingData)
		}

		cross := indicators.Crossover(a, b, latest)
		if rule.Condition == CrossOver && cross == indicators.CrossUp {
			return fired(rule.Direction, fmt.Sprintf("%s crossed above %s", rule.Left, rule.Right))
		}
		if rule.Condition == CrossUnder && cross == indicators.CrossDown {
			return fired(rule.Direction, fmt.Sprintf("%s crossed below %s", rule.Left, rule.Right))
		}
		return notFired(reasonNoCross)

	case GreaterThan, LessThan:
		series, ok := resolveSeries(rule.Left, ind, closes)
		if !ok || !indicators.Defined(series[latest]) {
			return notFired(reasonMissingData)
		}
		current := series[latest]

		target, targetDesc, ok := resolveTarget(rule.Right, ind, closes, latest)
		if !ok {
			return notFired(reasonMissingTarget)
		}

		if rule.Condition == GreaterThan && current > target {
			return fired(rule.Direction, fmt.Sprintf("%s (%.2f) > %s", rule.Left, current, targetDesc))
		}
		if rule.Condition == LessThan && current < target {
			return fired(rule.Direction, fmt.Sprintf("%s (%.2f) < %s", rule.Left, current, targetDesc))
		}
		return notFired(reasonNotMet)

	default:
		return notFired(reasonUnknown)
	}
}

// resolveTarget produces the numeric comparison target of a threshold
// rule: a constant directly, a series at the latest index.
func resolveTarget(op Operand, ind Computed, closes []float64, latest int) (value float64, desc string, ok bool) {
	if op.kind == operandConstant {
		return op.value, op.String(), true
	}

	series, ok := resolveSeries(op, ind, closes)
	if !ok || !indicators.Defined(series[latest]) {
		return 0, "", false
	}
	return series[latest], fmt.Sprintf("%s (%.2f)", op, series[latest]), true
}
