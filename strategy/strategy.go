// Package strategy evaluates rule based trading strategies over close
// price series and emits directional signals.
//
// A Strategy declares the indicators it needs and a list of rules that
// read them. Evaluation is pure: indicators are computed fresh per run,
// rules are checked at the latest bar only, and the same closes always
// produce the same signals. Persistence and scheduling live elsewhere.
package strategy

import "fmt"

// Direction is the side of a trade signal.
type Direction string

const (
	Buy  Direction = "BUY"
	Sell Direction = "SELL"
)

// IndicatorKind names a supported indicator family.
type IndicatorKind string

const (
	SMA       IndicatorKind = "SMA"
	EMA       IndicatorKind = "EMA"
	RSI       IndicatorKind = "RSI"
	Bollinger IndicatorKind = "BOLLINGER_BANDS"
)

// IndicatorSpec identifies one indicator computation a strategy needs.
// Specs are comparable and used directly as computation cache keys.
// StdDev only applies to Bollinger and stays zero elsewhere.
type IndicatorSpec struct {
	Kind   IndicatorKind
	Period int
	StdDev float64
}

// Key renders the spec in the classic display form used in signal
// reasons, e.g. "EMA_9" or "BOLLINGER_BANDS_20".
func (s IndicatorSpec) Key() string {
	return fmt.Sprintf("%s_%d", s.Kind, s.Period)
}

// Band selects one series of a multi band indicator. BandMain is the
// single series of SMA, EMA and RSI.
type Band string

const (
	BandMain   Band = "main"
	BandUpper  Band = "upper"
	BandMiddle Band = "middle"
	BandLower  Band = "lower"
)

// Condition is the comparison a rule applies to its operands.
type Condition string

const (
	CrossOver   Condition = "crossover"
	CrossUnder  Condition = "crossunder"
	GreaterThan Condition = "greater_than"
	LessThan    Condition = "less_than"
)

// Rule triggers a signal in the given direction when its condition holds
// at the latest bar.
type Rule struct {
	Condition Condition
	Left      Operand
	Right     Operand
	Direction Direction
}

// Strategy couples the indicators to compute with the rules that read
// them. Instances are plain data; Validate catches definitions whose
// rules reference indicators they never declared.
type Strategy struct {
	ID         string
	Name       string
	Indicators []IndicatorSpec
	Rules      []Rule
}

// Signal is one fired rule, stamped with its strategy identity.
type Signal struct {
	StrategyID   string
	StrategyName string
	Direction    Direction
	Reason       string
}

// Validate checks that the definition is internally consistent: known
// conditions and directions, positive periods, and every indicator
// operand served by a declared spec. A failure is a defect in the
// strategy definition, not a data problem.
func (s Strategy) Validate() error {
	declared := make(map[IndicatorSpec]bool, len(s.Indicators))
	for _, spec := range s.Indicators {
		switch spec.Kind {
		case SMA, EMA, RSI, Bollinger:
		default:
			return fmt.Errorf("strategy %s: unknown indicator kind %q", s.ID, spec.Kind)
		}
		if spec.Period <= 0 {
			return fmt.Errorf("strategy %s: indicator %s has non-positive period", s.ID, spec.Key())
		}
		declared[spec] = true
	}

	for i, r := range s.Rules {
		if err := validateRule(r, declared); err != nil {
			return fmt.Errorf("strategy %s: rule %d: %w", s.ID, i, err)
		}
	}
	return nil
}

func validateRule(r Rule, declared map[IndicatorSpec]bool) error {
	switch r.Direction {
	case Buy, Sell:
	default:
		return fmt.Errorf("unknown direction %q", r.Direction)
	}

	if err := r.Left.validate(declared); err != nil {
		return err
	}
	if err := r.Right.validate(declared); err != nil {
		return err
	}

	switch r.Condition {
	case CrossOver, CrossUnder:
		// Crossing needs two real series; a constant never crosses.
		if !r.Left.isSeries() || !r.Right.isSeries() {
			return fmt.Errorf("%s requires series operands", r.Condition)
		}
	case GreaterThan, LessThan:
		if !r.Left.isSeries() {
			return fmt.Errorf("%s requires a series as first operand", r.Condition)
		}
	default:
		return fmt.Errorf("unknown condition %q", r.Condition)
	}
	return nil
}
