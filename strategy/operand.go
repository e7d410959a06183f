package strategy

import (
	"fmt"
	"strconv"
)

type operandKind int

const (
	operandClose operandKind = iota
	operandIndicator
	operandConstant
)

// Operand is one side of a rule comparison: the raw close series, an
// indicator series, or a numeric constant. Build values with Close,
// Indicator, IndicatorBand or Constant; the zero value is the close
// series.
type Operand struct {
	kind  operandKind
	spec  IndicatorSpec
	band  Band
	value float64
}

// Close references the raw close price series.
func Close() Operand {
	return Operand{kind: operandClose}
}

// Indicator references the single series of an SMA, EMA or RSI spec.
func Indicator(spec IndicatorSpec) Operand {
	return Operand{kind: operandIndicator, spec: spec, band: BandMain}
}

// IndicatorBand references one band of a Bollinger spec.
func IndicatorBand(spec IndicatorSpec, band Band) Operand {
	return Operand{kind: operandIndicator, spec: spec, band: band}
}

// Constant is a fixed comparison target such as an RSI threshold.
func Constant(v float64) Operand {
	return Operand{kind: operandConstant, value: v}
}

// isSeries reports whether the operand resolves to a series rather than
// a single number.
func (o Operand) isSeries() bool {
	return o.kind != operandConstant
}

// String renders the operand the way signal reasons spell it: "CLOSE",
// "EMA_9", "BB_upper", or the bare constant value.
func (o Operand) String() string {
	switch o.kind {
	case operandClose:
		return "CLOSE"
	case operandConstant:
		return strconv.FormatFloat(o.value, 'f', -1, 64)
	default:
		if o.band == BandMain {
			return o.spec.Key()
		}
		return "BB_" + string(o.band)
	}
}

func (o Operand) validate(declared map[IndicatorSpec]bool) error {
	if o.kind != operandIndicator {
		return nil
	}
	if !declared[o.spec] {
		return fmt.Errorf("operand %s references an undeclared indicator", o)
	}
	if o.spec.Kind == Bollinger && o.band == BandMain {
		return fmt.Errorf("operand %s must name a band of %s", o, o.spec.Key())
	}
	if o.spec.Kind != Bollinger && o.band != BandMain {
		return fmt.Errorf("operand %s: %s has no bands", o, o.spec.Key())
	}
	return nil
}
