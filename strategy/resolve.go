package strategy

import (
	"math"

	"github.com/eNirmalraj/insight-trading-dashboard/indicators"
)

// SeriesSet holds the output of one indicator computation. Single valued
// indicators fill Main; Bollinger fills the three bands and leaves Main
// nil.
type SeriesSet struct {
	Main   []float64
	Upper  []float64
	Middle []float64
	Lower  []float64
}

// Computed caches indicator series for one evaluation pass, keyed by
// spec so the same indicator is never computed twice.
type Computed map[IndicatorSpec]SeriesSet

// ComputeIndicators evaluates every spec against the close series.
func ComputeIndicators(specs []IndicatorSpec, closes []float64) Computed {
	out := make(Computed, len(specs))
	for _, spec := range specs {
		out[spec] = computeSpec(spec, closes)
	}
	return out
}

func computeSpec(spec IndicatorSpec, closes []float64) SeriesSet {
	switch spec.Kind {
	case SMA:
		return SeriesSet{Main: indicators.SMA(closes, spec.Period)}
	case EMA:
		return SeriesSet{Main: indicators.EMA(closes, spec.Period)}
	case RSI:
		return SeriesSet{Main: indicators.RSI(closes, spec.Period)}
	case Bollinger:
		b := indicators.BollingerBands(closes, spec.Period, spec.StdDev)
		return SeriesSet{Upper: b.Upper, Middle: b.Middle, Lower: b.Lower}
	default:
		// Unknown kinds resolve to a fully undefined series so the
		// rules reading them fail soft instead of crashing the run.
		main := make([]float64, len(closes))
		for i := range main {
			main[i] = math.NaN()
		}
		return SeriesSet{Main: main}
	}
}

// resolveSeries returns the series an operand names, or false when the
// computation is absent or the operand is not a series.
func resolveSeries(op Operand, ind Computed, closes []float64) ([]float64, bool) {
	switch op.kind {
	case operandClose:
		return closes, true
	case operandIndicator:
		set, ok := ind[op.spec]
		if !ok {
			return nil, false
		}
		var s []float64
		switch op.band {
		case BandMain:
			s = set.Main
		case BandUpper:
			s = set.Upper
		case BandMiddle:
			s = set.Middle
		case BandLower:
			s = set.Lower
		}
		if s == nil {
			return nil, false
		}
		return s, true
	default:
		return nil, false
	}
}
