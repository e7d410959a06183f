package strategy

// MinHistory is the minimum number of closes an evaluation needs.
// Shorter series are skipped outright: too little warmup data produces
// noise signals, not early signals.
const MinHistory = 50

// Run evaluates one strategy against a close series and returns a
// signal per fired rule, in rule declaration order. A series shorter
// than MinHistory yields nothing. Run is pure; calling it twice with
// the same input returns equal signals each time.
func Run(s Strategy, closes []float64) []Signal {
	if len(closes) < MinHistory {
		return nil
	}

	ind := ComputeIndicators(s.Indicators, closes)

	var signals []Signal
	for _, rule := range s.Rules {
		v := EvaluateRule(rule, ind, closes)
		if !v.Triggered() {
			continue
		}
		dir, _ := v.Direction()
		signals = append(signals, Signal{
			StrategyID:   s.ID,
			StrategyName: s.Name,
			Direction:    dir,
			Reason:       v.Reason(),
		})
	}
	return signals
}

// RunAll evaluates every strategy in the catalog against the same close
// series, concatenating signals in catalog order. Duplicate suppression
// is deliberately not done here; the journal owns that concern.
func RunAll(catalog []Strategy, closes []float64) []Signal {
	var all []Signal
	for _, s := range catalog {
		all = append(all, Run(s, closes)...)
	}
	return all
}
