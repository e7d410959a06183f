package indicators

// RSI calculates the Relative Strength Index series using Wilder's
// smoothing.
//
// The first period entries are undefined: one is lost to the price delta
// and period more to the initial averages. A period that is not positive
// or leaves no deltas beyond the initial window (period >= len(closes))
// yields a fully undefined series. Defined values sit in [0, 100]; a
// window with no losses reads 100.
func RSI(closes []float64, period int) []float64 {
	out := undefined(len(closes))
	if period <= 0 || period >= len(closes) {
		return out
	}

	// Split each close-to-close delta into gain and loss magnitudes.
	gains := make([]float64, len(closes)-1)
	losses := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i-1] = delta
		} else {
			losses[i-1] = -delta
		}
	}

	var avgGain, avgLoss float64
	for i := 0; i < period; i++ {
		avgGain += gains[i]
		avgLoss += losses[i]
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period; i < len(closes); i++ {
		if i > period {
			avgGain = (avgGain*float64(period-1) + gains[i-1]) / float64(period)
			avgLoss = (avgLoss*float64(period-1) + losses[i-1]) / float64(period)
		}
		if avgLoss == 0 {
			out[i] = 100
		} else {
			rs := avgGain / avgLoss
			out[i] = 100 - 100/(1+rs)
		}
	}
	return out
}
