package indicators

// SMA calculates the Simple Moving Average series for the given period.
//
// The first period-1 entries are undefined. A period that is not positive
// or exceeds the data length yields a fully undefined series.
func SMA(data []float64, period int) []float64 {
	out := undefined(len(data))
	if period <= 0 || period > len(data) {
		return out
	}

	sum := 0.0
	for i, v := range data {
		sum += v
		if i >= period {
			sum -= data[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// EMA calculates the Exponential Moving Average series for the given period.
//
// The series is seeded with the SMA of the first period values at index
// period-1 and follows the standard recurrence from there with smoothing
// factor 2/(period+1). Guards match SMA.
func EMA(data []float64, period int) []float64 {
	out := undefined(len(data))
	if period <= 0 || period > len(data) {
		return out
	}

	multiplier := 2.0 / float64(period+1)

	// Start with SMA for the first value.
	sma := 0.0
	for i := 0; i < period; i++ {
		sma += data[i]
	}
	ema := sma / float64(period)
	out[period-1] = ema

	for i := period; i < len(data); i++ {
		ema = (data[i]-ema)*multiplier + ema
		out[i] = ema
	}
	return out
}
