package indicators

import "math"

// Bands holds the three Bollinger band series, index aligned with the
// input data.
type Bands struct {
	Upper  []float64
	Middle []float64
	Lower  []float64
}

// BollingerBands calculates Bollinger Bands with the given period and
// standard deviation multiplier.
//
// The middle band is the SMA; upper and lower sit stdDev population
// standard deviations above and below it. All three bands are undefined
// wherever the middle band is.
func BollingerBands(data []float64, period int, stdDev float64) Bands {
	middle := SMA(data, period)
	upper := undefined(len(data))
	lower := undefined(len(data))

	for i := range data {
		if !Defined(middle[i]) {
			continue
		}
		variance := 0.0
		for j := i - period + 1; j <= i; j++ {
			d := data[j] - middle[i]
			variance += d * d
		}
		variance /= float64(period)
		sd := math.Sqrt(variance)

		upper[i] = middle[i] + stdDev*sd
		lower[i] = middle[i] - stdDev*sd
	}

	return Bands{Upper: upper, Middle: middle, Lower: lower}
}
