package indicators

import "fmt"

// Streaming computes a single indicator value one price at a time. It is
// deterministic and safe to drive from a live quote feed.
type Streaming interface {
	// Name returns a stable identifier like "EMA(20)".
	Name() string

	// Warmup returns how many updates are needed before Ready can be true.
	Warmup() int

	// Reset clears all internal state.
	Reset()

	// Update consumes the next price.
	Update(price float64)

	// Ready reports whether Value is meaningful (warmup completed).
	Ready() bool

	// Value returns the current indicator value. Callers should always
	// check Ready first; before that it returns 0.
	Value() float64
}

// SimpleMA is a streaming Simple Moving Average indicator.
type SimpleMA struct {
	period int
	prices []float64
}

// NewMA creates a streaming Simple Moving Average with the given period.
func NewMA(period int) *SimpleMA {
	return &SimpleMA{
		period: period,
		prices: make([]float64, 0, period),
	}
}

func (m *SimpleMA) Name() string {
	return fmt.Sprintf("MA(%d)", m.period)
}

func (m *SimpleMA) Warmup() int {
	return m.period
}

func (m *SimpleMA) Reset() {
	m.prices = m.prices[:0]
}

func (m *SimpleMA) Update(price float64) {
	m.prices = append(m.prices, price)
	// Keep only the last 'period' prices
	if len(m.prices) > m.period {
		m.prices = m.prices[1:]
	}
}

func (m *SimpleMA) Ready() bool {
	return len(m.prices) >= m.period
}

func (m *SimpleMA) Value() float64 {
	if !m.Ready() {
		return 0
	}

	sum := 0.0
	for _, p := range m.prices {
		sum += p
	}
	return sum / float64(len(m.prices))
}

// ExponentialMA is a streaming Exponential Moving Average indicator.
type ExponentialMA struct {
	period     int
	multiplier float64
	ema        float64
	count      int
	warmupSum  float64
}

// NewEMA creates a streaming Exponential Moving Average with the given
// period. Its warmed-up values match the batch EMA fed the same prices.
func NewEMA(period int) *ExponentialMA {
	return &ExponentialMA{
		period:     period,
		multiplier: 2.0 / float64(period+1),
	}
}

func (e *ExponentialMA) Name() string {
	return fmt.Sprintf("EMA(%d)", e.period)
}

func (e *ExponentialMA) Warmup() int {
	return e.period
}

func (e *ExponentialMA) Reset() {
	e.ema = 0
	e.count = 0
	e.warmupSum = 0
}

func (e *ExponentialMA) Update(price float64) {
	if e.count < e.period {
		// During warmup, accumulate sum for the initial SMA seed
		e.warmupSum += price
		e.count++
		if e.count == e.period {
			e.ema = e.warmupSum / float64(e.period)
		}
	} else {
		e.ema = (price-e.ema)*e.multiplier + e.ema
	}
}

func (e *ExponentialMA) Ready() bool {
	return e.count >= e.period
}

func (e *ExponentialMA) Value() float64 {
	if !e.Ready() {
		return 0
	}
	return e.ema
}
