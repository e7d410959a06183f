package indicators

// Cross reports the direction of a crossover between two series at a
// given index.
type Cross int

const (
	NoCross Cross = iota
	CrossUp
	CrossDown
)

func (c Cross) String() string {
	switch c {
	case CrossUp:
		return "up"
	case CrossDown:
		return "down"
	default:
		return "none"
	}
}

// Crossover detects a crossover of series a through series b at index i.
//
// CrossUp means a was strictly below b at i-1 and strictly above at i;
// CrossDown is the mirror. Touching or riding along b (equality at either
// index) is not a cross, nor is any comparison involving an undefined
// value or an index without a predecessor.
func Crossover(a, b []float64, i int) Cross {
	if i < 1 || i >= len(a) || i >= len(b) {
		return NoCross
	}

	aPrev, bPrev := a[i-1], b[i-1]
	aCurr, bCurr := a[i], b[i]
	if !Defined(aPrev) || !Defined(bPrev) || !Defined(aCurr) || !Defined(bCurr) {
		return NoCross
	}

	switch {
	case aPrev < bPrev && aCurr > bCurr:
		return CrossUp
	case aPrev > bPrev && aCurr < bCurr:
		return CrossDown
	default:
		return NoCross
	}
}
