package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuiltinCatalog(t *testing.T) {
	t.Parallel()

	catalog := Builtin()
	assert.Len(t, catalog, 3)

	assert.Equal(t, MACrossoverID, catalog[0].ID)
	assert.Equal(t, "MA Crossover", catalog[0].Name)
	assert.Equal(t, []IndicatorSpec{
		{Kind: EMA, Period: 9},
		{Kind: EMA, Period: 21},
	}, catalog[0].Indicators)
	assert.Len(t, catalog[0].Rules, 2)

	assert.Equal(t, RSIDivergenceID, catalog[1].ID)
	assert.Equal(t, "RSI Divergence", catalog[1].Name)
	assert.Equal(t, []IndicatorSpec{{Kind: RSI, Period: 14}}, catalog[1].Indicators)

	assert.Equal(t, MomentumBreakoutID, catalog[2].ID)
	assert.Equal(t, "Momentum Breakout", catalog[2].Name)
	assert.Equal(t, []IndicatorSpec{{Kind: Bollinger, Period: 20, StdDev: 2}}, catalog[2].Indicators)
}

func TestBuiltinCatalogValidates(t *testing.T) {
	t.Parallel()

	for _, s := range Builtin() {
		assert.NoError(t, s.Validate(), "strategy %s", s.ID)
	}
}

func TestBuiltinCatalogIsolated(t *testing.T) {
	t.Parallel()

	// Each call hands out fresh values, so one caller's edits can not
	// leak into another's catalog.
	a := Builtin()
	a[0].Name = "mutated"
	a[0].Rules[0].Direction = Sell

	b := Builtin()
	assert.Equal(t, "MA Crossover", b[0].Name)
	assert.Equal(t, Buy, b[0].Rules[0].Direction)
}
