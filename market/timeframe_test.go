package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTimeframe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Timeframe
	}{
		{"H1", H1},
		{"h4", H4},
		{" d1 ", D1},
		{"m30", M30},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseTimeframe(tt.in)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTimeframeUnknown(t *testing.T) {
	t.Parallel()

	_, err := ParseTimeframe("H7")
	assert.Error(t, err)
}

func TestTimeframeDuration(t *testing.T) {
	t.Parallel()

	assert.Equal(t, time.Hour, H1.Duration())
	assert.Equal(t, 4*time.Hour, H4.Duration())
	assert.Equal(t, 24*time.Hour, D1.Duration())
}
