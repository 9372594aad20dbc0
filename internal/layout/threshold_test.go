package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkToken(x, y, height float64) Token {
	return Token{X: x, Y: y, TopY: y - height/2, BottomY: y + height/2, Height: height, Width: 10}
}

func TestAdaptiveYThresholdFewTokens(t *testing.T) {
	assert.Equal(t, 10.0, AdaptiveYThreshold(nil))
	assert.Equal(t, 10.0, AdaptiveYThreshold([]Token{mkToken(0, 5, 10)}))
}

func TestAdaptiveYThresholdPercentileOfGaps(t *testing.T) {
	// Gaps 4, 4, 16: 25th percentile (linear interpolation) is 4.
	tokens := []Token{
		mkToken(0, 0, 100),
		mkToken(0, 4, 100),
		mkToken(0, 8, 100),
		mkToken(0, 24, 100),
	}
	assert.InDelta(t, 4.0, AdaptiveYThreshold(tokens), 1e-9)
}

func TestAdaptiveYThresholdBounds(t *testing.T) {
	tests := []struct {
		name    string
		heights float64
		ys      []float64
		want    float64
	}{
		{name: "capped at 15", heights: 60, ys: []float64{0, 40, 80, 120}, want: 15},
		{name: "capped at half mean height", heights: 12, ys: []float64{0, 40, 80, 120}, want: 6},
		{name: "floor of 3 wins over tiny heights", heights: 4, ys: []float64{0, 40, 80}, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tokens []Token
			for _, y := range tt.ys {
				tokens = append(tokens, mkToken(0, y, tt.heights))
			}
			got := AdaptiveYThreshold(tokens)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 3.0)
			assert.LessOrEqual(t, got, 15.0)
		})
	}
}

func TestAdaptiveYThresholdIgnoresZeroGaps(t *testing.T) {
	// Duplicate y values contribute no gap; only the positive differences count.
	tokens := []Token{
		mkToken(0, 10, 100),
		mkToken(50, 10, 100),
		mkToken(0, 18, 100),
		mkToken(0, 26, 100),
	}
	require.InDelta(t, 8.0, AdaptiveYThreshold(tokens), 1e-9)
}
