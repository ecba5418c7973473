package frameclock

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		seconds float64
		rate    float64
		want    int
	}{
		{"zero time", 0, 30, 0},
		{"first frame boundary", 1.0 / 30.0, 30, 1},
		{"mid frame", 0.5, 30, 15},
		{"one second", 1.0, 30, 30},
		{"fractional rate", 2.0, 29.97, 59},
		{"60fps footage", 0.5, 60, 30},
		{"negative time clamps", -1.0, 30, 0},
		{"non-positive rate clamps", 5.0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Index(tt.seconds, tt.rate))
		})
	}
}

func TestIndex_Monotonic(t *testing.T) {
	t.Parallel()

	// Frame index must never decrease as playback advances.
	for _, rate := range []float64{24, 29.97, 30, 60} {
		prev := 0
		for ts := 0.0; ts < 10.0; ts += 0.013 {
			idx := Index(ts, rate)
			assert.GreaterOrEqual(t, idx, prev, "rate %v ts %v", rate, ts)
			assert.Equal(t, int(math.Floor(ts*rate)), idx)
			prev = idx
		}
	}
}

func TestSeconds_RoundTrip(t *testing.T) {
	t.Parallel()

	// Seeking to a result frame and re-deriving the index lands on the
	// same frame.
	for _, frame := range []int{0, 1, 100, 203, 5000} {
		sec := Seconds(frame, 29.97)
		assert.Equal(t, frame, Index(sec+1e-9, 29.97))
	}
}

func TestRateOrDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 24.0, RateOrDefault(24))
	assert.Equal(t, DefaultFrameRate, RateOrDefault(0))
	assert.Equal(t, DefaultFrameRate, RateOrDefault(-5))
	assert.Equal(t, DefaultFrameRate, RateOrDefault(math.NaN()))
	assert.Equal(t, DefaultFrameRate, RateOrDefault(math.Inf(1)))
}
