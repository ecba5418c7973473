package frameclock

import "math"

// DefaultFrameRate is used when the container reports no usable rate.
const DefaultFrameRate = 30.0

// Index maps a playback timestamp to a discrete frame index:
// floor(seconds * rate). Negative timestamps and non-positive rates
// clamp to frame 0; they occur during startup races, not steady state.
func Index(seconds, rate float64) int {
	if seconds <= 0 || rate <= 0 {
		return 0
	}
	return int(math.Floor(seconds * rate))
}

// Seconds is the inverse mapping used for seeking: the playback time of
// a frame index under the session's discovered rate.
func Seconds(frameIdx int, rate float64) float64 {
	if frameIdx <= 0 {
		return 0
	}
	if rate <= 0 {
		rate = DefaultFrameRate
	}
	return float64(frameIdx) / rate
}

// RateOrDefault normalizes a discovered frame rate. Zero, negative and
// NaN rates fall back to DefaultFrameRate; the result is the single
// rate used for both metadata indexing and detection windowing within
// one session.
func RateOrDefault(rate float64) float64 {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return DefaultFrameRate
	}
	return rate
}
