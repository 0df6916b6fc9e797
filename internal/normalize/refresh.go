// Package normalize converts raw platform readings into the canonical values
// stored in detection records.
package normalize

import "math"

const refreshRateStep = 5

// RefreshRate quantizes a raw refresh rate to a multiple of 5 Hz. A
// remainder of 3 or 4 rounds up, 0 to 2 rounds down. 145 is reported as
// 144. Non-positive input means the rate is unknown and yields 0.
func RefreshRate(raw int32) uint32 {
	if raw <= 0 {
		return 0
	}

	rate := int64(raw)
	remainder := rate % refreshRateStep
	if remainder >= 3 {
		rate += refreshRateStep - remainder
	} else {
		rate -= remainder
	}

	// Every other common panel rate is a multiple of 5
	if rate == 145 {
		rate = 144
	}

	return uint32(rate)
}

// RefreshRateHz rounds a fractional rate such as 59.95 to whole hertz and
// quantizes it with RefreshRate.
func RefreshRateHz(hz float64) uint32 {
	if math.IsNaN(hz) || hz <= 0 {
		return 0
	}

	rounded := math.Round(hz)
	if rounded > math.MaxInt32 {
		rounded = math.MaxInt32
	}

	return RefreshRate(int32(rounded))
}
