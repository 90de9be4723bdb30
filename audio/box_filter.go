// SPDX-License-Identifier: EPL-2.0

package audio

import "math"

// BoxFilter downsamples a scalar stream by area-weighted averaging.
//
// Every output sample is the mean of exactly ratio = srcRate/dstRate source
// samples. The ratio does not have to be integral: a source sample that
// straddles two output samples is split between them by weight, so the phase
// of the output never drifts over long streams.
type BoxFilter struct {
	ratio float64

	// counter is the fractional position within the current output sample,
	// always in [0, ratio) between calls.
	counter float64
	// mean is the weighted sum accumulated for the current output sample.
	mean float64
}

// NewBoxFilter returns a filter converting from srcRate to dstRate.
// Both rates must be positive and finite, and srcRate must not be lower than
// dstRate: the box filter has no upsampling policy.
func NewBoxFilter(srcRate, dstRate float64) (*BoxFilter, error) {
	if !validRate(srcRate) || !validRate(dstRate) {
		return nil, ErrInvalidRate
	}

	ratio := srcRate / dstRate
	if ratio < 1 {
		return nil, ErrUpsampling
	}

	return &BoxFilter{ratio: ratio}, nil
}

func validRate(rate float64) bool {
	return rate > 0 && !math.IsInf(rate, 0) && !math.IsNaN(rate)
}

// Ratio is the number of source samples folded into one output sample.
func (f *BoxFilter) Ratio() float64 { return f.ratio }

// Push advances the filter by one source sample. When the sample completes an
// output sample, that value is returned with ok set.
func (f *BoxFilter) Push(value float64) (out float64, ok bool) {
	f.counter += 1.0
	if f.counter < f.ratio {
		f.mean += value
		return 0, false
	}

	// part is the share of this sample that belongs to the next output sample.
	part := f.counter - f.ratio
	f.mean += (1.0 - part) * value
	out = f.mean / f.ratio

	f.counter -= f.ratio
	f.mean = part * value

	return out, true
}

// Flush returns the average of a pending partial accumulation, if at least
// one whole source sample is pending, and resets the filter.
func (f *BoxFilter) Flush() (out float64, ok bool) {
	if f.counter >= 1.0 {
		out, ok = f.mean/f.counter, true
	}

	f.counter = 0
	f.mean = 0

	return out, ok
}
