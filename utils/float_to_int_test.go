// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloatToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{
			name:  "zero",
			input: 0.0,
			want:  0,
		},
		{
			name:  "max positive",
			input: 1.0,
			want:  math.MaxInt16,
		},
		{
			name:  "max negative",
			input: -1.0,
			want:  math.MinInt16,
		},
		{
			name:  "half positive",
			input: 0.5,
			want:  16383, // math.MaxInt16 * 0.5 ≈ 16383.5
		},
		{
			name:  "half negative",
			input: -0.5,
			want:  -16383,
		},
		{
			name:  "quarter positive",
			input: 0.25,
			want:  8191, // math.MaxInt16 * 0.25 ≈ 8191.75
		},
		{
			name:  "small positive",
			input: 0.001,
			want:  32, // math.MaxInt16 * 0.001 ≈ 32.767
		},
		{
			name:  "small negative",
			input: -0.001,
			want:  -32,
		},
		{
			name:  "clamp over max",
			input: 1.5,
			want:  math.MaxInt16, // Should clamp to 1.0
		},
		{
			name:  "clamp over min",
			input: -1.5,
			want:  math.MinInt16, // Should clamp to -1.0
		},
		{
			name:  "clamp way over max",
			input: 100.0,
			want:  math.MaxInt16,
		},
		{
			name:  "clamp way under min",
			input: -100.0,
			want:  math.MinInt16,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FloatToInt16(tt.input)
			// Allow for rounding differences of ±1
			diff := int16(math.Abs(float64(got - tt.want)))

			if diff > 1 {
				t.Errorf("FloatToInt16(%v) = %v, want %v (diff %v)",
					tt.input, got, tt.want, diff)
			}
		})
	}
}

// TestFloatToInt16Range tests full range conversion
func TestFloatToInt16Range(t *testing.T) {
	t.Parallel()

	var result int32

	// Test that values in [-1, 1] produce valid int16 values
	for f := -1.0; f <= 1.0; f += 0.01 {
		result = int32(FloatToInt16(float32(f)))

		// Result should be in valid int16 range (note: math.MinInt16 is valid for int16)
		if result < math.MinInt16 || result > math.MaxInt16 {
			t.Errorf("FloatToInt16(%v) = %v, outside valid range [-32768, 32767]",
				f, result)
		}

		// Result should be proportional to input (using 32768 as multiplier)
		expected := int32(f * 32768.0)
		diff := int16(math.Abs(float64(result - expected)))

		if diff > 1 {
			t.Errorf("FloatToInt16(%v) = %v, want ≈%v (diff %v)",
				f, result, expected, diff)
		}
	}
}

// TestFloatToInt16Symmetry tests that conversion is symmetric
func TestFloatToInt16Symmetry(t *testing.T) {
	t.Parallel()

	testVals := []float32{0.1, 0.25, 0.5, 0.75, 0.9, 0.99, 1.0}

	for _, val := range testVals {
		pos := FloatToInt16(val)
		neg := FloatToInt16(-val)

		// Absolute values should be equal (within rounding)
		if math.Abs(float64(pos+neg)) > 1 {
			t.Errorf("FloatToInt16 not symmetric: +%v=%v, -%v=%v",
				val, pos, val, neg)
		}
	}
}

// TestFloatToInt16Monotonic tests that function is monotonic
func TestFloatToInt16Monotonic(t *testing.T) {
	t.Parallel()

	prev := FloatToInt16(-1.0)

	for f := -0.99; f <= 1.0; f += 0.01 {
		curr := FloatToInt16(float32(f))
		if curr < prev {
			t.Errorf("FloatToInt16 not monotonic: f=%v gives %v, but previous was %v",
				f, curr, prev)
		}
		prev = curr
	}
}

// BenchmarkFloatToInt16 tests performance and allocations
func BenchmarkFloatToInt16(b *testing.B) {
	var result int16
	input := float32(0.5)

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		result = FloatToInt16(input)
	}

	// Prevent compiler optimization
	_ = result
}

// BenchmarkFloatToInt16Realistic simulates converting audio buffer
func BenchmarkFloatToInt16Realistic(b *testing.B) {
	// Simulate converting 1 second of mono audio at 8kHz
	floatSamples := make([]float32, 8000)
	int16Samples := make([]int16, 8000)

	// Fill with realistic audio data
	for i := range floatSamples {
		floatSamples[i] = float32(math.Sin(float64(i) * 0.1))
	}

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		for j := range floatSamples {
			int16Samples[j] = FloatToInt16(floatSamples[j])
		}
	}
}

// BenchmarkFloatToInt16WithClamping tests performance with out-of-range values
func BenchmarkFloatToInt16WithClamping(b *testing.B) {
	var result int16
	inputs := []float32{-2.0, -1.0, 0.0, 1.0, 2.0}

	b.ResetTimer()
	b.ReportAllocs()

	for i := range b.N {
		result = FloatToInt16(inputs[i%len(inputs)])
	}

	_ = result
}

// TestFloatToInt16_ZeroAllocs verifies no heap allocations
func TestFloatToInt16_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	allocs := testing.AllocsPerRun(1000, func() {
		_ = FloatToInt16(0.5)
	})

	if allocs > 0 {
		t.Errorf("FloatToInt16 allocated %v times, want 0", allocs)
	}
}

// TestFloatToInt16_BatchZeroAllocs tests batch conversion allocations
func TestFloatToInt16_BatchZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	floatBuf := make([]float32, 1024)
	int16Buf := make([]int16, 1024)

	allocs := testing.AllocsPerRun(100, func() {
		for i := range floatBuf {
			int16Buf[i] = FloatToInt16(floatBuf[i])
		}
	})

	if allocs > 0 {
		t.Errorf("FloatToInt16 batch conversion allocated %v times, want 0", allocs)
	}
}

func TestFloatToInt16_Float64(t *testing.T) {
	t.Parallel()

	if got := FloatToInt16(0.5); got != 16383 {
		t.Errorf("FloatToInt16(0.5) = %v, want 16383", got)
	}
	if got := FloatToInt16(-3.0); got != -32767 {
		t.Errorf("FloatToInt16(-3.0) = %v, want -32767", got)
	}
	if FloatToInt16(0.25) != FloatToInt16(float32(0.25)) {
		t.Error("float32 and float64 conversions disagree")
	}
}

func TestAppendInt16(t *testing.T) {
	t.Parallel()

	dst := []int16{7}
	got := AppendInt16(dst, []float64{0, 1, -1, 2})
	want := []int16{7, 0, 32767, -32767, 32767}

	if len(got) != len(want) {
		t.Fatalf("AppendInt16 returned %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}

	if out := AppendInt16[float32](nil, nil); len(out) != 0 {
		t.Errorf("AppendInt16(nil, nil) = %v, want empty", out)
	}
}
