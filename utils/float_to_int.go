// SPDX-License-Identifier: EPL-2.0

package utils

// Float is any floating point sample type.
type Float interface {
	~float32 | ~float64
}

// FloatToInt16 clamps x to [-1, 1] and scales it to 16-bit PCM.
func FloatToInt16[F Float](x F) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// 32767 keeps +1 from overflowing
	return int16(x * 32767.0)
}

// AppendInt16 converts src with FloatToInt16 and appends the result to dst.
func AppendInt16[F Float](dst []int16, src []F) []int16 {
	dst = growInt16(dst, len(src))
	for _, x := range src {
		dst = append(dst, FloatToInt16(x))
	}
	return dst
}

func growInt16(s []int16, n int) []int16 {
	if cap(s)-len(s) >= n {
		return s
	}
	grown := make([]int16, len(s), len(s)+max(n, cap(s)))
	copy(grown, s)
	return grown
}
