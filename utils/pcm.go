// SPDX-License-Identifier: EPL-2.0

package utils

const (
	int16Scale   = 32767.0
	int16Divisor = 32768.0
)

// Float32ToInt16 clamps x to [-1,1] and scales it to a signed 16-bit sample.
func Float32ToInt16(x float32) int16 {
	switch {
	case x > 1:
		x = 1
	case x < -1:
		x = -1
	}

	return int16(x * int16Scale)
}

// Int16ToFloat32 maps a signed 16-bit sample into [-1,1).
func Int16ToFloat32(s int16) float32 {
	return float32(s) / int16Divisor
}

// FloatsToPCM16 converts src into dst and returns the number of samples written,
// which is the shorter of the two lengths.
func FloatsToPCM16(dst []int16, src []float32) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = Float32ToInt16(src[i])
	}
	return n
}

// IntToFloat32 normalizes a signed integer sample of the given bit depth into [-1,1).
func IntToFloat32(s int, bitDepth int) float32 {
	if bitDepth <= 0 || bitDepth > 32 {
		return 0
	}
	return float32(float64(s) / float64(int64(1)<<(bitDepth-1)))
}
