// Package dither implements Chrome/Skia-compatible ordered dithering for
// gradient rendering. It reduces banding when a smooth gradient is
// quantized to 8-bit display channels by adding a small, position-keyed
// offset from a Bayer matrix before truncation.
package dither

// Matrix selects one of the four Bayer ordered-dither patterns.
type Matrix int

const (
	// Bayer4x4 is used for small gradients (length <= 64px).
	Bayer4x4 Matrix = iota
	// Bayer8x8 is used for very gentle ramps (>= 4 px per 8-bit step,
	// i.e. >= 1024 px across a full 0-255 ramp).
	Bayer8x8
	// Bayer8x8Medium is used for moderate ramps (>= 2 px per step).
	Bayer8x8Medium
	// Bayer8x8Classic is used for steep ramps (< 2 px per step).
	Bayer8x8Classic
)

// bayer4x4 holds values 0-15. dither = (m+0.5)/16.
var bayer4x4 = [16]uint8{
	0, 12, 3, 15,
	8, 4, 11, 7,
	2, 14, 1, 13,
	10, 6, 9, 5,
}

// bayer8x8XY is the gentlest 8x8 pattern (>= 4 px/step).
var bayer8x8XY = [64]uint8{
	15, 48, 0, 60, 12, 51, 3, 63,
	44, 19, 35, 31, 47, 16, 32, 28,
	7, 56, 8, 52, 4, 59, 11, 55,
	36, 27, 43, 23, 39, 24, 40, 20,
	13, 50, 2, 62, 14, 49, 1, 61,
	46, 17, 33, 29, 45, 18, 34, 30,
	5, 58, 10, 54, 6, 57, 9, 53,
	38, 25, 41, 21, 37, 26, 42, 22,
}

// bayer8x8MediumXY is used for moderate ramps (>= 2, < 4 px/step).
var bayer8x8MediumXY = [64]uint8{
	12, 48, 3, 60, 15, 51, 0, 63,
	32, 28, 44, 19, 35, 31, 47, 16,
	4, 56, 11, 52, 7, 59, 8, 55,
	40, 20, 36, 27, 43, 23, 39, 24,
	14, 50, 1, 62, 13, 49, 2, 61,
	34, 30, 46, 17, 33, 29, 45, 18,
	6, 58, 9, 54, 5, 57, 10, 53,
	42, 22, 38, 25, 41, 21, 37, 26,
}

// bayer8x8ClassicXY is the standard Bayer 8x8 pattern, used for steep
// ramps (< 2 px/step).
var bayer8x8ClassicXY = [64]uint8{
	0, 48, 12, 60, 3, 51, 15, 63,
	32, 16, 44, 28, 35, 19, 47, 31,
	8, 56, 4, 52, 11, 59, 7, 55,
	40, 24, 36, 20, 43, 27, 39, 23,
	2, 50, 14, 62, 1, 49, 13, 61,
	34, 18, 46, 30, 33, 17, 45, 29,
	10, 58, 6, 54, 9, 57, 5, 53,
	42, 26, 38, 22, 41, 25, 37, 21,
}

// Select picks the dither matrix for a gradient of the given length (in
// device pixels) and max per-channel color delta (0.0-1.0) across its
// stops, mirroring Chrome/Skia's selection heuristic.
func Select(gradientLength, maxColorDelta float32) Matrix {
	if gradientLength != gradientLength || gradientLength <= 0 || isInf(gradientLength) {
		return Bayer8x8
	}

	delta255 := maxColorDelta * 255.0
	if delta255 <= 0.0001 {
		return Bayer8x8
	}

	if gradientLength <= 64.0 {
		return Bayer4x4
	}

	pixelsPerStep := gradientLength / delta255
	switch {
	case pixelsPerStep >= 4.0:
		return Bayer8x8
	case pixelsPerStep >= 2.0:
		return Bayer8x8Medium
	default:
		return Bayer8x8Classic
	}
}

func isInf(f float32) bool {
	return f > 3.4e38 || f < -3.4e38
}

// DitherValue returns the offset for pixel (x, y), to be added to each
// color channel in 0-255 space before truncation. Range is
// [0.03125, 0.96875] for Bayer4x4 and [0.0078125, 0.9921875] for the 8x8
// variants.
func (m Matrix) DitherValue(x, y uint32) float32 {
	switch m {
	case Bayer4x4:
		idx := (y&3)*4 + (x & 3)
		return (float32(bayer4x4[idx]) + 0.5) / 16.0
	case Bayer8x8:
		idx := (y&7)*8 + (x & 7)
		return (float32(bayer8x8XY[idx]) + 0.5) / 64.0
	case Bayer8x8Medium:
		idx := (y&7)*8 + (x & 7)
		return (float32(bayer8x8MediumXY[idx]) + 0.5) / 64.0
	case Bayer8x8Classic:
		idx := (y&7)*8 + (x & 7)
		return (float32(bayer8x8ClassicXY[idx]) + 0.5) / 64.0
	default:
		return 0
	}
}

// ShaderValue returns a stable small-integer encoding of the matrix,
// intended for a future GPU shader uniform.
func (m Matrix) ShaderValue() uint32 {
	return uint32(m)
}

// QuantizeDither quantizes a floating-point color channel value (0-255
// range) to uint8 with ordered dithering applied, matching Chrome/Skia's
// quantize_dither.
func QuantizeDither(value, dither float32) uint8 {
	v := int32(value + dither)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
