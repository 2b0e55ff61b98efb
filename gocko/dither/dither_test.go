package dither

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBayer4x4FirstEntry(t *testing.T) {
	d := Bayer4x4.DitherValue(0, 0)
	assert.InDelta(t, 0.03125, d, 0.0001)
}

func TestBayer4x4Wrapping(t *testing.T) {
	d1 := Bayer4x4.DitherValue(0, 0)
	d2 := Bayer4x4.DitherValue(4, 4)
	assert.InDelta(t, d1, d2, 0.0001)
}

func TestBayer8x8Range(t *testing.T) {
	for y := uint32(0); y < 8; y++ {
		for x := uint32(0); x < 8; x++ {
			d := Bayer8x8.DitherValue(x, y)
			assert.GreaterOrEqual(t, d, float32(0.0078125))
			assert.LessOrEqual(t, d, float32(0.9921875))
		}
	}
}

func TestMatrixSelection(t *testing.T) {
	assert.Equal(t, Bayer4x4, Select(50.0, 1.0))
	assert.Equal(t, Bayer8x8, Select(2000.0, 0.5))
	assert.Equal(t, Bayer8x8Classic, Select(100.0, 1.0))
}

func TestSelectDegenerateInputs(t *testing.T) {
	assert.Equal(t, Bayer8x8, Select(-5, 1.0))
	assert.Equal(t, Bayer8x8, Select(100, 0))
}

func TestQuantizeDither(t *testing.T) {
	assert.Equal(t, uint8(127), QuantizeDither(127.4, 0.5))
	assert.Equal(t, uint8(128), QuantizeDither(127.6, 0.5))
	assert.Equal(t, uint8(0), QuantizeDither(-10.0, 0.5))
	assert.Equal(t, uint8(255), QuantizeDither(300.0, 0.5))
}

func TestShaderValue(t *testing.T) {
	assert.Equal(t, uint32(0), Bayer4x4.ShaderValue())
	assert.Equal(t, uint32(1), Bayer8x8.ShaderValue())
	assert.Equal(t, uint32(2), Bayer8x8Medium.ShaderValue())
	assert.Equal(t, uint32(3), Bayer8x8Classic.ShaderValue())
}
