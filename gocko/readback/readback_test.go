package readback

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignUp(t *testing.T) {
	assert.Equal(t, uint32(256), AlignUp(4*1, 256))
	assert.Equal(t, uint32(256), AlignUp(256, 256))
	assert.Equal(t, uint32(512), AlignUp(257, 256))
	assert.Equal(t, uint32(0), AlignUp(0, 256))
}

func TestReadbackBufferDimensions(t *testing.T) {
	buf := NewReadbackBuffer(10, 4)
	w, h := buf.Dimensions()
	assert.Equal(t, uint32(10), w)
	assert.Equal(t, uint32(4), h)
}

func TestCompareIdenticalImages(t *testing.T) {
	img := []byte{255, 0, 0, 255, 0, 255, 0, 255}
	assert.Equal(t, 0, Compare(img, img, 0))
}

func TestCompareDifferentImages(t *testing.T) {
	img1 := []byte{255, 0, 0, 255, 0, 255, 0, 255}
	img2 := []byte{0, 0, 0, 255, 0, 0, 0, 255}
	assert.Greater(t, Compare(img1, img2, 0), 0)
}

func TestCompareWithinTolerance(t *testing.T) {
	img1 := []byte{100, 100, 100, 255}
	img2 := []byte{105, 105, 105, 255}
	assert.Equal(t, 0, Compare(img1, img2, 10))
}

func TestCompareMismatchedLength(t *testing.T) {
	img1 := []byte{100, 100, 100, 255}
	img2 := []byte{100, 100, 100, 255, 0, 0, 0, 255}
	assert.Equal(t, 2, Compare(img1, img2, 0))
}

func TestDiffImageHighlightsMismatch(t *testing.T) {
	expected := []byte{0, 0, 0, 255}
	actual := []byte{200, 0, 0, 255}
	diff := DiffImage(expected, actual, 1, 1, 10)
	assert.Equal(t, []byte{255, 0, 0, 255}, diff)
}

func TestDiffImageDimsMatch(t *testing.T) {
	expected := []byte{100, 100, 100, 255}
	actual := []byte{100, 100, 100, 255}
	diff := DiffImage(expected, actual, 1, 1, 10)
	assert.Equal(t, []byte{50, 50, 50, 255}, diff)
}

func TestPPMRoundTrip(t *testing.T) {
	rgba := []byte{
		10, 20, 30, 255, 40, 50, 60, 255,
		70, 80, 90, 255, 100, 110, 120, 255,
	}
	var buf bytes.Buffer
	require.NoError(t, SaveRGBAAsPPM(&buf, 2, 2, rgba))

	w, h, rgb, err := ReadPPM(&buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), w)
	assert.Equal(t, uint32(2), h)
	assert.Equal(t, []byte{10, 20, 30, 40, 50, 60, 70, 80, 90, 100, 110, 120}, rgb)
}

func TestSaveBGRAAsPPM(t *testing.T) {
	bgra := []byte{30, 20, 10, 255}
	var buf bytes.Buffer
	require.NoError(t, SaveBGRAAsPPM(&buf, 1, 1, bgra))

	_, _, rgb, err := ReadPPM(&buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{10, 20, 30}, rgb)
}
