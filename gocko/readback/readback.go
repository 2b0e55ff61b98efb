// Package readback implements GPU frame capture, PPM image I/O, and
// pixel-tolerance image comparison for deterministic visual-regression
// testing. Capture uses ebiten's synchronous pixel readback as the one
// blocking GPU round-trip in the pipeline, and models the row-pitch
// alignment a raw GPU readback buffer would need even though ebiten's
// ReadPixels itself already returns tightly packed RGBA.
package readback

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	"go.uber.org/zap"
)

// AlignUp rounds n up to the next multiple of align.
func AlignUp(n, align uint32) uint32 {
	if align == 0 {
		return n
	}
	return (n + align - 1) &^ (align - 1)
}

// ReadbackBuffer models a row-pitch-aligned GPU readback destination:
// width*height RGBA pixels stored with each row padded to a 256-byte
// boundary, matching the alignment real GPU APIs require for
// texture-to-buffer copies.
type ReadbackBuffer struct {
	width, height uint32
	bytesPerRow   uint32
	data          []byte
}

// NewReadbackBuffer allocates a buffer sized for width x height RGBA8
// pixels with 256-byte row alignment.
func NewReadbackBuffer(width, height uint32) *ReadbackBuffer {
	bytesPerRow := AlignUp(width*4, 256)
	return &ReadbackBuffer{
		width:       width,
		height:      height,
		bytesPerRow: bytesPerRow,
		data:        make([]byte, int(bytesPerRow)*int(height)),
	}
}

// Dimensions returns (width, height).
func (b *ReadbackBuffer) Dimensions() (uint32, uint32) {
	return b.width, b.height
}

// Capture reads img's current pixels (a blocking GPU round-trip via
// ebiten.Image.ReadPixels) into the row-padded buffer.
func (b *ReadbackBuffer) Capture(img *ebiten.Image) error {
	tight := make([]byte, b.width*b.height*4)
	img.ReadPixels(tight)

	rowBytes := b.width * 4
	for y := uint32(0); y < b.height; y++ {
		src := tight[y*rowBytes : y*rowBytes+rowBytes]
		dstStart := y * b.bytesPerRow
		copy(b.data[dstStart:dstStart+rowBytes], src)
	}
	return nil
}

// Unpadded strips row padding and returns tightly packed RGBA data.
func (b *ReadbackBuffer) Unpadded() []byte {
	out := make([]byte, 0, b.width*b.height*4)
	rowBytes := b.width * 4
	for y := uint32(0); y < b.height; y++ {
		start := y * b.bytesPerRow
		out = append(out, b.data[start:start+rowBytes]...)
	}
	return out
}

// CapturedFrame is a decoded, in-memory RGBA frame plus its provenance
// metadata, suitable for comparison or serialization.
type CapturedFrame struct {
	Width, Height uint32
	RGBA          []byte
	CaptureID     string
	Metadata      Metadata
}

// Metadata mirrors the reference implementation's screenshot metadata,
// recorded alongside a captured frame for test/log correlation.
type Metadata struct {
	Adapter      string
	Format       string
	Timestamp    string
	CommandCount int
}

// CaptureFrame reads img and packages it with fresh provenance metadata,
// logging the capture under a generated correlation ID.
func CaptureFrame(img *ebiten.Image, meta Metadata, log *zap.Logger) (*CapturedFrame, error) {
	if log == nil {
		log = zap.NewNop()
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	buf := NewReadbackBuffer(uint32(w), uint32(h))
	if err := buf.Capture(img); err != nil {
		return nil, fmt.Errorf("readback: capture failed: %w", err)
	}

	id := uuid.NewString()
	log.Debug("captured frame",
		zap.String("capture_id", id),
		zap.Int("width", w), zap.Int("height", h),
		zap.Int("command_count", meta.CommandCount),
	)

	return &CapturedFrame{
		Width:     uint32(w),
		Height:    uint32(h),
		RGBA:      buf.Unpadded(),
		CaptureID: id,
		Metadata:  meta,
	}, nil
}

// SaveRGBAAsPPM writes width x height RGBA data as a binary PPM (P6),
// dropping the alpha channel.
func SaveRGBAAsPPM(w io.Writer, width, height uint32, rgba []byte) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", width, height); err != nil {
		return err
	}
	for i := 0; i+3 < len(rgba); i += 4 {
		if _, err := bw.Write(rgba[i : i+3]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveBGRAAsPPM writes width x height BGRA data as a binary PPM (P6),
// swapping channel order to RGB and dropping alpha.
func SaveBGRAAsPPM(w io.Writer, width, height uint32, bgra []byte) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", width, height); err != nil {
		return err
	}
	rgb := make([]byte, 3)
	for i := 0; i+3 < len(bgra); i += 4 {
		rgb[0], rgb[1], rgb[2] = bgra[i+2], bgra[i+1], bgra[i]
		if _, err := bw.Write(rgb); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadPPM decodes a binary PPM (P6) image, returning its dimensions and
// RGB pixel data (3 bytes per pixel, no alpha).
func ReadPPM(r io.Reader) (width, height uint32, rgb []byte, err error) {
	br := bufio.NewReader(r)

	magic, err := readToken(br)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("readback: reading PPM magic: %w", err)
	}
	if magic != "P6" {
		return 0, 0, nil, fmt.Errorf("readback: unsupported PPM magic %q", magic)
	}

	wTok, err := readToken(br)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("readback: reading PPM width: %w", err)
	}
	hTok, err := readToken(br)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("readback: reading PPM height: %w", err)
	}
	maxTok, err := readToken(br)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("readback: reading PPM maxval: %w", err)
	}

	w, err := strconv.ParseUint(wTok, 10, 32)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("readback: invalid PPM width %q: %w", wTok, err)
	}
	h, err := strconv.ParseUint(hTok, 10, 32)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("readback: invalid PPM height %q: %w", hTok, err)
	}
	if maxTok != "255" {
		return 0, 0, nil, fmt.Errorf("readback: unsupported PPM maxval %q", maxTok)
	}

	pixels := make([]byte, w*h*3)
	if _, err := io.ReadFull(br, pixels); err != nil {
		return 0, 0, nil, fmt.Errorf("readback: reading PPM pixel data: %w", err)
	}

	return uint32(w), uint32(h), pixels, nil
}

// readToken reads one whitespace-delimited token from a PPM header,
// skipping '#' comment lines.
func readToken(br *bufio.Reader) (string, error) {
	var tok []byte
	inComment := false
	for {
		b, err := br.ReadByte()
		if err != nil {
			if len(tok) > 0 {
				return string(tok), nil
			}
			return "", err
		}
		if inComment {
			if b == '\n' {
				inComment = false
			}
			continue
		}
		if b == '#' && len(tok) == 0 {
			inComment = true
			continue
		}
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			if len(tok) > 0 {
				return string(tok), nil
			}
			continue
		}
		tok = append(tok, b)
	}
}

// Compare counts pixels that differ by more than tolerance on any of
// the R, G, B channels (alpha is ignored), between two RGBA buffers.
// Mismatched lengths are treated as entirely different.
func Compare(expected, actual []byte, tolerance uint8) int {
	if len(expected) != len(actual) {
		if len(expected) > len(actual) {
			return len(expected) / 4
		}
		return len(actual) / 4
	}

	diffCount := 0
	for i := 0; i+3 < len(expected); i += 4 {
		rDiff := absDiff(expected[i], actual[i])
		gDiff := absDiff(expected[i+1], actual[i+1])
		bDiff := absDiff(expected[i+2], actual[i+2])
		if rDiff > tolerance || gDiff > tolerance || bDiff > tolerance {
			diffCount++
		}
	}
	return diffCount
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

// darkenedImage presents a tightly packed RGBA buffer as an image.Image
// with every pixel halved in brightness, so the "within tolerance" base
// layer of a diff image can be composited through x/image/draw instead
// of a hand-rolled per-pixel blit.
type darkenedImage struct {
	pix           []byte
	width, height int
}

func (d *darkenedImage) ColorModel() color.Model { return color.RGBAModel }
func (d *darkenedImage) Bounds() image.Rectangle  { return image.Rect(0, 0, d.width, d.height) }
func (d *darkenedImage) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return color.RGBA{}
	}
	i := (y*d.width + x) * 4
	if i+3 >= len(d.pix) {
		return color.RGBA{}
	}
	return color.RGBA{R: d.pix[i] / 2, G: d.pix[i+1] / 2, B: d.pix[i+2] / 2, A: 255}
}

// DiffImage renders a visualization of the difference between two RGBA
// buffers: pixels that differ beyond tolerance are highlighted in red,
// pixels within tolerance are shown as the actual frame dimmed by half.
// The dimmed base layer is composited with x/image/draw; mismatched
// pixels are then overdrawn in solid red.
func DiffImage(expected, actual []byte, width, height uint32, tolerance uint8) []byte {
	n := len(expected) / 4
	if len(actual)/4 < n {
		n = len(actual) / 4
	}
	w, h := int(width), int(height)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	src := &darkenedImage{pix: actual, width: w, height: h}
	xdraw.Draw(dst, dst.Bounds(), src, image.Point{}, xdraw.Src)

	for i := 0; i < n; i++ {
		base := i * 4
		rDiff := absDiff(expected[base], actual[base])
		gDiff := absDiff(expected[base+1], actual[base+1])
		bDiff := absDiff(expected[base+2], actual[base+2])
		maxDiff := rDiff
		if gDiff > maxDiff {
			maxDiff = gDiff
		}
		if bDiff > maxDiff {
			maxDiff = bDiff
		}
		if maxDiff > tolerance {
			dst.SetRGBA(i%w, i/w, color.RGBA{255, 0, 0, 255})
		}
	}

	out := make([]byte, 0, n*4)
	for i := 0; i < n; i++ {
		c := dst.RGBAAt(i%w, i/w)
		out = append(out, c.R, c.G, c.B, c.A)
	}
	return out
}
