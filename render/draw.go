// Package render provides drawing and rendering functions
package render

import (
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"gockobrowser/gocko/dither"
)

// FontSource holds the loaded font
var FontSource *text.GoTextFaceSource

// SetFontSource sets the font source for text rendering
func SetFontSource(src *text.GoTextFaceSource) {
	FontSource = src
}

// DrawRoundedRect draws a filled rectangle
func DrawRoundedRect(screen *ebiten.Image, x, y, w, h, radius float32, clr color.Color) {
	vector.DrawFilledRect(screen, x, y, w, h, clr, false)
}

// DrawText draws text at the specified position
func DrawText(screen *ebiten.Image, txt string, x, y float64, size float64, clr color.Color) {
	if FontSource == nil {
		return
	}
	face := &text.GoTextFace{
		Source: FontSource,
		Size:   size,
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, txt, face, op)
}

// DrawTextCentered draws text centered at the specified position
func DrawTextCentered(screen *ebiten.Image, txt string, x, y float64, size float64, clr color.Color) {
	if FontSource == nil {
		return
	}
	face := &text.GoTextFace{
		Source: FontSource,
		Size:   size,
	}
	// Measure text width for centering
	w, _ := text.Measure(txt, face, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate(x-w/2, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, txt, face, op)
}

// MeasureText returns the width of text at a given font size
func MeasureText(txt string, size float64) float64 {
	if FontSource == nil {
		return float64(len(txt)) * size * 0.6 // Fallback
	}
	face := &text.GoTextFace{
		Source: FontSource,
		Size:   size,
	}
	w, _ := text.Measure(txt, face, 0)
	return w
}

// ======================================================================================
// IMAGE CACHE
// ======================================================================================

// ImageCache stores loaded images
type ImageCache struct {
	images  map[string]*ebiten.Image
	loading map[string]bool
	failed  map[string]bool
	mutex   sync.RWMutex
}

// Cache is the global image cache
var Cache = &ImageCache{
	images:  make(map[string]*ebiten.Image),
	loading: make(map[string]bool),
	failed:  make(map[string]bool),
}

// Get returns a cached image and its loading/failed status
func (c *ImageCache) Get(imgURL string) (*ebiten.Image, bool, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	if img, ok := c.images[imgURL]; ok {
		return img, true, false
	}
	if c.failed[imgURL] {
		return nil, false, true
	}
	return nil, c.loading[imgURL], false
}

// StartLoading marks an image as loading
func (c *ImageCache) StartLoading(imgURL string) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.loading[imgURL] || c.images[imgURL] != nil || c.failed[imgURL] {
		return false
	}
	c.loading[imgURL] = true
	return true
}

// SetImage stores a loaded image in the cache
func (c *ImageCache) SetImage(imgURL string, img *ebiten.Image) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.images[imgURL] = img
	delete(c.loading, imgURL)
}

// SetFailed marks an image as failed to load
func (c *ImageCache) SetFailed(imgURL string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.failed[imgURL] = true
	delete(c.loading, imgURL)
}

// CurrentBaseURL tracks the current page URL for relative image resolution
var CurrentBaseURL string

// LoadImageAsync loads an image asynchronously
func LoadImageAsync(imgURL string, baseURL string) {
	if !Cache.StartLoading(imgURL) {
		return
	}

	go func() {
		// Resolve relative URLs
		fullURL := imgURL
		if !strings.HasPrefix(imgURL, "http") && baseURL != "" {
			if base, err := url.Parse(baseURL); err == nil {
				if ref, err := url.Parse(imgURL); err == nil {
					fullURL = base.ResolveReference(ref).String()
				}
			}
		}

		resp, err := http.Get(fullURL)
		if err != nil {
			Cache.SetFailed(imgURL)
			return
		}
		defer resp.Body.Close()

		img, _, err := image.Decode(resp.Body)
		if err != nil {
			Cache.SetFailed(imgURL)
			return
		}

		ebitenImg := ebiten.NewImageFromImage(img)
		Cache.SetImage(imgURL, ebitenImg)
	}()
}

// ======================================================================================
// GRADIENT RENDERING
// ======================================================================================

// GradientStop for rendering
type GradientStop struct {
	R, G, B, A float64
	Position   float64
}

// DrawLinearGradient draws a linear gradient on the screen
func DrawLinearGradient(screen *ebiten.Image, x, y, w, h float32, angle float64, stops []GradientStop) {
	if len(stops) < 2 {
		return
	}

	// Create a temporary image for the gradient
	gradImg := ebiten.NewImage(int(w), int(h))

	// For simplicity, we'll render horizontal or vertical gradients
	// Convert angle to radians and determine direction
	// 0deg = to top, 90deg = to right, 180deg = to bottom, 270deg = to left

	gradientLength := w
	if angle == 0 || angle == 180 || angle == 360 {
		gradientLength = h
	}
	matrix := dither.Select(gradientLength, maxChannelDelta(stops))

	for py := 0; py < int(h); py++ {
		for px := 0; px < int(w); px++ {
			// Calculate position along gradient axis (0.0 to 1.0)
			var t float64
			switch {
			case angle == 0 || angle == 360:
				// To top
				t = 1.0 - float64(py)/float64(h)
			case angle == 90:
				// To right
				t = float64(px) / float64(w)
			case angle == 180:
				// To bottom
				t = float64(py) / float64(h)
			case angle == 270:
				// To left
				t = 1.0 - float64(px)/float64(w)
			case angle == 135:
				// To bottom-right (diagonal)
				t = (float64(px)/float64(w) + float64(py)/float64(h)) / 2.0
			case angle == 315:
				// To top-left (diagonal)
				t = 1.0 - (float64(px)/float64(w)+float64(py)/float64(h))/2.0
			default:
				// Default: treat as to bottom
				t = float64(py) / float64(h)
			}

			// Interpolate color, then quantize each channel with ordered
			// dithering keyed on the pixel position to avoid banding.
			r, g, b, a := interpolateColorF(stops, t)
			d := matrix.DitherValue(uint32(px), uint32(py))
			c := color.RGBA{
				R: dither.QuantizeDither(r, d),
				G: dither.QuantizeDither(g, d),
				B: dither.QuantizeDither(b, d),
				A: dither.QuantizeDither(a, d),
			}
			gradImg.Set(px, py, c)
		}
	}

	// Draw the gradient image onto the screen
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(gradImg, op)
}

// interpolateColorF finds the channel values (0-255 range, unrounded) for
// position t (0.0 to 1.0). Keeping these as floats lets the caller apply
// dithering before truncation instead of losing sub-integer precision here.
func interpolateColorF(stops []GradientStop, t float64) (r, g, b, a float32) {
	if t <= stops[0].Position {
		s := stops[0]
		return float32(s.R), float32(s.G), float32(s.B), float32(s.A)
	}
	if t >= stops[len(stops)-1].Position {
		last := stops[len(stops)-1]
		return float32(last.R), float32(last.G), float32(last.B), float32(last.A)
	}

	// Find the two stops we're between
	for i := 0; i < len(stops)-1; i++ {
		if t >= stops[i].Position && t <= stops[i+1].Position {
			// Interpolate between stops[i] and stops[i+1]
			range_ := stops[i+1].Position - stops[i].Position
			if range_ == 0 {
				range_ = 0.001
			}
			localT := (t - stops[i].Position) / range_

			return float32(stops[i].R + (stops[i+1].R-stops[i].R)*localT),
				float32(stops[i].G + (stops[i+1].G-stops[i].G)*localT),
				float32(stops[i].B + (stops[i+1].B-stops[i].B)*localT),
				float32(stops[i].A + (stops[i+1].A-stops[i].A)*localT)
		}
	}

	return 0, 0, 0, 255
}

// maxChannelDelta returns the largest per-channel difference (0.0-1.0)
// between adjacent stops, used to pick a dither matrix.
func maxChannelDelta(stops []GradientStop) float32 {
	var max float64
	for i := 0; i < len(stops)-1; i++ {
		for _, d := range []float64{
			stops[i+1].R - stops[i].R,
			stops[i+1].G - stops[i].G,
			stops[i+1].B - stops[i].B,
			stops[i+1].A - stops[i].A,
		} {
			if d < 0 {
				d = -d
			}
			if d > max {
				max = d
			}
		}
	}
	return float32(max / 255.0)
}
