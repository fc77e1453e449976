package renderer

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/Faultbox/midgard-pano/pkg/math"
)

// SoftwareCanvas renders into an in-memory RGBA image.
// Logical and device pixels are the same.
type SoftwareCanvas struct {
	dst *image.RGBA
	src *image.RGBA

	Background color.RGBA
	Kernel     draw.Transformer
}

// NewSoftwareCanvas creates a width x height canvas with a black background
// and bilinear filtering.
func NewSoftwareCanvas(width, height int) *SoftwareCanvas {
	return &SoftwareCanvas{
		dst:        image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0))),
		Background: color.RGBA{A: 255},
		Kernel:     draw.BiLinear,
	}
}

// Image returns the rendered pixels. The buffer is reused across frames.
func (c *SoftwareCanvas) Image() *image.RGBA {
	return c.dst
}

// Resize reallocates the target when the size changes.
func (c *SoftwareCanvas) Resize(width, height int) {
	b := c.dst.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return
	}
	c.dst = image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
}

// ViewportSize implements Viewport.
func (c *SoftwareCanvas) ViewportSize() (w, h float64) {
	b := c.dst.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// Clear fills the canvas with the background color.
func (c *SoftwareCanvas) Clear() {
	draw.Draw(c.dst, c.dst.Bounds(), image.NewUniform(c.Background), image.Point{}, draw.Src)
}

// SetSource implements Canvas.
func (c *SoftwareCanvas) SetSource(img *image.RGBA) error {
	if img == nil {
		return ErrNoImage
	}
	c.src = img
	return nil
}

// DrawImage implements Canvas.
//
// The destination is snapped to whole pixels first and the source is
// stretched over exactly that area, so segments sharing an edge meet
// without a gap or an overlapping column.
func (c *SoftwareCanvas) DrawImage(src, dst math.Rect) {
	if c.src == nil || src.Empty() {
		return
	}
	dr := dst.Round().Intersect(c.dst.Bounds())
	full := dst.Round()
	if dr.Empty() || full.Empty() {
		return
	}

	sr := src.Cover().Intersect(c.src.Bounds())
	if sr.Empty() {
		return
	}

	sx := float64(full.Dx()) / src.W
	sy := float64(full.Dy()) / src.H
	m := f64.Aff3{
		sx, 0, float64(full.Min.X) - src.X*sx,
		0, sy, float64(full.Min.Y) - src.Y*sy,
	}

	target := c.dst.SubImage(dr).(*image.RGBA)
	c.Kernel.Transform(target, m, c.src, sr, draw.Src, nil)
}
