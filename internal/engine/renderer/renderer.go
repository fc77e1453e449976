// Package renderer draws the visible part of a panorama onto a canvas.
package renderer

import (
	"errors"
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-pano/internal/engine/camera"
	"github.com/Faultbox/midgard-pano/internal/engine/projection"
	"github.com/Faultbox/midgard-pano/internal/logger"
	"github.com/Faultbox/midgard-pano/pkg/math"
)

// ErrNoImage is returned when a nil image is handed to a canvas.
var ErrNoImage = errors.New("renderer: no image")

// Canvas is a 2D drawing surface able to blit scaled regions of one source image.
type Canvas interface {
	// Clear wipes the whole surface.
	Clear()
	// SetSource replaces the image that DrawImage samples from.
	SetSource(img *image.RGBA) error
	// DrawImage copies the src region of the source image, scaled, into dst.
	// Both rects are in pixels; dst is in logical viewport units.
	DrawImage(src, dst math.Rect)
}

// Viewport reports the current size of the drawing area in logical pixels.
type Viewport interface {
	ViewportSize() (w, h float64)
}

// LoadedImage is the panorama currently shown.
type LoadedImage struct {
	Width  int
	Height int
	Pixels *image.RGBA
}

// Renderer owns the loaded panorama and turns view states into canvas draws.
type Renderer struct {
	canvas   Canvas
	viewport Viewport
	image    *LoadedImage

	frames uint64
	log    *zap.Logger
}

// New creates a renderer drawing to canvas, sized by viewport.
func New(canvas Canvas, viewport Viewport) *Renderer {
	return &Renderer{
		canvas:   canvas,
		viewport: viewport,
		log:      logger.Named("renderer"),
	}
}

// SetImage replaces the loaded panorama. The previous image is dropped
// only once the canvas has accepted the new one.
func (r *Renderer) SetImage(img *image.RGBA) error {
	if img == nil {
		return ErrNoImage
	}
	if err := r.canvas.SetSource(img); err != nil {
		return err
	}

	b := img.Bounds()
	r.image = &LoadedImage{Width: b.Dx(), Height: b.Dy(), Pixels: img}
	r.log.Debug("image set", zap.Int("width", b.Dx()), zap.Int("height", b.Dy()))
	return nil
}

// HasImage reports whether a panorama is loaded.
func (r *Renderer) HasImage() bool {
	return r.image != nil
}

// Image returns the loaded panorama, nil before the first successful load.
func (r *Renderer) Image() *LoadedImage {
	return r.image
}

// Frames returns the number of frames drawn.
func (r *Renderer) Frames() uint64 {
	return r.frames
}

// RenderFrame draws the panorama for view state s.
// It returns false and leaves the canvas untouched while no image is loaded.
func (r *Renderer) RenderFrame(s camera.State) bool {
	if r.image == nil {
		return false
	}

	vw, vh := r.viewport.ViewportSize()
	r.canvas.Clear()

	frame := projection.Plan(s, float64(r.image.Width), float64(r.image.Height), vw, vh)
	for _, d := range frame.Draws {
		r.canvas.DrawImage(d.Src, d.Dst)
	}

	r.frames++
	return true
}
