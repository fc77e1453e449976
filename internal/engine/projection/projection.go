// Package projection maps a view onto a planar crop of a 360-degree panorama.
//
// The mapping is a linear approximation, not a gnomonic projection: yaw and
// fov map linearly onto image width, pitch maps linearly onto image height,
// and the vertical extent is derived from the viewport aspect ratio.
package projection

import (
	gomath "math"

	"github.com/Faultbox/midgard-pano/internal/engine/camera"
	"github.com/Faultbox/midgard-pano/pkg/math"
)

// Draw copies Src (image space) into Dst (viewport space).
type Draw struct {
	Src math.Rect
	Dst math.Rect
}

// Frame is the plan for one rendered frame.
type Frame struct {
	SourceX           float64
	SourceY           float64
	SourceWidth       float64
	SourceHeight      float64
	FinalSourceHeight float64
	DestY             float64
	DestHeight        float64

	// Draws holds one entry, or two when the crop wraps past the right edge.
	Draws []Draw
}

// Wraps reports whether the frame is split at the image seam.
func (f Frame) Wraps() bool {
	return len(f.Draws) == 2
}

// Plan computes the source crop and destination placement for a view.
// A zero-sized image or viewport yields an empty frame.
func Plan(s camera.State, imageW, imageH, viewW, viewH float64) Frame {
	if imageW <= 0 || imageH <= 0 || viewW <= 0 || viewH <= 0 {
		return Frame{}
	}

	f := Frame{}
	f.SourceX = s.NormalizedYaw() / 360 * imageW
	f.SourceWidth = (s.Fov / 360) * imageW
	f.SourceHeight = f.SourceWidth * (viewH / viewW)

	pitchNormalized := (s.Pitch + 90) / 180
	sourceY := pitchNormalized*imageH - f.SourceHeight/2
	// Clamp order matters when the crop is taller than the image:
	// the lower bound wins, so the crop starts at the top edge.
	sourceY = gomath.Max(0, gomath.Min(imageH-f.SourceHeight, sourceY))
	f.SourceY = sourceY

	f.FinalSourceHeight = gomath.Min(f.SourceHeight, imageH-sourceY)
	f.DestHeight = (f.FinalSourceHeight / f.SourceHeight) * viewH
	f.DestY = (viewH - f.DestHeight) / 2

	if f.SourceX+f.SourceWidth > imageW {
		leftWidth := imageW - f.SourceX
		leftDestWidth := viewW * (leftWidth / f.SourceWidth)
		wrappedWidth := f.SourceWidth - leftWidth
		wrappedDestWidth := viewW * (wrappedWidth / f.SourceWidth)

		f.Draws = []Draw{
			{
				Src: math.Rect{X: f.SourceX, Y: sourceY, W: leftWidth, H: f.FinalSourceHeight},
				Dst: math.Rect{X: 0, Y: f.DestY, W: leftDestWidth, H: f.DestHeight},
			},
			{
				Src: math.Rect{X: 0, Y: sourceY, W: wrappedWidth, H: f.FinalSourceHeight},
				Dst: math.Rect{X: leftDestWidth, Y: f.DestY, W: wrappedDestWidth, H: f.DestHeight},
			},
		}
		return f
	}

	f.Draws = []Draw{{
		Src: math.Rect{X: f.SourceX, Y: sourceY, W: f.SourceWidth, H: f.FinalSourceHeight},
		Dst: math.Rect{X: 0, Y: f.DestY, W: viewW, H: f.DestHeight},
	}}
	return f
}
