// Package camera provides the view-state controller for panorama viewing.
package camera

import (
	"github.com/Faultbox/midgard-pano/pkg/math"
)

// Home view and zoom limits.
const (
	DefaultFov = 90.0
	MinFov     = 30.0
	MaxFov     = 120.0
	MinPitch   = -90.0
	MaxPitch   = 90.0

	// ZoomStep is the fov change applied by the zoom in/out controls.
	ZoomStep = 10.0
)

// State is a snapshot of the view: look angles and field of view, in degrees.
// Yaw is unbounded and wraps logically every 360 degrees.
type State struct {
	Yaw   float64
	Pitch float64
	Fov   float64
}

// NormalizedYaw returns yaw in [0, 360).
func (s State) NormalizedYaw() float64 {
	return math.WrapDegrees(s.Yaw)
}

// PanoramaCamera owns the view state and applies bounded updates to it.
// All inputs are clamped, never rejected.
type PanoramaCamera struct {
	state State

	// Constraints
	MinFov float64
	MaxFov float64

	// Zoom control step
	ZoomStep float64
}

// NewPanoramaCamera creates a camera at the home view with default limits.
func NewPanoramaCamera() *PanoramaCamera {
	return &PanoramaCamera{
		state:    State{Fov: DefaultFov},
		MinFov:   MinFov,
		MaxFov:   MaxFov,
		ZoomStep: ZoomStep,
	}
}

// State returns the current view.
func (c *PanoramaCamera) State() State {
	return c.state
}

// Pan rotates the view. Dragging down (positive dPitch) lowers pitch.
func (c *PanoramaCamera) Pan(dYaw, dPitch float64) {
	c.state.Yaw += dYaw
	c.state.Pitch = math.Clamp(c.state.Pitch-dPitch, MinPitch, MaxPitch)
}

// AdjustFov widens (positive delta) or narrows the field of view.
func (c *PanoramaCamera) AdjustFov(delta float64) {
	c.state.Fov = math.Clamp(c.state.Fov+delta, c.MinFov, c.MaxFov)
}

// ZoomIn narrows the field of view by one step.
func (c *PanoramaCamera) ZoomIn() {
	c.AdjustFov(-c.ZoomStep)
}

// ZoomOut widens the field of view by one step.
func (c *PanoramaCamera) ZoomOut() {
	c.AdjustFov(c.ZoomStep)
}

// Reset returns to the home view. The home fov is 90, pulled into the
// configured limits when they exclude it.
func (c *PanoramaCamera) Reset() {
	c.state = State{Yaw: 0, Pitch: 0, Fov: math.Clamp(DefaultFov, c.MinFov, c.MaxFov)}
}

// SetState replaces the view, clamping pitch and fov into range.
func (c *PanoramaCamera) SetState(s State) {
	c.state = State{
		Yaw:   s.Yaw,
		Pitch: math.Clamp(s.Pitch, MinPitch, MaxPitch),
		Fov:   math.Clamp(s.Fov, c.MinFov, c.MaxFov),
	}
}
