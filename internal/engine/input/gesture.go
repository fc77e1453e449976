// Package input turns pointer, wheel and touch events into view changes.
package input

import (
	"github.com/Faultbox/midgard-pano/pkg/math"
)

// Target receives view changes produced by gestures.
type Target interface {
	Pan(dYaw, dPitch float64)
	AdjustFov(delta float64)
}

// Sensitivity converts raw input units into degrees.
type Sensitivity struct {
	Mouse float64 // degrees per pixel of mouse drag
	Touch float64 // degrees per pixel of touch drag
	Wheel float64 // fov degrees per wheel unit
	Pinch float64 // fov degrees per pixel of pinch distance change
}

// DefaultSensitivity returns the stock input constants.
func DefaultSensitivity() Sensitivity {
	return Sensitivity{
		Mouse: 0.3,
		Touch: 0.5,
		Wheel: 0.1,
		Pinch: 0.5,
	}
}

// TouchPoint is one active finger, in logical viewport pixels.
type TouchPoint struct {
	ID   int64
	X, Y float64
}

// PointerSession is the transient drag/pinch state.
type PointerSession struct {
	Dragging          bool
	LastX, LastY      float64
	Touches           []TouchPoint
	LastPinchDistance float64
}

// Gestures applies drag, wheel and pinch rules to a Target.
// It is not safe for concurrent use; feed it from the event thread.
type Gestures struct {
	target  Target
	sens    Sensitivity
	session PointerSession
}

// NewGestures binds gestures to target.
func NewGestures(target Target, sens Sensitivity) *Gestures {
	return &Gestures{target: target, sens: sens}
}

// Session returns a copy of the current pointer state.
func (g *Gestures) Session() PointerSession {
	s := g.session
	s.Touches = append([]TouchPoint(nil), g.session.Touches...)
	return s
}

// PointerDown starts a mouse drag at (x, y).
func (g *Gestures) PointerDown(x, y float64) {
	g.session.Dragging = true
	g.session.LastX, g.session.LastY = x, y
}

// PointerMove pans by the distance moved since the last event.
func (g *Gestures) PointerMove(x, y float64) {
	if !g.session.Dragging {
		return
	}
	g.drag(x, y, g.sens.Mouse)
}

// PointerUp ends a drag. Also used when the pointer leaves the surface.
func (g *Gestures) PointerUp() {
	g.session.Dragging = false
}

// Wheel zooms by a vertical scroll delta. Scrolling down widens the view.
func (g *Gestures) Wheel(deltaY float64) {
	g.target.AdjustFov(deltaY * g.sens.Wheel)
}

// TouchStart handles a new finger; touches is the full active list.
func (g *Gestures) TouchStart(touches []TouchPoint) {
	g.setTouches(touches)

	switch len(g.session.Touches) {
	case 1:
		g.session.Dragging = true
		g.anchorFirstTouch()
	case 2:
		g.session.LastPinchDistance = g.pinchDistance()
	}
}

// TouchMove drags with one finger and pinches with two.
func (g *Gestures) TouchMove(touches []TouchPoint) {
	g.setTouches(touches)

	switch len(g.session.Touches) {
	case 1:
		if g.session.Dragging {
			t := g.session.Touches[0]
			g.drag(t.X, t.Y, g.sens.Touch)
		}
	case 2:
		current := g.pinchDistance()
		g.target.AdjustFov((g.session.LastPinchDistance - current) * g.sens.Pinch)
		g.session.LastPinchDistance = current
	}
}

// TouchEnd handles lifted fingers; touches is the remaining active list.
// Going back to one finger resumes dragging from that finger's position.
func (g *Gestures) TouchEnd(touches []TouchPoint) {
	g.setTouches(touches)

	switch len(g.session.Touches) {
	case 0:
		g.session.Dragging = false
	case 1:
		g.session.Dragging = true
		g.anchorFirstTouch()
	case 2:
		g.session.LastPinchDistance = g.pinchDistance()
	}
}

func (g *Gestures) drag(x, y, sensitivity float64) {
	dx := x - g.session.LastX
	dy := y - g.session.LastY
	g.target.Pan(dx*sensitivity, dy*sensitivity)
	g.session.LastX, g.session.LastY = x, y
}

func (g *Gestures) setTouches(touches []TouchPoint) {
	g.session.Touches = append(g.session.Touches[:0], touches...)
}

func (g *Gestures) anchorFirstTouch() {
	t := g.session.Touches[0]
	g.session.LastX, g.session.LastY = t.X, t.Y
}

func (g *Gestures) pinchDistance() float64 {
	if len(g.session.Touches) < 2 {
		return 0
	}
	a, b := g.session.Touches[0], g.session.Touches[1]
	return math.Vec2{X: a.X, Y: a.Y}.Distance(math.Vec2{X: b.X, Y: b.Y})
}
