// Package sdlinput feeds SDL2 events into the gesture handlers and turns
// key presses into viewer commands.
package sdlinput

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/midgard-pano/internal/engine/input"
)

// wheelNotch is the scroll distance, in pixels, of one wheel notch.
const wheelNotch = 100

// SizeFunc returns the logical window size.
type SizeFunc func() (w, h float64)

// Adapter feeds SDL events to the gesture handlers and collects viewer commands.
type Adapter struct {
	gestures *input.Gestures
	size     SizeFunc
	fingers  []input.TouchPoint
	actions  []input.Action
}

// NewAdapter creates an adapter. size is used to denormalize finger
// positions into logical pixels.
func NewAdapter(g *input.Gestures, size SizeFunc) *Adapter {
	return &Adapter{
		gestures: g,
		size:     size,
		actions:  make([]input.Action, 0, 8),
	}
}

// Poll drains the SDL event queue and returns the commands it produced.
// The slice is reused by the next call.
func (a *Adapter) Poll() []input.Action {
	a.actions = a.actions[:0]
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if act, ok := a.Handle(event); ok {
			a.actions = append(a.actions, act)
		}
	}
	return a.actions
}

// Handle processes one event. Gesture events are applied immediately;
// anything else is returned as an Action.
func (a *Adapter) Handle(event sdl.Event) (input.Action, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return input.Action{Command: input.CommandQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_LEAVE || e.Event == sdl.WINDOWEVENT_FOCUS_LOST {
			a.gestures.PointerUp()
		}

	case *sdl.MouseButtonEvent:
		// Touch is handled through finger events.
		if e.Which == sdl.TOUCH_MOUSEID || e.Button != sdl.BUTTON_LEFT {
			break
		}
		if e.Type == sdl.MOUSEBUTTONDOWN {
			a.gestures.PointerDown(float64(e.X), float64(e.Y))
		} else {
			a.gestures.PointerUp()
		}

	case *sdl.MouseMotionEvent:
		if e.Which != sdl.TOUCH_MOUSEID {
			a.gestures.PointerMove(float64(e.X), float64(e.Y))
		}

	case *sdl.MouseWheelEvent:
		if e.Which == sdl.TOUCH_MOUSEID {
			break
		}
		dy := float64(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			dy = -dy
		}
		// SDL reports scrolling up as positive.
		a.gestures.Wheel(-dy * wheelNotch)

	case *sdl.TouchFingerEvent:
		a.handleFinger(e)

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN {
			return keyAction(e.Keysym.Sym, e.Repeat != 0)
		}
	}
	return input.Action{}, false
}

func (a *Adapter) handleFinger(e *sdl.TouchFingerEvent) {
	w, h := a.size()
	p := input.TouchPoint{ID: int64(e.FingerID), X: float64(e.X) * w, Y: float64(e.Y) * h}

	switch e.Type {
	case sdl.FINGERDOWN:
		a.fingers = append(a.fingers, p)
		a.gestures.TouchStart(a.fingers)
	case sdl.FINGERMOTION:
		for i := range a.fingers {
			if a.fingers[i].ID == p.ID {
				a.fingers[i] = p
			}
		}
		a.gestures.TouchMove(a.fingers)
	case sdl.FINGERUP:
		kept := a.fingers[:0]
		for _, f := range a.fingers {
			if f.ID != p.ID {
				kept = append(kept, f)
			}
		}
		a.fingers = kept
		a.gestures.TouchEnd(a.fingers)
	}
}

func keyAction(key sdl.Keycode, repeat bool) (input.Action, bool) {
	switch key {
	case sdl.K_EQUALS, sdl.K_PLUS, sdl.K_KP_PLUS:
		return input.Action{Command: input.CommandZoomIn}, true
	case sdl.K_MINUS, sdl.K_KP_MINUS:
		return input.Action{Command: input.CommandZoomOut}, true
	}

	if repeat {
		return input.Action{}, false
	}

	switch key {
	case sdl.K_ESCAPE:
		return input.Action{Command: input.CommandQuit}, true
	case sdl.K_0, sdl.K_r, sdl.K_HOME:
		return input.Action{Command: input.CommandReset}, true
	case sdl.K_RIGHT, sdl.K_PAGEDOWN, sdl.K_n:
		return input.Action{Command: input.CommandNext}, true
	case sdl.K_LEFT, sdl.K_PAGEUP, sdl.K_p:
		return input.Action{Command: input.CommandPrev}, true
	case sdl.K_F12:
		return input.Action{Command: input.CommandScreenshot}, true
	}

	if key >= sdl.K_1 && key <= sdl.K_9 {
		return input.Action{Command: input.CommandSelect, Index: int(key - sdl.K_1)}, true
	}
	return input.Action{}, false
}
