package input

import (
	gomath "math"
	"testing"
)

type recorder struct {
	yaw, pitch, fov float64
	pans, zooms     int
}

func (r *recorder) Pan(dYaw, dPitch float64) {
	r.yaw += dYaw
	r.pitch += dPitch
	r.pans++
}

func (r *recorder) AdjustFov(delta float64) {
	r.fov += delta
	r.zooms++
}

func approx(a, b float64) bool {
	return gomath.Abs(a-b) < 1e-9
}

func TestMouseDrag(t *testing.T) {
	rec := &recorder{}
	g := NewGestures(rec, DefaultSensitivity())

	// Moves before a press are ignored.
	g.PointerMove(50, 50)
	if rec.pans != 0 {
		t.Fatalf("expected no pan before press, got %d", rec.pans)
	}

	g.PointerDown(100, 100)
	g.PointerMove(110, 90)
	g.PointerMove(120, 90)

	if !approx(rec.yaw, 6) || !approx(rec.pitch, -3) {
		t.Errorf("expected pan (6, -3), got (%v, %v)", rec.yaw, rec.pitch)
	}
	s := g.Session()
	if s.LastX != 120 || s.LastY != 90 {
		t.Errorf("expected anchor (120, 90), got (%v, %v)", s.LastX, s.LastY)
	}

	g.PointerUp()
	g.PointerMove(500, 500)
	if rec.pans != 2 {
		t.Errorf("expected 2 pans, got %d", rec.pans)
	}
}

func TestWheel(t *testing.T) {
	tests := []struct {
		deltaY float64
		want   float64
	}{
		{100, 10},
		{-100, -10},
		{3, 0.3},
	}

	for _, tt := range tests {
		rec := &recorder{}
		NewGestures(rec, DefaultSensitivity()).Wheel(tt.deltaY)
		if !approx(rec.fov, tt.want) {
			t.Errorf("Wheel(%v): expected fov delta %v, got %v", tt.deltaY, tt.want, rec.fov)
		}
	}
}

func TestTouchDrag(t *testing.T) {
	rec := &recorder{}
	g := NewGestures(rec, DefaultSensitivity())

	g.TouchStart([]TouchPoint{{ID: 1, X: 10, Y: 10}})
	g.TouchMove([]TouchPoint{{ID: 1, X: 30, Y: 0}})

	if !approx(rec.yaw, 10) || !approx(rec.pitch, -5) {
		t.Errorf("expected pan (10, -5), got (%v, %v)", rec.yaw, rec.pitch)
	}

	g.TouchEnd(nil)
	if g.Session().Dragging {
		t.Error("expected dragging to stop when all fingers lift")
	}
}

func TestPinch(t *testing.T) {
	rec := &recorder{}
	g := NewGestures(rec, DefaultSensitivity())

	g.TouchStart([]TouchPoint{{ID: 1, X: 0, Y: 0}})
	g.TouchStart([]TouchPoint{{ID: 1, X: 0, Y: 0}, {ID: 2, X: 30, Y: 40}})
	if d := g.Session().LastPinchDistance; !approx(d, 50) {
		t.Fatalf("expected pinch distance 50, got %v", d)
	}

	// Fingers apart: zoom in.
	g.TouchMove([]TouchPoint{{ID: 1, X: 0, Y: 0}, {ID: 2, X: 60, Y: 80}})
	if !approx(rec.fov, -25) {
		t.Errorf("expected fov delta -25, got %v", rec.fov)
	}

	// Fingers together: zoom out.
	g.TouchMove([]TouchPoint{{ID: 1, X: 0, Y: 0}, {ID: 2, X: 30, Y: 40}})
	if !approx(rec.fov, 0) {
		t.Errorf("expected fov back to 0, got %v", rec.fov)
	}
	if rec.pans != 0 {
		t.Errorf("expected no pans during pinch, got %d", rec.pans)
	}
}

func TestPinchToDragReanchors(t *testing.T) {
	rec := &recorder{}
	g := NewGestures(rec, DefaultSensitivity())

	g.TouchStart([]TouchPoint{{ID: 1, X: 0, Y: 0}, {ID: 2, X: 100, Y: 0}})
	g.TouchMove([]TouchPoint{{ID: 1, X: 0, Y: 0}, {ID: 2, X: 200, Y: 0}})

	// Lifting finger 1 leaves finger 2 far from any earlier anchor.
	g.TouchEnd([]TouchPoint{{ID: 2, X: 200, Y: 0}})
	g.TouchMove([]TouchPoint{{ID: 2, X: 210, Y: 0}})

	if !approx(rec.yaw, 5) {
		t.Errorf("expected yaw delta 5 from the new anchor, got %v", rec.yaw)
	}
}

func TestTouchListIsCopied(t *testing.T) {
	g := NewGestures(&recorder{}, DefaultSensitivity())

	touches := []TouchPoint{{ID: 1, X: 1, Y: 1}}
	g.TouchStart(touches)
	touches[0].X = 99

	if got := g.Session().Touches[0].X; got != 1 {
		t.Errorf("expected stored touch to be independent of caller slice, got %v", got)
	}
}
