package math

import "testing"

// clip applies m to the point (x, y, 0, 1) and returns clip x, y.
func clip(m Mat4, x, y float32) (float32, float32) {
	return m[0]*x + m[4]*y + m[12], m[1]*x + m[5]*y + m[13]
}

func TestScreenOrtho(t *testing.T) {
	m := ScreenOrtho(800, 600)

	tests := []struct {
		x, y   float32
		cx, cy float32
	}{
		{0, 0, -1, 1},
		{800, 600, 1, -1},
		{400, 300, 0, 0},
	}

	for _, tt := range tests {
		x, y := clip(m, tt.x, tt.y)
		if abs(x-tt.cx) > 1e-5 || abs(y-tt.cy) > 1e-5 {
			t.Errorf("clip(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, x, y, tt.cx, tt.cy)
		}
	}
}

func TestOrthoDepth(t *testing.T) {
	m := Ortho(0, 1, 0, 1, -1, 1)
	if m[10] != -1 || m[14] != 0 || m[15] != 1 {
		t.Errorf("unexpected depth terms %v %v %v", m[10], m[14], m[15])
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
