package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNew(t *testing.T) {
	cam := New(800, 600, 800, 600)

	// Should be centered on the arena
	if cam.X != 400 || cam.Y != 300 {
		t.Errorf("camera at (%f, %f), want (400, 300)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("Zoom = %f, want 1.0", cam.Zoom)
	}
}

func TestWorldToScreen(t *testing.T) {
	tests := []struct {
		name           string
		vw, vh, ww, wh float32
		wx, wy         float32
		sx, sy         float32
	}{
		{"center", 800, 600, 800, 600, 400, 300, 400, 300},
		{"origin 1:1", 800, 600, 800, 600, 0, 0, 0, 0},
		{"letterboxed origin", 1600, 900, 800, 600, 0, 0, 200, 0},
		{"letterboxed corner", 1600, 900, 800, 600, 800, 600, 1400, 900},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := New(tt.vw, tt.vh, tt.ww, tt.wh)
			sx, sy := cam.WorldToScreen(tt.wx, tt.wy)
			if !near(sx, tt.sx) || !near(sy, tt.sy) {
				t.Errorf("WorldToScreen(%v, %v) = (%v, %v), want (%v, %v)", tt.wx, tt.wy, sx, sy, tt.sx, tt.sy)
			}
		})
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 800, 600)
	cam.SetZoom(2)
	cam.Pan(100, -50)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanClampsToArena(t *testing.T) {
	cam := New(800, 600, 800, 600)

	// Whole arena visible: panning has nowhere to go
	cam.Pan(300, 300)
	if cam.X != 400 || cam.Y != 300 {
		t.Errorf("after pan at zoom 1: (%f, %f), want (400, 300)", cam.X, cam.Y)
	}

	cam.SetZoom(2)
	cam.Pan(10000, -10000)
	if !near(cam.X, 600) || !near(cam.Y, 150) {
		t.Errorf("after pan at zoom 2: (%f, %f), want (600, 150)", cam.X, cam.Y)
	}

	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	if !near(minX, 400) || !near(maxX, 800) || !near(minY, 0) || !near(maxY, 300) {
		t.Errorf("VisibleWorldBounds() = (%f, %f, %f, %f), want (400, 0, 800, 300)", minX, minY, maxX, maxY)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(800, 600, 800, 600)

	cam.ZoomBy(0.1)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("Zoom = %f, want MinZoom %f", cam.Zoom, cam.MinZoom)
	}

	cam.ZoomBy(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("Zoom = %f, want MaxZoom %f", cam.Zoom, cam.MaxZoom)
	}

	cam.Reset()
	if cam.Zoom != 1 || cam.X != 400 || cam.Y != 300 {
		t.Errorf("after Reset: zoom %f at (%f, %f), want 1 at (400, 300)", cam.Zoom, cam.X, cam.Y)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(800, 600, 800, 600)
	cam.SetZoom(2)

	tests := []struct {
		name   string
		x, y   float32
		radius float32
		want   bool
	}{
		{"center", 400, 300, 0, true},
		{"arena corner", 0, 0, 0, false},
		{"edge within radius", 190, 150, 15, true},
		{"edge outside radius", 180, 150, 15, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cam.IsVisible(tt.x, tt.y, tt.radius); got != tt.want {
				t.Errorf("IsVisible(%v, %v, %v) = %v, want %v", tt.x, tt.y, tt.radius, got, tt.want)
			}
		})
	}
}

func TestResizeRecentres(t *testing.T) {
	cam := New(800, 600, 800, 600)
	cam.SetZoom(2)
	cam.Pan(10000, 0)

	// A wider window at the same zoom shows more arena; the center must pull back in
	cam.Resize(1600, 600)
	_, _, maxX, _ := cam.VisibleWorldBounds()
	if maxX > 800.01 {
		t.Errorf("visible maxX = %f, want <= 800", maxX)
	}
}

func TestZoomAtKeepsCursorPoint(t *testing.T) {
	cam := New(800, 600, 800, 600)

	// Point under the cursor before zooming
	wx, wy := cam.ScreenToWorld(300, 200)
	cam.ZoomAt(2, 300, 200)

	sx, sy := cam.WorldToScreen(wx, wy)
	if !near(sx, 300) || !near(sy, 200) {
		t.Errorf("cursor point moved to (%f, %f), want (300, 200)", sx, sy)
	}
	if cam.Zoom != 2 {
		t.Errorf("Zoom = %f, want 2", cam.Zoom)
	}

	// Near a corner the arena edge wins over the cursor
	cam.Reset()
	cam.ZoomAt(2, 0, 0)
	minX, minY, _, _ := cam.VisibleWorldBounds()
	if !near(minX, 0) || !near(minY, 0) {
		t.Errorf("visible min = (%f, %f), want (0, 0)", minX, minY)
	}
}
