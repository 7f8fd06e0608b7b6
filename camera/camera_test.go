package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNew_FitsWorld(t *testing.T) {
	tests := []struct {
		name                 string
		vw, vh, ww, wh, zoom float32
	}{
		{"same size", 1280, 720, 1280, 720, 1},
		{"world twice as large", 1280, 720, 2560, 1440, 0.5},
		{"tall world", 1280, 720, 1280, 1440, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := New(tt.vw, tt.vh, tt.ww, tt.wh)
			if !near(cam.Zoom, tt.zoom) || !near(cam.MinZoom, tt.zoom) {
				t.Errorf("zoom = %v (min %v), want %v", cam.Zoom, cam.MinZoom, tt.zoom)
			}
			if cam.X != tt.ww/2 || cam.Y != tt.wh/2 {
				t.Errorf("center = (%v, %v), want world center", cam.X, cam.Y)
			}
		})
	}
}

func TestWorldToScreen_IdentityAtFit(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	for _, p := range []struct{ x, y float32 }{{0, 0}, {640, 360}, {1280, 720}, {100, 650}} {
		sx, sy := cam.WorldToScreen(p.x, p.y)
		if !near(sx, p.x) || !near(sy, p.y) {
			t.Errorf("WorldToScreen(%v, %v) = (%v, %v)", p.x, p.y, sx, sy)
		}
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.SetZoom(2)
	cam.Pan(150, -80)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},
		{100, 100},
		{1200, 600},
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

func TestPan_StaysInWorld(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.SetZoom(2)

	cam.Pan(-10000, 0)
	if cam.X != 0 {
		t.Errorf("X = %v after panning far left, want 0", cam.X)
	}
	cam.Pan(0, 10000)
	if cam.Y != 720 {
		t.Errorf("Y = %v after panning far down, want 720", cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	cam.SetZoom(0.1)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("zoom below min = %v, want %v", cam.Zoom, cam.MinZoom)
	}
	cam.ZoomBy(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("zoom above max = %v, want %v", cam.Zoom, cam.MaxZoom)
	}
	if r := cam.ScreenRadius(8); !near(r, 8*cam.MaxZoom) {
		t.Errorf("ScreenRadius = %v", r)
	}
}

func TestResize_RaisesMinZoom(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.Resize(2560, 1440)
	if !near(cam.MinZoom, 2) || !near(cam.Zoom, 2) {
		t.Errorf("after resize min=%v zoom=%v, want 2", cam.MinZoom, cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.SetZoom(2) // shows x in [320, 960], y in [180, 540]

	tests := []struct {
		name    string
		x, y, r float32
		want    bool
	}{
		{"center", 640, 360, 0, true},
		{"outside", 100, 360, 8, false},
		{"radius reaches in", 315, 360, 8, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cam.IsVisible(tt.x, tt.y, tt.r); got != tt.want {
				t.Errorf("IsVisible = %v, want %v", got, tt.want)
			}
		})
	}
}
