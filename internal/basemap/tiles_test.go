// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package basemap

import (
	"math"
	"testing"
)

func TestProjectOrigin(t *testing.T) {
	for _, z := range []int{0, 5, 14} {
		n := float64(int(1)<<uint(z)) * TileSize
		p := Project(0, 0, z)
		if math.Abs(p.X-n/2) > 1e-6 {
			t.Errorf("z=%d: x = %v, want %v", z, p.X, n/2)
		}
		if math.Abs(p.Y-n/2) > 1e-6 {
			t.Errorf("z=%d: y = %v, want %v", z, p.Y, n/2)
		}
	}
}

func TestProjectMonotonic(t *testing.T) {
	west := Project(40, -80, 14)
	east := Project(40, -79, 14)
	if east.X <= west.X {
		t.Errorf("x should grow east: %v then %v", west.X, east.X)
	}

	south := Project(40, -80, 14)
	north := Project(41, -80, 14)
	if north.Y >= south.Y {
		t.Errorf("y should shrink north: %v then %v", south.Y, north.Y)
	}
}

func TestProjectNorthWestQuadrant(t *testing.T) {
	n := float64(int(1)<<uint(14)) * TileSize
	p := Project(40.44611, -79.94861, 14)
	if p.X >= n/2 {
		t.Errorf("x = %v, want west of center %v", p.X, n/2)
	}
	if p.Y >= n/2 {
		t.Errorf("y = %v, want north of center %v", p.Y, n/2)
	}
}

func TestProjectPolarClamp(t *testing.T) {
	top := Project(90, 0, 3)
	bottom := Project(-90, 0, 3)
	if math.IsInf(top.Y, 0) || math.IsNaN(top.Y) {
		t.Errorf("north pole y = %v, want finite", top.Y)
	}
	if math.IsInf(bottom.Y, 0) || math.IsNaN(bottom.Y) {
		t.Errorf("south pole y = %v, want finite", bottom.Y)
	}
	if top.Y >= bottom.Y {
		t.Errorf("poles inverted: north %v, south %v", top.Y, bottom.Y)
	}
}

func TestBounds(t *testing.T) {
	r := Bounds([]PixelPoint{
		{X: 10, Y: 40},
		{X: 30, Y: 20},
		{X: 20, Y: 30},
	})
	want := PixelRect{MinX: 10, MinY: 20, MaxX: 30, MaxY: 40}
	if r != want {
		t.Errorf("Bounds = %+v, want %+v", r, want)
	}
}

func TestExpand(t *testing.T) {
	r := PixelRect{MinX: 100, MinY: 200, MaxX: 200, MaxY: 400}
	got := r.Expand(0.4)
	want := PixelRect{MinX: 60, MinY: 120, MaxX: 240, MaxY: 480}
	if got != want {
		t.Errorf("Expand = %+v, want %+v", got, want)
	}
}

func TestEnsureSpanWidensDegenerateRect(t *testing.T) {
	r := PixelRect{MinX: 500, MinY: 500, MaxX: 500, MaxY: 500}
	got := r.EnsureSpan(256)
	if got.Width() != 256 || got.Height() != 256 {
		t.Errorf("spans = %vx%v, want 256x256", got.Width(), got.Height())
	}
	if cx := (got.MinX + got.MaxX) / 2; cx != 500 {
		t.Errorf("center x moved to %v", cx)
	}
}

func TestEnsureSpanKeepsWideRect(t *testing.T) {
	r := PixelRect{MinX: 0, MinY: 0, MaxX: 1000, MaxY: 800}
	if got := r.EnsureSpan(256); got != r {
		t.Errorf("EnsureSpan changed a wide rect: %+v", got)
	}
}

func TestCover(t *testing.T) {
	cases := []struct {
		name                   string
		rect                   PixelRect
		z                      int
		minX, minY, maxX, maxY int
	}{
		{"exact tiles", PixelRect{0, 0, 512, 512}, 2, 0, 0, 1, 1},
		{"interior", PixelRect{100, 100, 200, 200}, 2, 0, 0, 0, 0},
		{"crossing boundary", PixelRect{200, 200, 300, 300}, 2, 0, 0, 1, 1},
		{"clamped negative", PixelRect{-500, -500, 100, 100}, 2, 0, 0, 0, 0},
		{"clamped overflow", PixelRect{900, 900, 5000, 5000}, 2, 3, 3, 3, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			minX, minY, maxX, maxY := Cover(tc.rect, tc.z)
			if minX != tc.minX || minY != tc.minY || maxX != tc.maxX || maxY != tc.maxY {
				t.Errorf("Cover = (%d,%d)-(%d,%d), want (%d,%d)-(%d,%d)",
					minX, minY, maxX, maxY, tc.minX, tc.minY, tc.maxX, tc.maxY)
			}
		})
	}
}
