// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package basemap fetches and stitches satellite imagery tiles into a
// single backdrop for the location map.
package basemap

import "math"

// TileSize is the pixel width and height of standard web map tiles.
const TileSize = 256

// Tile identifies one slippy-map tile at a zoom level.
type Tile struct {
	Z, X, Y int
}

// PixelPoint is a position in the global pixel space of a zoom level. The
// world spans 2^z * TileSize pixels per axis, x growing east and y growing
// south.
type PixelPoint struct {
	X, Y float64
}

// Project maps a WGS84 coordinate into global pixel space at zoom z using
// the web-mercator projection tile servers serve. Latitudes are clamped
// just short of the projection's polar singularity.
func Project(lat, lon float64, z int) PixelPoint {
	n := float64(int(1)<<uint(z)) * TileSize
	x := (lon + 180) / 360 * n
	siny := math.Sin(lat * math.Pi / 180)
	siny = math.Min(math.Max(siny, -0.9999), 0.9999)
	y := (0.5 - math.Log((1+siny)/(1-siny))/(4*math.Pi)) * n
	return PixelPoint{X: x, Y: y}
}

// PixelRect is an axis-aligned region of global pixel space.
type PixelRect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Bounds returns the smallest rect covering all points.
func Bounds(points []PixelPoint) PixelRect {
	r := PixelRect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, p := range points {
		r.MinX = math.Min(r.MinX, p.X)
		r.MinY = math.Min(r.MinY, p.Y)
		r.MaxX = math.Max(r.MaxX, p.X)
		r.MaxY = math.Max(r.MaxY, p.Y)
	}
	return r
}

// Width returns the horizontal span in pixels.
func (r PixelRect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical span in pixels.
func (r PixelRect) Height() float64 { return r.MaxY - r.MinY }

// Expand grows the rect by frac of its span on every side.
func (r PixelRect) Expand(frac float64) PixelRect {
	dx := r.Width() * frac
	dy := r.Height() * frac
	return PixelRect{
		MinX: r.MinX - dx, MinY: r.MinY - dy,
		MaxX: r.MaxX + dx, MaxY: r.MaxY + dy,
	}
}

// EnsureSpan widens any axis narrower than span around its center. A batch
// of identical coordinates would otherwise produce an empty viewport.
func (r PixelRect) EnsureSpan(span float64) PixelRect {
	out := r
	if out.Width() < span {
		cx := (out.MinX + out.MaxX) / 2
		out.MinX = cx - span/2
		out.MaxX = cx + span/2
	}
	if out.Height() < span {
		cy := (out.MinY + out.MaxY) / 2
		out.MinY = cy - span/2
		out.MaxY = cy + span/2
	}
	return out
}

// Cover returns the inclusive tile index range overlapping r at zoom z,
// clamped to the valid grid.
func Cover(r PixelRect, z int) (minX, minY, maxX, maxY int) {
	last := (1 << uint(z)) - 1
	minX = clamp(int(math.Floor(r.MinX/TileSize)), 0, last)
	minY = clamp(int(math.Floor(r.MinY/TileSize)), 0, last)
	maxX = clamp(int(math.Ceil(r.MaxX/TileSize))-1, 0, last)
	maxY = clamp(int(math.Ceil(r.MaxY/TileSize))-1, 0, last)
	if maxX < minX {
		maxX = minX
	}
	if maxY < minY {
		maxY = minY
	}
	return minX, minY, maxX, maxY
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
