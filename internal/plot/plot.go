// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package plot renders the satellite location map for a batch of
// geolocated photos.
package plot

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/pdiddy/geoimage/internal/basemap"
	"github.com/pdiddy/geoimage/internal/fsutil"
	"github.com/pdiddy/geoimage/pkg/types"
)

// FileName is the map image name within the output directory.
const FileName = "map.png"

const (
	// marginFrac expands the point bounding box on every side.
	marginFrac = 0.4

	// offsetFrac sets the label offset radius relative to the smaller
	// dimension of the unexpanded bounding box.
	offsetFrac = 0.03

	// minSpanPx widens degenerate bounding boxes, such as a single photo
	// or one burst shot from the same spot.
	minSpanPx = 256.0

	defaultZoom   = 14
	defaultCanvas = 800

	markerRadius    = 5.0
	labelFontSize   = 11.0
	labelPadding    = 3.0
	labelBoxAlpha   = 0.7
	attributionSize = 9.0
	attrPadding     = 4.0
)

// Renderer plots geolocated photos over stitched satellite imagery.
type Renderer struct {
	tiles *basemap.Client
	cfg   types.MapConfig
}

// NewRenderer builds a map renderer drawing tiles from client.
func NewRenderer(tiles *basemap.Client, cfg types.MapConfig) *Renderer {
	if cfg.Zoom <= 0 {
		cfg.Zoom = defaultZoom
	}
	if cfg.CanvasSize <= 0 {
		cfg.CanvasSize = defaultCanvas
	}
	return &Renderer{tiles: tiles, cfg: cfg}
}

// Render draws the location map for points and writes it to dir/map.png.
// points must be non-empty; the batch driver skips the map entirely when
// nothing is geolocated.
func (r *Renderer) Render(ctx context.Context, points []types.Point, dir string, w io.Writer) error {
	img, err := r.renderImage(ctx, points, w)
	if err != nil {
		return err
	}

	path := filepath.Join(dir, FileName)
	if err := fsutil.WriteWith(path, func(wr io.Writer) error {
		return imaging.Encode(wr, img, imaging.PNG)
	}); err != nil {
		return err
	}
	fmt.Fprintf(w, "map: %s (%d points)\n", path, len(points))
	return nil
}

func (r *Renderer) renderImage(ctx context.Context, points []types.Point, w io.Writer) (image.Image, error) {
	if len(points) == 0 {
		return nil, errors.New("no points to plot")
	}

	px := make([]basemap.PixelPoint, len(points))
	names := make([]string, len(points))
	for i, p := range points {
		px[i] = basemap.Project(p.Lat, p.Lon, r.cfg.Zoom)
		names[i] = p.Name
	}

	view, offset := viewport(px)
	stitched, err := r.tiles.Stitch(ctx, view, r.cfg.Zoom, w)
	if err != nil {
		return nil, fmt.Errorf("rendering basemap: %w", err)
	}

	// Scale oversized basemaps down to the canvas; never scale up.
	scale := 1.0
	if maxDim := math.Max(view.Width(), view.Height()); maxDim > float64(r.cfg.CanvasSize) {
		scale = float64(r.cfg.CanvasSize) / maxDim
	}
	canvas := stitched
	if scale < 1 {
		canvas = imaging.Resize(stitched,
			int(math.Round(view.Width()*scale)),
			int(math.Round(view.Height()*scale)),
			imaging.Lanczos)
	}

	dc := gg.NewContextForImage(canvas)

	for _, p := range px {
		dc.SetRGB(1, 0, 0)
		dc.DrawCircle((p.X-view.MinX)*scale, (p.Y-view.MinY)*scale, markerRadius)
		dc.Fill()
	}

	if err := dc.LoadFontFace(r.cfg.FontPath, labelFontSize); err != nil {
		return nil, fmt.Errorf("loading label font: %w", err)
	}
	labels := Labels(names)
	n := float64(len(px))
	for i, p := range px {
		if labels[i] == "" {
			continue
		}
		// Spread labels radially so close markers stay readable. The
		// sine flips because pixel y grows south.
		angle := 2 * math.Pi * float64(i) / n
		lx := (p.X - view.MinX + math.Cos(angle)*offset) * scale
		ly := (p.Y - view.MinY - math.Sin(angle)*offset) * scale

		tw, th := dc.MeasureString(labels[i])
		dc.SetRGBA(1, 1, 1, labelBoxAlpha)
		dc.DrawRoundedRectangle(lx-tw/2-labelPadding, ly-th/2-labelPadding,
			tw+2*labelPadding, th+2*labelPadding, 3)
		dc.Fill()
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(labels[i], lx, ly, 0.5, 0.5)
	}

	if attr := r.tiles.Attribution(); attr != "" {
		if err := dc.LoadFontFace(r.cfg.FontPath, attributionSize); err != nil {
			return nil, fmt.Errorf("loading attribution font: %w", err)
		}
		tw, th := dc.MeasureString(attr)
		h := float64(dc.Height())
		dc.SetRGBA(0, 0, 0, 0.5)
		dc.DrawRectangle(0, h-th-2*attrPadding, tw+2*attrPadding, th+2*attrPadding)
		dc.Fill()
		dc.SetRGB(1, 1, 1)
		dc.DrawStringAnchored(attr, attrPadding, h-attrPadding-th/2, 0, 0.5)
	}

	return dc.Image(), nil
}

// viewport derives the stitch region from projected points: the bounding
// box, widened if degenerate, with the margin applied. The label offset
// radius comes from the unexpanded box.
func viewport(px []basemap.PixelPoint) (view basemap.PixelRect, offset float64) {
	box := basemap.Bounds(px).EnsureSpan(minSpanPx)
	offset = offsetFrac * math.Min(box.Width(), box.Height())
	return box.Expand(marginFrac), offset
}

// Labels derives map labels from photo names by stripping their longest
// common prefix. With a single photo the label collapses to nothing and no
// label is drawn.
func Labels(names []string) []string {
	prefix := commonPrefix(names)
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.TrimPrefix(n, prefix)
	}
	return out
}

func commonPrefix(names []string) string {
	if len(names) == 0 {
		return ""
	}
	prefix := names[0]
	for _, n := range names[1:] {
		for !strings.HasPrefix(n, prefix) {
			prefix = prefix[:len(prefix)-1]
			if prefix == "" {
				return ""
			}
		}
	}
	return prefix
}
