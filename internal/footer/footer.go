// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package footer annotates photos with a coordinate caption band.
package footer

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/pdiddy/geoimage/pkg/types"
)

const (
	// bandPadding is the vertical padding around the caption text, split
	// evenly above and below.
	bandPadding = 20

	// fontScale sizes the caption relative to the shorter image dimension.
	fontScale = 0.03
)

// Renderer draws coordinate captions beneath images using a single parsed
// font. NewRenderer validates the font file up front so a bad path fails
// before any photo is touched.
type Renderer struct {
	font *truetype.Font
}

// NewRenderer loads and parses the TrueType font at fontPath.
func NewRenderer(fontPath string) (*Renderer, error) {
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("loading font %s: %w", fontPath, err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font %s: %w", fontPath, err)
	}
	return &Renderer{font: f}, nil
}

// Text formats the caption line for a coordinate pair, e.g.
// "Latitude: 40.44611° N, Longitude: 79.94861° W".
func Text(pos types.GPSResult) string {
	latHem, lonHem := "N", "E"
	if pos.Lat < 0 {
		latHem = "S"
	}
	if pos.Lon < 0 {
		lonHem = "W"
	}
	return fmt.Sprintf("Latitude: %.5f° %s, Longitude: %.5f° %s",
		math.Abs(pos.Lat), latHem, math.Abs(pos.Lon), lonHem)
}

// Render returns a new image holding the original above a white band with
// the centered coordinate caption. The band height is the caption height
// plus the padding; the caption is scaled to the image, never the other
// way around.
func (r *Renderer) Render(img image.Image, pos types.GPSResult) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	size := fontScale * float64(min(w, h))
	if size < 1 {
		size = 1
	}
	face := truetype.NewFace(r.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})

	line := Text(pos)

	measure := gg.NewContext(1, 1)
	measure.SetFontFace(face)
	_, textH := measure.MeasureString(line)
	bandH := int(textH) + bandPadding

	canvas := imaging.New(w, h+bandH, color.White)
	canvas = imaging.Paste(canvas, img, image.Pt(0, 0))

	dc := gg.NewContextForImage(canvas)
	dc.SetFontFace(face)
	dc.SetColor(color.Black)
	dc.DrawStringAnchored(line, float64(w)/2, float64(h)+float64(bandH)/2, 0.5, 0.5)

	return imaging.Clone(dc.Image())
}
