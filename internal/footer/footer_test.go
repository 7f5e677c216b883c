// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package footer

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/pdiddy/geoimage/internal/gps"
)

func testFont(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatalf("writing test font: %v", err)
	}
	return path
}

func TestNewRendererMissingFont(t *testing.T) {
	_, err := NewRenderer(filepath.Join(t.TempDir(), "nope.ttf"))
	if err == nil {
		t.Fatal("expected error for missing font file")
	}
}

func TestNewRendererBadFont(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.ttf")
	if err := os.WriteFile(path, []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewRenderer(path); err == nil {
		t.Fatal("expected error for unparseable font file")
	}
}

func TestText(t *testing.T) {
	cases := []struct {
		name     string
		lat, lon float64
		want     string
	}{
		{"north west", 40.44611111, -79.94861111, "Latitude: 40.44611° N, Longitude: 79.94861° W"},
		{"south east", -33.8688, 151.2093, "Latitude: 33.86880° S, Longitude: 151.20930° E"},
		{"origin", 0, 0, "Latitude: 0.00000° N, Longitude: 0.00000° E"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Text(gps.Found(tc.lat, tc.lon))
			if got != tc.want {
				t.Errorf("Text = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRenderGeometry(t *testing.T) {
	r, err := NewRenderer(testFont(t))
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	base := color.NRGBA{R: 10, G: 120, B: 30, A: 255}
	in := imaging.New(400, 300, base)
	out := r.Render(in, gps.Found(40.44611, -79.94861))

	if got := out.Bounds().Dx(); got != 400 {
		t.Errorf("output width = %d, want 400", got)
	}
	if got := out.Bounds().Dy(); got <= 300+bandPadding {
		t.Errorf("output height = %d, want > %d", got, 300+bandPadding)
	}

	// Original pixels are untouched above the band.
	if got := out.NRGBAAt(5, 5); got != base {
		t.Errorf("pixel (5,5) = %v, want %v", got, base)
	}

	// Band corners are white; some ink exists within the band.
	h := out.Bounds().Dy()
	for _, p := range [][2]int{{0, 301}, {399, 301}, {0, h - 1}, {399, h - 1}} {
		c := out.NRGBAAt(p[0], p[1])
		if c.R != 255 || c.G != 255 || c.B != 255 {
			t.Errorf("band corner (%d,%d) = %v, want white", p[0], p[1], c)
		}
	}
	ink := false
	for y := 300; y < h && !ink; y++ {
		for x := 0; x < 400; x++ {
			c := out.NRGBAAt(x, y)
			if c.R != 255 || c.G != 255 || c.B != 255 {
				ink = true
				break
			}
		}
	}
	if !ink {
		t.Error("no caption ink found in the band")
	}
}

func TestRenderTinyImage(t *testing.T) {
	r, err := NewRenderer(testFont(t))
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	in := imaging.New(16, 12, color.NRGBA{R: 200, G: 200, B: 200, A: 255})
	out := r.Render(in, gps.Found(1, 1))

	if got := out.Bounds().Dx(); got != 16 {
		t.Errorf("output width = %d, want 16", got)
	}
	if got := out.Bounds().Dy(); got <= 12 {
		t.Errorf("output height = %d, want > input height", got)
	}
}
