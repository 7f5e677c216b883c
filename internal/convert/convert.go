// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert drives the photo batch: HEIC decode, GPS lookup, footer
// annotation, JPEG output, manifest, and the location map.
package convert

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/facette/natsort"
	"github.com/jdeng/goheif"

	"github.com/pdiddy/geoimage/internal/footer"
	"github.com/pdiddy/geoimage/internal/fsutil"
	"github.com/pdiddy/geoimage/internal/gps"
	"github.com/pdiddy/geoimage/internal/manifest"
	"github.com/pdiddy/geoimage/pkg/types"
)

const defaultJPEGQuality = 75

// Decoder turns one photo file's bytes into pixels and a GPS outcome.
// The production decoder reads HEIC; tests substitute synthetic images.
type Decoder interface {
	// Decode returns the photo's pixels.
	Decode(data []byte) (image.Image, error)

	// ExtractGPS reads the photo's GPS metadata.
	ExtractGPS(data []byte) types.GPSResult
}

// NewHEICDecoder returns the HEIC codec-backed Decoder.
func NewHEICDecoder() Decoder {
	return heicDecoder{}
}

type heicDecoder struct{}

func (heicDecoder) Decode(data []byte) (image.Image, error) {
	return goheif.Decode(bytes.NewReader(data))
}

func (heicDecoder) ExtractGPS(data []byte) types.GPSResult {
	return gps.FromHEIC(bytes.NewReader(data))
}

// Plotter renders the location map for geolocated photos. The map stage
// sits behind an interface so batch tests run without the network.
type Plotter interface {
	Render(ctx context.Context, points []types.Point, dir string, w io.Writer) error
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int

	// Records holds per-photo outcomes in batch order.
	Records []types.PhotoRecord

	// Points holds the geolocated, successfully converted photos.
	Points []types.Point
}

// Total returns the total number of photos processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any photos failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ListPhotos returns the HEIC file names in dir in natural order, so
// IMG_2.heic sorts before IMG_10.heic.
func ListPhotos(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".heic") {
			names = append(names, e.Name())
		}
	}
	natsort.Sort(names)
	return names, nil
}

// OutputName maps an input HEIC name to its JPEG name.
func OutputName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".jpg"
}

// ConvertPhoto processes a single photo: read, extract GPS, decode, draw
// the footer, and write the JPEG. Photos without usable GPS are skipped
// unless cfg.ConvertAll is set, in which case they convert without a
// footer. The returned record carries the GPS outcome either way.
func ConvertPhoto(dec Decoder, r *footer.Renderer, inPath, outPath string, cfg types.ConvertConfig, w io.Writer) (types.PhotoRecord, types.ConversionStatus) {
	base := filepath.Base(inPath)
	rec := types.PhotoRecord{Source: base}

	data, err := os.ReadFile(inPath)
	if err != nil {
		rec.Error = err.Error()
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return rec, types.ConversionFailed
	}

	rec.GPS = dec.ExtractGPS(data)
	if !rec.GPS.HasFix() && !cfg.ConvertAll {
		fmt.Fprintf(w, "skipped: %s (%s)\n", base, rec.GPS.Reason)
		return rec, types.ConversionSkipped
	}

	img, err := dec.Decode(data)
	if err != nil {
		rec.Error = err.Error()
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return rec, types.ConversionFailed
	}

	var result image.Image = img
	if rec.GPS.HasFix() {
		result = r.Render(img, rec.GPS)
	}

	quality := cfg.JPEGQuality
	if quality <= 0 {
		quality = defaultJPEGQuality
	}
	if err := fsutil.WriteWith(outPath, func(wr io.Writer) error {
		return imaging.Encode(wr, result, imaging.JPEG, imaging.JPEGQuality(quality))
	}); err != nil {
		rec.Error = err.Error()
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return rec, types.ConversionFailed
	}

	rec.Output = filepath.Base(outPath)
	if rec.GPS.HasFix() {
		fmt.Fprintf(w, "converted: %s\n", base)
	} else {
		fmt.Fprintf(w, "converted: %s (no footer)\n", base)
	}
	return rec, types.ConversionDone
}

// ConvertBatch converts every HEIC photo in inDir into outDir, then writes
// the manifest and, when anything is geolocated, the location map. It
// continues after individual photo failures. The manifest is written even
// when zero photos carry GPS data; the map is not.
func ConvertBatch(ctx context.Context, dec Decoder, r *footer.Renderer, p Plotter, cfg types.ConvertConfig, inDir, outDir string, w io.Writer) (BatchResult, error) {
	var result BatchResult

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return result, fmt.Errorf("creating output directory: %w", err)
	}

	names, err := ListPhotos(inDir)
	if err != nil {
		return result, err
	}

	var entries []manifest.Entry
	for _, name := range names {
		inPath := filepath.Join(inDir, name)
		outPath := filepath.Join(outDir, OutputName(name))
		rec, status := ConvertPhoto(dec, r, inPath, outPath, cfg, w)
		result.Records = append(result.Records, rec)
		switch status {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionSkipped:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
		if status == types.ConversionDone && rec.GPS.HasFix() {
			entries = append(entries, manifest.Entry{Name: rec.Output, Lat: rec.GPS.Lat, Lon: rec.GPS.Lon})
			result.Points = append(result.Points, types.Point{Lat: rec.GPS.Lat, Lon: rec.GPS.Lon, Name: rec.Output})
		}
	}

	manifestPath := filepath.Join(outDir, manifest.FileName)
	if err := manifest.Write(manifestPath, entries); err != nil {
		return result, err
	}
	fmt.Fprintf(w, "manifest: %s (%d entries)\n", manifestPath, len(entries))

	if len(result.Points) > 0 && !cfg.NoMap && p != nil {
		if err := p.Render(ctx, result.Points, outDir, w); err != nil {
			return result, fmt.Errorf("rendering map: %w", err)
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())

	if cfg.WriteReport {
		if err := WriteReport(filepath.Join(outDir, ReportFileName), inDir, outDir, result); err != nil {
			return result, err
		}
	}

	return result, nil
}
