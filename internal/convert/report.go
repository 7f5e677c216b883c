// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/geoimage/internal/fsutil"
	"github.com/pdiddy/geoimage/pkg/types"
)

// ReportFileName is the batch report name within the output directory.
const ReportFileName = "report.yaml"

// Report is the machine-readable record of one batch run.
type Report struct {
	// GeneratedAt is the report creation time in UTC.
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	// InputDir is the directory the batch read photos from.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir is the directory the batch wrote into.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Summary aggregates the batch counters.
	Summary ReportSummary `json:"summary" yaml:"summary"`

	// Photos holds the per-photo outcomes in batch order.
	Photos []types.PhotoRecord `json:"photos" yaml:"photos"`
}

// ReportSummary aggregates batch counters for the report.
type ReportSummary struct {
	// Converted is the number of photos written as JPEG.
	Converted int `json:"converted" yaml:"converted"`

	// Skipped is the number of photos passed over for missing GPS.
	Skipped int `json:"skipped" yaml:"skipped"`

	// Failed is the number of photos that errored.
	Failed int `json:"failed" yaml:"failed"`

	// Geolocated is the number of converted photos with a GPS fix.
	Geolocated int `json:"geolocated" yaml:"geolocated"`
}

// WriteReport writes the YAML report for a finished batch.
func WriteReport(path, inDir, outDir string, res BatchResult) error {
	rep := Report{
		GeneratedAt: time.Now().UTC(),
		InputDir:    inDir,
		OutputDir:   outDir,
		Summary: ReportSummary{
			Converted:  res.Converted,
			Skipped:    res.Skipped,
			Failed:     res.Failed,
			Geolocated: len(res.Points),
		},
		Photos: res.Records,
	}

	data, err := yaml.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	return fsutil.WriteFile(path, data)
}
