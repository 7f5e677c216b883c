// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// GPSStatus classifies the outcome of reading GPS metadata from a photo.
type GPSStatus string

const (
	// GPSFound means both coordinates decoded successfully.
	GPSFound GPSStatus = "found"

	// GPSAbsent means the photo carries no GPS block, or the required
	// latitude/longitude tags are missing from it.
	GPSAbsent GPSStatus = "absent"

	// GPSMalformed means GPS tags are present but could not be decoded.
	GPSMalformed GPSStatus = "malformed"
)

// GPSResult is the decoded GPS position of a photo, or the reason there
// isn't one. Lat and Lon are signed decimal degrees (south and west
// negative) and are only meaningful when Status is GPSFound.
type GPSResult struct {
	// Status classifies the outcome: found, absent, or malformed.
	Status GPSStatus `json:"status" yaml:"status"`

	// Lat is the latitude in decimal degrees.
	Lat float64 `json:"lat,omitempty" yaml:"lat,omitempty"`

	// Lon is the longitude in decimal degrees.
	Lon float64 `json:"lon,omitempty" yaml:"lon,omitempty"`

	// Reason describes why coordinates are unavailable. Empty when found.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// HasFix reports whether the result carries usable coordinates.
func (r GPSResult) HasFix() bool {
	return r.Status == GPSFound
}

// PhotoRecord describes one input photo's trip through the batch.
type PhotoRecord struct {
	// Source is the input file name (base name, not a path).
	Source string `json:"source" yaml:"source"`

	// Output is the produced JPEG file name. Empty when the photo was
	// skipped or failed.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// GPS is the decoded position outcome for the photo.
	GPS GPSResult `json:"gps" yaml:"gps"`

	// Error records a conversion failure message. Empty on success.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Point is a geolocated photo to plot on the map.
type Point struct {
	// Lat is the latitude in decimal degrees.
	Lat float64 `json:"lat" yaml:"lat"`

	// Lon is the longitude in decimal degrees.
	Lon float64 `json:"lon" yaml:"lon"`

	// Name is the photo's output file name, used to derive the map label.
	Name string `json:"name" yaml:"name"`
}

// ConversionStatus describes the outcome of converting a single photo.
type ConversionStatus string

const (
	// ConversionDone means the JPEG was produced.
	ConversionDone ConversionStatus = "done"

	// ConversionSkipped means the photo was left unconverted, typically
	// because it lacks usable GPS metadata.
	ConversionSkipped ConversionStatus = "skipped"

	// ConversionFailed means decoding or encoding the photo failed.
	ConversionFailed ConversionStatus = "failed"
)
