package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "geoimage/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ConvertConfig holds settings for the photo conversion stage.
type ConvertConfig struct {
	// FontPath is the TrueType font used for footer text. The file must
	// exist; conversion refuses to start without it.
	FontPath string `json:"font" yaml:"font"`

	// JPEGQuality is the encoder quality for output JPEGs, 1-100 (default 75).
	JPEGQuality int `json:"jpeg_quality" yaml:"jpeg_quality"`

	// ConvertAll also converts photos without usable GPS metadata. Such
	// files get a plain JPEG with no footer and never appear in the
	// manifest or on the map.
	ConvertAll bool `json:"convert_all" yaml:"convert_all"`

	// NoMap disables rendering of the location map.
	NoMap bool `json:"no_map" yaml:"no_map"`

	// WriteReport emits a report.yaml in the output directory describing
	// the batch outcome per photo.
	WriteReport bool `json:"write_report" yaml:"write_report"`
}

// MapConfig holds settings for the location map stage.
type MapConfig struct {
	HTTPConfig `yaml:",inline"`

	// Zoom is the web-mercator zoom level for basemap tiles (default 14).
	Zoom int `json:"zoom" yaml:"zoom"`

	// CanvasSize caps the longer output dimension in pixels (default 800).
	// Stitched basemaps larger than this are scaled down before drawing.
	CanvasSize int `json:"canvas_size" yaml:"canvas_size"`

	// TileURL overrides the tile server URL template. The template uses
	// {z}, {x} and {y} placeholders. Empty selects the default provider.
	TileURL string `json:"tile_url,omitempty" yaml:"tile_url,omitempty"`

	// TileInterval is the minimum delay between tile requests (default 100ms).
	TileInterval time.Duration `json:"tile_interval" yaml:"tile_interval"`

	// FontPath is the TrueType font used for marker labels and attribution.
	FontPath string `json:"font" yaml:"font"`
}
