// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest writes the HTML index linking converted photos to their
// map locations.
package manifest

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"github.com/pdiddy/geoimage/internal/fsutil"
)

// FileName is the manifest document name within the output directory.
const FileName = "manifest.html"

// Entry is one geolocated photo in the manifest, in display order.
type Entry struct {
	// Name is the display text of the link, the output JPEG file name.
	Name string

	// Lat and Lon are signed decimal degrees.
	Lat float64
	Lon float64
}

// URL returns the Google Maps search link for the entry's coordinates.
func (e Entry) URL() string {
	return "https://www.google.com/maps?q=" + formatCoord(e.Lat) + "," + formatCoord(e.Lon)
}

// formatCoord renders a coordinate with the shortest digits that round-trip,
// keeping manifest output stable across runs.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var tmpl = template.Must(template.New("manifest").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Photo locations</title>
</head>
<body>
  <h1>Photo locations</h1>
  <ul>
{{range .}}    <li><a href="{{.URL}}">{{.Name}}</a></li>
{{end}}  </ul>
</body>
</html>
`))

// Render produces the manifest document for entries. The same entries
// always produce identical bytes.
func Render(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, entries); err != nil {
		return nil, fmt.Errorf("rendering manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// Write renders the manifest for entries and atomically replaces path.
// An empty entry list still produces a valid document with an empty list.
func Write(path string, entries []Entry) error {
	data, err := Render(entries)
	if err != nil {
		return err
	}
	return fsutil.WriteFile(path, data)
}
