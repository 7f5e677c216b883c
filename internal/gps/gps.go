// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gps decodes GPS positions from photo EXIF metadata.
//
// Results are classified three ways: found (both coordinates decoded),
// absent (no GPS block, or the latitude/longitude tags are missing), and
// malformed (tags present but undecodable). Callers decide what each class
// means for their pipeline; nothing here is fatal.
package gps

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/jdeng/goheif"
	"github.com/rwcarlsen/goexif/exif"

	"github.com/pdiddy/geoimage/pkg/types"
)

// exifHeader prefixes EXIF payloads embedded in image containers.
var exifHeader = []byte("Exif\x00\x00")

// Found builds a result carrying decoded coordinates.
func Found(lat, lon float64) types.GPSResult {
	return types.GPSResult{Status: types.GPSFound, Lat: lat, Lon: lon}
}

// Absent builds a result for a photo without GPS metadata.
func Absent(reason string) types.GPSResult {
	return types.GPSResult{Status: types.GPSAbsent, Reason: reason}
}

// Malformed builds a result for GPS metadata that would not decode.
func Malformed(reason string) types.GPSResult {
	return types.GPSResult{Status: types.GPSMalformed, Reason: reason}
}

// FromFile reads a HEIC file and decodes its GPS position. The error is
// non-nil only when the file cannot be opened; metadata problems are
// reported through the result's status.
func FromFile(path string) (types.GPSResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.GPSResult{}, err
	}
	defer f.Close()
	return FromHEIC(f), nil
}

// FromHEIC extracts the EXIF payload from a HEIC container and decodes the
// GPS position from it. A container without an EXIF item yields an absent
// result.
func FromHEIC(ra io.ReaderAt) types.GPSResult {
	payload, err := goheif.ExtractExif(ra)
	if err != nil {
		return Absent(fmt.Sprintf("no EXIF block: %v", err))
	}
	if len(payload) == 0 {
		return Absent("empty EXIF block")
	}
	return FromEXIF(payload)
}

// FromEXIF decodes the GPS position from a raw EXIF payload. The payload
// may be a bare TIFF stream, an "Exif\0\0"-prefixed one, or carry container
// framing ahead of the prefix.
func FromEXIF(payload []byte) types.GPSResult {
	data, ok := tiffPayload(payload)
	if !ok {
		return Malformed("no TIFF header in EXIF payload")
	}

	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return Malformed(fmt.Sprintf("decoding EXIF: %v", err))
	}

	lat, present, err := coordinate(x, exif.GPSLatitude, exif.GPSLatitudeRef)
	if err != nil {
		return Malformed(fmt.Sprintf("latitude: %v", err))
	}
	if !present {
		return Absent("no GPSLatitude tag")
	}

	lon, present, err := coordinate(x, exif.GPSLongitude, exif.GPSLongitudeRef)
	if err != nil {
		return Malformed(fmt.Sprintf("longitude: %v", err))
	}
	if !present {
		return Absent("no GPSLongitude tag")
	}

	return Found(lat, lon)
}

// FromDMS converts degree, minute and second components to signed decimal
// degrees. The value is negated unless ref names a positive hemisphere
// ("N", "E", or empty, the convention when the reference tag is omitted).
func FromDMS(deg, min, sec float64, ref string) float64 {
	v := deg + min/60 + sec/3600
	switch ref {
	case "", "N", "E":
		return v
	}
	return -v
}

// coordinate reads one DMS coordinate and its hemisphere reference. The
// present return is false when the value tag is missing entirely. A missing
// reference tag defaults to the positive hemisphere.
func coordinate(x *exif.Exif, valName, refName exif.FieldName) (val float64, present bool, err error) {
	tag, err := x.Get(valName)
	if err != nil {
		if exif.IsTagNotPresentError(err) {
			return 0, false, nil
		}
		return 0, false, err
	}
	if tag.Count < 3 {
		return 0, false, fmt.Errorf("%s holds %d rationals, want 3", valName, tag.Count)
	}

	var parts [3]float64
	for i := range parts {
		num, den, ratErr := tag.Rat2(i)
		if ratErr != nil {
			return 0, false, fmt.Errorf("%s[%d]: %w", valName, i, ratErr)
		}
		if den == 0 {
			return 0, false, fmt.Errorf("%s[%d]: zero denominator", valName, i)
		}
		parts[i] = float64(num) / float64(den)
	}

	ref := ""
	refTag, refErr := x.Get(refName)
	switch {
	case refErr == nil:
		s, strErr := refTag.StringVal()
		if strErr != nil {
			return 0, false, fmt.Errorf("%s: %w", refName, strErr)
		}
		ref = s
	case exif.IsTagNotPresentError(refErr):
		// No reference tag; FromDMS treats empty as positive.
	default:
		return 0, false, fmt.Errorf("%s: %w", refName, refErr)
	}

	return FromDMS(parts[0], parts[1], parts[2], ref), true, nil
}

// tiffPayload locates the TIFF stream inside an EXIF payload.
func tiffPayload(b []byte) ([]byte, bool) {
	if isTIFFHeader(b) {
		return b, true
	}
	if i := bytes.Index(b, exifHeader); i >= 0 {
		rest := b[i+len(exifHeader):]
		if isTIFFHeader(rest) {
			return rest, true
		}
	}
	// Some writers frame the stream without the Exif prefix.
	for _, magic := range [][]byte{{'I', 'I', 0x2a, 0x00}, {'M', 'M', 0x00, 0x2a}} {
		if i := bytes.Index(b, magic); i >= 0 {
			return b[i:], true
		}
	}
	return nil, false
}

func isTIFFHeader(b []byte) bool {
	if len(b) < 4 {
		return false
	}
	return (b[0] == 'I' && b[1] == 'I' && b[2] == 0x2a && b[3] == 0x00) ||
		(b[0] == 'M' && b[1] == 'M' && b[2] == 0x00 && b[3] == 0x2a)
}
