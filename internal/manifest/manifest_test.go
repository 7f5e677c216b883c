// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderExact(t *testing.T) {
	got, err := Render([]Entry{{Name: "IMG_0001.jpg", Lat: 40.5, Lon: -70.25}})
	require.NoError(t, err)

	want := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Photo locations</title>
</head>
<body>
  <h1>Photo locations</h1>
  <ul>
    <li><a href="https://www.google.com/maps?q=40.5,-70.25">IMG_0001.jpg</a></li>
  </ul>
</body>
</html>
`
	assert.Equal(t, want, string(got))
}

func TestWriteStructure(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	entries := []Entry{
		{Name: "IMG_0001.jpg", Lat: 40.44611111, Lon: -79.94861111},
		{Name: "IMG_0002.jpg", Lat: -33.8688, Lon: 151.2093},
	}
	require.NoError(t, Write(path, entries))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	require.NoError(t, err)

	assert.Equal(t, "en", doc.Find("html").AttrOr("lang", ""))
	assert.Equal(t, "UTF-8", doc.Find("meta[charset]").AttrOr("charset", ""))
	assert.Equal(t, "Photo locations", doc.Find("title").Text())
	assert.Equal(t, "Photo locations", doc.Find("h1").Text())

	links := doc.Find("body ul li a")
	require.Equal(t, 2, links.Length())

	assert.Equal(t, "IMG_0001.jpg", links.First().Text())
	assert.Equal(t, "https://www.google.com/maps?q=40.44611111,-79.94861111",
		links.First().AttrOr("href", ""))

	assert.Equal(t, "IMG_0002.jpg", links.Last().Text())
	assert.Equal(t, "https://www.google.com/maps?q=-33.8688,151.2093",
		links.Last().AttrOr("href", ""))
}

func TestWriteEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Write(path, nil))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	require.NoError(t, err)

	assert.Equal(t, "Photo locations", doc.Find("h1").Text())
	assert.Equal(t, 0, doc.Find("li").Length())
}

func TestWriteIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	entries := []Entry{
		{Name: "a.jpg", Lat: 1.5, Lon: 2.5},
		{Name: "b.jpg", Lat: -3.25, Lon: -4.75},
	}

	require.NoError(t, Write(path, entries))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, Write(path, entries))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
