// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package basemap

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/time/rate"

	"github.com/pdiddy/geoimage/internal/httputil"
	"github.com/pdiddy/geoimage/pkg/types"
)

// Provider describes a tile server.
type Provider struct {
	// Name identifies the provider in logs.
	Name string

	// URLTemplate is the tile URL with {z}, {x} and {y} placeholders.
	URLTemplate string

	// Attribution is the credit line drawn on rendered maps.
	Attribution string
}

// EsriWorldImagery is the default satellite imagery provider.
var EsriWorldImagery = Provider{
	Name:        "Esri World Imagery",
	URLTemplate: "https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}",
	Attribution: "Source: Esri, Maxar, Earthstar Geographics",
}

// URL renders the provider's template for one tile.
func (p Provider) URL(t Tile) string {
	r := strings.NewReplacer(
		"{z}", strconv.Itoa(t.Z),
		"{x}", strconv.Itoa(t.X),
		"{y}", strconv.Itoa(t.Y),
	)
	return r.Replace(p.URLTemplate)
}

// blankShade fills regions the server has no imagery for.
var blankShade = color.NRGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}

// Client fetches basemap tiles politely: rate-limited, identified by
// User-Agent, with retries on transient server errors.
type Client struct {
	provider Provider
	http     *http.Client
	limiter  *rate.Limiter
	agent    string
}

// NewClient builds a tile client for cfg. A TileURL override replaces the
// default provider.
func NewClient(cfg types.MapConfig) *Client {
	p := EsriWorldImagery
	if cfg.TileURL != "" {
		p = Provider{Name: "custom", URLTemplate: cfg.TileURL}
	}
	interval := cfg.TileInterval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		provider: p,
		http:     &http.Client{Timeout: timeout},
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		agent:    cfg.UserAgent,
	}
}

// Attribution returns the provider's credit line.
func (c *Client) Attribution() string {
	return c.provider.Attribution
}

// Fetch retrieves one tile, waiting for the rate limiter first. A nil
// image with nil error means the server has nothing usable there; callers
// paint those regions blank.
func (c *Client) Fetch(ctx context.Context, t Tile) (image.Image, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.provider.URL(t), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.agent)

	resp, err := httputil.DoWithRetry(ctx, c.http, req, 0)
	if err != nil {
		return nil, fmt.Errorf("fetching tile %d/%d/%d: %w", t.Z, t.X, t.Y, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		io.Copy(io.Discard, resp.Body)
		return nil, nil
	case resp.StatusCode != http.StatusOK:
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("tile %d/%d/%d: HTTP %d", t.Z, t.X, t.Y, resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		// Undecodable bytes are treated like a missing tile.
		return nil, nil
	}
	return img, nil
}

// Stitch renders every tile overlapping rect at zoom z into one image
// whose origin is rect's top-left corner. Missing tiles are logged to w
// and left blank; transport and server failures abort the stitch.
func (c *Client) Stitch(ctx context.Context, rect PixelRect, z int, w io.Writer) (*image.NRGBA, error) {
	width := int(math.Round(rect.Width()))
	height := int(math.Round(rect.Height()))
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("empty stitch region %dx%d", width, height)
	}

	canvas := imaging.New(width, height, blankShade)
	originX := int(math.Round(rect.MinX))
	originY := int(math.Round(rect.MinY))

	minX, minY, maxX, maxY := Cover(rect, z)
	for ty := minY; ty <= maxY; ty++ {
		for tx := minX; tx <= maxX; tx++ {
			tile := Tile{Z: z, X: tx, Y: ty}
			img, err := c.Fetch(ctx, tile)
			if err != nil {
				return nil, err
			}
			if img == nil {
				fmt.Fprintf(w, "tile unavailable: %d/%d/%d\n", z, tx, ty)
				continue
			}
			pos := image.Pt(tx*TileSize-originX, ty*TileSize-originY)
			dst := image.Rectangle{Min: pos, Max: pos.Add(img.Bounds().Size())}
			draw.Draw(canvas, dst, img, img.Bounds().Min, draw.Src)
		}
	}
	return canvas, nil
}
