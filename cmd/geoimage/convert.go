package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/geoimage/internal/basemap"
	"github.com/pdiddy/geoimage/internal/convert"
	"github.com/pdiddy/geoimage/internal/footer"
	"github.com/pdiddy/geoimage/internal/plot"
	"github.com/pdiddy/geoimage/pkg/types"
)

const (
	defaultFontPath     = "fonts/Arimo-Regular.ttf"
	defaultJPEGQuality  = 75
	defaultZoom         = 14
	defaultCanvasSize   = 800
	defaultTimeout      = 30 * time.Second
	defaultTileInterval = 100 * time.Millisecond
	defaultUserAgent    = "geoimage/0.1"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input-dir> <output-dir>",
	Short: "Convert a folder of HEIC photos to geotagged JPEGs",
	Long: `Convert reads every .heic file in the input directory in natural order,
writes JPEGs with a coordinate footer for geolocated photos, and finishes
with manifest.html (Google Maps links) plus map.png (satellite map of the
photo locations) in the output directory.

A missing footer font aborts the run before any photo is processed; a
single unreadable photo is logged and skipped.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("font", "", "TrueType font for the footer and map labels (default "+defaultFontPath+")")
	convertCmd.Flags().Int("quality", 0, "JPEG output quality, 1-100 (default 75)")
	convertCmd.Flags().Bool("convert-all", false, "also convert photos without GPS metadata (no footer)")
	convertCmd.Flags().Bool("no-map", false, "skip rendering map.png")
	convertCmd.Flags().Bool("report", false, "write a report.yaml batch report to the output directory")
	convertCmd.Flags().Int("zoom", 0, "map tile zoom level (default 14)")
	convertCmd.Flags().Int("map-size", 0, "maximum map edge in pixels (default 800)")
	convertCmd.Flags().String("tile-url", "", "custom tile URL template with {z}, {x}, {y} placeholders")
	convertCmd.Flags().Duration("tile-interval", 0, "minimum delay between tile requests (default 100ms)")
	convertCmd.Flags().Duration("timeout", 0, "HTTP request timeout for tile downloads (default 30s)")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	inDir, outDir := args[0], args[1]

	cfg := types.ConvertConfig{
		FontPath:    stringSetting(cmd, "font", "font", defaultFontPath),
		JPEGQuality: intSetting(cmd, "quality", "quality", defaultJPEGQuality),
		ConvertAll:  boolSetting(cmd, "convert-all", "convert_all"),
		NoMap:       boolSetting(cmd, "no-map", "no_map"),
		WriteReport: boolSetting(cmd, "report", "report"),
	}

	// The footer font is a hard requirement: fail before touching photos.
	renderer, err := footer.NewRenderer(cfg.FontPath)
	if err != nil {
		return err
	}

	var plotter convert.Plotter
	if !cfg.NoMap {
		mapCfg := mapConfig(cmd, cfg.FontPath)
		plotter = plot.NewRenderer(basemap.NewClient(mapCfg), mapCfg)
	}

	result, err := convert.ConvertBatch(cmd.Context(), convert.NewHEICDecoder(), renderer, plotter, cfg, inDir, outDir, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d photo(s) failed conversion", result.Failed)
	}
	return nil
}

func mapConfig(cmd *cobra.Command, fontPath string) types.MapConfig {
	return types.MapConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   durationSetting(cmd, "timeout", "timeout", defaultTimeout),
			UserAgent: defaultUserAgent,
		},
		Zoom:         intSetting(cmd, "zoom", "zoom", defaultZoom),
		CanvasSize:   intSetting(cmd, "map-size", "map_size", defaultCanvasSize),
		TileURL:      stringSetting(cmd, "tile-url", "tile_url", ""),
		TileInterval: durationSetting(cmd, "tile-interval", "tile_interval", defaultTileInterval),
		FontPath:     fontPath,
	}
}

// Flag values win over config file values, which win over built-in
// defaults. Zero flag values count as unset.

func stringSetting(cmd *cobra.Command, flag, key, fallback string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}

func intSetting(cmd *cobra.Command, flag, key string, fallback int) int {
	if v, _ := cmd.Flags().GetInt(flag); v != 0 {
		return v
	}
	if v := viper.GetInt(key); v != 0 {
		return v
	}
	return fallback
}

func durationSetting(cmd *cobra.Command, flag, key string, fallback time.Duration) time.Duration {
	if v, _ := cmd.Flags().GetDuration(flag); v != 0 {
		return v
	}
	if v := viper.GetDuration(key); v != 0 {
		return v
	}
	return fallback
}

func boolSetting(cmd *cobra.Command, flag, key string) bool {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetBool(flag)
		return v
	}
	return viper.GetBool(key)
}
