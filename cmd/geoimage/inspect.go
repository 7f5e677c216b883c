// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/geoimage/internal/gps"
	"github.com/pdiddy/geoimage/pkg/types"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <photos...>",
	Short: "Show the GPS metadata of HEIC photos",
	Long: `Inspect reads each photo's EXIF GPS block and prints the decoded
coordinates, or the reason none could be decoded, without converting
anything.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(inspectCmd)
}

// inspection pairs a photo path with its GPS outcome.
type inspection struct {
	File string          `json:"file"`
	GPS  types.GPSResult `json:"gps"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	results := make([]inspection, 0, len(args))
	failed := 0
	for _, path := range args {
		pos, err := gps.FromFile(path)
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "failed:  %s (%v)\n", path, err)
			continue
		}
		results = append(results, inspection{File: path, GPS: pos})
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			switch r.GPS.Status {
			case types.GPSFound:
				fmt.Printf("%s: %.5f, %.5f\n", r.File, r.GPS.Lat, r.GPS.Lon)
			case types.GPSMalformed:
				fmt.Printf("%s: malformed GPS (%s)\n", r.File, r.GPS.Reason)
			default:
				fmt.Printf("%s: no GPS (%s)\n", r.File, r.GPS.Reason)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d photo(s) could not be read", failed)
	}
	return nil
}
