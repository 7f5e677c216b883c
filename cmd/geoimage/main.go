// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the geoimage CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the geoimage CLI.
var rootCmd = &cobra.Command{
	Use:   "geoimage",
	Short: "Convert HEIC photos to geotagged JPEGs with a location map",
	Long: `geoimage converts a folder of HEIC photos to JPEG, stamps each
geolocated photo with a coordinate footer, and summarizes the batch with
an HTML manifest of map links and a rendered satellite map of the photo
locations.

Photos without usable GPS metadata are skipped (see convert --convert-all
to include them without a footer). Use inspect to examine a photo's GPS
metadata without converting anything.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./geoimage.yaml or ~/.config/geoimage/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("geoimage")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "geoimage"))
		}
	}

	viper.SetEnvPrefix("GEOIMAGE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
