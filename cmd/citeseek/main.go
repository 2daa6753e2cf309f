// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the citeseek CLI, the hybrid
// citation metadata resolution engine: it takes scraped source listings
// and enriches them into citable bibliographic records.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citeseek/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys and contact addresses loaded from
// .secrets/ at startup.
var loadedSecrets secrets.Store

// rootCmd is the base command for the citeseek CLI.
var rootCmd = &cobra.Command{
	Use:   "citeseek",
	Short: "Resolve scraped source listings into citation metadata",
	Long: `citeseek enriches scraped source listings (titles, URLs, filenames) into
full bibliographic records. Each record runs through an ordered fallback
chain: embedded identifiers, publisher URL shapes, DOI discovery,
author-year constrained search, and plain title search across CrossRef,
OpenAlex, Semantic Scholar, arXiv, and PubMed.

Resolved batches can be exported as CSL-YAML bibliographies, saved as
YAML run reports, or stored in a local SQLite library.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", s.Keys())
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./citeseek.yaml or ~/.config/citeseek/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "minimum log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log output format (console or json)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("citeseek")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "citeseek"))
		}
	}

	viper.SetEnvPrefix("CITESEEK")
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
