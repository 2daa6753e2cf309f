// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citeseek/internal/batch"
	"github.com/pdiddy/citeseek/internal/export"
	"github.com/pdiddy/citeseek/internal/logging"
	"github.com/pdiddy/citeseek/internal/resolver"
	"github.com/pdiddy/citeseek/internal/store"
	"github.com/pdiddy/citeseek/pkg/types"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <records.yaml>",
	Short: "Resolve a batch of scraped records into citation metadata",
	Long: `Resolve reads a YAML file of scraped records (a bare list of title/url
entries, or a previous run report) and runs each through the resolution
chain. Records are processed sequentially with a fixed delay between
them; a failing record never aborts the batch.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().String("collection", "", "collection name (default: records file basename)")
	resolveCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	resolveCmd.Flags().Duration("delay", 0, "delay between consecutive records (default 1s)")
	resolveCmd.Flags().String("csl", "", "write a CSL-YAML bibliography to this path")
	resolveCmd.Flags().String("report", "", "write a YAML run report to this path")
	resolveCmd.Flags().Bool("save", false, "save the batch to the local library")
	resolveCmd.Flags().String("library-dir", "library", "local library directory")
	resolveCmd.Flags().Bool("json", false, "print enriched records as JSON to stdout")

	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	records, err := export.ReadRecords(args[0])
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no records in %s", args[0])
	}

	level, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")
	log := logging.New(types.LoggingConfig{Level: level, Format: format}, os.Stderr)

	cfg := types.DefaultResolverConfig()
	if timeout, _ := cmd.Flags().GetDuration("timeout"); timeout > 0 {
		cfg.Timeout = timeout
	}
	cfg.CrossRefMailto = loadedSecrets.Get("crossref-mailto", cfg.CrossRefMailto)
	cfg.OpenAlexEmail = loadedSecrets.Get("openalex-email", cfg.OpenAlexEmail)
	cfg.SemanticScholarAPIKey = loadedSecrets.Get("semantic-scholar-api-key", cfg.SemanticScholarAPIKey)
	cfg.PubMedAPIKey = loadedSecrets.Get("pubmed-api-key", cfg.PubMedAPIKey)

	delay, _ := cmd.Flags().GetDuration("delay")
	client := &http.Client{Timeout: cfg.Timeout}

	r := resolver.New(cfg, client, log)
	runner := batch.NewRunner(r, types.BatchConfig{RequestDelay: delay}, log)

	start := time.Now()
	result := runner.Run(cmd.Context(), records, func(p batch.Progress) {
		if p.Final {
			return
		}
		fmt.Printf("[%d/%d] %-7s %s (%s)\n", p.Current, p.Total, p.Outcome, truncate(p.Title, 60), p.Method)
	})

	fmt.Printf("\n%d records in %s: %d success, %d partial, %d failed\n",
		result.Total(), time.Since(start).Round(time.Second),
		result.Success, result.Partial, result.Failed)

	collection, _ := cmd.Flags().GetString("collection")
	if collection == "" {
		base := filepath.Base(args[0])
		collection = strings.TrimSuffix(base, filepath.Ext(base))
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result.Records); err != nil {
			return fmt.Errorf("encoding JSON output: %w", err)
		}
	}

	if cslPath, _ := cmd.Flags().GetString("csl"); cslPath != "" {
		f, err := os.Create(cslPath)
		if err != nil {
			return fmt.Errorf("creating bibliography file: %w", err)
		}
		if err := export.FormatCSL(result, f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote bibliography: %s\n", cslPath)
	}

	if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
		if err := export.WriteReport(reportPath, collection, result); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote run report: %s\n", reportPath)
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		libraryDir, _ := cmd.Flags().GetString("library-dir")
		s, err := store.Open(libraryDir)
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.SaveBatch(cmd.Context(), collection, result); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved collection %q to %s\n", collection, libraryDir)
	}

	if result.HasFailures() {
		return fmt.Errorf("%d record(s) failed resolution", result.Failed)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
