// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citeseek/pkg/types"
)

// RunReport is the on-disk record of one batch resolution pass: the
// collection it ran over, the tallies, and every enriched record. A saved
// report can be reloaded without re-querying any provider.
type RunReport struct {
	Collection string                 `yaml:"collection,omitempty"`
	Summary    RunSummary             `yaml:"summary"`
	Records    []types.EnrichedRecord `yaml:"records"`
}

// RunSummary holds the pass tallies and a timestamp.
type RunSummary struct {
	Total     int       `yaml:"total"`
	Success   int       `yaml:"success"`
	Partial   int       `yaml:"partial"`
	Failed    int       `yaml:"failed"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteReport saves a batch result as a YAML run report.
func WriteReport(path, collection string, result types.BatchResult) error {
	report := RunReport{
		Collection: collection,
		Summary: RunSummary{
			Total:     result.Total(),
			Success:   result.Success,
			Partial:   result.Partial,
			Failed:    result.Failed,
			Timestamp: time.Now(),
		},
		Records: result.Records,
	}

	data, err := yaml.Marshal(&report)
	if err != nil {
		return fmt.Errorf("marshaling run report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadReport loads a previously saved run report.
func ReadReport(path string) (*RunReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run report: %w", err)
	}
	var report RunReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parsing run report: %w", err)
	}
	return &report, nil
}

// ReadRecords loads the input records for a pass from a YAML file: either
// a bare list of records or a previously saved run report, whose enriched
// records are reduced back to their inputs.
func ReadRecords(path string) ([]types.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading records file: %w", err)
	}

	var records []types.Record
	if err := yaml.Unmarshal(data, &records); err == nil && len(records) > 0 {
		return records, nil
	}

	var report RunReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parsing records file: %w", err)
	}
	records = make([]types.Record, len(report.Records))
	for i, rec := range report.Records {
		records[i] = rec.Record
	}
	return records, nil
}
