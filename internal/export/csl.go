// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders batch results as CSL-YAML bibliographies and
// YAML run reports.
package export

import (
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citeseek/pkg/types"
)

// CSLItem is one bibliographic entry in CSL (Citation Style Language)
// format. Field names follow the CSL-JSON/CSL-YAML schema so output is
// consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	Abstract       string    `yaml:"abstract,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Volume         string    `yaml:"volume,omitempty"`
	Issue          string    `yaml:"issue,omitempty"`
	Page           string    `yaml:"page,omitempty"`
	Publisher      string    `yaml:"publisher,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
	Note           string    `yaml:"note,omitempty"`
}

// CSLName is a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate is a date in CSL date-parts format.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// FormatCSL writes the batch's enriched records as a CSL-YAML list.
// Unresolved records are skipped; they have nothing citable.
func FormatCSL(result types.BatchResult, w io.Writer) error {
	var items []CSLItem
	for _, rec := range result.Records {
		if rec.Resolution == types.Unresolved {
			continue
		}
		items = append(items, toCSLItem(rec))
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts one enriched record to a CSL item. The resolution
// method and confidence go into the note field for auditability.
func toCSLItem(rec types.EnrichedRecord) CSLItem {
	item := CSLItem{
		ID:             cslID(rec),
		Type:           cslType(rec),
		Title:          rec.Title,
		Abstract:       rec.Abstract,
		ContainerTitle: rec.Venue,
		Volume:         rec.Volume,
		Issue:          rec.Issue,
		Page:           rec.Pages,
		Publisher:      rec.Publisher,
		DOI:            rec.DOI,
		URL:            rec.URL,
		Note:           fmt.Sprintf("resolved via %s (confidence %.2f)", rec.Method, rec.Confidence),
	}

	for _, a := range rec.Authors {
		item.Author = append(item.Author, parseAuthorName(a))
	}

	if rec.Year > 0 {
		item.Issued = &CSLDate{DateParts: [][]int{{rec.Year}}}
	}

	return item
}

func cslID(rec types.EnrichedRecord) string {
	if rec.DOI != "" {
		return rec.DOI
	}
	if rec.Identifier != "" {
		return rec.Identifier
	}
	return rec.Title
}

func cslType(rec types.EnrichedRecord) string {
	switch rec.Type {
	case types.RecordVideo:
		return "motion_picture"
	case types.RecordWebsite:
		return "webpage"
	default:
		if rec.Venue != "" {
			return "article-journal"
		}
		return "article"
	}
}

// parseAuthorName splits a full name into CSL family/given parts on the
// last space. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
