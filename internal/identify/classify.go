// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package identify

import (
	"regexp"
	"strings"

	"github.com/pdiddy/citeseek/pkg/types"
)

// Kind is the advisory routing class a record falls into. It selects the
// strategy table and provider order; it never blocks fallthrough to the
// generic strategies.
type Kind string

const (
	KindVideo    Kind = "video"
	KindPreprint Kind = "preprint"
	KindFile     Kind = "file"
	KindAcademic Kind = "academic"
	KindWeb      Kind = "web"
	KindUnknown  Kind = "unknown"
)

var videoHosts = []string{"youtube.com", "youtu.be", "vimeo.com"}

var preprintMarkers = []string{"arxiv", "biorxiv", "medrxiv", "preprint"}

// yearToken matches a plausible publication year inside a title.
var yearToken = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// Classify inspects title and URL keywords and structure to pick a
// routing class. The checks are cheap string scans only.
func Classify(r types.Record) Kind {
	title := strings.ToLower(r.Title)
	url := strings.ToLower(r.URL)

	if r.Type == types.RecordVideo || containsAny(url, videoHosts) || strings.Contains(title, "- youtube") {
		return KindVideo
	}
	if containsAny(title, preprintMarkers) || containsAny(url, preprintMarkers) {
		return KindPreprint
	}
	if fileExtension.MatchString(title) {
		return KindFile
	}
	if yearToken.MatchString(title) && looksAcademic(title) {
		return KindAcademic
	}
	if r.URL != "" || len(r.Title) > 60 {
		return KindWeb
	}
	return KindUnknown
}

// looksAcademic is a rough structural check: academic titles tend to be
// long or carry a subtitle separator next to the year.
func looksAcademic(title string) bool {
	if len(title) > 40 {
		return true
	}
	return strings.ContainsAny(title, ":-") || strings.Contains(title, "et al")
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
