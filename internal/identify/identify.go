// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package identify extracts canonical identifiers from scraped titles and
// URLs, parses filename-shaped titles, and classifies records for
// strategy routing. It performs no I/O.
package identify

import (
	"regexp"
	"strings"

	"github.com/pdiddy/citeseek/pkg/types"
)

// identifierPatterns is the ordered extraction table. The first pattern
// that matches wins; extraction is deterministic, not scored. The title
// is scanned before the URL.
var identifierPatterns = []struct {
	kind types.IdentifierKind
	re   *regexp.Regexp
}{
	// DOI embedded in a resolver URL. Checked before the bare pattern so
	// query strings and fragments after the DOI are never captured.
	{types.IdentDOI, regexp.MustCompile(`(?i)doi\.org/(10\.\d{4,9}/[^\s"<>?#]+)`)},
	// Bare DOI anywhere in the text.
	{types.IdentDOI, regexp.MustCompile(`\b(10\.\d{4,9}/[^\s"<>?#]+)`)},
	// Explicit doi: marker.
	{types.IdentDOI, regexp.MustCompile(`(?i)\bdoi:\s*(10\.\d{4,9}/[^\s"<>?#]+)`)},
	// arXiv: marker or arxiv.org path.
	{types.IdentArxiv, regexp.MustCompile(`(?i)\barxiv:\s*(\d{4}\.\d{4,5})(?:v\d+)?`)},
	{types.IdentArxiv, regexp.MustCompile(`(?i)arxiv\.org/(?:abs|pdf)/(\d{4}\.\d{4,5})(?:v\d+)?`)},
	// PubMed article path.
	{types.IdentPubMed, regexp.MustCompile(`(?i)pubmed\.ncbi\.nlm\.nih\.gov/(\d{1,9})`)},
	// YouTube watch and short URLs.
	{types.IdentYouTube, regexp.MustCompile(`(?:youtube\.com/watch\?(?:[^\s"]*&)?v=|youtu\.be/)([A-Za-z0-9_-]{11})`)},
}

// trailingPunct matches punctuation a greedy DOI pattern drags along.
var trailingPunct = regexp.MustCompile(`[.,;:)\]]+$`)

// fileExtension matches a document file extension at the end of a title.
var fileExtension = regexp.MustCompile(`(?i)\.(pdf|epub|docx?|txt|html?)$`)

// Extract scans the title and then the URL against the identifier pattern
// table and returns the first match, normalized. It never fails; the
// second return value is false when nothing matches.
func Extract(title, url string) (types.Identifier, bool) {
	for _, src := range []string{title, url} {
		if src == "" {
			continue
		}
		for _, p := range identifierPatterns {
			m := p.re.FindStringSubmatch(src)
			if m == nil {
				continue
			}
			return types.Identifier{Kind: p.kind, Value: normalize(p.kind, m[1])}, true
		}
	}
	return types.Identifier{}, false
}

// normalize cleans up a captured identifier: DOIs are lower-cased and
// stripped of trailing punctuation and filename extensions picked up by
// the greedy pattern.
func normalize(kind types.IdentifierKind, value string) string {
	value = strings.TrimSpace(value)
	if kind != types.IdentDOI {
		return value
	}
	value = strings.ToLower(value)
	value = fileExtension.ReplaceAllString(value, "")
	value = trailingPunct.ReplaceAllString(value, "")
	return value
}

// StripExtension removes a trailing document file extension from a title,
// so filename-shaped titles can be used as search queries.
func StripExtension(title string) string {
	return strings.TrimSpace(fileExtension.ReplaceAllString(strings.TrimSpace(title), ""))
}
