// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolver

import (
	"regexp"
	"strings"

	"github.com/pdiddy/citeseek/pkg/types"
)

// urlPatterns maps publisher URL shapes to canonical identifiers. The
// table is ordered: specific hosts first, a generic embedded-DOI scan
// last. Constructed DOIs (nature.com slugs) follow the publisher's
// registration scheme and are verified by the DOI resolution that
// follows a match.
var urlPatterns = []struct {
	kind  types.IdentifierKind
	re    *regexp.Regexp
	build func(capture string) string
}{
	{
		kind: types.IdentArxiv,
		re:   regexp.MustCompile(`(?i)arxiv\.org/(?:abs|pdf)/(\d{4}\.\d{4,5})`),
	},
	{
		kind: types.IdentPubMed,
		re:   regexp.MustCompile(`(?i)pubmed\.ncbi\.nlm\.nih\.gov/(\d{1,9})`),
	},
	{
		// bioRxiv/medRxiv content URLs embed the full DOI with a
		// version suffix.
		kind: types.IdentDOI,
		re:   regexp.MustCompile(`(?i)(?:bio|med)rxiv\.org/content/(10\.1101/[^\s?#]+?)(?:v\d+)?(?:\.full)?(?:\.pdf)?$`),
	},
	{
		// nature.com article slugs map onto the 10.1038 prefix.
		kind:  types.IdentDOI,
		re:    regexp.MustCompile(`(?i)nature\.com/articles/([a-z0-9.-]+)`),
		build: func(slug string) string { return "10.1038/" + slug },
	},
	{
		kind: types.IdentDOI,
		re:   regexp.MustCompile(`(?i)(?:dx\.)?doi\.org/(10\.\d{4,9}/[^\s?#]+)`),
	},
	{
		// Any DOI embedded elsewhere in the path.
		kind: types.IdentDOI,
		re:   regexp.MustCompile(`\b(10\.\d{4,9}/[^\s"<>?#]+)`),
	},
}

// matchURL checks a source URL against the publisher pattern table and
// returns the implied identifier.
func matchURL(url string) (types.Identifier, bool) {
	if url == "" {
		return types.Identifier{}, false
	}
	for _, p := range urlPatterns {
		m := p.re.FindStringSubmatch(url)
		if m == nil {
			continue
		}
		value := m[1]
		if p.build != nil {
			value = p.build(value)
		}
		if p.kind == types.IdentDOI {
			value = strings.ToLower(value)
		}
		return types.Identifier{Kind: p.kind, Value: value}, true
	}
	return types.Identifier{}, false
}
