// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package providers contains one client per external metadata source.
// Each client resolves a canonical identifier and/or searches by title,
// returning a normalized candidate or nothing.
//
// Convention: a nil candidate with a nil error means "no acceptable
// result" (not found, or the top hit fell below the provider's acceptance
// threshold). A non-nil error reports a transient failure — network
// trouble, a rate limit, a malformed payload — which callers treat
// exactly like "no result" within the current pass.
package providers

import (
	"context"
	"regexp"
	"strings"

	"github.com/pdiddy/citeseek/pkg/types"
)

// IdentifierResolver looks up a work by canonical identifier. A
// successful lookup is ground truth, not a guess; the orchestrator stamps
// the fixed identifier confidence on it.
type IdentifierResolver interface {
	Name() string
	Resolve(ctx context.Context, id string) (*types.Candidate, error)
}

// TitleSearcher searches a provider by free-text title and returns the
// top hit only, scored against the query title and filtered by the
// provider's acceptance threshold.
type TitleSearcher interface {
	Name() string
	SearchTitle(ctx context.Context, title string) (*types.Candidate, error)
}

// joinName combines given and family name parts as "given family". When
// only one part exists, whichever is present is used.
func joinName(given, family string) string {
	switch {
	case given == "":
		return family
	case family == "":
		return given
	default:
		return given + " " + family
	}
}

var markupTag = regexp.MustCompile(`<[^>]+>`)

// stripMarkup removes embedded markup tags (e.g. JATS in CrossRef
// abstracts) and collapses the remaining whitespace.
func stripMarkup(s string) string {
	return strings.Join(strings.Fields(markupTag.ReplaceAllString(s, " ")), " ")
}

// collapseSpace normalizes internal whitespace, including the hard-wrapped
// newlines arXiv puts inside titles and summaries.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
