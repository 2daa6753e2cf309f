// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolver

import "github.com/pdiddy/citeseek/pkg/types"

// merge overlays a winning candidate onto the input record. Input fields
// are never replaced by empty candidate values: a provider that returns
// no URL must not erase the scraped one.
func merge(rec types.Record, cand *types.Candidate) types.EnrichedRecord {
	out := types.EnrichedRecord{Record: rec}

	if cand.Title != "" {
		out.Title = cand.Title
	}
	if cand.URL != "" {
		out.URL = cand.URL
	}

	out.Identifier = cand.Identifier.Value
	out.Authors = cand.Authors
	out.Year = cand.Year
	out.Abstract = cand.Abstract
	out.Venue = cand.Venue
	out.Volume = cand.Volume
	out.Issue = cand.Issue
	out.Pages = cand.Pages
	out.DOI = cand.DOI
	out.Publisher = cand.Publisher
	out.Extras = cand.Extras

	return out
}

// unresolved produces the terminal output for a record no strategy could
// resolve: the input passed through untouched with zero confidence.
func unresolved(rec types.Record) types.EnrichedRecord {
	return types.EnrichedRecord{
		Record:     rec,
		Confidence: 0,
		Method:     "none",
		Resolution: types.Unresolved,
	}
}
