// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolver orchestrates the ordered fallback chain that turns one
// scraped record into one enriched record. Strategies run cheapest and
// most precise first; the first acceptable candidate wins and later
// strategies never run. Provider errors are contained here: a failing
// strategy logs and falls through, it never aborts the record.
package resolver

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pdiddy/citeseek/internal/identify"
	"github.com/pdiddy/citeseek/internal/providers"
	"github.com/pdiddy/citeseek/pkg/types"
)

// Small per-strategy interfaces so tests can substitute doubles for the
// provider clients.

type identifierClient interface {
	Resolve(ctx context.Context, id string) (*types.Candidate, error)
}

type searchClient interface {
	Name() string
	SearchTitle(ctx context.Context, title string) (*types.Candidate, error)
}

type doiFinder interface {
	FindDOI(ctx context.Context, title string) (string, float64, error)
}

type structuredClient interface {
	SearchAuthorYear(ctx context.Context, title, author string, year int) (*types.Candidate, error)
}

// Resolver owns the provider clients and runs the strategy chain.
type Resolver struct {
	cfg types.ResolverConfig
	log zerolog.Logger

	doi    identifierClient
	arxiv  identifierClient
	pubmed identifierClient
	video  identifierClient

	doiIndex   doiFinder
	structured structuredClient
	searchers  []searchClient
}

// New builds a resolver with live provider clients sharing one HTTP
// client. A nil client gets a default one with the configured timeout.
func New(cfg types.ResolverConfig, client *http.Client, log zerolog.Logger) *Resolver {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	crossref := &providers.CrossRef{
		Client:    client,
		UserAgent: cfg.UserAgent,
		Mailto:    cfg.CrossRefMailto,
		Threshold: cfg.Thresholds.CrossRef,
		Log:       log,
	}
	arxiv := &providers.Arxiv{
		Client:    client,
		UserAgent: cfg.UserAgent,
		Threshold: cfg.Thresholds.Arxiv,
		Log:       log,
	}
	pubmed := &providers.PubMed{
		Client:    client,
		UserAgent: cfg.UserAgent,
		APIKey:    cfg.PubMedAPIKey,
		Threshold: cfg.Thresholds.PubMed,
		Log:       log,
	}
	openalex := &providers.OpenAlex{
		Client:    client,
		UserAgent: cfg.UserAgent,
		Email:     cfg.OpenAlexEmail,
		Threshold: cfg.Thresholds.OpenAlex,
		Log:       log,
	}
	semantic := &providers.SemanticScholar{
		Client:    client,
		UserAgent: cfg.UserAgent,
		APIKey:    cfg.SemanticScholarAPIKey,
		Threshold: cfg.Thresholds.SemanticScholar,
		Log:       log,
	}
	youtube := &providers.YouTube{Client: client, UserAgent: cfg.UserAgent, Log: log}

	return &Resolver{
		cfg:        cfg,
		log:        log,
		doi:        crossref,
		arxiv:      arxiv,
		pubmed:     pubmed,
		video:      youtube,
		doiIndex:   crossref,
		structured: crossref,
		searchers:  []searchClient{crossref, openalex, semantic, arxiv, pubmed},
	}
}

// Resolve runs the strategy chain for one record. It always returns a
// result, resolved or not, and never returns an error: provider failures
// are logged and treated as misses.
//
// The chain: identifier in the source text, publisher URL shape, DOI
// discovery by bibliographic search, author+year constrained search, and
// plain title search across providers in order.
func (r *Resolver) Resolve(ctx context.Context, rec types.Record) types.EnrichedRecord {
	kind := identify.Classify(rec)
	log := r.log.With().Str("title", rec.Title).Str("kind", string(kind)).Logger()

	// Strategy 1: identifier embedded in the title or URL.
	var tried types.Identifier
	if id, ok := identify.Extract(rec.Title, rec.URL); ok {
		tried = id
		if out, ok := r.resolveIdentifier(ctx, rec, id, types.ResolvedByIdentifier, log); ok {
			return out
		}
	}

	// Strategy 2: publisher URL shape implying an identifier. A failed
	// provider call demotes the record to the next strategy, never to a
	// re-attempt, so an identifier strategy 1 already tried is skipped.
	if id, ok := matchURL(rec.URL); ok && id != tried {
		if out, ok := r.resolveIdentifier(ctx, rec, id, types.ResolvedByURL, log); ok {
			return out
		}
	}

	query := identify.StripExtension(rec.Title)
	ay, hasAuthorYear := identify.ParseAuthorYear(rec.Title)
	if hasAuthorYear && ay.Remainder != "" {
		query = ay.Remainder
	}
	if query == "" {
		return unresolved(rec)
	}

	// Strategy 3: discover a DOI by bibliographic search, then resolve
	// it. The native relevance floor is lenient; the subsequent DOI
	// resolution supplies the authoritative metadata.
	if out, ok := r.searchDOI(ctx, rec, query, log); ok {
		return out
	}

	// Strategy 4: author+year constrained search, when the title parsed
	// as a filename-shaped "Author - Year - Title".
	if hasAuthorYear && ay.Remainder != "" {
		if out, ok := r.searchStructured(ctx, rec, ay, log); ok {
			return out
		}
	}

	// Strategy 5: plain title search, providers in order.
	for _, s := range r.searchOrder(kind) {
		cand, err := s.SearchTitle(ctx, query)
		if err != nil {
			log.Warn().Err(err).Str("provider", s.Name()).Msg("title search failed")
			continue
		}
		if cand == nil {
			continue
		}
		out := merge(rec, cand)
		out.Confidence = cand.Confidence
		out.Method = cand.Provider
		out.Resolution = types.ResolvedBySearch
		return out
	}

	return unresolved(rec)
}

// resolveIdentifier routes an identifier to the matching provider client
// and, on success, stamps the fixed identifier confidence.
func (r *Resolver) resolveIdentifier(ctx context.Context, rec types.Record, id types.Identifier, res types.Resolution, log zerolog.Logger) (types.EnrichedRecord, bool) {
	var client identifierClient
	var method string
	switch id.Kind {
	case types.IdentDOI:
		client, method = r.doi, "doi"
	case types.IdentArxiv:
		client, method = r.arxiv, "arxiv"
	case types.IdentPubMed:
		client, method = r.pubmed, "pubmed"
	case types.IdentYouTube:
		client, method = r.video, "youtube"
	}
	if client == nil {
		return types.EnrichedRecord{}, false
	}

	cand, err := client.Resolve(ctx, id.Value)
	if err != nil {
		log.Warn().Err(err).Str("identifier", id.Value).Msg("identifier resolution failed")
		return types.EnrichedRecord{}, false
	}
	if cand == nil {
		log.Debug().Str("identifier", id.Value).Msg("identifier not registered")
		return types.EnrichedRecord{}, false
	}

	out := merge(rec, cand)
	out.Confidence = r.cfg.IdentifierConfidence
	out.Method = method
	out.Resolution = res
	return out, true
}

// searchDOI runs DOI discovery: a bibliographic query whose top hit's
// native relevance score must clear the configured floor, followed by a
// normal DOI resolution of the discovered DOI.
func (r *Resolver) searchDOI(ctx context.Context, rec types.Record, query string, log zerolog.Logger) (types.EnrichedRecord, bool) {
	doi, score, err := r.doiIndex.FindDOI(ctx, query)
	if err != nil {
		log.Warn().Err(err).Msg("DOI discovery failed")
		return types.EnrichedRecord{}, false
	}
	if doi == "" || score < r.cfg.DOISearchFloor {
		return types.EnrichedRecord{}, false
	}

	cand, err := r.doi.Resolve(ctx, doi)
	if err != nil {
		log.Warn().Err(err).Str("doi", doi).Msg("resolving discovered DOI failed")
		return types.EnrichedRecord{}, false
	}
	if cand == nil {
		return types.EnrichedRecord{}, false
	}

	out := merge(rec, cand)
	out.Confidence = r.cfg.IdentifierConfidence
	out.Method = "doi-search"
	out.Resolution = types.ResolvedBySearch
	return out, true
}

// searchStructured runs the author+year constrained search. The raw
// title similarity earns a bonus when the returned year agrees with the
// parsed one, and the boosted confidence must clear the structured bar.
func (r *Resolver) searchStructured(ctx context.Context, rec types.Record, ay identify.AuthorYear, log zerolog.Logger) (types.EnrichedRecord, bool) {
	cand, err := r.structured.SearchAuthorYear(ctx, ay.Remainder, ay.Author, ay.Year)
	if err != nil {
		log.Warn().Err(err).Msg("author-year search failed")
		return types.EnrichedRecord{}, false
	}
	if cand == nil {
		return types.EnrichedRecord{}, false
	}

	conf := cand.Confidence
	if cand.Year == ay.Year {
		conf += r.cfg.YearBonus
		if conf > 1 {
			conf = 1
		}
	}
	if conf < r.cfg.StructuredThreshold {
		log.Debug().Float64("confidence", conf).Msg("author-year candidate below bar")
		return types.EnrichedRecord{}, false
	}

	out := merge(rec, cand)
	out.Confidence = conf
	out.Method = "author-year-search"
	out.Resolution = types.ResolvedBySearch
	return out, true
}

// searchOrder returns the title-search provider order, promoting arXiv
// to the front for preprint-shaped records.
func (r *Resolver) searchOrder(kind identify.Kind) []searchClient {
	if kind != identify.KindPreprint {
		return r.searchers
	}
	ordered := make([]searchClient, 0, len(r.searchers))
	for _, s := range r.searchers {
		if s.Name() == "arxiv" {
			ordered = append(ordered, s)
		}
	}
	for _, s := range r.searchers {
		if s.Name() != "arxiv" {
			ordered = append(ordered, s)
		}
	}
	return ordered
}
