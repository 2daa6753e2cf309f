// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the citeseek resolution
// pipeline: the scraped input records, provider candidates, enriched output
// records, and batch tallies.
package types

// RecordType is the coarse category tag the scraper attaches to a source
// listing. The set is closed; anything the scraper cannot categorize
// arrives as RecordUnknown.
type RecordType string

const (
	RecordUnknown  RecordType = "unknown"
	RecordArticle  RecordType = "article"
	RecordDocument RecordType = "document"
	RecordVideo    RecordType = "video"
	RecordWebsite  RecordType = "website"
)

// Record is one scraped source listing. It is read-only input to a
// resolution pass; the engine never mutates it.
type Record struct {
	// Title is the display title as scraped. Often a filename or a
	// truncated page title rather than a clean bibliographic title.
	Title string `json:"title" yaml:"title"`

	// URL is the source link, when the scraper captured one.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Type is the scraper's coarse category tag.
	Type RecordType `json:"type,omitempty" yaml:"type,omitempty"`

	// Date is the raw date string from the scraper, unparsed.
	Date string `json:"date,omitempty" yaml:"date,omitempty"`
}

// IdentifierKind classifies a canonical identifier.
type IdentifierKind string

const (
	IdentDOI     IdentifierKind = "doi"
	IdentArxiv   IdentifierKind = "arxiv"
	IdentPubMed  IdentifierKind = "pmid"
	IdentYouTube IdentifierKind = "youtube"
)

// Identifier is a normalized canonical identifier extracted from a title
// or URL. DOIs are lower-cased with resolver prefixes stripped.
type Identifier struct {
	Kind  IdentifierKind `json:"kind" yaml:"kind"`
	Value string         `json:"value" yaml:"value"`
}

// Candidate is one provider's answer for one query. Candidates are
// ephemeral: created per provider call, discarded once merged or rejected.
type Candidate struct {
	// Identifier is the provider's canonical ID for the work
	// (DOI, arXiv ID, PMID, ...).
	Identifier Identifier `json:"identifier,omitzero" yaml:"identifier,omitempty"`

	Title    string   `json:"title" yaml:"title"`
	Authors  []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Year     int      `json:"year,omitempty" yaml:"year,omitempty"`
	Abstract string   `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Venue is the journal or publication venue name.
	Venue  string `json:"venue,omitempty" yaml:"venue,omitempty"`
	Volume string `json:"volume,omitempty" yaml:"volume,omitempty"`
	Issue  string `json:"issue,omitempty" yaml:"issue,omitempty"`
	Pages  string `json:"pages,omitempty" yaml:"pages,omitempty"`

	DOI       string `json:"doi,omitempty" yaml:"doi,omitempty"`
	URL       string `json:"url,omitempty" yaml:"url,omitempty"`
	Publisher string `json:"publisher,omitempty" yaml:"publisher,omitempty"`

	// Extras holds provider-specific fields that do not warrant a
	// dedicated column (e.g. arXiv category list, external IDs).
	Extras map[string]string `json:"extras,omitempty" yaml:"extras,omitempty"`

	// Confidence is the match confidence in [0,1].
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// Provider names the provider and method that produced this
	// candidate (e.g. "doi-resolver", "title-search:openalex").
	Provider string `json:"provider" yaml:"provider"`
}

// Resolution records which class of strategy produced an enriched record.
type Resolution string

const (
	ResolvedByIdentifier Resolution = "identifier"
	ResolvedByURL        Resolution = "url"
	ResolvedBySearch     Resolution = "search"
	Unresolved           Resolution = "none"
)

// EnrichedRecord is the durable output of one resolution pass: the input
// record overlaid with the winning candidate's fields, plus the decision
// confidence and provenance. Exactly one is produced per input record.
//
// A non-zero Confidence always comes with a non-empty Method, and input
// fields are never replaced by empty candidate values.
type EnrichedRecord struct {
	Record `yaml:",inline"`

	Identifier string   `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	Authors    []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Year       int      `json:"year,omitempty" yaml:"year,omitempty"`
	Abstract   string   `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Venue      string   `json:"venue,omitempty" yaml:"venue,omitempty"`
	Volume     string   `json:"volume,omitempty" yaml:"volume,omitempty"`
	Issue      string   `json:"issue,omitempty" yaml:"issue,omitempty"`
	Pages      string   `json:"pages,omitempty" yaml:"pages,omitempty"`
	DOI        string   `json:"doi,omitempty" yaml:"doi,omitempty"`
	Publisher  string   `json:"publisher,omitempty" yaml:"publisher,omitempty"`

	Extras map[string]string `json:"extras,omitempty" yaml:"extras,omitempty"`

	// Confidence is the final decision confidence in [0,1]. Zero when
	// unresolved.
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// Method is the provenance tag naming the winning strategy
	// (e.g. "doi", "doi-search", "title-search:openalex", "none").
	Method string `json:"method" yaml:"method"`

	// Resolution is the strategy class: identifier, url, search, or none.
	Resolution Resolution `json:"resolution" yaml:"resolution"`

	// Error carries the failure description when a record-level fault
	// was contained by the batch runner.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// BatchResult holds the outcome of one batch resolution run. Records is
// ordered exactly like the input.
type BatchResult struct {
	Success int              `json:"success" yaml:"success"`
	Partial int              `json:"partial" yaml:"partial"`
	Failed  int              `json:"failed" yaml:"failed"`
	Records []EnrichedRecord `json:"records" yaml:"records"`
}

// Total returns the number of records processed.
func (r BatchResult) Total() int {
	return r.Success + r.Partial + r.Failed
}

// HasFailures reports whether any records failed resolution entirely.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}
