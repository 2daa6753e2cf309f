// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "citeseek/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ProviderThresholds holds the per-provider acceptance thresholds applied
// to title-search candidates. The values differ per provider, reflecting
// observed top-result precision; they are deliberately independent
// constants rather than a derived rule.
type ProviderThresholds struct {
	CrossRef        float64 `json:"crossref" yaml:"crossref"`
	OpenAlex        float64 `json:"openalex" yaml:"openalex"`
	SemanticScholar float64 `json:"semantic_scholar" yaml:"semantic_scholar"`
	Arxiv           float64 `json:"arxiv" yaml:"arxiv"`
	PubMed          float64 `json:"pubmed" yaml:"pubmed"`
}

// ResolverConfig holds settings for the strategy orchestrator and the
// provider clients it owns.
type ResolverConfig struct {
	HTTPConfig `yaml:",inline"`

	// IdentifierConfidence is the fixed confidence stamped on records
	// resolved through a canonical identifier.
	IdentifierConfidence float64 `json:"identifier_confidence" yaml:"identifier_confidence"`

	// DOISearchFloor is the minimum CrossRef native relevance score
	// (0-100 scale) for accepting a DOI discovered by title search. The
	// floor is lenient: a wrong DOI is corrected by the subsequent DOI
	// resolution's own data, a false negative loses the match outright.
	DOISearchFloor float64 `json:"doi_search_floor" yaml:"doi_search_floor"`

	// StructuredThreshold is the acceptance bar for author+year
	// constrained searches, higher than plain search to reflect the
	// extra constraints.
	StructuredThreshold float64 `json:"structured_threshold" yaml:"structured_threshold"`

	// YearBonus is added to a structured-search candidate's confidence
	// when the returned year matches the year parsed from the title.
	YearBonus float64 `json:"year_bonus" yaml:"year_bonus"`

	// Thresholds are the per-provider plain title-search acceptance bars.
	Thresholds ProviderThresholds `json:"thresholds" yaml:"thresholds"`

	// CrossRefMailto is sent as the mailto parameter for polite pool access.
	CrossRefMailto string `json:"crossref_mailto,omitempty" yaml:"crossref_mailto,omitempty"`

	// OpenAlexEmail is sent as the mailto parameter for polite pool access.
	OpenAlexEmail string `json:"openalex_email,omitempty" yaml:"openalex_email,omitempty"`

	// SemanticScholarAPIKey raises Semantic Scholar rate limits. Optional.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`

	// PubMedAPIKey raises the E-utilities rate limit. Optional.
	PubMedAPIKey string `json:"pubmed_api_key,omitempty" yaml:"pubmed_api_key,omitempty"`
}

// BatchConfig holds settings for the batch runner.
type BatchConfig struct {
	// RequestDelay is the minimum spacing between consecutive record
	// resolutions (default 1s), independent of which provider answers.
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`
}

// StoreConfig holds settings for the local record library.
type StoreConfig struct {
	// LibraryDir is the directory holding the SQLite library database.
	LibraryDir string `json:"library_dir" yaml:"library_dir"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `json:"level" yaml:"level"`

	// Format is the output format: json or console.
	Format string `json:"format" yaml:"format"`
}

// DefaultResolverConfig returns the resolver settings used when no
// configuration overrides them. The threshold values are calibrated per
// provider and intentionally not unified.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		HTTPConfig: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "citeseek/0.1",
		},
		IdentifierConfidence: 0.97,
		DOISearchFloor:       30.0,
		StructuredThreshold:  0.75,
		YearBonus:            0.10,
		Thresholds: ProviderThresholds{
			CrossRef:        0.65,
			OpenAlex:        0.65,
			SemanticScholar: 0.70,
			Arxiv:           0.70,
			PubMed:          0.75,
		},
	}
}
