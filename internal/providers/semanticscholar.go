// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/citeseek/internal/httputil"
	"github.com/pdiddy/citeseek/internal/match"
	"github.com/pdiddy/citeseek/pkg/types"
)

// semanticScholarAPIBase is a variable so tests can point the client at a local server.
var semanticScholarAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

// SemanticScholar talks to the Semantic Scholar Graph API. Unauthenticated
// access works but is heavily rate limited; an API key raises the allowance.
type SemanticScholar struct {
	Client    *http.Client
	UserAgent string
	APIKey    string
	Threshold float64
	Log       zerolog.Logger
}

func (s *SemanticScholar) Name() string { return "semantic-scholar" }

// SearchTitle queries by title and accepts the top hit only when its
// similarity to the query clears the threshold.
func (s *SemanticScholar) SearchTitle(ctx context.Context, title string) (*types.Candidate, error) {
	params := url.Values{
		"query":  {title},
		"limit":  {"1"},
		"fields": {"title,abstract,authors,externalIds,year,venue"},
	}

	var headers map[string]string
	if s.APIKey != "" {
		headers = map[string]string{"x-api-key": s.APIKey}
	}

	resp, err := httputil.Get(ctx, s.Client, semanticScholarAPIBase+"?"+params.Encode(), s.UserAgent, headers)
	if err != nil {
		return nil, fmt.Errorf("Semantic Scholar request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Semantic Scholar API returned HTTP %d", resp.StatusCode)
	}

	var payload semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding Semantic Scholar response: %w", err)
	}
	if len(payload.Data) == 0 {
		return nil, nil
	}

	cand := candidateFromSemantic(&payload.Data[0])
	sim := match.TitleSimilarity(title, cand.Title)
	if sim < s.Threshold {
		s.Log.Debug().Str("provider", s.Name()).Str("title", cand.Title).
			Float64("similarity", sim).Msg("top hit below threshold")
		return nil, nil
	}

	cand.Confidence = sim
	cand.Provider = "title-search:semantic-scholar"
	return cand, nil
}

type semanticResponse struct {
	Data []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID     string           `json:"paperId"`
	Title       string           `json:"title"`
	Abstract    string           `json:"abstract"`
	Year        int              `json:"year"`
	Venue       string           `json:"venue"`
	ExternalIDs map[string]any   `json:"externalIds"`
	Authors     []semanticAuthor `json:"authors"`
}

type semanticAuthor struct {
	Name string `json:"name"`
}

func candidateFromSemantic(p *semanticPaper) *types.Candidate {
	cand := &types.Candidate{
		Title:    collapseSpace(p.Title),
		Abstract: p.Abstract,
		Year:     p.Year,
		Venue:    p.Venue,
		URL:      "https://www.semanticscholar.org/paper/" + p.PaperID,
		Extras:   map[string]string{"s2_paper_id": p.PaperID},
	}

	for _, a := range p.Authors {
		if a.Name != "" {
			cand.Authors = append(cand.Authors, a.Name)
		}
	}

	if doi, ok := p.ExternalIDs["DOI"].(string); ok && doi != "" {
		cand.DOI = strings.ToLower(doi)
		cand.Identifier = types.Identifier{Kind: types.IdentDOI, Value: cand.DOI}
	}
	if arxivID, ok := p.ExternalIDs["ArXiv"].(string); ok && arxivID != "" {
		cand.Extras["arxiv_id"] = arxivID
		if cand.Identifier.Value == "" {
			cand.Identifier = types.Identifier{Kind: types.IdentArxiv, Value: arxivID}
		}
	}

	return cand
}
