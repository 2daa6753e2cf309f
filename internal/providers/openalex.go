// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/citeseek/internal/httputil"
	"github.com/pdiddy/citeseek/internal/match"
	"github.com/pdiddy/citeseek/pkg/types"
)

// openAlexAPIBase is a variable so tests can point the client at a local server.
var openAlexAPIBase = "https://api.openalex.org/works"

// OpenAlex blend weights. OpenAlex reports its own relevance_score, which
// is unbounded but rarely useful above 100 for a single-title query; it
// contributes a small share next to lexical title similarity.
const (
	openAlexSimilarityWeight = 0.8
	openAlexRelevanceWeight  = 0.2
)

// OpenAlex talks to the OpenAlex Works API. Abstracts arrive as an
// inverted index and are reconstructed into plain text.
type OpenAlex struct {
	Client    *http.Client
	UserAgent string
	Email     string // sent as mailto for polite pool access, optional
	Threshold float64
	Log       zerolog.Logger
}

func (o *OpenAlex) Name() string { return "openalex" }

// SearchTitle queries by title and accepts the top hit when the blended
// confidence (title similarity plus normalized native relevance) clears
// the threshold.
func (o *OpenAlex) SearchTitle(ctx context.Context, title string) (*types.Candidate, error) {
	params := url.Values{
		"search":   {title},
		"per_page": {"1"},
		"page":     {"1"},
	}
	if o.Email != "" {
		params.Set("mailto", o.Email)
	}

	resp, err := httputil.Get(ctx, o.Client, openAlexAPIBase+"?"+params.Encode(), o.UserAgent, nil)
	if err != nil {
		return nil, fmt.Errorf("OpenAlex request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenAlex API returned HTTP %d", resp.StatusCode)
	}

	var payload openAlexResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding OpenAlex response: %w", err)
	}
	if len(payload.Results) == 0 {
		return nil, nil
	}

	work := payload.Results[0]
	cand := candidateFromOpenAlex(&work)

	sim := match.TitleSimilarity(title, cand.Title)
	native := work.RelevanceScore / 100
	if native > 1 {
		native = 1
	}
	conf := openAlexSimilarityWeight*sim + openAlexRelevanceWeight*native
	if conf < o.Threshold {
		o.Log.Debug().Str("provider", o.Name()).Str("title", cand.Title).
			Float64("similarity", sim).Float64("confidence", conf).Msg("top hit below threshold")
		return nil, nil
	}

	cand.Confidence = conf
	cand.Provider = "title-search:openalex"
	return cand, nil
}

type openAlexResponse struct {
	Results []openAlexWork `json:"results"`
}

type openAlexWork struct {
	ID                    string               `json:"id"`
	Title                 string               `json:"title"`
	DisplayName           string               `json:"display_name"`
	DOI                   string               `json:"doi"`
	PublicationYear       int                  `json:"publication_year"`
	RelevanceScore        float64              `json:"relevance_score"`
	Authorships           []openAlexAuthorship `json:"authorships"`
	AbstractInvertedIndex map[string][]int     `json:"abstract_inverted_index"`
	Biblio                openAlexBiblio       `json:"biblio"`
	PrimaryLocation       openAlexLocation     `json:"primary_location"`
}

type openAlexAuthorship struct {
	Author struct {
		DisplayName string `json:"display_name"`
	} `json:"author"`
}

type openAlexBiblio struct {
	Volume    string `json:"volume"`
	Issue     string `json:"issue"`
	FirstPage string `json:"first_page"`
	LastPage  string `json:"last_page"`
}

type openAlexLocation struct {
	LandingPageURL string `json:"landing_page_url"`
	Source         struct {
		DisplayName          string `json:"display_name"`
		HostOrganizationName string `json:"host_organization_name"`
	} `json:"source"`
}

func candidateFromOpenAlex(w *openAlexWork) *types.Candidate {
	title := w.Title
	if title == "" {
		title = w.DisplayName
	}

	cand := &types.Candidate{
		Title:     collapseSpace(title),
		Abstract:  reconstructAbstract(w.AbstractInvertedIndex),
		Year:      w.PublicationYear,
		Venue:     w.PrimaryLocation.Source.DisplayName,
		Publisher: w.PrimaryLocation.Source.HostOrganizationName,
		Volume:    w.Biblio.Volume,
		Issue:     w.Biblio.Issue,
		URL:       w.PrimaryLocation.LandingPageURL,
	}

	if w.Biblio.FirstPage != "" {
		cand.Pages = w.Biblio.FirstPage
		if w.Biblio.LastPage != "" && w.Biblio.LastPage != w.Biblio.FirstPage {
			cand.Pages += "-" + w.Biblio.LastPage
		}
	}

	for _, a := range w.Authorships {
		if a.Author.DisplayName != "" {
			cand.Authors = append(cand.Authors, a.Author.DisplayName)
		}
	}

	// OpenAlex is DOI-centric; the doi field carries a resolver URL.
	if w.DOI != "" {
		doi := strings.ToLower(strings.TrimPrefix(w.DOI, "https://doi.org/"))
		cand.DOI = doi
		cand.Identifier = types.Identifier{Kind: types.IdentDOI, Value: doi}
	} else if w.ID != "" {
		cand.Extras = map[string]string{"openalex_id": w.ID}
	}

	return cand
}

// reconstructAbstract converts OpenAlex's abstract_inverted_index back to
// plain text. The index maps each word to the positions where it appears.
func reconstructAbstract(invertedIndex map[string][]int) string {
	if len(invertedIndex) == 0 {
		return ""
	}

	type posWord struct {
		pos  int
		word string
	}
	var pairs []posWord
	for word, positions := range invertedIndex {
		for _, pos := range positions {
			pairs = append(pairs, posWord{pos: pos, word: word})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].pos < pairs[j].pos
	})

	words := make([]string, len(pairs))
	for i, p := range pairs {
		words[i] = p.word
	}
	return strings.Join(words, " ")
}
