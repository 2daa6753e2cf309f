// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/pdiddy/citeseek/internal/httputil"
	"github.com/pdiddy/citeseek/internal/match"
	"github.com/pdiddy/citeseek/pkg/types"
)

// pubmedAPIBase is a variable so tests can point the client at a local server.
var pubmedAPIBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// PubMed talks to the NCBI E-utilities API. Resolution goes straight to
// esummary; title search is a two-step esearch-then-esummary round trip.
type PubMed struct {
	Client    *http.Client
	UserAgent string
	APIKey    string // raises the NCBI rate allowance, optional
	Threshold float64
	Log       zerolog.Logger
}

func (p *PubMed) Name() string { return "pubmed" }

// Resolve fetches the summary document for one PMID.
func (p *PubMed) Resolve(ctx context.Context, pmid string) (*types.Candidate, error) {
	cand, err := p.summary(ctx, pmid)
	if err != nil || cand == nil {
		return nil, err
	}
	cand.Provider = "pmid-resolver"
	return cand, nil
}

// SearchTitle finds the best PMID for a title via esearch, then pulls its
// summary. The hit is accepted only when its similarity clears the
// threshold.
func (p *PubMed) SearchTitle(ctx context.Context, title string) (*types.Candidate, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"term":    {title + "[Title]"},
		"retmax":  {"1"},
		"retmode": {"json"},
	}
	if p.APIKey != "" {
		params.Set("api_key", p.APIKey)
	}

	var searchPayload pubmedSearchResponse
	if err := p.get(ctx, pubmedAPIBase+"/esearch.fcgi?"+params.Encode(), &searchPayload); err != nil {
		return nil, err
	}
	if len(searchPayload.ESearchResult.IDList) == 0 {
		return nil, nil
	}

	cand, err := p.summary(ctx, searchPayload.ESearchResult.IDList[0])
	if err != nil || cand == nil {
		return nil, err
	}

	sim := match.TitleSimilarity(title, cand.Title)
	if sim < p.Threshold {
		p.Log.Debug().Str("provider", p.Name()).Str("title", cand.Title).
			Float64("similarity", sim).Msg("top hit below threshold")
		return nil, nil
	}

	cand.Confidence = sim
	cand.Provider = "title-search:pubmed"
	return cand, nil
}

func (p *PubMed) summary(ctx context.Context, pmid string) (*types.Candidate, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"id":      {pmid},
		"retmode": {"json"},
	}
	if p.APIKey != "" {
		params.Set("api_key", p.APIKey)
	}

	var payload pubmedSummaryResponse
	if err := p.get(ctx, pubmedAPIBase+"/esummary.fcgi?"+params.Encode(), &payload); err != nil {
		return nil, err
	}

	// esummary keys each document by its own UID.
	raw, ok := payload.Result[pmid]
	if !ok {
		return nil, nil
	}
	var doc pubmedDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding PubMed summary for %s: %w", pmid, err)
	}
	if doc.Title == "" {
		return nil, nil
	}

	return candidateFromPubMed(pmid, &doc), nil
}

func (p *PubMed) get(ctx context.Context, reqURL string, out any) error {
	resp, err := httputil.Get(ctx, p.Client, reqURL, p.UserAgent, nil)
	if err != nil {
		return fmt.Errorf("PubMed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("PubMed API returned HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding PubMed response: %w", err)
	}
	return nil
}

type pubmedSearchResponse struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

type pubmedSummaryResponse struct {
	Result map[string]json.RawMessage `json:"result"`
}

type pubmedDoc struct {
	Title           string            `json:"title"`
	PubDate         string            `json:"pubdate"`
	Authors         []pubmedAuthor    `json:"authors"`
	FullJournalName string            `json:"fulljournalname"`
	Volume          string            `json:"volume"`
	Issue           string            `json:"issue"`
	Pages           string            `json:"pages"`
	ArticleIDs      []pubmedArticleID `json:"articleids"`
}

type pubmedAuthor struct {
	Name string `json:"name"`
}

type pubmedArticleID struct {
	IDType string `json:"idtype"`
	Value  string `json:"value"`
}

var pubmedYear = regexp.MustCompile(`\b(19|20)\d{2}\b`)

func candidateFromPubMed(pmid string, doc *pubmedDoc) *types.Candidate {
	cand := &types.Candidate{
		Identifier: types.Identifier{Kind: types.IdentPubMed, Value: pmid},
		Title:      collapseSpace(doc.Title),
		Venue:      doc.FullJournalName,
		Volume:     doc.Volume,
		Issue:      doc.Issue,
		Pages:      doc.Pages,
		URL:        "https://pubmed.ncbi.nlm.nih.gov/" + pmid + "/",
		Extras:     map[string]string{"pmid": pmid},
	}

	for _, a := range doc.Authors {
		if a.Name != "" {
			cand.Authors = append(cand.Authors, a.Name)
		}
	}

	// PubDate is free-form ("2024 Mar 15", "2023 Nov-Dec").
	if y := pubmedYear.FindString(doc.PubDate); y != "" {
		cand.Year, _ = strconv.Atoi(y)
	}

	for _, id := range doc.ArticleIDs {
		if id.IDType == "doi" && id.Value != "" {
			cand.DOI = id.Value
			break
		}
	}

	return cand
}
