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

// crossrefAPIBase is a variable so tests can point the client at a local server.
var crossrefAPIBase = "https://api.crossref.org/works"

// CrossRef talks to the CrossRef REST API. It is the only client that
// serves all three lookup shapes: direct DOI resolution, DOI discovery
// by bibliographic query, and title/author-year search.
type CrossRef struct {
	Client    *http.Client
	UserAgent string
	Mailto    string // contact address for the polite pool, optional
	Threshold float64
	Log       zerolog.Logger
}

func (c *CrossRef) Name() string { return "crossref" }

// Resolve fetches the work registered under the given DOI. An
// unregistered DOI yields no candidate, not an error.
func (c *CrossRef) Resolve(ctx context.Context, doi string) (*types.Candidate, error) {
	reqURL := crossrefAPIBase + "/" + url.PathEscape(doi)
	if c.Mailto != "" {
		reqURL += "?mailto=" + url.QueryEscape(c.Mailto)
	}

	var payload crossrefItemResponse
	if done, err := c.get(ctx, reqURL, &payload); err != nil || !done {
		return nil, err
	}

	cand := candidateFromCrossRef(&payload.Message)
	cand.Provider = "doi-resolver"
	return cand, nil
}

// FindDOI runs a bibliographic query and returns the DOI of the top hit
// together with CrossRef's native relevance score (roughly 0-100 for a
// single-title query). An empty result set returns ("", 0, nil).
func (c *CrossRef) FindDOI(ctx context.Context, title string) (string, float64, error) {
	params := url.Values{
		"query.bibliographic": {title},
		"rows":                {"1"},
		"select":              {"DOI,title,score"},
	}
	if c.Mailto != "" {
		params.Set("mailto", c.Mailto)
	}

	var payload crossrefListResponse
	if done, err := c.get(ctx, crossrefAPIBase+"?"+params.Encode(), &payload); err != nil || !done {
		return "", 0, err
	}
	if len(payload.Message.Items) == 0 {
		return "", 0, nil
	}

	item := payload.Message.Items[0]
	return strings.ToLower(item.DOI), item.Score, nil
}

// SearchTitle queries by title and accepts the top hit only when its
// similarity to the query clears the client's threshold.
func (c *CrossRef) SearchTitle(ctx context.Context, title string) (*types.Candidate, error) {
	params := url.Values{
		"query.bibliographic": {title},
		"rows":                {"1"},
	}
	if c.Mailto != "" {
		params.Set("mailto", c.Mailto)
	}

	var payload crossrefListResponse
	if done, err := c.get(ctx, crossrefAPIBase+"?"+params.Encode(), &payload); err != nil || !done {
		return nil, err
	}
	if len(payload.Message.Items) == 0 {
		return nil, nil
	}

	cand := candidateFromCrossRef(&payload.Message.Items[0])
	sim := match.TitleSimilarity(title, cand.Title)
	if sim < c.Threshold {
		c.Log.Debug().Str("provider", c.Name()).Str("title", cand.Title).
			Float64("similarity", sim).Msg("top hit below threshold")
		return nil, nil
	}

	cand.Confidence = sim
	cand.Provider = "title-search:crossref"
	return cand, nil
}

// SearchAuthorYear narrows a bibliographic query by author name and a
// one-year publication window. The candidate's Confidence is the raw
// title similarity; the caller decides acceptance, since the author and
// year agreement earns a bonus on top of similarity.
func (c *CrossRef) SearchAuthorYear(ctx context.Context, title, author string, year int) (*types.Candidate, error) {
	params := url.Values{
		"query.bibliographic": {title},
		"query.author":        {author},
		"rows":                {"1"},
		"filter":              {fmt.Sprintf("from-pub-date:%d-01-01,until-pub-date:%d-12-31", year, year)},
	}
	if c.Mailto != "" {
		params.Set("mailto", c.Mailto)
	}

	var payload crossrefListResponse
	if done, err := c.get(ctx, crossrefAPIBase+"?"+params.Encode(), &payload); err != nil || !done {
		return nil, err
	}
	if len(payload.Message.Items) == 0 {
		return nil, nil
	}

	cand := candidateFromCrossRef(&payload.Message.Items[0])
	cand.Confidence = match.TitleSimilarity(title, cand.Title)
	cand.Provider = "author-year-search:crossref"
	return cand, nil
}

// get performs a request and decodes the JSON body. It reports done=false
// without error for a 404, letting callers treat the lookup as a miss.
func (c *CrossRef) get(ctx context.Context, reqURL string, out any) (bool, error) {
	resp, err := httputil.Get(ctx, c.Client, reqURL, c.UserAgent, nil)
	if err != nil {
		return false, fmt.Errorf("CrossRef request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("CrossRef API returned HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("decoding CrossRef response: %w", err)
	}
	return true, nil
}

type crossrefItemResponse struct {
	Message crossrefWork `json:"message"`
}

type crossrefListResponse struct {
	Message struct {
		Items []crossrefWork `json:"items"`
	} `json:"message"`
}

type crossrefWork struct {
	DOI            string           `json:"DOI"`
	Title          []string         `json:"title"`
	ContainerTitle []string         `json:"container-title"`
	Author         []crossrefAuthor `json:"author"`
	Abstract       string           `json:"abstract"`
	Issued         crossrefDate     `json:"issued"`
	PublishedPrint crossrefDate     `json:"published-print"`
	Created        crossrefDate     `json:"created"`
	Volume         string           `json:"volume"`
	Issue          string           `json:"issue"`
	Page           string           `json:"page"`
	Publisher      string           `json:"publisher"`
	URL            string           `json:"URL"`
	Score          float64          `json:"score"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
	Name   string `json:"name"` // organizational authors
}

type crossrefDate struct {
	DateParts [][]int `json:"date-parts"`
}

func (d crossrefDate) year() int {
	if len(d.DateParts) > 0 && len(d.DateParts[0]) > 0 {
		return d.DateParts[0][0]
	}
	return 0
}

func candidateFromCrossRef(w *crossrefWork) *types.Candidate {
	cand := &types.Candidate{
		Title:     "",
		Abstract:  stripMarkup(w.Abstract),
		Venue:     "",
		Volume:    w.Volume,
		Issue:     w.Issue,
		Pages:     w.Page,
		Publisher: w.Publisher,
		DOI:       strings.ToLower(w.DOI),
		URL:       w.URL,
	}
	if len(w.Title) > 0 {
		cand.Title = collapseSpace(w.Title[0])
	}
	if len(w.ContainerTitle) > 0 {
		cand.Venue = w.ContainerTitle[0]
	}
	if cand.DOI != "" {
		cand.Identifier = types.Identifier{Kind: types.IdentDOI, Value: cand.DOI}
	}

	for _, a := range w.Author {
		name := joinName(a.Given, a.Family)
		if name == "" {
			name = a.Name
		}
		if name != "" {
			cand.Authors = append(cand.Authors, name)
		}
	}

	cand.Year = w.Issued.year()
	if cand.Year == 0 {
		cand.Year = w.PublishedPrint.year()
	}
	if cand.Year == 0 {
		cand.Year = w.Created.year()
	}

	return cand
}
