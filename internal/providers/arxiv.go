// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package providers

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/citeseek/internal/httputil"
	"github.com/pdiddy/citeseek/internal/match"
	"github.com/pdiddy/citeseek/pkg/types"
)

// arxivAPIBase is a variable so tests can point the client at a local server.
var arxivAPIBase = "http://export.arxiv.org/api/query"

// Arxiv talks to the arXiv Atom API, resolving preprint IDs and
// searching titles. arXiv has no API key; it asks only for a descriptive
// User-Agent and modest request rates.
type Arxiv struct {
	Client    *http.Client
	UserAgent string
	Threshold float64
	Log       zerolog.Logger
}

func (a *Arxiv) Name() string { return "arxiv" }

// Resolve fetches the entry for one arXiv ID. A version suffix on the ID
// (2301.01234v2) is accepted; the returned identifier is unversioned.
func (a *Arxiv) Resolve(ctx context.Context, arxivID string) (*types.Candidate, error) {
	params := url.Values{"id_list": {arxivID}, "max_results": {"1"}}

	feed, err := a.query(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(feed.Entries) == 0 {
		return nil, nil
	}

	entry := feed.Entries[0]
	// An unknown ID comes back as an entry with an error title and no
	// published date rather than an empty feed.
	if entry.Published == "" {
		return nil, nil
	}

	cand := candidateFromArxiv(&entry)
	cand.Provider = "arxiv-resolver"
	return cand, nil
}

// SearchTitle runs an exact-phrase title query and accepts the top hit
// only when its similarity to the query clears the threshold.
func (a *Arxiv) SearchTitle(ctx context.Context, title string) (*types.Candidate, error) {
	params := url.Values{
		"search_query": {`ti:"` + title + `"`},
		"start":        {"0"},
		"max_results":  {"1"},
	}

	feed, err := a.query(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(feed.Entries) == 0 || feed.Entries[0].Published == "" {
		return nil, nil
	}

	cand := candidateFromArxiv(&feed.Entries[0])
	sim := match.TitleSimilarity(title, cand.Title)
	if sim < a.Threshold {
		a.Log.Debug().Str("provider", a.Name()).Str("title", cand.Title).
			Float64("similarity", sim).Msg("top hit below threshold")
		return nil, nil
	}

	cand.Confidence = sim
	cand.Provider = "title-search:arxiv"
	return cand, nil
}

func (a *Arxiv) query(ctx context.Context, params url.Values) (*arxivFeed, error) {
	resp, err := httputil.Get(ctx, a.Client, arxivAPIBase+"?"+params.Encode(), a.UserAgent, nil)
	if err != nil {
		return nil, fmt.Errorf("arXiv request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decoding arXiv feed: %w", err)
	}
	return &feed, nil
}

type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID         string          `xml:"id"`
	Title      string          `xml:"title"`
	Summary    string          `xml:"summary"`
	Published  string          `xml:"published"`
	Authors    []arxivAuthor   `xml:"author"`
	Categories []arxivCategory `xml:"category"`
	DOI        string          `xml:"doi"`
	JournalRef string          `xml:"journal_ref"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivCategory struct {
	Term string `xml:"term,attr"`
}

func candidateFromArxiv(e *arxivEntry) *types.Candidate {
	id := arxivIDFromURL(e.ID)

	cand := &types.Candidate{
		Identifier: types.Identifier{Kind: types.IdentArxiv, Value: id},
		Title:      collapseSpace(e.Title),
		Abstract:   collapseSpace(e.Summary),
		Venue:      e.JournalRef,
		DOI:        strings.ToLower(e.DOI),
		URL:        "https://arxiv.org/abs/" + id,
		Extras:     map[string]string{"arxiv_id": id},
	}

	for _, au := range e.Authors {
		if au.Name != "" {
			cand.Authors = append(cand.Authors, au.Name)
		}
	}

	// Published is RFC3339; the leading four digits are the year.
	if len(e.Published) >= 4 {
		fmt.Sscanf(e.Published[:4], "%d", &cand.Year)
	}

	var terms []string
	for _, c := range e.Categories {
		if c.Term != "" {
			terms = append(terms, c.Term)
		}
	}
	if len(terms) > 0 {
		cand.Extras["categories"] = strings.Join(terms, " ")
	}

	return cand
}

// arxivIDFromURL extracts the bare ID from an entry URL such as
// http://arxiv.org/abs/2301.01234v2, dropping any version suffix.
func arxivIDFromURL(entryURL string) string {
	id := entryURL
	if i := strings.LastIndex(entryURL, "/abs/"); i >= 0 {
		id = entryURL[i+len("/abs/"):]
	}
	if i := strings.LastIndex(id, "v"); i > 0 && !strings.Contains(id[i:], "/") {
		allDigits := true
		for _, r := range id[i+1:] {
			if r < '0' || r > '9' {
				allDigits = false
				break
			}
		}
		if allDigits && i+1 < len(id) {
			id = id[:i]
		}
	}
	return id
}
