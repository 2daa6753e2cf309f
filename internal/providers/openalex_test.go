// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package providers

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/citeseek/pkg/types"
)

const sampleOpenAlexJSON = `{
  "results": [
    {
      "id": "https://openalex.org/W2741809807",
      "title": "Attention Is All You Need",
      "doi": "https://doi.org/10.5555/3295222.3295349",
      "publication_year": 2017,
      "relevance_score": 412.7,
      "authorships": [
        {"author": {"display_name": "Ashish Vaswani"}},
        {"author": {"display_name": "Noam Shazeer"}}
      ],
      "abstract_inverted_index": {
        "We": [0],
        "propose": [1],
        "a": [2],
        "new": [3],
        "architecture": [4]
      },
      "biblio": {"volume": "30", "first_page": "5998", "last_page": "6008"},
      "primary_location": {
        "landing_page_url": "https://papers.nips.cc/paper/7181",
        "source": {
          "display_name": "Advances in Neural Information Processing Systems",
          "host_organization_name": "Curran Associates"
        }
      }
    }
  ]
}`

func openAlexTestServer(statusCode int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		fmt.Fprint(w, body)
	}))
}

func TestOpenAlexSearchTitle(t *testing.T) {
	ts := openAlexTestServer(http.StatusOK, sampleOpenAlexJSON)
	defer ts.Close()

	old := openAlexAPIBase
	openAlexAPIBase = ts.URL
	defer func() { openAlexAPIBase = old }()

	o := &OpenAlex{Client: ts.Client(), UserAgent: "test/1.0", Threshold: 0.65}
	cand, err := o.SearchTitle(context.Background(), "Attention Is All You Need")
	if err != nil {
		t.Fatalf("SearchTitle: %v", err)
	}
	if cand == nil {
		t.Fatal("want candidate for matching title")
	}

	if cand.Title != "Attention Is All You Need" {
		t.Errorf("Title = %q", cand.Title)
	}
	// DOI should be stripped of the resolver prefix and lowercased.
	if cand.DOI != "10.5555/3295222.3295349" {
		t.Errorf("DOI = %q", cand.DOI)
	}
	if cand.Identifier.Kind != types.IdentDOI {
		t.Errorf("Identifier = %+v, want DOI identifier", cand.Identifier)
	}
	if len(cand.Authors) != 2 || cand.Authors[1] != "Noam Shazeer" {
		t.Errorf("Authors = %v", cand.Authors)
	}
	if cand.Year != 2017 {
		t.Errorf("Year = %d", cand.Year)
	}
	if cand.Abstract != "We propose a new architecture" {
		t.Errorf("Abstract = %q, want reconstructed text", cand.Abstract)
	}
	if cand.Venue != "Advances in Neural Information Processing Systems" {
		t.Errorf("Venue = %q", cand.Venue)
	}
	if cand.Publisher != "Curran Associates" {
		t.Errorf("Publisher = %q", cand.Publisher)
	}
	if cand.Pages != "5998-6008" {
		t.Errorf("Pages = %q", cand.Pages)
	}
	if cand.URL != "https://papers.nips.cc/paper/7181" {
		t.Errorf("URL = %q", cand.URL)
	}
	if cand.Provider != "title-search:openalex" {
		t.Errorf("Provider = %q", cand.Provider)
	}
	// Identical title and a native score capped at 1: confidence is 0.8 + 0.2.
	if math.Abs(cand.Confidence-1.0) > 0.001 {
		t.Errorf("Confidence = %f, want 1.0", cand.Confidence)
	}
}

func TestOpenAlexSearchTitleBelowThreshold(t *testing.T) {
	ts := openAlexTestServer(http.StatusOK, sampleOpenAlexJSON)
	defer ts.Close()

	old := openAlexAPIBase
	openAlexAPIBase = ts.URL
	defer func() { openAlexAPIBase = old }()

	o := &OpenAlex{Client: ts.Client(), Threshold: 0.65}
	cand, err := o.SearchTitle(context.Background(), "Soil Erosion in Alpine Watersheds")
	if err != nil {
		t.Fatalf("SearchTitle: %v", err)
	}
	if cand != nil {
		t.Errorf("cand = %+v, want nil below threshold", cand)
	}
}

func TestOpenAlexSearchTitleNoResults(t *testing.T) {
	ts := openAlexTestServer(http.StatusOK, `{"results": []}`)
	defer ts.Close()

	old := openAlexAPIBase
	openAlexAPIBase = ts.URL
	defer func() { openAlexAPIBase = old }()

	o := &OpenAlex{Client: ts.Client(), Threshold: 0.65}
	cand, err := o.SearchTitle(context.Background(), "nothing here")
	if err != nil {
		t.Fatalf("SearchTitle: %v", err)
	}
	if cand != nil {
		t.Errorf("cand = %+v, want nil for empty results", cand)
	}
}

func TestOpenAlexMailtoParameter(t *testing.T) {
	var receivedMailto string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedMailto = r.URL.Query().Get("mailto")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"results": []}`)
	}))
	defer ts.Close()

	old := openAlexAPIBase
	openAlexAPIBase = ts.URL
	defer func() { openAlexAPIBase = old }()

	o := &OpenAlex{Client: ts.Client(), Email: "researcher@example.com"}
	_, _ = o.SearchTitle(context.Background(), "test")
	if receivedMailto != "researcher@example.com" {
		t.Errorf("mailto = %q", receivedMailto)
	}
}

func TestOpenAlexNoDOIKeepsOpenAlexID(t *testing.T) {
	body := `{"results": [{
		"id": "https://openalex.org/W999",
		"title": "No DOI Work",
		"doi": "",
		"publication_year": 2020,
		"relevance_score": 95.0,
		"authorships": [],
		"abstract_inverted_index": {},
		"biblio": {},
		"primary_location": {"source": {}}
	}]}`

	ts := openAlexTestServer(http.StatusOK, body)
	defer ts.Close()

	old := openAlexAPIBase
	openAlexAPIBase = ts.URL
	defer func() { openAlexAPIBase = old }()

	o := &OpenAlex{Client: ts.Client(), Threshold: 0.65}
	cand, err := o.SearchTitle(context.Background(), "No DOI Work")
	if err != nil {
		t.Fatalf("SearchTitle: %v", err)
	}
	if cand == nil {
		t.Fatal("want candidate")
	}
	if cand.DOI != "" {
		t.Errorf("DOI = %q, want empty", cand.DOI)
	}
	if cand.Extras["openalex_id"] != "https://openalex.org/W999" {
		t.Errorf("openalex_id = %q", cand.Extras["openalex_id"])
	}
}

func TestOpenAlexHTTPError(t *testing.T) {
	ts := openAlexTestServer(http.StatusForbidden, "")
	defer ts.Close()

	old := openAlexAPIBase
	openAlexAPIBase = ts.URL
	defer func() { openAlexAPIBase = old }()

	o := &OpenAlex{Client: ts.Client()}
	_, err := o.SearchTitle(context.Background(), "test")
	if err == nil || !strings.Contains(err.Error(), "HTTP 403") {
		t.Errorf("err = %v, want HTTP 403 error", err)
	}
}

func TestReconstructAbstract(t *testing.T) {
	tests := []struct {
		name  string
		index map[string][]int
		want  string
	}{
		{"nil map", nil, ""},
		{"empty map", map[string][]int{}, ""},
		{"single word", map[string][]int{"hello": {0}}, "hello"},
		{
			name: "repeated word",
			index: map[string][]int{
				"the": {0, 4},
				"cat": {1},
				"sat": {2},
				"on":  {3},
				"mat": {5},
			},
			want: "the cat sat on the mat",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reconstructAbstract(tt.index); got != tt.want {
				t.Errorf("reconstructAbstract() = %q, want %q", got, tt.want)
			}
		})
	}
}
