// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/citeseek/pkg/types"
)

const sampleSemanticJSON = `{
  "data": [
    {
      "paperId": "204e3073870fae3d05bcbc2f6a8e263d9b72e776",
      "title": "Attention Is All You Need",
      "abstract": "The dominant sequence transduction models are based on recurrent networks.",
      "year": 2017,
      "venue": "Neural Information Processing Systems",
      "externalIds": {"DOI": "10.5555/3295222.3295349", "ArXiv": "1706.03762"},
      "authors": [
        {"name": "Ashish Vaswani"},
        {"name": "Noam Shazeer"}
      ]
    }
  ]
}`

func semanticTestServer(statusCode int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		fmt.Fprint(w, body)
	}))
}

func TestSemanticScholarSearchTitle(t *testing.T) {
	ts := semanticTestServer(http.StatusOK, sampleSemanticJSON)
	defer ts.Close()

	old := semanticScholarAPIBase
	semanticScholarAPIBase = ts.URL
	defer func() { semanticScholarAPIBase = old }()

	s := &SemanticScholar{Client: ts.Client(), UserAgent: "test/1.0", Threshold: 0.70}
	cand, err := s.SearchTitle(context.Background(), "Attention Is All You Need")
	if err != nil {
		t.Fatalf("SearchTitle: %v", err)
	}
	if cand == nil {
		t.Fatal("want candidate for matching title")
	}

	if cand.Title != "Attention Is All You Need" {
		t.Errorf("Title = %q", cand.Title)
	}
	if cand.DOI != "10.5555/3295222.3295349" {
		t.Errorf("DOI = %q", cand.DOI)
	}
	// DOI wins over the arXiv ID as the canonical identifier.
	if cand.Identifier.Kind != types.IdentDOI {
		t.Errorf("Identifier = %+v, want DOI identifier", cand.Identifier)
	}
	if cand.Extras["arxiv_id"] != "1706.03762" {
		t.Errorf("arxiv_id = %q", cand.Extras["arxiv_id"])
	}
	if cand.Extras["s2_paper_id"] != "204e3073870fae3d05bcbc2f6a8e263d9b72e776" {
		t.Errorf("s2_paper_id = %q", cand.Extras["s2_paper_id"])
	}
	if len(cand.Authors) != 2 || cand.Authors[0] != "Ashish Vaswani" {
		t.Errorf("Authors = %v", cand.Authors)
	}
	if cand.Year != 2017 || cand.Venue != "Neural Information Processing Systems" {
		t.Errorf("Year = %d, Venue = %q", cand.Year, cand.Venue)
	}
	if cand.Confidence != 1.0 {
		t.Errorf("Confidence = %f, want 1.0", cand.Confidence)
	}
	if cand.Provider != "title-search:semantic-scholar" {
		t.Errorf("Provider = %q", cand.Provider)
	}
}

func TestSemanticScholarArxivOnlyIdentifier(t *testing.T) {
	body := `{"data": [{
		"paperId": "abc123",
		"title": "Preprint Only Work",
		"year": 2024,
		"externalIds": {"ArXiv": "2401.00001"},
		"authors": []
	}]}`

	ts := semanticTestServer(http.StatusOK, body)
	defer ts.Close()

	old := semanticScholarAPIBase
	semanticScholarAPIBase = ts.URL
	defer func() { semanticScholarAPIBase = old }()

	s := &SemanticScholar{Client: ts.Client(), Threshold: 0.70}
	cand, err := s.SearchTitle(context.Background(), "Preprint Only Work")
	if err != nil {
		t.Fatalf("SearchTitle: %v", err)
	}
	if cand == nil {
		t.Fatal("want candidate")
	}
	if cand.Identifier.Kind != types.IdentArxiv || cand.Identifier.Value != "2401.00001" {
		t.Errorf("Identifier = %+v, want arXiv fallback", cand.Identifier)
	}
}

func TestSemanticScholarBelowThreshold(t *testing.T) {
	ts := semanticTestServer(http.StatusOK, sampleSemanticJSON)
	defer ts.Close()

	old := semanticScholarAPIBase
	semanticScholarAPIBase = ts.URL
	defer func() { semanticScholarAPIBase = old }()

	s := &SemanticScholar{Client: ts.Client(), Threshold: 0.70}
	cand, err := s.SearchTitle(context.Background(), "Coral Reef Restoration Methods")
	if err != nil {
		t.Fatalf("SearchTitle: %v", err)
	}
	if cand != nil {
		t.Errorf("cand = %+v, want nil below threshold", cand)
	}
}

func TestSemanticScholarNoResults(t *testing.T) {
	ts := semanticTestServer(http.StatusOK, `{"data": []}`)
	defer ts.Close()

	old := semanticScholarAPIBase
	semanticScholarAPIBase = ts.URL
	defer func() { semanticScholarAPIBase = old }()

	s := &SemanticScholar{Client: ts.Client(), Threshold: 0.70}
	cand, err := s.SearchTitle(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("SearchTitle: %v", err)
	}
	if cand != nil {
		t.Errorf("cand = %+v, want nil for empty data", cand)
	}
}

func TestSemanticScholarAPIKeyHeader(t *testing.T) {
	var receivedKey string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedKey = r.Header.Get("x-api-key")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data": []}`)
	}))
	defer ts.Close()

	old := semanticScholarAPIBase
	semanticScholarAPIBase = ts.URL
	defer func() { semanticScholarAPIBase = old }()

	s := &SemanticScholar{Client: ts.Client(), APIKey: "sk_test123"}
	_, _ = s.SearchTitle(context.Background(), "test")
	if receivedKey != "sk_test123" {
		t.Errorf("x-api-key = %q", receivedKey)
	}
}

func TestSemanticScholarHTTPError(t *testing.T) {
	ts := semanticTestServer(http.StatusInternalServerError, "")
	defer ts.Close()

	old := semanticScholarAPIBase
	semanticScholarAPIBase = ts.URL
	defer func() { semanticScholarAPIBase = old }()

	s := &SemanticScholar{Client: ts.Client()}
	_, err := s.SearchTitle(context.Background(), "test")
	if err == nil || !strings.Contains(err.Error(), "HTTP 500") {
		t.Errorf("err = %v, want HTTP 500 error", err)
	}
}
