// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pdiddy/citeseek/pkg/types"
)

func TestYouTubeResolve(t *testing.T) {
	var receivedURL string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedURL = r.URL.Query().Get("url")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"title": "Lecture 1: Introduction to Deep Learning", "author_name": "MIT OpenCourseWare", "provider_name": "YouTube"}`)
	}))
	defer ts.Close()

	old := youtubeOEmbedBase
	youtubeOEmbedBase = ts.URL
	defer func() { youtubeOEmbedBase = old }()

	y := &YouTube{Client: ts.Client(), UserAgent: "test/1.0"}
	cand, err := y.Resolve(context.Background(), "njKP3FqW3Sk")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cand == nil {
		t.Fatal("Resolve returned nil candidate")
	}

	if cand.Title != "Lecture 1: Introduction to Deep Learning" {
		t.Errorf("Title = %q", cand.Title)
	}
	if cand.Identifier.Kind != types.IdentYouTube || cand.Identifier.Value != "njKP3FqW3Sk" {
		t.Errorf("Identifier = %+v", cand.Identifier)
	}
	if len(cand.Authors) != 1 || cand.Authors[0] != "MIT OpenCourseWare" {
		t.Errorf("Authors = %v, want channel name", cand.Authors)
	}
	if cand.URL != "https://www.youtube.com/watch?v=njKP3FqW3Sk" {
		t.Errorf("URL = %q", cand.URL)
	}
	if cand.Publisher != "YouTube" {
		t.Errorf("Publisher = %q", cand.Publisher)
	}
	if cand.Provider != "youtube-oembed" {
		t.Errorf("Provider = %q", cand.Provider)
	}
	if receivedURL != "https://www.youtube.com/watch?v=njKP3FqW3Sk" {
		t.Errorf("oEmbed url param = %q", receivedURL)
	}
}

func TestYouTubeResolveUnavailableVideo(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusUnauthorized, http.StatusForbidden} {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		old := youtubeOEmbedBase
		youtubeOEmbedBase = ts.URL

		y := &YouTube{Client: ts.Client()}
		cand, err := y.Resolve(context.Background(), "gone12345ab")

		youtubeOEmbedBase = old
		ts.Close()

		if err != nil {
			t.Fatalf("status %d: Resolve: %v", status, err)
		}
		if cand != nil {
			t.Errorf("status %d: cand = %+v, want nil for unavailable video", status, cand)
		}
	}
}

func TestYouTubeResolveServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	old := youtubeOEmbedBase
	youtubeOEmbedBase = ts.URL
	defer func() { youtubeOEmbedBase = old }()

	y := &YouTube{Client: ts.Client()}
	_, err := y.Resolve(context.Background(), "abc123def45")
	if err == nil {
		t.Fatal("expected error for HTTP 500")
	}
}
