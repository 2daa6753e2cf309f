// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/pdiddy/citeseek/internal/httputil"
	"github.com/pdiddy/citeseek/pkg/types"
)

// youtubeOEmbedBase is a variable so tests can point the client at a local server.
var youtubeOEmbedBase = "https://www.youtube.com/oembed"

// YouTube resolves video IDs through the public oEmbed endpoint, which
// needs no API key but returns only title and channel name.
type YouTube struct {
	Client    *http.Client
	UserAgent string
	Log       zerolog.Logger
}

func (y *YouTube) Name() string { return "youtube" }

// Resolve fetches oEmbed metadata for one video ID. Private, deleted, and
// region-blocked videos yield no candidate.
func (y *YouTube) Resolve(ctx context.Context, videoID string) (*types.Candidate, error) {
	watchURL := "https://www.youtube.com/watch?v=" + videoID
	params := url.Values{
		"url":    {watchURL},
		"format": {"json"},
	}

	resp, err := httputil.Get(ctx, y.Client, youtubeOEmbedBase+"?"+params.Encode(), y.UserAgent, nil)
	if err != nil {
		return nil, fmt.Errorf("YouTube oEmbed request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusUnauthorized, http.StatusForbidden:
		return nil, nil
	default:
		return nil, fmt.Errorf("YouTube oEmbed returned HTTP %d", resp.StatusCode)
	}

	var payload struct {
		Title      string `json:"title"`
		AuthorName string `json:"author_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding oEmbed response: %w", err)
	}
	if payload.Title == "" {
		return nil, nil
	}

	cand := &types.Candidate{
		Identifier: types.Identifier{Kind: types.IdentYouTube, Value: videoID},
		Title:      payload.Title,
		URL:        watchURL,
		Publisher:  "YouTube",
		Extras:     map[string]string{"video_id": videoID},
		Provider:   "youtube-oembed",
	}
	if payload.AuthorName != "" {
		cand.Authors = []string{payload.AuthorName}
	}
	return cand, nil
}
