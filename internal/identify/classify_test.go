// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package identify

import (
	"testing"

	"github.com/pdiddy/citeseek/pkg/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		rec  types.Record
		want Kind
	}{
		{
			name: "video by url host",
			rec:  types.Record{Title: "Some talk", URL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
			want: KindVideo,
		},
		{
			name: "video by scraper tag",
			rec:  types.Record{Title: "Lecture 1", Type: types.RecordVideo},
			want: KindVideo,
		},
		{
			name: "video by title suffix",
			rec:  types.Record{Title: "Conference keynote - YouTube"},
			want: KindVideo,
		},
		{
			name: "preprint by url",
			rec:  types.Record{Title: "Attention Is All You Need", URL: "https://arxiv.org/abs/1706.03762"},
			want: KindPreprint,
		},
		{
			name: "preprint by keyword",
			rec:  types.Record{Title: "A bioRxiv preprint on gene editing"},
			want: KindPreprint,
		},
		{
			name: "file by extension",
			rec:  types.Record{Title: "quarterly-report.pdf"},
			want: KindFile,
		},
		{
			name: "academic by year and subtitle",
			rec:  types.Record{Title: "Smith et al - 2024 - Large Models"},
			want: KindAcademic,
		},
		{
			name: "web by url",
			rec:  types.Record{Title: "Blog post", URL: "https://example.com/post"},
			want: KindWeb,
		},
		{
			name: "web by long title",
			rec:  types.Record{Title: "An extremely long scraped page heading that keeps going and going with no year"},
			want: KindWeb,
		},
		{
			name: "unknown",
			rec:  types.Record{Title: "Notes"},
			want: KindUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.rec); got != tt.want {
				t.Errorf("Classify(%+v) = %s, want %s", tt.rec, got, tt.want)
			}
		})
	}
}
