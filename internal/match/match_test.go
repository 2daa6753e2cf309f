// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import "testing"

func TestTitleSimilarityIdentity(t *testing.T) {
	titles := []string{
		"Attention Is All You Need",
		"deep learning",
		"",
		"A Survey of Large Language Models: Architectures, Training, and Evaluation",
	}
	for _, title := range titles {
		if got := TitleSimilarity(title, title); got != 1.0 {
			t.Errorf("TitleSimilarity(%q, same) = %f, want 1.0", title, got)
		}
	}
}

func TestTitleSimilaritySymmetry(t *testing.T) {
	pairs := [][2]string{
		{"Attention Is All You Need", "Efficient Transformers"},
		{"Deep Learning for NLP", "Deep Learning"},
		{"Climate Models", "climate models revisited"},
	}
	for _, p := range pairs {
		ab := TitleSimilarity(p[0], p[1])
		ba := TitleSimilarity(p[1], p[0])
		if ab != ba {
			t.Errorf("TitleSimilarity(%q, %q) = %f but reversed = %f", p[0], p[1], ab, ba)
		}
	}
}

func TestTitleSimilarityRange(t *testing.T) {
	pairs := [][2]string{
		{"a", "b"},
		{"", "something"},
		{"Deep Learning for NLP", "Deep Learning for NLP and more deep learning"},
		{"one two three", "one two three four"},
	}
	for _, p := range pairs {
		got := TitleSimilarity(p[0], p[1])
		if got < 0.0 || got > 1.0 {
			t.Errorf("TitleSimilarity(%q, %q) = %f, outside [0,1]", p[0], p[1], got)
		}
	}
}

func TestTitleSimilarityPunctuationInsensitive(t *testing.T) {
	if got := TitleSimilarity("Deep Learning for NLP", "deep learning for nlp!!!"); got != 1.0 {
		t.Errorf("TitleSimilarity = %f, want 1.0 for case/punctuation variants", got)
	}
}

func TestTitleSimilarityLowOverlap(t *testing.T) {
	got := TitleSimilarity("Attention Is All You Need", "Efficient Transformers")
	if got >= 0.3 {
		t.Errorf("TitleSimilarity = %f, want < 0.3 for unrelated titles", got)
	}
}

func TestTitleSimilaritySubstringBonus(t *testing.T) {
	// The shorter title is wholly contained in the longer one, so the
	// Jaccard score gets the fixed bonus on top.
	full := "Attention Is All You Need"
	clipped := "Attention Is All"

	withBonus := TitleSimilarity(full, clipped)
	// 3 shared tokens of 5 total = 0.6 Jaccard, +0.2 bonus.
	if withBonus < 0.79 || withBonus > 0.81 {
		t.Errorf("TitleSimilarity = %f, want 0.8 (jaccard 0.6 + bonus 0.2)", withBonus)
	}
}

func TestTitleSimilarityClampedAtOne(t *testing.T) {
	// High Jaccard plus the substring bonus must not exceed 1.0.
	a := "one two three four five six seven eight nine ten"
	b := "one two three four five six seven eight nine"
	got := TitleSimilarity(a, b)
	if got > 1.0 {
		t.Errorf("TitleSimilarity = %f, want clamp at 1.0", got)
	}
	if got != 1.0 {
		t.Errorf("TitleSimilarity = %f, want 1.0 (0.9 jaccard + 0.2 bonus, clamped)", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello, World!", "hello world"},
		{"  spaced    out  ", "spaced out"},
		{"Mixed-Case: Title (2024)", "mixedcase title 2024"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
