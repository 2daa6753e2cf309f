// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match scores how well a candidate title matches a query title.
// The scorer is the sole arbiter of "is this candidate the same work", so
// every provider client funnels through it.
package match

import (
	"strings"
	"unicode"
)

// substringBonus is added when one normalized title contains the other
// whole, which catches subtitle truncation and scraper-clipped titles.
const substringBonus = 0.2

// TitleSimilarity returns a match confidence in [0,1] between two titles.
// Titles equal after normalization score 1.0; otherwise the score is the
// Jaccard similarity of their token sets, plus substringBonus when one
// normalized title contains the other, clamped to 1.0.
//
// The function is deterministic and symmetric.
func TitleSimilarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return 1.0
	}
	if na == "" || nb == "" {
		return 0.0
	}

	score := jaccard(strings.Fields(na), strings.Fields(nb))
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		score += substringBonus
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// Normalize lowercases the title, strips everything outside letters,
// digits, and whitespace, and collapses runs of whitespace.
func Normalize(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// jaccard returns intersection size over union size for two token lists.
func jaccard(a, b []string) float64 {
	set := make(map[string]bool, len(a))
	for _, tok := range a {
		set[tok] = true
	}

	union := make(map[string]bool, len(a)+len(b))
	for _, tok := range a {
		union[tok] = true
	}

	intersection := 0
	seen := make(map[string]bool, len(b))
	for _, tok := range b {
		union[tok] = true
		if set[tok] && !seen[tok] {
			intersection++
			seen[tok] = true
		}
	}

	if len(union) == 0 {
		return 0.0
	}
	return float64(intersection) / float64(len(union))
}
