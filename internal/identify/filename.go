// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package identify

import (
	"regexp"
	"strconv"
	"strings"
)

// AuthorYear is the result of parsing a filename-shaped title like
// "Smith et al - 2024 - Some Title.pdf".
type AuthorYear struct {
	// Author is the first author's surname.
	Author string

	// Year is the four-digit publication year.
	Year int

	// Remainder is what follows the author/year prefix, with the file
	// extension stripped. Empty when the pattern consumed the whole title.
	Remainder string
}

// filenamePatterns is the ordered table of author/year title shapes.
// First match wins. Each pattern captures the surname in group 1 and the
// year in group 2.
var filenamePatterns = []*regexp.Regexp{
	// "Smith et al - 2024 ..."
	regexp.MustCompile(`^([A-Z][\p{L}'-]+)\s+et\s+al\.?\s*-\s*((?:19|20)\d{2})`),
	// "Jones & Brown (2023) ..." — tolerates co-authors before the parens.
	regexp.MustCompile(`^([A-Z][\p{L}'-]+)[^()]*\(((?:19|20)\d{2})\)`),
	// "Smith - 2024 ..."
	regexp.MustCompile(`^([A-Z][\p{L}'-]+)\s*-\s*((?:19|20)\d{2})`),
	// "Smith 2024 ..."
	regexp.MustCompile(`^([A-Z][\p{L}'-]+)\s+((?:19|20)\d{2})\b`),
}

// ParseAuthorYear parses an author surname and year out of a
// filename-shaped title. It returns false when no pattern matches.
func ParseAuthorYear(title string) (AuthorYear, bool) {
	title = strings.TrimSpace(title)
	for _, re := range filenamePatterns {
		loc := re.FindStringSubmatchIndex(title)
		if loc == nil {
			continue
		}
		author := title[loc[2]:loc[3]]
		year, err := strconv.Atoi(title[loc[4]:loc[5]])
		if err != nil {
			continue
		}
		rest := strings.Trim(title[loc[1]:], " -–:")
		return AuthorYear{
			Author:    author,
			Year:      year,
			Remainder: StripExtension(rest),
		}, true
	}
	return AuthorYear{}, false
}
