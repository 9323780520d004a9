package catalog

import (
	"sort"
	"strings"
)

// MaxCandidates bounds the candidate list handed to the reasoning step.
const MaxCandidates = 500

const (
	scoreExact     = 10
	scoreSubstring = 3
	scorePrefix    = 1
	minTermLen     = 3
)

// Search scores every catalog title against the query and returns matches in
// descending score order, catalog order breaking ties, truncated to
// MaxCandidates. Titles that score zero are excluded. Pure and deterministic
// for a fixed catalog and query.
//
// Scoring per query term against the lower-cased title:
//   - exact equality: +10
//   - substring containment: +3
//   - otherwise +1 for every title word that is a prefix of the term or of
//     which the term is a prefix; a single term can collect +1 from several
//     words.
func (c *Catalog) Search(query string) []string {
	terms := tokenize(query)
	if len(terms) == 0 {
		return nil
	}

	type match struct {
		title string
		score int
	}
	var matches []match
	for _, title := range c.titles {
		lower := strings.ToLower(title)
		score := 0
		for _, term := range terms {
			switch {
			case lower == term:
				score += scoreExact
			case strings.Contains(lower, term):
				score += scoreSubstring
			default:
				for _, w := range strings.Fields(lower) {
					if strings.HasPrefix(w, term) || strings.HasPrefix(term, w) {
						score += scorePrefix
					}
				}
			}
		}
		if score > 0 {
			matches = append(matches, match{title: title, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	if len(matches) > MaxCandidates {
		matches = matches[:MaxCandidates]
	}

	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.title
	}
	return out
}

// tokenize lower-cases the query, splits on whitespace and commas, and drops
// noise terms of length <= 2.
func tokenize(query string) []string {
	raw := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	var terms []string
	for _, t := range raw {
		if len(t) >= minTermLen {
			terms = append(terms, t)
		}
	}
	return terms
}
