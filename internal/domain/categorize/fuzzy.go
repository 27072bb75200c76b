package categorize

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Suggestion is a near-match between an uncategorized description and a
// configured keyword, useful for surfacing "did you mean" hints when the
// exact-substring classifier falls through to the fallback category.
type Suggestion struct {
	Category string
	Keyword  string
	Score    int // 0-100, higher is closer
}

// Suggest ranks keywords by similarity to the description and returns those
// scoring at or above threshold, best first. Exact classifier hits should be
// preferred over suggestions; this is only a hint source.
func (t *Table) Suggest(description string, threshold int) []Suggestion {
	normalized := strings.ToLower(strings.TrimSpace(description))
	if normalized == "" {
		return nil
	}

	var out []Suggestion
	for i, kw := range t.patterns {
		score := similarity(normalized, kw)
		if score >= threshold {
			out = append(out, Suggestion{
				Category: t.entryCategory[i],
				Keyword:  kw,
				Score:    score,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// similarity scores two strings 0-100 using containment first and
// Levenshtein-ranked fuzzy matching otherwise.
func similarity(desc, keyword string) int {
	if desc == keyword {
		return 100
	}
	if strings.Contains(desc, keyword) {
		return 75 + 25*len(keyword)/len(desc)
	}

	rank := fuzzy.LevenshteinDistance(desc, keyword)
	maxLen := len(desc)
	if len(keyword) > maxLen {
		maxLen = len(keyword)
	}
	if maxLen == 0 || rank > maxLen {
		return 0
	}
	return 100 * (maxLen - rank) / maxLen
}
