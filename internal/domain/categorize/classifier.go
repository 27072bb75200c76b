package categorize

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// Table is an ordered keyword-to-category classifier. All keywords are
// compiled into a single Aho-Corasick automaton so every description is
// scanned once regardless of table size; table order decides between
// concurrent matches.
type Table struct {
	rules    []Rule
	fallback string

	matcher  *ahocorasick.Matcher
	patterns []string
	// entryOrder[i] is the table position of patterns[i]; lower wins.
	entryOrder    []int
	entryCategory []string
}

func (t *Table) build() {
	var patterns [][]byte
	for ruleIdx, rule := range t.rules {
		for _, kw := range rule.Keywords {
			normalized := strings.ToLower(strings.TrimSpace(kw))
			patterns = append(patterns, []byte(normalized))
			t.patterns = append(t.patterns, normalized)
			t.entryOrder = append(t.entryOrder, ruleIdx)
			t.entryCategory = append(t.entryCategory, rule.Name)
		}
	}
	if len(patterns) > 0 {
		t.matcher = ahocorasick.NewMatcher(patterns)
	}
}

// Categorize returns the category of the earliest table entry whose keyword
// is a substring of the lower-cased description, or the fallback when none
// match. Deterministic: same description, same table, same label.
func (t *Table) Categorize(description string) string {
	if t.matcher == nil {
		return t.fallback
	}

	matches := t.matcher.Match([]byte(strings.ToLower(description)))
	if len(matches) == 0 {
		return t.fallback
	}

	best := -1
	for _, idx := range matches {
		if idx < 0 || idx >= len(t.entryOrder) {
			continue
		}
		if best == -1 || t.entryOrder[idx] < t.entryOrder[best] {
			best = idx
		}
	}
	if best == -1 {
		return t.fallback
	}
	return t.entryCategory[best]
}

// Fallback returns the label used when nothing matches.
func (t *Table) Fallback() string {
	return t.fallback
}

// Categories returns the category names in table order, fallback last.
func (t *Table) Categories() []string {
	names := make([]string, 0, len(t.rules)+1)
	for _, rule := range t.rules {
		names = append(names, rule.Name)
	}
	return append(names, t.fallback)
}
