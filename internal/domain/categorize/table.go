// Package categorize maps free-text transaction descriptions to spending
// categories using an ordered keyword table. Categories are tested in table
// order and the first match wins, so the table is totally ordered and each
// keyword belongs to exactly one category.
package categorize

import (
	"fmt"
	"strings"
)

// FallbackCategory is returned when no keyword matches.
const FallbackCategory = "Shopping/Other"

// Rule binds one category to its keyword substrings.
type Rule struct {
	Name     string
	Keywords []string
}

// NewTable validates the ordered rules and builds the matching engine.
// A keyword appearing under more than one category is a configuration error,
// not something to resolve silently via iteration order.
func NewTable(rules []Rule, fallback string) (*Table, error) {
	if fallback == "" {
		fallback = FallbackCategory
	}

	seen := make(map[string]string)
	for _, rule := range rules {
		if strings.TrimSpace(rule.Name) == "" {
			return nil, fmt.Errorf("category table: empty category name")
		}
		for _, kw := range rule.Keywords {
			normalized := strings.ToLower(strings.TrimSpace(kw))
			if normalized == "" {
				return nil, fmt.Errorf("category table: empty keyword under %q", rule.Name)
			}
			if prev, ok := seen[normalized]; ok && prev != rule.Name {
				return nil, fmt.Errorf("category table: keyword %q appears under both %q and %q", normalized, prev, rule.Name)
			}
			seen[normalized] = rule.Name
		}
	}

	t := &Table{rules: rules, fallback: fallback}
	t.build()
	return t, nil
}

// MustTable is NewTable for tables known valid at compile time.
func MustTable(rules []Rule, fallback string) *Table {
	t, err := NewTable(rules, fallback)
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultRules is the SpareBank 1 keyword taxonomy. Order is significant: a
// description matching keywords from two categories is assigned to the one
// listed earlier.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "Subscriptions", Keywords: []string{"apple.com", "adobe", "openai", "microsoft", "netflix", "spotify"}},
		{Name: "Health", Keywords: []string{"legesenter", "apotek", "helse"}},
		{Name: "Savings", Keywords: []string{"småsparing"}},
		{Name: "Travel", Keywords: []string{"atb", "vy", "fly", "taxi", "uber"}},
		{Name: "Food & Groceries", Keywords: []string{"kiwi", "rema", "coop", "meny", "mcdonalds"}},
		{Name: "Transfers", Keywords: []string{"vipps", "overføring"}},
		{Name: "Income", Keywords: []string{"lønn", "salary"}},
	}
}

// DefaultTable builds the default taxonomy with the standard fallback.
func DefaultTable() *Table {
	return MustTable(DefaultRules(), FallbackCategory)
}
