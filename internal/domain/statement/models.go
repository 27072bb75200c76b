// Package statement turns raw bank-statement text into normalized transaction
// records. The source statements are extracted as free text without column
// boundaries, so parsing is heuristic: substring noise filters, a Norwegian
// currency pattern with a leftmost tie-break, and plausibility bounds stand in
// for structural table parsing.
package statement

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Source records where a transaction came from, for traceability and for the
// source-key deduplication policy.
type Source struct {
	FileID uuid.UUID `json:"-"`
	Page   int       `json:"page"`
	Line   int       `json:"line"`
}

// Candidate is the intermediate parse result for a single line. It exists only
// when a currency-formatted token was found and no noise marker matched.
type Candidate struct {
	Description string
	AmountText  string
	RawLine     string
}

// Transaction is the final normalized record. It is created once per matching
// line and immutable thereafter; the category is assigned at creation time and
// never recomputed.
type Transaction struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	DateCode    string          `json:"dateCode"`
	Source      Source          `json:"source"`
}

// RowKey is the strict row-equality identity used by the default
// deduplication policy. Two genuinely distinct transactions that collide on
// all fields are collapsed under this key; callers needing exact counts use
// the source-key policy instead.
func (t Transaction) RowKey() string {
	return t.Description + "\x1f" + t.Amount.StringFixed(2) + "\x1f" + t.Category + "\x1f" + t.DateCode
}

// SourceKey is the synthetic uniqueness key combining file identity, page and
// line offset.
func (t Transaction) SourceKey() string {
	return fmt.Sprintf("%s\x1f%d\x1f%d", t.Source.FileID, t.Source.Page, t.Source.Line)
}
