package statement

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/zayals35/My-economy-app/pkg/money"
)

// Norwegian currency token: one or more digits, optionally grouped with
// interior spaces or thousand-separator dots, then a comma and exactly two
// digits. "349,00", "1.529,00", "18 204,55" and "18204,55" all match.
var amountPattern = regexp.MustCompile(`\b(?:\d{1,3}(?:[. ]\d{3})+|\d+),\d{2}\b`)

// Prefixes stripped from descriptions: masked card fragments ("*5887") and
// 4-digit day-month tokens ("0112") or dotted dates ("28.11").
var (
	cardFragmentPrefix = regexp.MustCompile(`^\*\d{4}\s+`)
	dateCodePrefix     = regexp.MustCompile(`^(\d{4})\s+`)
	dottedDatePrefix   = regexp.MustCompile(`^(\d{2})\.(\d{2})\s+`)
)

// Config controls the parsing heuristics. It is injected at construction time
// so tests and locales can vary it without shared state.
type Config struct {
	// NoiseMarkers are literal substrings identifying statement boilerplate.
	// A line containing any of them never yields a transaction.
	NoiseMarkers []string
	// MinAmount and MaxAmount bound plausible spending. The same digit
	// pattern matches account balances and ID-like numbers embedded in the
	// statement layout; the bounds are the only disambiguator available
	// without structural parsing.
	MinAmount decimal.Decimal
	MaxAmount decimal.Decimal
	// MinDescription is the minimum rune count a description must keep after
	// prefix cleanup.
	MinDescription int
	// DatePlaceholder is used when no day-month token is found on the line.
	DatePlaceholder string
}

// DefaultConfig returns the configuration tuned for SpareBank 1 statements.
func DefaultConfig() Config {
	return Config{
		NoiseMarkers: []string{
			"4212.02.65827", // masked account-number fragment
			"IBAN",
			"Saldo",
			"Referanse",
			"Side",
			"Dato",
		},
		MinAmount:       decimal.NewFromInt(1),
		MaxAmount:       decimal.NewFromInt(25000),
		MinDescription:  3,
		DatePlaceholder: "Desember",
	}
}

// Parser extracts transactions from raw statement lines. It is a pure
// function of line text plus configuration: parsing the same text twice
// yields identical results.
type Parser struct {
	cfg Config
}

// NewParser creates a parser with the given configuration.
func NewParser(cfg Config) *Parser {
	return &Parser{cfg: cfg}
}

// Stats counts what happened during a parse run.
type Stats struct {
	LinesSeen  int
	NoiseLines int
	Candidates int
	Parsed     int
}

// ParseLine decides whether a single raw line encodes a transaction and, if
// so, extracts the cleaned description and normalized amount. The category is
// left empty for the classifier. Returns false for noise lines, lines without
// a currency token, malformed or implausible amounts, and too-short
// descriptions.
func (p *Parser) ParseLine(line string, src Source) (Transaction, bool) {
	if p.isNoise(line) {
		return Transaction{}, false
	}

	cand, ok := extractCandidate(line)
	if !ok {
		return Transaction{}, false
	}

	amt, err := money.ParseNorwegian(cand.AmountText)
	if err != nil {
		return Transaction{}, false
	}
	value := amt.Decimal()
	if value.LessThan(p.cfg.MinAmount) || value.GreaterThan(p.cfg.MaxAmount) {
		return Transaction{}, false
	}

	desc, dateCode := p.cleanDescription(cand.Description)
	if utf8.RuneCountInString(desc) < p.cfg.MinDescription {
		return Transaction{}, false
	}

	return Transaction{
		Description: desc,
		Amount:      value,
		DateCode:    dateCode,
		Source:      src,
	}, true
}

// ParsePage parses every line of one page of extracted text.
func (p *Parser) ParsePage(lines []string, fileSrc Source, stats *Stats) []Transaction {
	var txs []Transaction
	for i, line := range lines {
		if stats != nil {
			stats.LinesSeen++
			switch {
			case p.isNoise(line):
				stats.NoiseLines++
			case amountPattern.MatchString(line):
				stats.Candidates++
			}
		}
		src := Source{FileID: fileSrc.FileID, Page: fileSrc.Page, Line: i + 1}
		tx, ok := p.ParseLine(line, src)
		if !ok {
			continue
		}
		if stats != nil {
			stats.Parsed++
		}
		txs = append(txs, tx)
	}
	return txs
}

func (p *Parser) isNoise(line string) bool {
	for _, marker := range p.cfg.NoiseMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// ExtractAmount finds the transaction amount token on a line. When several
// currency tokens appear, the leftmost wins: statements place the debited
// amount before any running balance on the same line.
func ExtractAmount(line string) (decimal.Decimal, string, bool) {
	tok := amountPattern.FindString(line)
	if tok == "" {
		return decimal.Decimal{}, "", false
	}
	amt, err := money.ParseNorwegian(tok)
	if err != nil {
		return decimal.Decimal{}, "", false
	}
	return amt.Decimal(), tok, true
}

// extractCandidate locates the first currency token and takes the preceding
// text as the raw description.
func extractCandidate(line string) (Candidate, bool) {
	loc := amountPattern.FindStringIndex(line)
	if loc == nil {
		return Candidate{}, false
	}
	return Candidate{
		Description: strings.TrimSpace(line[:loc[0]]),
		AmountText:  line[loc[0]:loc[1]],
		RawLine:     line,
	}, true
}

// cleanDescription strips known prefixes and derives the 4-digit day-month
// code when one leads the line.
func (p *Parser) cleanDescription(desc string) (string, string) {
	desc = strings.TrimSpace(desc)
	desc = cardFragmentPrefix.ReplaceAllString(desc, "")

	dateCode := p.cfg.DatePlaceholder
	if m := dateCodePrefix.FindStringSubmatch(desc); m != nil {
		dateCode = m[1]
		desc = desc[len(m[0]):]
	} else if m := dottedDatePrefix.FindStringSubmatch(desc); m != nil {
		dateCode = m[1] + m[2]
		desc = desc[len(m[0]):]
	}

	desc = strings.TrimSpace(desc)
	for strings.Contains(desc, "  ") {
		desc = strings.ReplaceAll(desc, "  ", " ")
	}
	return desc, dateCode
}
