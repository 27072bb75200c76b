package statement

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/zayals35/My-economy-app/pkg/money"
)

// exportRow is a raw row from a delimited bank export. The tags cover the
// known column-name variants; gocsv matches by header name, so renaming the
// Norwegian columns to the canonical Description/Amount fields happens here.
type exportRow struct {
	// Description columns
	Forklaring  string `csv:"Forklaring"`
	Beskrivelse string `csv:"Beskrivelse"`
	Description string `csv:"Description"`

	// Amount-out columns
	UtAvKonto string `csv:"Ut av konto"`
	Belop     string `csv:"Beløp"`
	Amount    string `csv:"Amount"`

	// Date columns (optional)
	Dato string `csv:"Dato"`
	Date string `csv:"Date"`
}

// ExportResult is the outcome of reading one delimited export.
type ExportResult struct {
	Transactions []Transaction
	RowsTotal    int
	RowsSkipped  int
}

// ReadExport consumes a delimited tabular export directly, bypassing the
// regex pipeline: the export already separates description from amount, so
// the noise markers and currency-token detection written for flattened PDF
// text do not apply. Only header normalization, amount parsing and the
// plausibility bounds gate rows; anything else the export says is trusted.
func (p *Parser) ReadExport(r io.Reader, src Source) (*ExportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}

	// A local reader per call: the delimiter belongs to this document, not to
	// a process-wide setting shared between concurrent uploads.
	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = detectDelimiter(data)
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var rows []exportRow
	if err := gocsv.UnmarshalCSV(cr, &rows); err != nil {
		return nil, fmt.Errorf("parse export: %w", err)
	}

	result := &ExportResult{RowsTotal: len(rows)}
	for i, row := range rows {
		desc := coalesce(row.Forklaring, row.Beskrivelse, row.Description)
		amountStr := coalesce(row.UtAvKonto, row.Belop, row.Amount)
		if desc == "" || amountStr == "" {
			result.RowsSkipped++
			continue
		}

		amount, err := parseExportAmount(amountStr)
		if err != nil {
			result.RowsSkipped++
			continue
		}
		if amount.LessThan(p.cfg.MinAmount) || amount.GreaterThan(p.cfg.MaxAmount) {
			result.RowsSkipped++
			continue
		}

		dateCode := p.cfg.DatePlaceholder
		if date := coalesce(row.Dato, row.Date); date != "" {
			dateCode = date
		}

		result.Transactions = append(result.Transactions, Transaction{
			Description: desc,
			Amount:      amount,
			DateCode:    dateCode,
			Source:      Source{FileID: src.FileID, Page: 1, Line: i + 2},
		})
	}
	return result, nil
}

// parseExportAmount handles the amount notations seen in delimited exports:
// Norwegian comma decimals ("415,90", "1.529,00"), dot decimals ("415.90")
// and whole kroner ("12000").
func parseExportAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		m, err := money.ParseNorwegian(s)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return m.Decimal(), nil
	}

	cleaned := strings.ReplaceAll(s, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "\u00a0", "")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", money.ErrMalformedAmount, s)
	}
	return d, nil
}

// detectDelimiter picks the delimiter that occurs most often in the header
// line, preferring ';' (the common Norwegian export delimiter) on ties.
func detectDelimiter(data []byte) rune {
	header := string(data)
	if idx := strings.IndexByte(header, '\n'); idx >= 0 {
		header = header[:idx]
	}

	best := ','
	bestCount := 0
	for _, d := range []rune{';', '\t', ',', '|'} {
		if count := strings.Count(header, string(d)); count > bestCount {
			bestCount = count
			best = d
		}
	}
	return best
}

// csvRecord is the canonical output row written by WriteExport.
type csvRecord struct {
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
	Category    string `csv:"Category"`
	Date        string `csv:"Date"`
}

// WriteExport writes transactions as comma-delimited CSV with a canonical
// header, amounts rendered with two decimals and a dot separator.
func WriteExport(w io.Writer, txs []Transaction) error {
	records := make([]csvRecord, 0, len(txs))
	for _, tx := range txs {
		records = append(records, csvRecord{
			Description: tx.Description,
			Amount:      tx.Amount.StringFixed(2),
			Category:    tx.Category,
			Date:        tx.DateCode,
		})
	}
	if err := gocsv.Marshal(&records, w); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// coalesce returns the first non-empty trimmed value.
func coalesce(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
