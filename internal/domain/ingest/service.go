// Package ingest orchestrates one batch run: every uploaded document is
// extracted, parsed and classified, the per-file transaction sequences are
// concatenated in upload order, and duplicates are removed per the configured
// policy. A failing file is logged and skipped; it never aborts the batch.
package ingest

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/zayals35/My-economy-app/internal/domain/categorize"
	"github.com/zayals35/My-economy-app/internal/domain/statement"
)

// DedupPolicy selects the uniqueness key for cross-file deduplication.
type DedupPolicy int

const (
	// DedupRowEquality removes rows whose description, amount, category and
	// date code are all exactly equal. Coarse: two genuinely distinct
	// transactions that collide on every field are collapsed into one.
	DedupRowEquality DedupPolicy = iota
	// DedupSourceKey keys on (file, page, line) instead, keeping identical
	// rows that come from different statement positions.
	DedupSourceKey
	// DedupNone keeps every parsed row.
	DedupNone
)

// pdfMagic marks a PDF upload; anything else takes the tabular path.
var pdfMagic = []byte("%PDF")

// Extractor is the upstream page-text source for PDF uploads.
type Extractor interface {
	ExtractPages(r io.Reader) ([][]string, error)
}

// File is one uploaded document.
type File struct {
	Name string
	Data []byte
}

// Stats counts what happened across the whole batch.
type Stats struct {
	FilesTotal        int `json:"filesTotal"`
	FilesFailed       int `json:"filesFailed"`
	LinesSeen         int `json:"linesSeen"`
	NoiseLines        int `json:"noiseLines"`
	Candidates        int `json:"candidates"`
	Parsed            int `json:"parsed"`
	DuplicatesSkipped int `json:"duplicatesSkipped"`
}

// Result is the working set handed to presentation, plus batch diagnostics.
type Result struct {
	Transactions []statement.Transaction `json:"transactions"`
	Stats        Stats                   `json:"stats"`
	Warnings     []string                `json:"warnings,omitempty"`
}

// Service wires the extractor, parser and classifier together.
type Service struct {
	extractor Extractor
	parser    *statement.Parser
	table     *categorize.Table
	policy    DedupPolicy
	logger    *slog.Logger
}

// NewService creates an ingest service with the row-equality dedup default.
func NewService(extractor Extractor, parser *statement.Parser, table *categorize.Table, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		extractor: extractor,
		parser:    parser,
		table:     table,
		policy:    DedupRowEquality,
		logger:    logger,
	}
}

// WithDedupPolicy overrides the deduplication policy.
func (s *Service) WithDedupPolicy(policy DedupPolicy) *Service {
	s.policy = policy
	return s
}

// Ingest processes the uploaded files sequentially and returns the merged,
// classified, deduplicated transaction set. Zero transactions from a
// non-empty upload is a warning condition, not an error; an empty upload is
// neither.
func (s *Service) Ingest(ctx context.Context, files []File) (*Result, error) {
	result := &Result{Transactions: []statement.Transaction{}}

	var merged []statement.Transaction
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result.Stats.FilesTotal++

		txs, err := s.ingestFile(file, &result.Stats)
		if err != nil {
			result.Stats.FilesFailed++
			s.logger.Warn("failed to process file", "file", file.Name, "error", err)
			continue
		}
		merged = append(merged, txs...)
	}

	result.Transactions = s.dedupe(merged, &result.Stats)

	if len(files) > 0 && len(result.Transactions) == 0 {
		result.Warnings = append(result.Warnings,
			"no transactions could be parsed from the uploaded files; the statements may be scanned images or an unsupported layout")
	}
	return result, nil
}

// ingestFile routes one upload to the PDF or tabular path and classifies the
// outcome. Classification happens here, once, at record creation.
func (s *Service) ingestFile(file File, stats *Stats) ([]statement.Transaction, error) {
	fileID := uuid.New()

	var txs []statement.Transaction
	if bytes.HasPrefix(file.Data, pdfMagic) {
		pages, err := s.extractor.ExtractPages(bytes.NewReader(file.Data))
		if err != nil {
			return nil, err
		}
		var pstats statement.Stats
		for pageNum, lines := range pages {
			src := statement.Source{FileID: fileID, Page: pageNum + 1}
			txs = append(txs, s.parser.ParsePage(lines, src, &pstats)...)
		}
		stats.LinesSeen += pstats.LinesSeen
		stats.NoiseLines += pstats.NoiseLines
		stats.Candidates += pstats.Candidates
		stats.Parsed += pstats.Parsed
	} else {
		export, err := s.parser.ReadExport(bytes.NewReader(file.Data), statement.Source{FileID: fileID})
		if err != nil {
			return nil, err
		}
		stats.LinesSeen += export.RowsTotal
		stats.Parsed += len(export.Transactions)
		txs = export.Transactions
	}

	for i := range txs {
		txs[i].Category = s.table.Categorize(txs[i].Description)
	}
	return txs, nil
}

// dedupe removes duplicates per the configured policy, preserving first-seen
// order across the concatenated files.
func (s *Service) dedupe(txs []statement.Transaction, stats *Stats) []statement.Transaction {
	if s.policy == DedupNone {
		return txs
	}

	key := statement.Transaction.RowKey
	if s.policy == DedupSourceKey {
		key = statement.Transaction.SourceKey
	}

	seen := make(map[string]bool, len(txs))
	out := make([]statement.Transaction, 0, len(txs))
	for _, tx := range txs {
		k := key(tx)
		if seen[k] {
			stats.DuplicatesSkipped++
			continue
		}
		seen[k] = true
		out = append(out, tx)
	}
	return out
}
