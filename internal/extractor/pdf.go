// Package extractor turns PDF statement bytes into pages of plain text lines.
// It owns no parsing logic; it is the upstream input contract for the
// transaction line parser. Pages with no extractable text (scanned images)
// are skipped, and a document that yields nothing surfaces as zero pages for
// the caller to report, never as a panic.
package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoText indicates the document produced no extractable text at all
// (corrupt, encrypted, or image-only).
var ErrNoText = errors.New("no extractable text in document")

// PDFExtractor extracts page text using ledongthuc/pdf, trying row-based
// extraction first and falling back to plain-text extraction per page.
type PDFExtractor struct {
	logger *slog.Logger
}

// NewPDFExtractor creates an extractor. A nil logger defaults to slog's
// package default.
func NewPDFExtractor(logger *slog.Logger) *PDFExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFExtractor{logger: logger}
}

// ExtractPages reads a whole PDF stream and returns, for each page with
// text, that page's newline-delimited lines. The PDF library panics on some
// malformed documents; those are recovered and reported as ErrNoText.
func (e *PDFExtractor) ExtractPages(r io.Reader) (pages [][]string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			e.logger.Warn("pdf library crashed", "panic", rec)
			pages, err = nil, fmt.Errorf("%w: reader crashed: %v", ErrNoText, rec)
		}
	}()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoText, err)
	}

	numPages := reader.NumPage()
	if numPages == 0 {
		return nil, ErrNoText
	}

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text := pageTextByRow(page)
		if text == "" {
			text = pageTextPlain(page)
		}
		if strings.TrimSpace(text) == "" {
			e.logger.Debug("skipping page without text", "page", i)
			continue
		}
		pages = append(pages, SplitLines(text))
	}

	if len(pages) == 0 {
		return nil, ErrNoText
	}
	return pages, nil
}

// pageTextByRow reconstructs lines from row-grouped words. Best layout
// preservation for well-structured statements.
func pageTextByRow(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err != nil {
		return ""
	}

	var lines []string
	for _, row := range rows {
		var parts []string
		for _, word := range row.Content {
			parts = append(parts, word.S)
		}
		if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// pageTextPlain is the fallback path through the page's font map.
func pageTextPlain(page pdf.Page) string {
	fonts := make(map[string]*pdf.Font)
	for _, name := range page.Fonts() {
		f := page.Font(name)
		fonts[name] = &f
	}

	text, err := page.GetPlainText(fonts)
	if err != nil {
		return ""
	}
	return text
}

// SplitLines breaks page text into trimmed, non-empty lines.
func SplitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
