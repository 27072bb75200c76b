package api

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/zayals35/My-economy-app/internal/domain/budget"
	"github.com/zayals35/My-economy-app/internal/domain/categorize"
	"github.com/zayals35/My-economy-app/internal/domain/ingest"
	"github.com/zayals35/My-economy-app/internal/domain/statement"
	"github.com/zayals35/My-economy-app/pkg/money"
)

// goalFieldPrefix marks multipart form fields carrying per-category goal
// overrides, e.g. "goal:Food & Groceries" = "4500".
const goalFieldPrefix = "goal:"

// suggestionThreshold is the minimum similarity score for a keyword to be
// offered as a category hint on fallback-classified transactions.
const suggestionThreshold = 60

// CategorySuggestion is a "did you mean" hint for a transaction that fell
// through to the fallback category.
type CategorySuggestion struct {
	Description string `json:"description"`
	Category    string `json:"category"`
	Keyword     string `json:"keyword"`
	Score       int    `json:"score"`
}

// CategorySummary is one category's total in the analysis response.
type CategorySummary struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Display  string          `json:"display"`
}

// AnalysisResponse is the JSON payload for a processed statement batch.
type AnalysisResponse struct {
	Success              bool                    `json:"success"`
	Error                string                  `json:"error,omitempty"`
	Transactions         []statement.Transaction `json:"transactions"`
	Categories           []CategorySummary       `json:"categories"`
	TotalSpending        decimal.Decimal         `json:"totalSpending"`
	TotalSpendingDisplay string                  `json:"totalSpendingDisplay"`
	Budget               []budget.Progress       `json:"budget"`
	Suggestions          []CategorySuggestion    `json:"suggestions,omitempty"`
	Stats                ingest.Stats            `json:"stats"`
	Warnings             []string                `json:"warnings,omitempty"`
}

// Handler holds the HTTP handlers for the statement API.
type Handler struct {
	ingest       *ingest.Service
	table        *categorize.Table
	defaultGoals budget.Goals
	maxFiles     int
	maxFileSize  int64
	logger       *slog.Logger
}

// NewHandler wires the ingest pipeline behind HTTP.
func NewHandler(svc *ingest.Service, table *categorize.Table, goals budget.Goals, maxFiles int, maxFileSize int64, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		ingest:       svc,
		table:        table,
		defaultGoals: goals,
		maxFiles:     maxFiles,
		maxFileSize:  maxFileSize,
		logger:       logger,
	}
}

// Health reports liveness.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Categories lists the configured category names, fallback last.
func (h *Handler) Categories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"categories": h.table.Categories()})
}

// AnalyzeStatements accepts a multipart batch of PDF or CSV statements under
// the "files" field, runs the full pipeline and returns transactions,
// per-category sums, total spending and budget progress in one response.
func (h *Handler) AnalyzeStatements(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "multipart form required")
	}

	uploads := form.File["files"]
	if len(uploads) == 0 {
		return writeError(c, fiber.StatusBadRequest, "no files uploaded, use form field 'files'")
	}
	if h.maxFiles > 0 && len(uploads) > h.maxFiles {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("too many files: %d, limit is %d", len(uploads), h.maxFiles))
	}

	files := make([]ingest.File, 0, len(uploads))
	for _, upload := range uploads {
		if h.maxFileSize > 0 && upload.Size > h.maxFileSize {
			return writeError(c, fiber.StatusRequestEntityTooLarge,
				fmt.Sprintf("file %q exceeds the %d byte limit", upload.Filename, h.maxFileSize))
		}
		src, err := upload.Open()
		if err != nil {
			h.logger.Warn("failed to open upload", "file", upload.Filename, "error", err)
			continue
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			h.logger.Warn("failed to read upload", "file", upload.Filename, "error", err)
			continue
		}
		files = append(files, ingest.File{Name: upload.Filename, Data: data})
	}

	goals := h.goalsFromForm(form.Value)

	result, err := h.ingest.Ingest(c.Context(), files)
	if err != nil {
		h.logger.Error("ingest failed", "error", err)
		return writeError(c, fiber.StatusInternalServerError, "statement processing failed")
	}

	resp := buildAnalysis(result, goals)
	resp.Suggestions = h.suggestionsFor(result.Transactions)
	return c.JSON(resp)
}

// suggestionsFor offers the closest keyword match for each distinct
// description that landed in the fallback category.
func (h *Handler) suggestionsFor(txs []statement.Transaction) []CategorySuggestion {
	seen := make(map[string]bool)
	var out []CategorySuggestion
	for _, tx := range txs {
		if tx.Category != h.table.Fallback() || seen[tx.Description] {
			continue
		}
		seen[tx.Description] = true

		matches := h.table.Suggest(tx.Description, suggestionThreshold)
		if len(matches) == 0 {
			continue
		}
		best := matches[0]
		out = append(out, CategorySuggestion{
			Description: tx.Description,
			Category:    best.Category,
			Keyword:     best.Keyword,
			Score:       best.Score,
		})
	}
	return out
}

// goalsFromForm starts from the configured defaults and applies any
// "goal:<Category>" overrides carried in the form. Unparseable values keep
// the default.
func (h *Handler) goalsFromForm(values map[string][]string) budget.Goals {
	goals := make(budget.Goals, len(h.defaultGoals))
	for category, goal := range h.defaultGoals {
		goals[category] = goal
	}
	for key, vals := range values {
		category, ok := strings.CutPrefix(key, goalFieldPrefix)
		if !ok || category == "" || len(vals) == 0 {
			continue
		}
		goal, err := decimal.NewFromString(strings.TrimSpace(vals[0]))
		if err != nil {
			h.logger.Warn("ignoring malformed goal override", "category", category, "value", vals[0])
			continue
		}
		goals[category] = goal
	}
	return goals
}

func buildAnalysis(result *ingest.Result, goals budget.Goals) AnalysisResponse {
	sums := budget.SumByCategory(result.Transactions)
	total := budget.TotalSpending(result.Transactions)

	categories := make([]CategorySummary, 0, len(sums))
	for category, sum := range sums {
		categories = append(categories, CategorySummary{
			Category: category,
			Total:    sum,
			Display:  money.FromDecimal(sum).Display(),
		})
	}
	sortSummaries(categories)

	txs := result.Transactions
	if txs == nil {
		txs = []statement.Transaction{}
	}

	return AnalysisResponse{
		Success:              true,
		Transactions:         txs,
		Categories:           categories,
		TotalSpending:        total,
		TotalSpendingDisplay: money.FromDecimal(total).Display(),
		Budget:               budget.ProgressReport(sums, goals),
		Stats:                result.Stats,
		Warnings:             result.Warnings,
	}
}

// sortSummaries orders by total descending, then name, for stable output.
func sortSummaries(categories []CategorySummary) {
	sort.Slice(categories, func(i, j int) bool {
		if !categories[i].Total.Equal(categories[j].Total) {
			return categories[i].Total.GreaterThan(categories[j].Total)
		}
		return categories[i].Category < categories[j].Category
	})
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(AnalysisResponse{
		Success:      false,
		Error:        msg,
		Transactions: []statement.Transaction{},
	})
}
