// Package budget computes the aggregates the presentation layer renders:
// per-category sums, total spending, and clamped progress against externally
// supplied goals. The core never mutates goals; it only reads them.
package budget

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/zayals35/My-economy-app/internal/domain/statement"
)

// Goals maps a category name to its numeric ceiling in kroner.
type Goals map[string]decimal.Decimal

// DefaultGoals mirrors the dashboard's slider defaults.
func DefaultGoals() Goals {
	return Goals{
		"Food & Groceries": decimal.NewFromInt(4000),
		"Subscriptions":    decimal.NewFromInt(1000),
		"Travel":           decimal.NewFromInt(2000),
		"Shopping/Other":   decimal.NewFromInt(3000),
	}
}

// ExcludedFromSpending are the categories left out of the spending total.
var ExcludedFromSpending = []string{"Income", "Savings"}

// Progress reports one category's spend against its goal.
type Progress struct {
	Category string          `json:"category"`
	Spent    decimal.Decimal `json:"spent"`
	Goal     decimal.Decimal `json:"goal"`
	// Ratio is min(spent/goal, 1); a goal <= 0 yields 0 rather than a
	// division error.
	Ratio float64 `json:"ratio"`
}

// SumByCategory totals transaction amounts per category.
func SumByCategory(txs []statement.Transaction) map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		sums[tx.Category] = sums[tx.Category].Add(tx.Amount)
	}
	return sums
}

// TotalSpending sums all amounts except the excluded categories.
func TotalSpending(txs []statement.Transaction, excluded ...string) decimal.Decimal {
	if len(excluded) == 0 {
		excluded = ExcludedFromSpending
	}
	skip := make(map[string]bool, len(excluded))
	for _, c := range excluded {
		skip[c] = true
	}

	total := decimal.Zero
	for _, tx := range txs {
		if skip[tx.Category] {
			continue
		}
		total = total.Add(tx.Amount)
	}
	return total
}

// TotalFor sums the amounts of a single category.
func TotalFor(txs []statement.Transaction, category string) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if tx.Category == category {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// ProgressReport compares per-category sums against goals, sorted by
// category name for stable output.
func ProgressReport(sums map[string]decimal.Decimal, goals Goals) []Progress {
	report := make([]Progress, 0, len(goals))
	for category, goal := range goals {
		report = append(report, Progress{
			Category: category,
			Spent:    sums[category],
			Goal:     goal,
			Ratio:    ratio(sums[category], goal),
		})
	}
	sort.Slice(report, func(i, j int) bool { return report[i].Category < report[j].Category })
	return report
}

func ratio(spent, goal decimal.Decimal) float64 {
	if goal.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	r, _ := spent.Div(goal).Float64()
	if r > 1 {
		return 1
	}
	if r < 0 {
		return 0
	}
	return r
}
