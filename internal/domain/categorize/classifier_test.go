package categorize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	t.Run("rejects duplicate keyword across categories", func(t *testing.T) {
		_, err := NewTable([]Rule{
			{Name: "Food", Keywords: []string{"kiwi"}},
			{Name: "Travel", Keywords: []string{"kiwi"}},
		}, FallbackCategory)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "kiwi")
		assert.Contains(t, err.Error(), "Food")
		assert.Contains(t, err.Error(), "Travel")
	})

	t.Run("rejects empty category name", func(t *testing.T) {
		_, err := NewTable([]Rule{{Name: "", Keywords: []string{"x"}}}, FallbackCategory)
		assert.Error(t, err)
	})

	t.Run("rejects empty keyword", func(t *testing.T) {
		_, err := NewTable([]Rule{{Name: "Food", Keywords: []string{" "}}}, FallbackCategory)
		assert.Error(t, err)
	})

	t.Run("default table builds", func(t *testing.T) {
		table := DefaultTable()
		assert.Equal(t, FallbackCategory, table.Fallback())
	})
}

func TestTable_Categorize(t *testing.T) {
	table := DefaultTable()

	t.Run("matches are case insensitive", func(t *testing.T) {
		assert.Equal(t, "Subscriptions", table.Categorize("NOK 119.00 NETFLIX.COM"))
		assert.Equal(t, "Food & Groceries", table.Categorize("KIWI 415 NIDARVOLL"))
		assert.Equal(t, "Income", table.Categorize("Lønn november"))
	})

	t.Run("fallback when nothing matches", func(t *testing.T) {
		assert.Equal(t, FallbackCategory, table.Categorize("Ukjent butikk AS"))
	})

	t.Run("earlier table entry wins", func(t *testing.T) {
		custom, err := NewTable([]Rule{
			{Name: "Subscriptions", Keywords: []string{"spotify"}},
			{Name: "Entertainment", Keywords: []string{"spotify premium"}},
		}, FallbackCategory)
		require.NoError(t, err)

		// Both keywords hit; the first table entry decides.
		assert.Equal(t, "Subscriptions", custom.Categorize("SPOTIFY PREMIUM OSLO"))
	})

	t.Run("same input always yields same label", func(t *testing.T) {
		desc := "VIPPS Ola Nordmann"
		first := table.Categorize(desc)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, table.Categorize(desc))
		}
	})
}

func TestTable_Categories(t *testing.T) {
	table := DefaultTable()

	names := table.Categories()
	require.NotEmpty(t, names)
	assert.Equal(t, "Subscriptions", names[0])
	assert.Equal(t, FallbackCategory, names[len(names)-1])
}
