package categorize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Suggest(t *testing.T) {
	table := DefaultTable()

	t.Run("exact keyword scores highest", func(t *testing.T) {
		got := table.Suggest("spotify", 50)
		require.NotEmpty(t, got)
		assert.Equal(t, "spotify", got[0].Keyword)
		assert.Equal(t, "Subscriptions", got[0].Category)
		assert.Equal(t, 100, got[0].Score)
	})

	t.Run("containment beats distant matches", func(t *testing.T) {
		got := table.Suggest("spotify premium", 50)
		require.NotEmpty(t, got)
		assert.Equal(t, "spotify", got[0].Keyword)
		assert.GreaterOrEqual(t, got[0].Score, 75)
	})

	t.Run("near miss still suggested", func(t *testing.T) {
		got := table.Suggest("netflx", 50)
		require.NotEmpty(t, got)
		assert.Equal(t, "netflix", got[0].Keyword)
	})

	t.Run("empty description yields nothing", func(t *testing.T) {
		assert.Empty(t, table.Suggest("   ", 50))
	})

	t.Run("high threshold filters weak matches", func(t *testing.T) {
		for _, s := range table.Suggest("Ukjent butikk AS", 90) {
			assert.GreaterOrEqual(t, s.Score, 90)
		}
	})
}
