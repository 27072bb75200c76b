package statement

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_ParseLine(t *testing.T) {
	p := NewParser(DefaultConfig())
	src := Source{FileID: uuid.New(), Page: 1, Line: 1}

	t.Run("parses a card purchase line", func(t *testing.T) {
		tx, ok := p.ParseLine("*5887 28.11 NOK 349.00 NETFLIX.COM 349,00", src)
		require.True(t, ok)
		assert.Equal(t, "NOK 349.00 NETFLIX.COM", tx.Description)
		assert.Equal(t, "349.00", tx.Amount.StringFixed(2))
		assert.Equal(t, "2811", tx.DateCode)
	})

	t.Run("derives date code from leading token", func(t *testing.T) {
		tx, ok := p.ParseLine("0112 KIWI 415 NIDARVOLL 349,00", src)
		require.True(t, ok)
		assert.Equal(t, "KIWI 415 NIDARVOLL", tx.Description)
		assert.Equal(t, "0112", tx.DateCode)
	})

	t.Run("placeholder date when no token leads", func(t *testing.T) {
		tx, ok := p.ParseLine("Vipps straksbetaling 250,00", src)
		require.True(t, ok)
		assert.Equal(t, "Desember", tx.DateCode)
	})

	t.Run("skips noise lines", func(t *testing.T) {
		for _, line := range []string{
			"IBAN NO93 4212 0265 827",
			"Saldo per 30.11 18.204,55",
			"Referanse 123456 100,00",
			"Side 1 av 3",
			"Dato Forklaring Ut av konto",
			"4212.02.65827 Kontoutskrift 500,00",
		} {
			_, ok := p.ParseLine(line, src)
			assert.False(t, ok, "line should be noise: %q", line)
		}
	})

	t.Run("skips lines without currency token", func(t *testing.T) {
		_, ok := p.ParseLine("Kontoutskrift november", src)
		assert.False(t, ok)
	})

	t.Run("discards amounts above the ceiling", func(t *testing.T) {
		_, ok := p.ParseLine("0112 Huskjøp 25.500,00", src)
		assert.False(t, ok)
	})

	t.Run("discards amounts below the floor", func(t *testing.T) {
		_, ok := p.ParseLine("0112 Renter 0,50", src)
		assert.False(t, ok)
	})

	t.Run("discards too-short descriptions", func(t *testing.T) {
		_, ok := p.ParseLine("AB 100,00", src)
		assert.False(t, ok)
	})

	t.Run("parsing is repeatable", func(t *testing.T) {
		line := "0112 REMA 1000 TILLER 415,90"
		first, ok1 := p.ParseLine(line, src)
		second, ok2 := p.ParseLine(line, src)
		require.True(t, ok1)
		require.True(t, ok2)
		assert.Equal(t, first, second)
	})
}

func TestExtractAmount(t *testing.T) {
	t.Run("leftmost token wins over running balance", func(t *testing.T) {
		amt, tok, ok := ExtractAmount("0112 KIWI 349,00 Saldo 18.204,55")
		require.True(t, ok)
		assert.Equal(t, "349,00", tok)
		assert.Equal(t, "349.00", amt.StringFixed(2))
	})

	t.Run("grouped amount", func(t *testing.T) {
		amt, _, ok := ExtractAmount("0112 Husleie 1.529,00")
		require.True(t, ok)
		assert.True(t, amt.Equal(decimal.RequireFromString("1529.00")))
	})

	t.Run("no token", func(t *testing.T) {
		_, _, ok := ExtractAmount("Kontoutskrift november")
		assert.False(t, ok)
	})

	t.Run("rejects three-decimal tokens", func(t *testing.T) {
		_, _, ok := ExtractAmount("ref 12,556")
		assert.False(t, ok)
	})
}

func TestParser_ParsePage(t *testing.T) {
	p := NewParser(DefaultConfig())
	fileSrc := Source{FileID: uuid.New(), Page: 1}

	t.Run("end to end page", func(t *testing.T) {
		lines := []string{
			"Kontoutskrift november",
			"Saldo per 01.11 18.204,55",
			"0112 KIWI 415 NIDARVOLL 349,00",
			"*5887 28.11 NOK 119.00 SPOTIFY 119,00",
			"0312 Husleie desember 1.529,00",
			"IBAN NO93 4212 0265 827",
		}

		var stats Stats
		txs := p.ParsePage(lines, fileSrc, &stats)

		require.Len(t, txs, 3)
		assert.Equal(t, "KIWI 415 NIDARVOLL", txs[0].Description)
		assert.Equal(t, "NOK 119.00 SPOTIFY", txs[1].Description)
		assert.Equal(t, "Husleie desember", txs[2].Description)
		assert.Equal(t, "1529.00", txs[2].Amount.StringFixed(2))

		assert.Equal(t, 6, stats.LinesSeen)
		assert.Equal(t, 2, stats.NoiseLines)
		assert.Equal(t, 3, stats.Candidates)
		assert.Equal(t, 3, stats.Parsed)
	})

	t.Run("line numbers follow page position", func(t *testing.T) {
		lines := []string{
			"header uten tall",
			"0112 KIWI 415 NIDARVOLL 349,00",
		}
		txs := p.ParsePage(lines, fileSrc, nil)
		require.Len(t, txs, 1)
		assert.Equal(t, 2, txs[0].Source.Line)
		assert.Equal(t, 1, txs[0].Source.Page)
	})
}
