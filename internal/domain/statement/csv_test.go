package statement

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_ReadExport(t *testing.T) {
	p := NewParser(DefaultConfig())
	src := Source{FileID: uuid.New()}

	t.Run("norwegian headers with semicolons", func(t *testing.T) {
		data := `Dato;Forklaring;Ut av konto
01.12;KIWI 415 NIDARVOLL;349,00
03.12;NETFLIX.COM;119,00`

		result, err := p.ReadExport(strings.NewReader(data), src)
		require.NoError(t, err)

		assert.Equal(t, 2, result.RowsTotal)
		assert.Equal(t, 0, result.RowsSkipped)
		require.Len(t, result.Transactions, 2)

		tx := result.Transactions[0]
		assert.Equal(t, "KIWI 415 NIDARVOLL", tx.Description)
		assert.True(t, tx.Amount.Equal(decimal.RequireFromString("349.00")))
		assert.Equal(t, "01.12", tx.DateCode)
	})

	t.Run("english headers with commas", func(t *testing.T) {
		data := `Date,Description,Amount
2024-12-01,REMA 1000 TILLER,"415,90"`

		result, err := p.ReadExport(strings.NewReader(data), src)
		require.NoError(t, err)
		require.Len(t, result.Transactions, 1)
		assert.Equal(t, "REMA 1000 TILLER", result.Transactions[0].Description)
		assert.Equal(t, "2024-12-01", result.Transactions[0].DateCode)
	})

	t.Run("whole krone amounts without decimals", func(t *testing.T) {
		data := `Dato;Forklaring;Ut av konto
05.12;Husleie desember;12000`

		result, err := p.ReadExport(strings.NewReader(data), src)
		require.NoError(t, err)
		require.Len(t, result.Transactions, 1)
		assert.True(t, result.Transactions[0].Amount.Equal(decimal.NewFromInt(12000)))
	})

	t.Run("dot decimal amounts", func(t *testing.T) {
		data := `Dato;Forklaring;Ut av konto
02.12;REMA 1000 TILLER;415.90`

		result, err := p.ReadExport(strings.NewReader(data), src)
		require.NoError(t, err)
		require.Len(t, result.Transactions, 1)
		assert.True(t, result.Transactions[0].Amount.Equal(decimal.RequireFromString("415.90")))
	})

	t.Run("descriptions may contain statement boilerplate words", func(t *testing.T) {
		// The noise markers exist for flattened PDF text; an export column is
		// already a clean description and must not be filtered by them.
		data := `Dato;Forklaring;Ut av konto
04.12;Vipps Referanse 998877;250,00`

		result, err := p.ReadExport(strings.NewReader(data), src)
		require.NoError(t, err)
		require.Len(t, result.Transactions, 1)
		assert.Equal(t, "Vipps Referanse 998877", result.Transactions[0].Description)
	})

	t.Run("concurrent reads with different delimiters", func(t *testing.T) {
		semicolon := `Dato;Forklaring;Ut av konto
01.12;KIWI 415 NIDARVOLL;349,00`
		comma := `Date,Description,Amount
2024-12-01,REMA 1000 TILLER,"415,90"`

		var wg sync.WaitGroup
		errs := make(chan error, 200)
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				result, err := p.ReadExport(strings.NewReader(semicolon), src)
				if err == nil && len(result.Transactions) != 1 {
					err = fmt.Errorf("semicolon export parsed %d rows", len(result.Transactions))
				}
				errs <- err
			}()
			wg.Add(1)
			go func() {
				defer wg.Done()
				result, err := p.ReadExport(strings.NewReader(comma), src)
				if err == nil && len(result.Transactions) != 1 {
					err = fmt.Errorf("comma export parsed %d rows", len(result.Transactions))
				}
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			assert.NoError(t, err)
		}
	})

	t.Run("skips incomplete and implausible rows", func(t *testing.T) {
		data := `Dato;Forklaring;Ut av konto
01.12;KIWI 415 NIDARVOLL;349,00
02.12;;100,00
03.12;Huskjøp;25.500,00`

		result, err := p.ReadExport(strings.NewReader(data), src)
		require.NoError(t, err)
		assert.Equal(t, 3, result.RowsTotal)
		assert.Equal(t, 2, result.RowsSkipped)
		assert.Len(t, result.Transactions, 1)
	})
}

func TestWriteExport(t *testing.T) {
	t.Run("writes canonical header and rows", func(t *testing.T) {
		txs := []Transaction{
			{
				Description: "KIWI 415 NIDARVOLL",
				Amount:      decimal.RequireFromString("349.00"),
				Category:    "Food & Groceries",
				DateCode:    "0112",
			},
		}

		var buf bytes.Buffer
		require.NoError(t, WriteExport(&buf, txs))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "Description,Amount,Category,Date", lines[0])
		assert.Equal(t, "KIWI 415 NIDARVOLL,349.00,Food & Groceries,0112", lines[1])
	})
}
