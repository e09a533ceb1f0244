package ledger

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportTradesCSV(t *testing.T) {
	t.Parallel()

	trades := []Trade{
		{
			ID:          2,
			AccountName: "Main",
			TradeDate:   time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
			Symbol:      "AAPL",
			Side:        Long,
			Quantity:    10,
			EntryPrice:  100,
			ExitPrice:   110,
			Fees:        2,
			GrossPnL:    100,
			NetPnL:      98,
			Tags:        "breakout",
			Notes:       "held, overnight",
		},
		{
			ID:          1,
			AccountName: "Swing",
			TradeDate:   time.Date(2026, 8, 9, 0, 0, 0, 0, time.UTC),
			Symbol:      "MSFT",
			Side:        Short,
			Quantity:    5,
			EntryPrice:  300,
			ExitPrice:   290,
			Fees:        1.5,
			GrossPnL:    50,
			NetPnL:      48.5,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportTradesCSV(&buf, trades))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{
		"2", "Main", "2026-08-10", "AAPL", "Long", "10",
		"100", "110", "2", "100", "98", "breakout", "held, overnight",
	}, rows[1])
	assert.Equal(t, "48.5", rows[2][10])
}

func TestExportTradesCSVEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, ExportTradesCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, csvHeader, rows[0])
}
