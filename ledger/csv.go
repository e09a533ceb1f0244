// ledger/csv.go
package ledger

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

var csvHeader = []string{
	"id", "account", "trade_date", "symbol", "side", "quantity",
	"entry_price", "exit_price", "fees", "gross_pnl", "net_pnl", "tags", "notes",
}

// ExportTradesCSV writes the trades to w as CSV, one row per trade in the
// given order, with a header row.
func ExportTradesCSV(w io.Writer, trades []Trade) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, t := range trades {
		err := cw.Write([]string{
			strconv.FormatInt(t.ID, 10),
			t.AccountName,
			t.TradeDate.Format(time.DateOnly),
			t.Symbol,
			string(t.Side),
			f(t.Quantity),
			f(t.EntryPrice),
			f(t.ExitPrice),
			f(t.Fees),
			f(t.GrossPnL),
			f(t.NetPnL),
			t.Tags,
			t.Notes,
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
