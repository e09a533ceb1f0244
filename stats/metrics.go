// stats/metrics.go
package stats

import (
	"sort"

	"github.com/rustyeddy/tradebook/ledger"
)

// Metrics summarizes a set of trades and cashflows already scoped to one
// user (and optionally one account).
type Metrics struct {
	TotalNet       float64
	Wins           int
	Losses         int
	WinRate        float64 // percent
	AvgNet         float64
	CashTotal      float64
	AccountBalance float64
	WinStreak      int // streak as of the most recent trade
	BestWinStreak  int
}

// AccountMetrics derives summary statistics from the given trades and
// cashflows. Break-even trades (net == 0) count as neither win nor loss but
// still reset the win streak, matching the recorded product decision.
//
// Streaks walk the trades ordered by date ascending with id as the
// tie-break, so same-day trades keep their insertion order.
func AccountMetrics(trades []ledger.Trade, cashflows []ledger.Cashflow) Metrics {
	var m Metrics

	for _, c := range cashflows {
		m.CashTotal += c.Amount
	}
	if len(trades) == 0 {
		m.AccountBalance = m.CashTotal
		return m
	}

	for _, t := range trades {
		m.TotalNet += t.NetPnL
		switch {
		case t.NetPnL > 0:
			m.Wins++
		case t.NetPnL < 0:
			m.Losses++
		}
	}

	ordered := make([]ledger.Trade, len(trades))
	copy(ordered, trades)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].TradeDate.Equal(ordered[j].TradeDate) {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].TradeDate.Before(ordered[j].TradeDate)
	})

	streak := 0
	best := 0
	for _, t := range ordered {
		if t.NetPnL > 0 {
			streak++
			if streak > best {
				best = streak
			}
		} else {
			streak = 0
		}
	}

	m.WinRate = float64(m.Wins) / float64(len(trades)) * 100
	m.AvgNet = m.TotalNet / float64(len(trades))
	m.AccountBalance = m.TotalNet + m.CashTotal
	m.WinStreak = streak
	m.BestWinStreak = best
	return m
}

// FilterTradesByAccount returns the subset of trades belonging to the
// account, for per-account metrics.
func FilterTradesByAccount(trades []ledger.Trade, accountID int64) []ledger.Trade {
	var out []ledger.Trade
	for _, t := range trades {
		if t.AccountID == accountID {
			out = append(out, t)
		}
	}
	return out
}

// FilterCashflowsByAccount returns the subset of cashflows belonging to the
// account.
func FilterCashflowsByAccount(cashflows []ledger.Cashflow, accountID int64) []ledger.Cashflow {
	var out []ledger.Cashflow
	for _, c := range cashflows {
		if c.AccountID == accountID {
			out = append(out, c)
		}
	}
	return out
}
