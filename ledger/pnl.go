// ledger/pnl.go
package ledger

// ComputePnL returns the gross and net profit for a completed trade.
// Long profits when exit > entry, Short when entry > exit. Net is gross
// minus fees in both cases.
func ComputePnL(side Side, quantity, entry, exit, fees float64) (gross, net float64) {
	if side == Short {
		gross = (entry - exit) * quantity
	} else {
		gross = (exit - entry) * quantity
	}
	net = gross - fees
	return gross, net
}

// ManualPnL back-derives gross from a user-supplied net figure. Trades
// recorded this way carry no usable entry/exit prices; the store persists
// zero sentinels for both.
func ManualPnL(net, fees float64) (gross, outNet float64) {
	return net + fees, net
}
