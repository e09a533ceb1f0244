package cmd

import (
	"fmt"

	"github.com/rustyeddy/tradebook/stats"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show account metrics",
	Long: `Compute win/loss counts, win rate, streaks and balance over your
trades and cashflows.

Examples:
  tradebook stats
  tradebook stats --account 2`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var statsAccount int64

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().Int64Var(&statsAccount, "account", 0, "restrict to one account id")
}

func runStats(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	userID, err := requireUser(st)
	if err != nil {
		return err
	}

	trades, err := st.ListTrades(userID)
	if err != nil {
		return err
	}
	flows, err := st.ListCashflows(userID)
	if err != nil {
		return err
	}

	if statsAccount != 0 {
		trades = stats.FilterTradesByAccount(trades, statsAccount)
		flows = stats.FilterCashflowsByAccount(flows, statsAccount)
	}

	m := stats.AccountMetrics(trades, flows)

	fmt.Printf("Trades:          %d\n", len(trades))
	fmt.Printf("Total net P&L:   %.2f\n", m.TotalNet)
	fmt.Printf("Wins / losses:   %d / %d\n", m.Wins, m.Losses)
	fmt.Printf("Win rate:        %.1f%%\n", m.WinRate)
	fmt.Printf("Average net:     %.2f\n", m.AvgNet)
	fmt.Printf("Cash total:      %.2f\n", m.CashTotal)
	fmt.Printf("Account balance: %.2f\n", m.AccountBalance)
	fmt.Printf("Win streak:      %d (best %d)\n", m.WinStreak, m.BestWinStreak)
	return nil
}
