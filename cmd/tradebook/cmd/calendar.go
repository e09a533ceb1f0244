package cmd

import (
	"fmt"
	"time"

	"github.com/rustyeddy/tradebook/stats"
	"github.com/spf13/cobra"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar <YYYY-MM>",
	Short: "Show the monthly P&L calendar",
	Long: `Lay out a month's trades in a Monday-first calendar with per-day and
per-week net P&L and trade counts.

Examples:
  tradebook calendar 2026-08
  tradebook calendar 2026-08 --account 2`,
	Args: cobra.ExactArgs(1),
	RunE: runCalendar,
}

var calendarAccount int64

func init() {
	rootCmd.AddCommand(calendarCmd)
	calendarCmd.Flags().Int64Var(&calendarAccount, "account", 0, "restrict to one account id")
}

func runCalendar(cmd *cobra.Command, args []string) error {
	month, err := time.Parse("2006-01", args[0])
	if err != nil {
		return fmt.Errorf("month %q: want YYYY-MM", args[0])
	}

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
	if calendarAccount != 0 {
		trades = stats.FilterTradesByAccount(trades, calendarAccount)
	}

	grid := stats.MonthCalendar(trades, month.Year(), month.Month())

	fmt.Printf("%s %d\n", grid.Month, grid.Year)
	fmt.Printf("%10s %10s %10s %10s %10s %10s %10s | %s\n",
		"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun", "Week P&L")
	for i, week := range grid.Weeks {
		for _, cell := range week {
			if cell.Day == 0 {
				fmt.Printf("%10s ", "")
				continue
			}
			if cell.TradeCount == 0 {
				fmt.Printf("%10d ", cell.Day)
				continue
			}
			fmt.Printf("%2d:%7.0f ", cell.Day, cell.NetPnL)
		}
		total := grid.WeekTotals[i]
		fmt.Printf("| %.2f (%d trades)\n", total.NetPnL, total.TradeCount)
	}
	return nil
}
