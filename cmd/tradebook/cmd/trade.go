package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rustyeddy/tradebook/ledger"
	"github.com/spf13/cobra"
)

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Record and manage trades",
	Long: `Record, list, update and delete trades.

Trade ids are small recycled integers: after a deletion the freed id is
handed to the next saved trade.

Examples:
  tradebook trade add --account 1 --symbol aapl --side Long --qty 10 --entry 100 --exit 110 --fees 2
  tradebook trade add --account 1 --symbol SPY --manual-net 45.50 --fees 1.25
  tradebook trade list
  tradebook trade update 3 --account 1 --symbol AAPL --side Long --qty 10 --entry 100 --exit 112 --fees 2
  tradebook trade delete 3`,
}

var tradeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new trade",
	Args:  cobra.NoArgs,
	RunE:  runTradeAdd,
}

var tradeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your trades, newest first",
	Args:  cobra.NoArgs,
	RunE:  runTradeList,
}

var tradeUpdateCmd = &cobra.Command{
	Use:   "update <trade-id>",
	Short: "Rewrite a trade's fields and re-derive its P&L",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeUpdate,
}

var tradeDeleteCmd = &cobra.Command{
	Use:   "delete <trade-id>",
	Short: "Delete a trade (and its attached image, best effort)",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeDelete,
}

var (
	tradeDate      string
	tradeAccount   int64
	tradeSymbol    string
	tradeSide      string
	tradeQty       float64
	tradeEntry     float64
	tradeExit      float64
	tradeFees      float64
	tradeTags      string
	tradeNotes     string
	tradeImage     string
	tradeManualNet float64
	tradeClearImg  bool
)

func tradeInputFlags(c *cobra.Command) {
	c.Flags().StringVar(&tradeDate, "date", time.Now().Format("2006-01-02"), "trade date (YYYY-MM-DD)")
	c.Flags().Int64Var(&tradeAccount, "account", 0, "account id (required)")
	c.Flags().StringVar(&tradeSymbol, "symbol", "", "instrument symbol (required)")
	c.Flags().StringVar(&tradeSide, "side", "Long", "Long or Short")
	c.Flags().Float64Var(&tradeQty, "qty", 0, "quantity (must be positive)")
	c.Flags().Float64Var(&tradeEntry, "entry", 0, "entry price")
	c.Flags().Float64Var(&tradeExit, "exit", 0, "exit price")
	c.Flags().Float64Var(&tradeFees, "fees", 0, "total fees")
	c.Flags().StringVar(&tradeTags, "tags", "", "free-text tags")
	c.Flags().StringVar(&tradeNotes, "notes", "", "free-text notes")
	c.Flags().StringVar(&tradeImage, "image", "", "path to an image file to attach")
	c.MarkFlagRequired("account")
	c.MarkFlagRequired("symbol")
}

func init() {
	rootCmd.AddCommand(tradeCmd)
	tradeCmd.AddCommand(tradeAddCmd)
	tradeCmd.AddCommand(tradeListCmd)
	tradeCmd.AddCommand(tradeUpdateCmd)
	tradeCmd.AddCommand(tradeDeleteCmd)

	tradeInputFlags(tradeAddCmd)
	tradeAddCmd.Flags().Float64Var(&tradeManualNet, "manual-net", 0, "record net P&L directly (skips entry/exit)")

	tradeInputFlags(tradeUpdateCmd)
	tradeUpdateCmd.Flags().BoolVar(&tradeClearImg, "clear-image", false, "remove the attached image")
}

// attachImage copies the file at --image into the artifact directory and
// returns the stored path, or "" when no image was given.
func attachImage(userID int64) (string, error) {
	if tradeImage == "" {
		return "", nil
	}
	data, err := os.ReadFile(tradeImage)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	return ledger.SaveTradeImage(imagesDir, userID, data, filepath.Ext(tradeImage))
}

func tradeInput() (ledger.TradeInput, error) {
	day, err := parseDay(tradeDate)
	if err != nil {
		return ledger.TradeInput{}, err
	}
	return ledger.TradeInput{
		TradeDate:  day,
		AccountID:  tradeAccount,
		Symbol:     tradeSymbol,
		Side:       ledger.Side(tradeSide),
		Quantity:   tradeQty,
		EntryPrice: tradeEntry,
		ExitPrice:  tradeExit,
		Fees:       tradeFees,
		Tags:       tradeTags,
		Notes:      tradeNotes,
	}, nil
}

func runTradeAdd(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	userID, err := requireUser(st)
	if err != nil {
		return err
	}

	in, err := tradeInput()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("manual-net") {
		manual := tradeManualNet
		in.ManualNetPnL = &manual
	}

	imagePath, err := attachImage(userID)
	if err != nil {
		return err
	}
	in.ImagePath = imagePath

	tradeID, err := st.SaveTrade(userID, in)
	if err != nil {
		return err
	}

	t, _, err := st.GetTrade(userID, tradeID)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Saved trade %d: %s %s gross %.2f net %.2f\n", t.ID, t.Side, t.Symbol, t.GrossPnL, t.NetPnL)
	return nil
}

func runTradeList(cmd *cobra.Command, args []string) error {
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
	if len(trades) == 0 {
		fmt.Println("no trades")
		return nil
	}

	fmt.Printf("%-4s %-12s %-10s %-6s %8s %10s %10s %8s %10s %s\n",
		"ID", "DATE", "SYMBOL", "SIDE", "QTY", "ENTRY", "EXIT", "FEES", "NET", "ACCOUNT")
	for _, t := range trades {
		fmt.Printf("%-4d %-12s %-10s %-6s %8.2f %10.4f %10.4f %8.2f %10.2f %s\n",
			t.ID, t.TradeDate.Format("2006-01-02"), t.Symbol, t.Side,
			t.Quantity, t.EntryPrice, t.ExitPrice, t.Fees, t.NetPnL, t.AccountName)
	}
	return nil
}

func runTradeUpdate(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	userID, err := requireUser(st)
	if err != nil {
		return err
	}

	tradeID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("trade id %q: %w", args[0], err)
	}

	in, err := tradeInput()
	if err != nil {
		return err
	}

	newImage, err := attachImage(userID)
	if err != nil {
		return err
	}

	found, err := st.UpdateTrade(userID, tradeID, in, newImage, tradeClearImg)
	if err != nil {
		return err
	}
	if !found {
		fmt.Printf("trade %d not found\n", tradeID)
		return nil
	}
	fmt.Printf("✓ Updated trade %d\n", tradeID)
	return nil
}

func runTradeDelete(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	userID, err := requireUser(st)
	if err != nil {
		return err
	}

	tradeID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("trade id %q: %w", args[0], err)
	}

	found, err := st.DeleteTrade(userID, tradeID)
	if err != nil {
		return err
	}
	if !found {
		fmt.Printf("trade %d not found\n", tradeID)
		return nil
	}
	fmt.Printf("✓ Deleted trade %d\n", tradeID)
	return nil
}
