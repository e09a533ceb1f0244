package cmd

import (
	"fmt"
	"time"

	"github.com/rustyeddy/tradebook/ledger"
	"github.com/spf13/cobra"
)

var cashflowCmd = &cobra.Command{
	Use:   "cashflow",
	Short: "Record deposits and withdrawals",
	Long: `Record and list account cashflows.

Amounts are entered as positive magnitudes; withdrawals are stored negated.

Examples:
  tradebook cashflow add --account 1 --type Deposit --amount 1000
  tradebook cashflow add --account 1 --type Withdrawal --amount 250 --note "rent"
  tradebook cashflow list`,
}

var cashflowAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a deposit or withdrawal",
	Args:  cobra.NoArgs,
	RunE:  runCashflowAdd,
}

var cashflowListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your cashflows, newest first",
	Args:  cobra.NoArgs,
	RunE:  runCashflowList,
}

var (
	flowDate    string
	flowAccount int64
	flowType    string
	flowAmount  float64
	flowNote    string
)

func init() {
	rootCmd.AddCommand(cashflowCmd)
	cashflowCmd.AddCommand(cashflowAddCmd)
	cashflowCmd.AddCommand(cashflowListCmd)

	cashflowAddCmd.Flags().StringVar(&flowDate, "date", time.Now().Format("2006-01-02"), "flow date (YYYY-MM-DD)")
	cashflowAddCmd.Flags().Int64Var(&flowAccount, "account", 0, "account id (required)")
	cashflowAddCmd.Flags().StringVar(&flowType, "type", "", "Deposit or Withdrawal (required)")
	cashflowAddCmd.Flags().Float64Var(&flowAmount, "amount", 0, "amount, entered as a positive magnitude (required)")
	cashflowAddCmd.Flags().StringVar(&flowNote, "note", "", "free-text note")
	cashflowAddCmd.MarkFlagRequired("account")
	cashflowAddCmd.MarkFlagRequired("type")
	cashflowAddCmd.MarkFlagRequired("amount")
}

func runCashflowAdd(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	userID, err := requireUser(st)
	if err != nil {
		return err
	}

	day, err := parseDay(flowDate)
	if err != nil {
		return err
	}

	id, err := st.AddCashflow(userID, flowAccount, day, ledger.FlowType(flowType), flowAmount, flowNote)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Recorded %s of %.2f (cashflow %d)\n", flowType, flowAmount, id)
	return nil
}

func runCashflowList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	userID, err := requireUser(st)
	if err != nil {
		return err
	}

	flows, err := st.ListCashflows(userID)
	if err != nil {
		return err
	}
	if len(flows) == 0 {
		fmt.Println("no cashflows")
		return nil
	}

	fmt.Printf("%-4s %-12s %-12s %12s %-16s %s\n", "ID", "DATE", "TYPE", "AMOUNT", "ACCOUNT", "NOTE")
	for _, c := range flows {
		fmt.Printf("%-4d %-12s %-12s %12.2f %-16s %s\n",
			c.ID, c.FlowDate.Format("2006-01-02"), c.FlowType, c.Amount, c.AccountName, c.Note)
	}
	return nil
}
