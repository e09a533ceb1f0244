package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage trading accounts",
	Long: `Manage the accounts that group trades and cashflows.

Subcommands:
  add    - Create a new account
  list   - List your accounts
  delete - Delete an account and everything recorded under it

Examples:
  tradebook account add Swing --broker IBKR --type Margin
  tradebook account list
  tradebook account delete 2`,
}

var accountAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a new account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountAdd,
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your accounts",
	Args:  cobra.NoArgs,
	RunE:  runAccountList,
}

var accountDeleteCmd = &cobra.Command{
	Use:   "delete <account-id>",
	Short: "Delete an account and all of its trades and cashflows",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountDelete,
}

var (
	accountBroker string
	accountType   string
	accountDescr  string
)

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountAddCmd)
	accountCmd.AddCommand(accountListCmd)
	accountCmd.AddCommand(accountDeleteCmd)

	accountAddCmd.Flags().StringVar(&accountBroker, "broker", "", "broker name")
	accountAddCmd.Flags().StringVar(&accountType, "type", "Cash", "account type")
	accountAddCmd.Flags().StringVar(&accountDescr, "description", "", "free-text description")
}

func runAccountAdd(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	userID, err := requireUser(st)
	if err != nil {
		return err
	}

	id, err := st.AddAccount(userID, args[0], accountBroker, accountType, accountDescr)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Created account %q (id %d)\n", args[0], id)
	return nil
}

func runAccountList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	userID, err := requireUser(st)
	if err != nil {
		return err
	}

	accounts, err := st.ListAccounts(userID)
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		fmt.Println("no accounts")
		return nil
	}

	fmt.Printf("%-4s %-16s %-12s %-10s %s\n", "ID", "NAME", "BROKER", "TYPE", "DESCRIPTION")
	for _, a := range accounts {
		fmt.Printf("%-4d %-16s %-12s %-10s %s\n", a.ID, a.Name, a.Broker, a.AccountType, a.Description)
	}
	return nil
}

func runAccountDelete(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	userID, err := requireUser(st)
	if err != nil {
		return err
	}

	accountID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("account id %q: %w", args[0], err)
	}

	found, err := st.DeleteAccount(userID, accountID)
	if err != nil {
		return err
	}
	if !found {
		fmt.Printf("account %d not found\n", accountID)
		return nil
	}
	fmt.Printf("✓ Deleted account %d and its trades and cashflows\n", accountID)
	return nil
}
