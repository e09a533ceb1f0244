package cmd

import (
	"fmt"
	"os"

	"github.com/rustyeddy/tradebook/ledger"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export your trades as CSV",
	Long: `Write all of your trades to a CSV file, or to stdout when no file is
given.

Examples:
  tradebook export
  tradebook export trades.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
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

	out := os.Stdout
	if len(args) == 1 {
		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("create %s: %w", args[0], err)
		}
		defer f.Close()
		out = f
	}

	if err := ledger.ExportTradesCSV(out, trades); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if len(args) == 1 {
		fmt.Printf("✓ Exported %d trades to %s\n", len(trades), args[0])
	}
	return nil
}
