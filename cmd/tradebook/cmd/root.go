package cmd

import (
	"fmt"
	"time"

	"github.com/rustyeddy/tradebook/config"
	"github.com/rustyeddy/tradebook/ledger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tradebook",
	Short: "A personal trading journal with per-user accounts and P&L analytics",
	Long: `Tradebook is a personal trading journal written in Go.

It provides tools for:
  - Recording trades with derived gross/net P&L
  - Tracking account deposits and withdrawals
  - Win rate, streak and balance statistics
  - A Monday-first monthly P&L calendar
  - CSV export of the trade ledger

All data is scoped per registered user and stored in an embedded SQLite
database.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

var (
	cfgFile      string
	dbPath       string
	imagesDir    string
	authToken    string
	rememberDays = 30
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (overrides --db and --images)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "./tradebook.sqlite", "path to SQLite ledger DB")
	rootCmd.PersistentFlags().StringVar(&imagesDir, "images", "./trade_images", "directory for trade image artifacts")
	rootCmd.PersistentFlags().StringVarP(&authToken, "token", "t", "", "remember token from 'tradebook login'")
}

// openStore opens the ledger, applying the config file first if one was
// given.
func openStore() (*ledger.Store, error) {
	if cfgFile != "" {
		cfg, err := config.LoadFromFile(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		dbPath = cfg.Database.Path
		imagesDir = cfg.Images.Dir
		rememberDays = cfg.Auth.RememberDays
	}
	st, err := ledger.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return st, nil
}

// requireUser resolves the --token flag to the acting user. Every
// ledger-scoped command goes through this; there is no way to bypass the
// user scoping.
func requireUser(st *ledger.Store) (int64, error) {
	if authToken == "" {
		return 0, fmt.Errorf("not logged in: pass --token from 'tradebook login'")
	}
	userID, _, err := st.AuthenticateByToken(authToken)
	if err != nil {
		return 0, err
	}
	return userID, nil
}

func parseDay(day string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: want YYYY-MM-DD", day)
	}
	return t, nil
}
