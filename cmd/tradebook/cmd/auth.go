package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create a new user",
	Long: `Register a new user. A default "Main" account is created alongside.

Example:
  tradebook register alice --password hunter22 --email alice@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runRegister,
}

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Authenticate and print a remember token",
	Long: `Verify a username/password pair and issue a remember token.

Pass the printed token to other commands with --token. The token is shown
once and cannot be recovered; log in again if it is lost.`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the remember token passed via --token",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var (
	registerEmail    string
	registerPassword string
	loginPassword    string
)

func init() {
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)

	registerCmd.Flags().StringVar(&registerEmail, "email", "", "email address (optional)")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "password (required)")
	registerCmd.MarkFlagRequired("password")

	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password (required)")
	loginCmd.MarkFlagRequired("password")
}

func runRegister(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	userID, err := st.Register(args[0], registerEmail, registerPassword)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Registered %s (user %d) with default account \"Main\"\n", args[0], userID)
	return nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	userID, err := st.Authenticate(args[0], loginPassword)
	if err != nil {
		return err
	}

	token, err := st.IssueRememberToken(userID, rememberDays)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}

	fmt.Printf("✓ Logged in as %s (user %d)\n", args[0], userID)
	fmt.Printf("token: %s\n", token)
	fmt.Printf("valid for %d days; pass it as --token to other commands\n", rememberDays)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.RevokeToken(authToken); err != nil {
		return err
	}
	fmt.Println("✓ Token revoked")
	return nil
}
