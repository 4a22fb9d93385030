package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khel-store/khel/internal/guard"
	"github.com/khel-store/khel/internal/ux"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your profile",
	Long: `Display your member details, wallet balance, transaction history,
and recharge history.

Examples:
  khel profile
  khel profile --format json`,
	RunE: runProfile,
}

func runProfile(cmd *cobra.Command, args []string) error {
	if err := requireUser(cmd.Context(), guard.ViewProfile); err != nil {
		return err
	}

	profile, err := app.client.GetProfile(cmd.Context())
	if err != nil {
		return err
	}
	app.sessions.UpdateBalance(profile.Member.Balance)

	if structured() {
		return emit(profile)
	}

	fmt.Println(ux.Title(profile.Member.Name))
	fmt.Printf("Phone: %s\n", profile.Member.PhoneNumber)
	if profile.Member.JoiningDate != "" {
		fmt.Printf("Member since: %s\n", profile.Member.JoiningDate)
	}
	fmt.Printf("Wallet balance: %s\n", ux.Rupees(profile.Member.Balance))

	if len(profile.Transactions) > 0 {
		fmt.Println()
		fmt.Println(ux.Title("Transactions"))
		fmt.Println(ux.TransactionsTable(profile.Transactions, false))
	}
	if len(profile.Recharges) > 0 {
		fmt.Println()
		fmt.Println(ux.Title("Recharges"))
		fmt.Println(ux.RechargesTable(profile.Recharges, false))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(profileCmd)
}
