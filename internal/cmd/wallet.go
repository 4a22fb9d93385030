package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	kerrors "github.com/khel-store/khel/internal/errors"
	"github.com/khel-store/khel/internal/guard"
	"github.com/khel-store/khel/internal/ux"
)

// Recharge bounds enforced client-side before any request is sent.
const (
	minRecharge = 10
	maxRecharge = 10000
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage your wallet",
}

var walletBalanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show your wallet balance",
	RunE:  runWalletBalance,
}

var walletRechargeCmd = &cobra.Command{
	Use:   "recharge <amount>",
	Short: "Add money to your wallet",
	Long: fmt.Sprintf(`Recharge the wallet. The amount must be between ₹%d and ₹%d.

Examples:
  khel wallet recharge 500`, minRecharge, maxRecharge),
	Args: cobra.ExactArgs(1),
	RunE: runWalletRecharge,
}

func runWalletBalance(cmd *cobra.Command, args []string) error {
	if err := requireUser(cmd.Context(), guard.ViewWallet); err != nil {
		return err
	}

	// The cached balance may trail server state; the profile carries the
	// authoritative number.
	profile, err := app.client.GetProfile(cmd.Context())
	if err != nil {
		return err
	}
	app.sessions.UpdateBalance(profile.Member.Balance)

	if structured() {
		return emit(map[string]float64{"balance": profile.Member.Balance})
	}

	fmt.Printf("Wallet balance: %s\n", ux.Rupees(profile.Member.Balance))
	return nil
}

func runWalletRecharge(cmd *cobra.Command, args []string) error {
	if err := requireUser(cmd.Context(), guard.ViewWallet); err != nil {
		return err
	}

	amount, err := parseRechargeAmount(args[0])
	if err != nil {
		return err
	}

	msg, err := app.client.CreateRecharge(cmd.Context(), amount)
	if err != nil {
		return err
	}

	if member := app.sessions.Current(); member != nil {
		app.sessions.UpdateBalance(member.Balance + amount)
	}

	fmt.Println(ux.Success(msg))
	if member := app.sessions.Current(); member != nil {
		fmt.Printf("New balance: %s\n", ux.Rupees(member.Balance))
	}
	return nil
}

func parseRechargeAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, kerrors.New(kerrors.ErrCodeWalletAmountInvalid,
			fmt.Sprintf("invalid amount %q", raw))
	}
	if amount < minRecharge {
		return 0, kerrors.New(kerrors.ErrCodeWalletBelowMinimum,
			fmt.Sprintf("minimum recharge is ₹%d", minRecharge))
	}
	if amount > maxRecharge {
		return 0, kerrors.New(kerrors.ErrCodeWalletAboveMaximum,
			fmt.Sprintf("maximum recharge is ₹%d", maxRecharge))
	}
	return amount, nil
}

func init() {
	walletCmd.AddCommand(walletBalanceCmd)
	walletCmd.AddCommand(walletRechargeCmd)
	rootCmd.AddCommand(walletCmd)
}
