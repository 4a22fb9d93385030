package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/khel-store/khel/internal/api"
	kerrors "github.com/khel-store/khel/internal/errors"
	"github.com/khel-store/khel/internal/tui"
	"github.com/khel-store/khel/internal/ux"
)

var (
	adminPhone    string
	adminPassword string
	adminYes      bool
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administer the Khel platform",
	Long: `Administrative console: platform dashboard, member management,
catalog management, and transaction and recharge reports.

The admin session is separate from the user session. Sign in with
'khel admin login'; the stored admin token is re-validated every time an
admin command runs and a stale token forces a fresh login.`,
}

var adminLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the admin console",
	Long: `Authenticate for the admin console. Valid credentials without the
admin role are rejected and nothing is stored.`,
	RunE: runAdminLogin,
}

var adminLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out of the admin console",
	RunE:  runAdminLogout,
}

var adminStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show admin session status",
	RunE:  runAdminStatus,
}

var adminDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show platform statistics",
	RunE:  runAdminDashboard,
}

var adminMembersCmd = &cobra.Command{
	Use:   "members",
	Short: "Manage members",
}

var adminMembersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all members",
	RunE:  runAdminMembersList,
}

var adminMembersRemoveCmd = &cobra.Command{
	Use:   "remove <member-id>",
	Short: "Delete a member",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminMembersRemove,
}

var adminGamesCmd = &cobra.Command{
	Use:   "games",
	Short: "Manage the game catalog",
}

var adminGamesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a game to the catalog",
	RunE:  runAdminGamesAdd,
}

var adminGamesRemoveCmd = &cobra.Command{
	Use:   "remove <game-id>",
	Short: "Delete a game from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminGamesRemove,
}

var adminTransactionsCmd = &cobra.Command{
	Use:   "transactions",
	Short: "List all transactions",
	RunE:  runAdminTransactions,
}

var adminRechargesCmd = &cobra.Command{
	Use:   "recharges",
	Short: "List all recharges",
	RunE:  runAdminRecharges,
}

func runAdminLogin(cmd *cobra.Command, args []string) error {
	phone, password := adminPhone, adminPassword
	if phone == "" || password == "" {
		creds, err := tui.CredentialsForm()
		if err != nil {
			return err
		}
		if phone == "" {
			phone = creds.PhoneNumber
		}
		if password == "" {
			password = creds.Password
		}
	}

	result := app.admin.Login(cmd.Context(), phone, password)
	if !result.Success {
		fmt.Println(ux.Error(result.Message))
		return kerrors.New(kerrors.ErrCodeAuthCredentials, result.Message)
	}

	fmt.Println(ux.Success(result.Message))
	if member := app.admin.Current(); member != nil {
		fmt.Printf("Admin console ready, signed in as %s\n", member.Name)
	}
	return nil
}

func runAdminLogout(cmd *cobra.Command, args []string) error {
	app.admin.Logout()
	fmt.Println("Admin session cleared.")
	return nil
}

func runAdminStatus(cmd *cobra.Command, args []string) error {
	if !app.admin.LoggedIn() {
		fmt.Println("No admin session.")
		return nil
	}

	if app.admin.Validate(cmd.Context()) {
		member := app.admin.Current()
		fmt.Printf("Admin session valid, signed in as %s\n", member.Name)
		return nil
	}

	fmt.Println("Stored admin session is no longer valid; it has been cleared.")
	return nil
}

func runAdminDashboard(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(cmd.Context()); err != nil {
		return err
	}

	stats, err := app.adminClient.Dashboard(cmd.Context())
	if err != nil {
		// Auth failures propagate; anything else degrades to an empty
		// dashboard so the console stays usable.
		switch kerrors.CodeOf(err) {
		case kerrors.ErrCodeAuthSessionExpired, kerrors.ErrCodeAuthAccessDenied:
			return err
		}
		app.logger.WithError(err).Warn("dashboard stats unavailable")
		stats = &api.DashboardStats{}
	}

	if structured() {
		return emit(stats)
	}

	fmt.Println(ux.Title("Platform Dashboard"))
	fmt.Println(ux.DashboardView(*stats))
	return nil
}

func runAdminMembersList(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(cmd.Context()); err != nil {
		return err
	}

	members, err := app.adminClient.ListMembers(cmd.Context())
	if err != nil {
		return err
	}

	if structured() {
		return emit(members)
	}

	fmt.Println(ux.Title("Members"))
	fmt.Println(ux.MembersTable(members))
	return nil
}

func runAdminMembersRemove(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(cmd.Context()); err != nil {
		return err
	}

	memberID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return kerrors.New(kerrors.ErrCodeAPINotFound,
			fmt.Sprintf("invalid member id %q", args[0]))
	}

	if !adminYes {
		ok, err := tui.ConfirmDeletion(fmt.Sprintf("member %d", memberID))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := app.adminClient.DeleteMember(cmd.Context(), memberID); err != nil {
		return err
	}
	fmt.Println(ux.Success(fmt.Sprintf("Member %d deleted", memberID)))
	return nil
}

func runAdminGamesAdd(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(cmd.Context()); err != nil {
		return err
	}

	input, err := tui.GameForm()
	if err != nil {
		return err
	}

	game, err := app.adminClient.CreateGame(cmd.Context(), input)
	if err != nil {
		return err
	}

	fmt.Println(ux.Success(fmt.Sprintf("Game %q added with id %d", game.Name, game.ID)))
	return nil
}

func runAdminGamesRemove(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(cmd.Context()); err != nil {
		return err
	}

	gameID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return kerrors.New(kerrors.ErrCodeAPINotFound,
			fmt.Sprintf("invalid game id %q", args[0]))
	}

	if !adminYes {
		ok, err := tui.ConfirmDeletion(fmt.Sprintf("game %d", gameID))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := app.adminClient.DeleteGame(cmd.Context(), gameID); err != nil {
		return err
	}
	fmt.Println(ux.Success(fmt.Sprintf("Game %d deleted", gameID)))
	return nil
}

func runAdminTransactions(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(cmd.Context()); err != nil {
		return err
	}

	transactions, err := app.adminClient.ListTransactions(cmd.Context())
	if err != nil {
		return err
	}

	if structured() {
		return emit(transactions)
	}

	fmt.Println(ux.Title("Transactions"))
	fmt.Println(ux.TransactionsTable(transactions, true))
	return nil
}

func runAdminRecharges(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(cmd.Context()); err != nil {
		return err
	}

	recharges, err := app.adminClient.ListRecharges(cmd.Context())
	if err != nil {
		return err
	}

	if structured() {
		return emit(recharges)
	}

	fmt.Println(ux.Title("Recharges"))
	fmt.Println(ux.RechargesTable(recharges, true))
	return nil
}

func init() {
	adminLoginCmd.Flags().StringVar(&adminPhone, "phone", "", "phone number")
	adminLoginCmd.Flags().StringVar(&adminPassword, "password", "", "password (prompted when omitted)")

	adminCmd.PersistentFlags().BoolVarP(&adminYes, "yes", "y", false, "skip confirmation prompts")

	adminMembersCmd.AddCommand(adminMembersListCmd)
	adminMembersCmd.AddCommand(adminMembersRemoveCmd)

	adminGamesCmd.AddCommand(adminGamesAddCmd)
	adminGamesCmd.AddCommand(adminGamesRemoveCmd)

	adminCmd.AddCommand(adminLoginCmd)
	adminCmd.AddCommand(adminLogoutCmd)
	adminCmd.AddCommand(adminStatusCmd)
	adminCmd.AddCommand(adminDashboardCmd)
	adminCmd.AddCommand(adminMembersCmd)
	adminCmd.AddCommand(adminGamesCmd)
	adminCmd.AddCommand(adminTransactionsCmd)
	adminCmd.AddCommand(adminRechargesCmd)

	rootCmd.AddCommand(adminCmd)
}
