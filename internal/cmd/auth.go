package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	kerrors "github.com/khel-store/khel/internal/errors"
	"github.com/khel-store/khel/internal/tui"
	"github.com/khel-store/khel/internal/ux"
)

var (
	loginPhone    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to your Khel account",
	Long: `Authenticate against the Khel platform with your phone number and
password. On success the session token and your identity are stored under
~/.khel and attached to every subsequent request.

Examples:
  # Prompt for credentials interactively
  khel login

  # Non-interactive (password still prompted unless --password is set)
  khel login --phone 9000000000`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out of your Khel account",
	Long: `Clear the stored user session. Safe to run when not logged in.
The admin session, if any, is not affected.`,
	RunE: runLogout,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a Khel account",
	Long: `Register a new member account. Registration does not sign you in;
run 'khel login' afterwards.`,
	RunE: runRegister,
}

var registerAdminCmd = &cobra.Command{
	Use:    "register-admin",
	Short:  "Create an administrator account",
	Hidden: true,
	RunE:   runRegisterAdmin,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session status",
	Long: `Display the state of the stored user and admin sessions. The user
token is validated against the server; the admin token is reported as
stored without validation.`,
	RunE: runStatus,
}

func runLogin(cmd *cobra.Command, args []string) error {
	phone, password := loginPhone, loginPassword
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

	result := app.sessions.Login(cmd.Context(), phone, password)
	if !result.Success {
		fmt.Println(ux.Error(result.Message))
		return kerrors.New(kerrors.ErrCodeAuthCredentials, result.Message)
	}

	member := app.sessions.Current()
	fmt.Println(ux.Success(result.Message))
	if member != nil {
		fmt.Printf("Signed in as %s (balance %s)\n", member.Name, ux.Rupees(member.Balance))
	}
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	app.sessions.Logout()
	fmt.Println("Signed out.")
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	reg, err := tui.RegistrationForm()
	if err != nil {
		return err
	}

	result := app.sessions.Register(cmd.Context(), reg.Name, reg.PhoneNumber, reg.Password)
	if !result.Success {
		fmt.Println(ux.Error(result.Message))
		return kerrors.New(kerrors.ErrCodeAPIStatus, result.Message)
	}

	fmt.Println(ux.Success(result.Message))
	fmt.Println("Run 'khel login' to sign in.")
	return nil
}

func runRegisterAdmin(cmd *cobra.Command, args []string) error {
	reg, err := tui.RegistrationForm()
	if err != nil {
		return err
	}

	result := app.sessions.RegisterAdmin(cmd.Context(), reg.Name, reg.PhoneNumber, reg.Password)
	if !result.Success {
		fmt.Println(ux.Error(result.Message))
		return kerrors.New(kerrors.ErrCodeAPIStatus, result.Message)
	}

	fmt.Println(ux.Success(result.Message))
	return nil
}

// sessionStatus is the status command's report.
type sessionStatus struct {
	State         string  `json:"state" yaml:"state"`
	Name          string  `json:"name,omitempty" yaml:"name,omitempty"`
	Role          string  `json:"role,omitempty" yaml:"role,omitempty"`
	Balance       float64 `json:"balance" yaml:"balance"`
	AdminLoggedIn bool    `json:"admin_logged_in" yaml:"admin_logged_in"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	app.sessions.Initialize(cmd.Context())

	report := sessionStatus{
		State:         app.sessions.State().String(),
		AdminLoggedIn: app.admin.LoggedIn(),
	}
	if member := app.sessions.Current(); member != nil {
		report.Name = member.Name
		report.Role = string(member.Role)
		report.Balance = member.Balance
	}

	if structured() {
		return emit(report)
	}

	if report.Name == "" {
		fmt.Println("Not signed in.")
	} else {
		fmt.Printf("Signed in as %s (%s)\n", report.Name, report.Role)
		fmt.Printf("Wallet balance: %s\n", ux.Rupees(report.Balance))
	}
	if report.AdminLoggedIn {
		fmt.Println("Admin session stored (validated on entry).")
	}
	return nil
}

func init() {
	loginCmd.Flags().StringVar(&loginPhone, "phone", "", "phone number")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password (prompted when omitted)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(registerAdminCmd)
	rootCmd.AddCommand(statusCmd)
}
