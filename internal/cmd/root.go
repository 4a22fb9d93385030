// Package cmd wires the khel commands. All state shared between commands
// lives on the application struct built in the root PersistentPreRunE; no
// command touches the network before its own RunE.
package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/khel-store/khel/internal/api"
	"github.com/khel-store/khel/internal/config"
	kerrors "github.com/khel-store/khel/internal/errors"
	"github.com/khel-store/khel/internal/guard"
	"github.com/khel-store/khel/internal/log"
	"github.com/khel-store/khel/internal/session"
)

var (
	flagServer    string
	flagFormat    string
	flagLogLevel  string
	flagLogFormat string
)

// application holds the wired runtime: configuration, logger, one session
// store and API client per token namespace, and the two session managers.
type application struct {
	cfg    config.Config
	logger *log.Logger

	userStore  session.Store
	adminStore session.Store

	client      *api.Client
	adminClient *api.Client

	sessions *session.Manager
	admin    *session.AdminManager
}

var app *application

var rootCmd = &cobra.Command{
	Use:   "khel",
	Short: "Terminal client for the Khel gaming store",
	Long: `khel is the terminal client for the Khel gaming store platform.

Browse the game catalog, buy games against your wallet balance, recharge
the wallet, and inspect your profile. Administrators manage the catalog,
members, and platform reports through the admin subcommands.

User and admin sessions are independent: each has its own stored token
under ~/.khel and logging out of one never touches the other.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with a cancellable context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// setup builds the application from configuration and flags. It performs no
// network calls; session hydration happens lazily in the commands that need
// it.
func setup() error {
	cfgPath, err := config.Path()
	if err != nil {
		return err
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if flagServer != "" {
		cfg.Server = flagServer
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagLogFormat != "" {
		cfg.LogFormat = flagLogFormat
	}

	logCfg := log.DefaultConfig()
	logCfg.Level = log.ParseLevel(cfg.LogLevel)
	logCfg.Format = log.ParseFormat(cfg.LogFormat)
	logCfg.Output = log.OutputStderr()
	logger := log.New(logCfg)
	log.SetDefaultLogger(logger)

	dir, err := config.Dir()
	if err != nil {
		return err
	}

	userStore := session.NewFileStore(dir, session.NamespaceUser)
	adminStore := session.NewFileStore(dir, session.NamespaceAdmin)

	baseURL := cfg.APIBaseURL()

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	client := api.NewClient(baseURL, api.StoreTokenSource(userStore), logger).WithTimeout(timeout)
	adminClient := api.NewClient(baseURL, api.StoreTokenSource(adminStore), logger).WithTimeout(timeout)

	sessions := session.NewManager(userStore, client, logger)
	admin := session.NewAdminManager(adminStore, adminClient, logger)

	// Any 401 on the user client invalidates the user session so the next
	// guarded command redirects to login. The admin client carries no hook;
	// its token is validated on demand when the admin area is entered.
	client.WithUnauthorizedHook(sessions.Invalidate)

	admin.Hydrate()

	app = &application{
		cfg:         cfg,
		logger:      logger,
		userStore:   userStore,
		adminStore:  adminStore,
		client:      client,
		adminClient: adminClient,
		sessions:    sessions,
		admin:       admin,
	}

	return nil
}

// requireUser hydrates and validates the user session, then applies the
// route guard for the destination view. A redirect decision becomes a
// not-logged-in error pointing at the login command.
func requireUser(ctx context.Context, dest guard.View) error {
	app.sessions.Initialize(ctx)

	decision := guard.ForView(dest, app.sessions.State(), app.sessions.IsAdmin())
	if decision.Allowed {
		return nil
	}

	if decision.RedirectTo == guard.ViewLogin {
		return kerrors.NewNotLoggedInError().
			WithSuggestion("Run 'khel login' to sign in")
	}
	return kerrors.NewAccessDeniedError()
}

// requireAdmin validates the stored admin token against the server. Any
// failure forces admin logout and becomes an error pointing at the admin
// login command.
func requireAdmin(ctx context.Context) error {
	if !app.admin.Validate(ctx) {
		return kerrors.NewNotLoggedInError().
			WithSuggestion("Run 'khel admin login' to sign in to the admin console")
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "API server origin (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format: text, json, or yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "log format: text or json")
}
