package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/khel-store/khel/internal/config"
	kerrors "github.com/khel-store/khel/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change client configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Display the effective configuration: file values merged with
KHEL_* environment overrides and command-line flags.`,
	RunE: runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Write a configuration value to ~/.khel/config.yaml.

Keys:
  mode             production or development
  server           API server origin
  base_path        API prefix on the server
  timeout_seconds  per-request timeout
  log_level        debug, info, warn, or error
  log_format       text or json

Examples:
  khel config set mode production
  khel config set server https://khel.example.com`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if structured() {
		return emit(app.cfg)
	}

	fmt.Printf("mode:            %s\n", app.cfg.Mode)
	fmt.Printf("server:          %s\n", app.cfg.Server)
	fmt.Printf("base_path:       %s\n", app.cfg.BasePath)
	fmt.Printf("timeout_seconds: %d\n", app.cfg.TimeoutSeconds)
	fmt.Printf("log_level:       %s\n", app.cfg.LogLevel)
	fmt.Printf("log_format:      %s\n", app.cfg.LogFormat)
	fmt.Printf("api_base_url:    %s\n", app.cfg.APIBaseURL())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfgPath, err := config.Path()
	if err != nil {
		return err
	}

	// Re-read the file directly so environment and flag overrides are not
	// baked into the saved file.
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	switch key {
	case "mode":
		if value != config.ModeProduction && value != config.ModeDevelopment {
			return kerrors.New(kerrors.ErrCodeConfigInvalid,
				fmt.Sprintf("unknown mode %q (expected %s or %s)",
					value, config.ModeProduction, config.ModeDevelopment))
		}
		cfg.Mode = value
	case "server":
		cfg.Server = value
	case "base_path":
		cfg.BasePath = value
	case "timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return kerrors.New(kerrors.ErrCodeConfigInvalid,
				fmt.Sprintf("timeout_seconds must be a positive integer, got %q", value))
		}
		cfg.TimeoutSeconds = n
	case "log_level":
		cfg.LogLevel = value
	case "log_format":
		cfg.LogFormat = value
	default:
		return kerrors.New(kerrors.ErrCodeConfigInvalid,
			fmt.Sprintf("unknown configuration key %q", key))
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return err
	}

	fmt.Printf("Set %s = %s\n", key, value)
	return nil
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
