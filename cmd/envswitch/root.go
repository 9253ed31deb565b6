package main

import (
	"fmt"
	"os"

	"github.com/aretw0/envswitch/internal/cli"
	"github.com/aretw0/envswitch/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "envswitch",
	Short: "Declarative environment switcher for i3 and sway",
	Long: `envswitch reads a catalog of named environments (ENVIRONMENTS.yaml) and
generates their launchers and session files, or switches the window manager
workspaces to an environment's labels.

Without a subcommand it processes every environment (same as 'run').`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	defaultConfig := os.Getenv("ENVSWITCH_CONFIG")
	if defaultConfig == "" {
		defaultConfig = config.DefaultPath()
	}

	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", defaultConfig, "Path to ENVIRONMENTS.yaml (env ENVSWITCH_CONFIG)")
	flags.String("base-dir", "", "Directory holding bin/ and templates/ (default: the config file's directory)")
	flags.String("wm", cli.WMI3, "Window manager: i3 or sway")
	flags.Bool("debug", false, "Enable debug logging on stderr")
	flags.String("state-dir", "", "Directory for the activation history (default: $XDG_STATE_HOME/envswitch)")
	flags.String("redis-addr", os.Getenv("ENVSWITCH_REDIS_ADDR"), "Keep the activation history in Redis (env ENVSWITCH_REDIS_ADDR)")
	flags.String("metrics-textfile", "", "Write Prometheus metrics to this file on exit")
}

// optionsFrom reads the persistent flags.
func optionsFrom(cmd *cobra.Command) cli.Options {
	configPath, _ := cmd.Flags().GetString("config")
	baseDir, _ := cmd.Flags().GetString("base-dir")
	wm, _ := cmd.Flags().GetString("wm")
	debug, _ := cmd.Flags().GetBool("debug")
	stateDir, _ := cmd.Flags().GetString("state-dir")
	redisAddr, _ := cmd.Flags().GetString("redis-addr")
	textfile, _ := cmd.Flags().GetString("metrics-textfile")

	return cli.Options{
		ConfigPath:      configPath,
		BaseDir:         baseDir,
		WM:              wm,
		Debug:           debug,
		StateDir:        stateDir,
		RedisAddr:       redisAddr,
		MetricsTextfile: textfile,
		Out:             cmd.OutOrStdout(),
	}
}

// withApp builds the app, runs fn and closes the app.
func withApp(opts cli.Options, fn func(*cli.App) error) error {
	app, err := cli.NewApp(opts)
	if err != nil {
		return err
	}
	runErr := fn(app)
	if err := app.Close(); err != nil {
		app.Logger.Warn("failed to close", "error", err)
	}
	return runErr
}
