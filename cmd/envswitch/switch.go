package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/envswitch"
	"github.com/aretw0/envswitch/internal/cli"
	"github.com/aretw0/envswitch/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var switchCmd = &cobra.Command{
	Use:   "switch <env_name>",
	Short: "Switch to a specific environment",
	Long: `Renames the live workspaces to the environment's wm_workspace_names.
Only workspaces whose name differs are renamed; a failed rename does not stop the others.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("switch command requires an environment name\nUsage: %s", cmd.UseLine())
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := optionsFrom(cmd)
		opts.DryRun, _ = cmd.Flags().GetBool("dry-run")

		return withApp(opts, func(app *cli.App) error {
			_, err := app.Engine.Switch(cmd.Context(), args[0])

			var nf *envswitch.NotFoundError
			if errors.As(err, &nf) {
				tui.NewPrinter(cmd.OutOrStdout(), false).NotFound(nf.Name, nf.Available)
				return nil
			}
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(switchCmd)
	switchCmd.Flags().Bool("dry-run", false, "Print the renames without applying them")
}
