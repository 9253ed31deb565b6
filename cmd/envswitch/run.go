package main

import (
	"github.com/aretw0/envswitch/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process all environments",
	Long:  `Runs the generator actions (spacemacs, tmuxinator, chromium-datadir) of every environment, in order.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(optionsFrom(cmd), func(app *cli.App) error {
			app.Engine.Process(cmd.Context())
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	// 'run' is the default if no command is provided.
	rootCmd.RunE = runCmd.RunE
}
